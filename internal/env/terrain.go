package env

import (
	"time"

	"flight-state/internal/quantity"
	"flight-state/internal/sim"
)

// Terrain implements ground contact: an aircraft at or below the terrain
// elevation plus a margin is on the ground.
type Terrain struct {
	// ElevationM is the terrain height above sea level in meters
	ElevationM float64
	// SafetyMarginM is the height above terrain still counted as ground contact
	SafetyMarginM float64
}

// FloorM returns the lowest altitude the aircraft can report.
func (t Terrain) FloorM() float64 { return t.ElevationM + t.SafetyMarginM }

// Apply reads INDICATED ALTITUDE and writes SIM ON GROUND. Below the floor
// the altitude is clipped to it and a descending vertical speed is zeroed.
func (t Terrain) Apply(_ time.Duration, vars Vars) error {
	alt, err := get(vars, sim.IndicatedAltitudeKey)
	if err != nil {
		return err
	}

	floor := t.FloorM()
	if alt > floor {
		return set(vars, signal{sim.IsOnGroundKey, 0})
	}

	vs, err := get(vars, sim.VerticalSpeedKey)
	if err != nil {
		return err
	}
	if vs < 0 {
		vs = 0
	}
	return set(vars,
		signal{sim.IndicatedAltitudeKey, floor},
		signal{sim.VerticalSpeedKey, vs},
		signal{sim.IsOnGroundKey, 1},
	)
}

// DefaultTerrain returns sea-level terrain with a gear-height margin.
func DefaultTerrain() Terrain {
	return Terrain{
		SafetyMarginM: float64(quantity.Feet(3)),
	}
}
