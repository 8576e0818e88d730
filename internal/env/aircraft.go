package env

import (
	"math"
	"time"

	"flight-state/internal/quantity"
	"flight-state/internal/sim"
)

// Aircraft flies a steady kinematic profile and writes its attitude, air
// data and body-frame motion. The body velocity is the airspeed along the
// longitudinal axis; drift is not modelled.
type Aircraft struct {
	PitchDeg    float64
	BankDeg     float64
	HeadingDeg  float64 // true
	TurnRateDeg float64 // deg/s, positive turns right

	TrueAirspeed  float64 // m/s
	Acceleration  float64 // m/s² along the longitudinal axis
	AltitudeM     float64
	VerticalSpeed float64 // m/s, positive climbing
}

// Step integrates the profile over dt.
func (a *Aircraft) Step(dt time.Duration) {
	s := dt.Seconds()
	a.TrueAirspeed = math.Max(0, a.TrueAirspeed+a.Acceleration*s)
	a.AltitudeM += a.VerticalSpeed * s
	a.HeadingDeg = math.Mod(a.HeadingDeg+a.TurnRateDeg*s, 360)
	if a.HeadingDeg < 0 {
		a.HeadingDeg += 360
	}
}

// Apply steps the profile and writes attitude, heading, true airspeed,
// altitude, vertical speed, body velocity and body acceleration.
func (a *Aircraft) Apply(dt time.Duration, vars Vars) error {
	a.Step(dt)

	tas := quantity.MetresPerSecond(a.TrueAirspeed)
	turnRate := float64(quantity.Degrees(a.TurnRateDeg))

	return set(vars,
		signal{sim.PlanePitchKey, a.PitchDeg},
		signal{sim.PlaneBankKey, a.BankDeg},
		signal{sim.TrueHeadingKey, a.HeadingDeg},
		signal{sim.TrueAirspeedKey, a.TrueAirspeed},
		signal{sim.IndicatedAltitudeKey, a.AltitudeM},
		signal{sim.VerticalSpeedKey, quantity.InFeetPerMinute(quantity.MetresPerSecond(a.VerticalSpeed))},
		signal{sim.LocalLateralSpeedKey, 0},
		signal{sim.LocalVerticalSpeedKey, 0},
		signal{sim.LocalLongitudinalSpeedKey, quantity.InFeetPerSecond(tas)},
		signal{sim.AccelBodyXKey, a.TrueAirspeed * turnRate},
		signal{sim.AccelBodyYKey, 0},
		signal{sim.AccelBodyZKey, a.Acceleration},
	)
}
