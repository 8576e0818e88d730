package sim

import (
	"time"

	"flight-state/internal/quantity"
)

// BodyAxes holds the components of a body-frame vector.
type BodyAxes struct {
	Lateral      float64 `json:"lateral"`
	Vertical     float64 `json:"vertical"`
	Longitudinal float64 `json:"longitudinal"`
}

// WorldAxes holds the components of a world-frame vector.
type WorldAxes struct {
	East  float64 `json:"east"`
	Up    float64 `json:"up"`
	North float64 `json:"north"`
}

// State is a serialisable copy of the context after one tick.
// Velocities are m/s, accelerations m/s², angles degrees.
type State struct {
	Tick   uint64    `json:"tick"`
	TS     time.Time `json:"ts"`
	Paused bool      `json:"paused,omitempty"`
	DeltaS float64   `json:"deltaS"`

	IndicatedAirspeed  float64 `json:"indicatedAirspeed"`
	TrueAirspeed       float64 `json:"trueAirspeed"`
	IndicatedAltitude  float64 `json:"indicatedAltitude"`  // meters
	AmbientTemperature float64 `json:"ambientTemperature"` // kelvin
	AmbientPressure    float64 `json:"ambientPressure"`    // pascal
	AirDensity         float64 `json:"airDensity"`         // kg/m³
	OnGround           bool    `json:"onGround"`
	VerticalSpeed      float64 `json:"verticalSpeed"`
	Mach               float64 `json:"mach"`

	Acceleration  BodyAxes  `json:"acceleration"`
	LocalVelocity BodyAxes  `json:"localVelocity"`
	RelativeWind  BodyAxes  `json:"relativeWind"`
	WorldWind     WorldAxes `json:"worldWind"`

	WindFromDeg    float64 `json:"windFromDeg"`
	WindSpeed      float64 `json:"windSpeed"`
	PitchDeg       float64 `json:"pitchDeg"`
	BankDeg        float64 `json:"bankDeg"`
	TrueHeadingDeg float64 `json:"trueHeadingDeg"`

	Warning string `json:"warning,omitempty"`
}

// NewState captures c as a State.
func NewState(ts time.Time, tick uint64, c UpdateContext) State {
	accel := c.Acceleration()
	vel := c.LocalVelocity()
	rel := c.LocalRelativeWind()
	wind := c.WorldAmbientWind()

	return State{
		Tick:   tick,
		TS:     ts,
		DeltaS: c.DeltaAsSeconds(),

		IndicatedAirspeed:  float64(c.IndicatedAirspeed()),
		TrueAirspeed:       float64(c.TrueAirspeed()),
		IndicatedAltitude:  float64(c.IndicatedAltitude()),
		AmbientTemperature: float64(c.AmbientTemperature()),
		AmbientPressure:    float64(c.AmbientPressure()),
		AirDensity:         float64(c.AmbientAirDensity()),
		OnGround:           c.IsOnGround(),
		VerticalSpeed:      float64(c.VerticalSpeed()),
		Mach:               float64(c.MachNumber()),

		Acceleration: BodyAxes{
			Lateral:      float64(accel.LatAccel()),
			Vertical:     float64(accel.VertAccel()),
			Longitudinal: float64(accel.LongAccel()),
		},
		LocalVelocity: BodyAxes{
			Lateral:      float64(vel.Lateral()),
			Vertical:     float64(vel.Vertical()),
			Longitudinal: float64(vel.Longitudinal()),
		},
		RelativeWind: BodyAxes{
			Lateral:      float64(rel.Lateral()),
			Vertical:     float64(rel.Vertical()),
			Longitudinal: float64(rel.Longitudinal()),
		},
		WorldWind: WorldAxes{
			East:  float64(wind.East()),
			Up:    float64(wind.Up()),
			North: float64(wind.North()),
		},

		WindFromDeg:    WindFromDeg(wind),
		WindSpeed:      HorizontalSpeed(wind),
		PitchDeg:       quantity.InDegrees(c.Pitch()),
		BankDeg:        quantity.InDegrees(c.Bank()),
		TrueHeadingDeg: quantity.InDegrees(c.TrueHeading()),
	}
}
