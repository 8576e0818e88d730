package env

import (
	"math"
	"time"

	"flight-state/internal/sim"
)

// Wind writes the world-frame ambient wind. The horizontal components are in
// m/s towards east and north; an optional sinusoidal vertical gust rides on
// top of them.
type Wind struct {
	// East is the eastward component in m/s (positive = towards east)
	East float64
	// North is the northward component in m/s (positive = towards north)
	North float64

	GustAmplitude float64 // m/s, peak vertical gust
	GustPeriod    time.Duration

	elapsed time.Duration
}

// Vertical returns the vertical gust component after elapsed time.
func (w *Wind) Vertical() float64 {
	if w.GustPeriod <= 0 || w.GustAmplitude == 0 {
		return 0
	}
	phase := 2 * math.Pi * w.elapsed.Seconds() / w.GustPeriod.Seconds()
	return w.GustAmplitude * math.Sin(phase)
}

// Apply advances the gust phase by dt and writes AMBIENT WIND X/Y/Z.
func (w *Wind) Apply(dt time.Duration, vars Vars) error {
	w.elapsed += dt
	return set(vars,
		signal{sim.WindVelocityXKey, w.East},
		signal{sim.WindVelocityYKey, w.Vertical()},
		signal{sim.WindVelocityZKey, w.North},
	)
}

// Calm returns a Wind with zero velocity (no wind).
func Calm() *Wind {
	return &Wind{}
}

// FromSpeedAndDir creates a Wind from a speed (m/s) and the direction it
// blows from, in degrees clockwise from north (270 = westerly, pushing east).
func FromSpeedAndDir(speed, fromDeg float64) *Wind {
	rad := fromDeg * math.Pi / 180
	return &Wind{
		East:  -speed * math.Sin(rad),
		North: -speed * math.Cos(rad),
	}
}
