package sim

import (
	"time"

	"gonum.org/v1/gonum/unit"
)

// DeltaContext exposes the time step of a tick.
type DeltaContext interface {
	Delta() time.Duration
	DeltaAsSeconds() float64
	DeltaAsTime() unit.Time
}

// Delta is the time step of one tick.
type Delta time.Duration

// Duration returns d as a time.Duration.
func (d Delta) Duration() time.Duration { return time.Duration(d) }

// Seconds returns d in seconds.
func (d Delta) Seconds() float64 { return time.Duration(d).Seconds() }

// Time returns d as a physical time quantity.
func (d Delta) Time() unit.Time { return unit.Time(d.Seconds()) }
