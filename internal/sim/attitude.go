package sim

import (
	"flight-state/internal/geometry/vector"

	"gonum.org/v1/gonum/unit"
)

// Attitude is the aircraft orientation for one tick.
type Attitude struct {
	pitch unit.Angle
	bank  unit.Angle
}

func newAttitude(pitch, bank unit.Angle) Attitude {
	return Attitude{pitch: pitch, bank: bank}
}

// Pitch returns the pitch angle.
func (a Attitude) Pitch() unit.Angle { return a.pitch }

// Bank returns the bank angle.
func (a Attitude) Bank() unit.Angle { return a.bank }

// PitchRotationTransform rotates about the lateral (x) axis by the pitch angle.
func (a Attitude) PitchRotationTransform() vector.Rotation {
	return vector.FromAxisAngle(vector.XAxis, float64(a.pitch))
}

// BankRotationTransform rotates about the z axis by the negated bank angle.
func (a Attitude) BankRotationTransform() vector.Rotation {
	return vector.FromAxisAngle(vector.ZAxis, -float64(a.bank))
}
