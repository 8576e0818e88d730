package sim

import (
	"flight-state/internal/geometry/vector"

	"gonum.org/v1/gonum/unit"
)

// Velocity3D is a velocity in the aircraft body frame.
//
//	lateral:      positive left to right
//	vertical:     positive down to up
//	longitudinal: positive aft to front
type Velocity3D struct {
	lateral      unit.Velocity
	vertical     unit.Velocity
	longitudinal unit.Velocity
}

// NewVelocity3D builds a body-frame velocity.
func NewVelocity3D(lateral, vertical, longitudinal unit.Velocity) Velocity3D {
	return Velocity3D{lateral: lateral, vertical: vertical, longitudinal: longitudinal}
}

func (v Velocity3D) Lateral() unit.Velocity      { return v.lateral }
func (v Velocity3D) Vertical() unit.Velocity     { return v.vertical }
func (v Velocity3D) Longitudinal() unit.Velocity { return v.longitudinal }

// ToMSVector returns [lateral, vertical, longitudinal] in m/s.
func (v Velocity3D) ToMSVector() vector.Vec3 {
	return vector.NewVec3(float64(v.lateral), float64(v.vertical), float64(v.longitudinal))
}

func velocity3DFromMS(v vector.Vec3) Velocity3D {
	return NewVelocity3D(unit.Velocity(v.X()), unit.Velocity(v.Y()), unit.Velocity(v.Z()))
}

// WorldVelocity3D is a velocity in the world frame, as the host reports
// ambient wind: x east, y up, z north.
type WorldVelocity3D struct {
	east  unit.Velocity
	up    unit.Velocity
	north unit.Velocity
}

// NewWorldVelocity3D builds a world-frame velocity.
func NewWorldVelocity3D(east, up, north unit.Velocity) WorldVelocity3D {
	return WorldVelocity3D{east: east, up: up, north: north}
}

func (w WorldVelocity3D) East() unit.Velocity  { return w.east }
func (w WorldVelocity3D) Up() unit.Velocity    { return w.up }
func (w WorldVelocity3D) North() unit.Velocity { return w.north }

// ToMSVector returns [east, up, north] in m/s.
func (w WorldVelocity3D) ToMSVector() vector.Vec3 {
	return vector.NewVec3(float64(w.east), float64(w.up), float64(w.north))
}

// LocalAcceleration is an acceleration in the aircraft body frame, with the
// same axes as Velocity3D.
type LocalAcceleration struct {
	lateral      unit.Acceleration
	vertical     unit.Acceleration
	longitudinal unit.Acceleration
}

// NewLocalAcceleration builds a body-frame acceleration.
func NewLocalAcceleration(lateral, vertical, longitudinal unit.Acceleration) LocalAcceleration {
	return LocalAcceleration{lateral: lateral, vertical: vertical, longitudinal: longitudinal}
}

func (a LocalAcceleration) LatAccel() unit.Acceleration  { return a.lateral }
func (a LocalAcceleration) VertAccel() unit.Acceleration { return a.vertical }
func (a LocalAcceleration) LongAccel() unit.Acceleration { return a.longitudinal }

// ToMS2Vector returns [lateral, vertical, longitudinal] in m/s².
func (a LocalAcceleration) ToMS2Vector() vector.Vec3 {
	return vector.NewVec3(float64(a.lateral), float64(a.vertical), float64(a.longitudinal))
}
