package vector

import "github.com/go-gl/mathgl/mgl64"

// Axis names a unit axis of the [x, y, z] frame.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Rotation is a proper rotation of 3D space. The zero value is not a valid
// rotation; use Identity.
type Rotation struct {
	m mgl64.Mat3
}

// Identity returns the rotation that leaves every vector unchanged.
func Identity() Rotation { return Rotation{m: mgl64.Ident3()} }

// FromAxisAngle returns the right-handed rotation of angle radians about axis.
// The angle is used as given, without wrapping.
func FromAxisAngle(axis Axis, angle float64) Rotation {
	switch axis {
	case XAxis:
		return Rotation{m: mgl64.Rotate3DX(angle)}
	case YAxis:
		return Rotation{m: mgl64.Rotate3DY(angle)}
	case ZAxis:
		return Rotation{m: mgl64.Rotate3DZ(angle)}
	}
	return Identity()
}

// Inverse returns the rotation undoing r. For an orthonormal matrix this is
// the transpose.
func (r Rotation) Inverse() Rotation { return Rotation{m: r.m.Transpose()} }

// Mul composes r after o, so r.Mul(o).Apply(v) == r.Apply(o.Apply(v)).
func (r Rotation) Mul(o Rotation) Rotation { return Rotation{m: r.m.Mul3(o.m)} }

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 { return r.m.Mul3x1(v) }

// Matrix returns the column-major rotation matrix.
func (r Rotation) Matrix() mgl64.Mat3 { return r.m }
