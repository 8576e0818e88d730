// Package vector provides the 3D numeric vectors and rotations used for
// frame transforms. Components are plain float64 in SI units.
package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D numeric vector in [x, y, z] order.
// For the aircraft frames x=lateral (left to right), y=vertical (down to up),
// z=longitudinal (aft to front).
type Vec3 = mgl64.Vec3

// NewVec3 creates a new 3D vector with the given components
func NewVec3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Zero returns the zero vector.
func Zero() Vec3 { return Vec3{} }

// ApproxEqual reports whether every component of a and b differs by at most
// tol. The comparison is absolute; NaN components never compare equal.
func ApproxEqual(a, b Vec3, tol float64) bool {
	for i := range a {
		if !(math.Abs(a[i]-b[i]) <= tol) {
			return false
		}
	}
	return true
}
