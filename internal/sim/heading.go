package sim

import "math"

// HeadingDegFromVec returns the compass direction of a horizontal vector
// given by its east and north components: 0=north, 90=east.
func HeadingDegFromVec(east, north float64) float64 {
	if math.Abs(east) < 1e-9 && math.Abs(north) < 1e-9 {
		return 0
	}
	deg := math.Atan2(east, north) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// WindFromDeg returns the direction the wind blows from, the way it is
// reported to pilots. Calm air reports 0.
func WindFromDeg(w WorldVelocity3D) float64 {
	east, north := float64(w.East()), float64(w.North())
	if math.Abs(east) < 1e-9 && math.Abs(north) < 1e-9 {
		return 0
	}
	return math.Mod(HeadingDegFromVec(east, north)+180, 360)
}

// HorizontalSpeed returns the magnitude of the east and north components.
func HorizontalSpeed(w WorldVelocity3D) float64 {
	return math.Hypot(float64(w.East()), float64(w.North()))
}
