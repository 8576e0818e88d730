package sim

import (
	"math"
	"testing"
	"time"

	"flight-state/internal/geometry/vector"
	"flight-state/internal/quantity"

	"github.com/stretchr/testify/assert"
)

func TestVelocity3DAxisOrder(t *testing.T) {
	v := NewVelocity3D(quantity.FeetPerSecond(1), quantity.Knots(1), quantity.MetresPerSecond(3))

	assert.InDelta(t, 0.3048, float64(v.Lateral()), tolerance)
	assert.InDelta(t, 1852.0/3600.0, float64(v.Vertical()), tolerance)
	assert.InDelta(t, 3, float64(v.Longitudinal()), tolerance)
	assertVec(t, vector.NewVec3(0.3048, 1852.0/3600.0, 3), v.ToMSVector())
}

func TestWorldVelocity3DAxisOrder(t *testing.T) {
	w := NewWorldVelocity3D(1, 2, 3)

	assert.Equal(t, vector.NewVec3(1, 2, 3), w.ToMSVector())
	assert.InDelta(t, 1, float64(w.East()), tolerance)
	assert.InDelta(t, 2, float64(w.Up()), tolerance)
	assert.InDelta(t, 3, float64(w.North()), tolerance)
}

func TestLocalAccelerationAxisOrder(t *testing.T) {
	a := NewLocalAcceleration(
		quantity.MetresPerSecondSquared(-1),
		quantity.FeetPerSecondSquared(10),
		quantity.MetresPerSecondSquared(2.5),
	)

	assert.InDelta(t, -1, float64(a.LatAccel()), tolerance)
	assert.InDelta(t, 3.048, float64(a.VertAccel()), tolerance)
	assert.InDelta(t, 2.5, float64(a.LongAccel()), tolerance)
	assertVec(t, vector.NewVec3(-1, 3.048, 2.5), a.ToMS2Vector())
}

func TestVelocity3DFromMS(t *testing.T) {
	v := velocity3DFromMS(vector.NewVec3(4, 5, 6))
	assert.Equal(t, NewVelocity3D(4, 5, 6), v)
}

func TestAttitudeRotations(t *testing.T) {
	a := newAttitude(quantity.Degrees(90), quantity.Degrees(90))

	assertVec(t, vector.NewVec3(0, 0, 1), a.PitchRotationTransform().Apply(vector.NewVec3(0, 1, 0)))
	assertVec(t, vector.NewVec3(0, -1, 0), a.BankRotationTransform().Apply(vector.NewVec3(1, 0, 0)))
	assert.InDelta(t, math.Pi/2, float64(a.Pitch()), tolerance)
	assert.InDelta(t, math.Pi/2, float64(a.Bank()), tolerance)
}

func TestAttitudeAnglesAreNotWrapped(t *testing.T) {
	a := newAttitude(quantity.Degrees(450), quantity.Degrees(-540))

	assert.InDelta(t, 450, quantity.InDegrees(a.Pitch()), tolerance)
	assert.InDelta(t, -540, quantity.InDegrees(a.Bank()), tolerance)
	assertVec(t,
		newAttitude(quantity.Degrees(90), 0).PitchRotationTransform().Apply(vector.NewVec3(0, 1, 0)),
		a.PitchRotationTransform().Apply(vector.NewVec3(0, 1, 0)),
	)
}

func TestDeltaConversions(t *testing.T) {
	d := Delta(1500 * time.Millisecond)

	assert.Equal(t, 1500*time.Millisecond, d.Duration())
	assert.InDelta(t, 1.5, d.Seconds(), tolerance)
	assert.InDelta(t, 1.5, float64(d.Time()), tolerance)
}
