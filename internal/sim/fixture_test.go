package sim

import (
	"time"

	"flight-state/internal/quantity"
	"flight-state/internal/simvar"

	"gonum.org/v1/gonum/unit"
)

// testContext builds an UpdateContext with every field injected directly.
// The relative wind is derived the same way Update derives it.
type testContext struct {
	delta              time.Duration
	indicatedAirspeed  unit.Velocity
	trueAirspeed       unit.Velocity
	indicatedAltitude  unit.Length
	ambientTemperature unit.Temperature
	ambientPressure    unit.Pressure
	isOnGround         bool
	verticalSpeed      unit.Velocity
	acceleration       LocalAcceleration
	worldWind          WorldVelocity3D
	localVelocity      Velocity3D
	pitch              unit.Angle
	bank               unit.Angle
	trueHeading        unit.Angle
	mach               quantity.MachNumber
	airDensity         quantity.MassDensity
}

func (tc testContext) build() UpdateContext {
	c := NewUpdateContext(simvar.NewStore())
	c.delta = Delta(tc.delta)
	c.indicatedAirspeed = tc.indicatedAirspeed
	c.trueAirspeed = tc.trueAirspeed
	c.indicatedAltitude = tc.indicatedAltitude
	c.ambientTemperature = tc.ambientTemperature
	c.ambientPressure = tc.ambientPressure
	c.isOnGround = tc.isOnGround
	c.verticalSpeed = tc.verticalSpeed
	c.localAcceleration = tc.acceleration
	c.worldAmbientWind = tc.worldWind
	c.localVelocity = tc.localVelocity
	c.attitude = newAttitude(tc.pitch, tc.bank)
	c.trueHeading = tc.trueHeading
	c.machNumber = tc.mach
	c.airDensity = tc.airDensity
	c.updateRelativeWind()
	return c
}

// hostValues are raw readings in host units, keyed by signal name.
type hostValues map[string]float64

// newHost registers the context signals in a fresh store and writes values.
func newHost(values hostValues) (*simvar.Store, UpdateContext) {
	store := simvar.NewStore()
	ctx := NewUpdateContext(store)
	for name, v := range values {
		if err := store.Set(name, v); err != nil {
			panic(err)
		}
	}
	return store, ctx
}

func windOnly(east, up, north float64) hostValues {
	return hostValues{
		WindVelocityXKey: east,
		WindVelocityYKey: up,
		WindVelocityZKey: north,
	}
}
