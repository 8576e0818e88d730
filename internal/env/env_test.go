package env

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-state/internal/quantity"
	"flight-state/internal/sim"
	"flight-state/internal/simvar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type effectFunc func(dt time.Duration, vars Vars) error

func (f effectFunc) Apply(dt time.Duration, vars Vars) error { return f(dt, vars) }

func newVars(t *testing.T) *simvar.Store {
	t.Helper()
	store := simvar.NewStore()
	for _, k := range sim.SignalKeys {
		store.Identifier(k)
	}
	return store
}

func read(t *testing.T, store *simvar.Store, name string) float64 {
	t.Helper()
	v, err := store.Get(name)
	require.NoError(t, err)
	return v
}

func TestChainAppliesInOrder(t *testing.T) {
	var order []int
	chain := &Chain{Effects: []Environment{
		effectFunc(func(time.Duration, Vars) error { order = append(order, 1); return nil }),
		effectFunc(func(time.Duration, Vars) error { order = append(order, 2); return nil }),
	}}

	require.NoError(t, chain.Apply(time.Second, newVars(t)))
	assert.Equal(t, []int{1, 2}, order)
}

func TestChainStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	chain := &Chain{Effects: []Environment{
		effectFunc(func(time.Duration, Vars) error { return boom }),
		effectFunc(func(time.Duration, Vars) error { called = true; return nil }),
	}}

	err := chain.Apply(time.Second, newVars(t))
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestUnregisteredSignalFails(t *testing.T) {
	err := Calm().Apply(time.Second, simvar.NewStore())
	assert.ErrorIs(t, err, simvar.ErrUnknownVariable)
}

func TestNoOp(t *testing.T) {
	store := newVars(t)
	require.NoError(t, NoOp.Apply(time.Second, store))
	for _, v := range store.Values() {
		assert.Zero(t, v)
	}
}

func TestFromSpeedAndDir(t *testing.T) {
	tests := []struct {
		name        string
		fromDeg     float64
		east, north float64
	}{
		{"northerly", 0, 0, -10},
		{"easterly", 90, -10, 0},
		{"southerly", 180, 0, 10},
		{"westerly", 270, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := FromSpeedAndDir(10, tt.fromDeg)
			assert.InDelta(t, tt.east, w.East, 1e-9)
			assert.InDelta(t, tt.north, w.North, 1e-9)
			assert.InDelta(t, tt.fromDeg, sim.WindFromDeg(sim.NewWorldVelocity3D(
				quantity.MetresPerSecond(w.East), 0, quantity.MetresPerSecond(w.North))), 1e-9)
		})
	}
}

func TestWindWritesWorldComponents(t *testing.T) {
	store := newVars(t)
	w := &Wind{East: 5, North: -3, GustAmplitude: 2, GustPeriod: 4 * time.Second}

	require.NoError(t, w.Apply(time.Second, store))
	assert.InDelta(t, 5, read(t, store, sim.WindVelocityXKey), 1e-9)
	assert.InDelta(t, 2, read(t, store, sim.WindVelocityYKey), 1e-9)
	assert.InDelta(t, -3, read(t, store, sim.WindVelocityZKey), 1e-9)

	require.NoError(t, w.Apply(time.Second, store))
	assert.InDelta(t, 0, read(t, store, sim.WindVelocityYKey), 1e-9)
}

func TestAircraftStepAndSignals(t *testing.T) {
	store := newVars(t)
	a := &Aircraft{
		PitchDeg:      5,
		BankDeg:       -10,
		HeadingDeg:    350,
		TurnRateDeg:   20,
		TrueAirspeed:  100,
		AltitudeM:     1000,
		VerticalSpeed: 5,
	}

	require.NoError(t, a.Apply(time.Second, store))

	assert.InDelta(t, 10, read(t, store, sim.TrueHeadingKey), 1e-9)
	assert.InDelta(t, 5, read(t, store, sim.PlanePitchKey), 1e-9)
	assert.InDelta(t, -10, read(t, store, sim.PlaneBankKey), 1e-9)
	assert.InDelta(t, 1005, read(t, store, sim.IndicatedAltitudeKey), 1e-9)
	assert.InDelta(t, 5/0.3048*60, read(t, store, sim.VerticalSpeedKey), 1e-6)
	assert.InDelta(t, 100/0.3048, read(t, store, sim.LocalLongitudinalSpeedKey), 1e-6)
	assert.InDelta(t, 100, read(t, store, sim.TrueAirspeedKey), 1e-9)
}

func TestAircraftAirspeedNeverNegative(t *testing.T) {
	a := &Aircraft{TrueAirspeed: 5, Acceleration: -10, TurnRateDeg: -30}
	a.Step(time.Second)
	assert.Zero(t, a.TrueAirspeed)
	assert.InDelta(t, 330, a.HeadingDeg, 1e-9)
}

func TestISA(t *testing.T) {
	tests := []struct {
		name     string
		altM     float64
		tempK    float64
		pressure float64
		tol      float64
	}{
		{"sea level", 0, 288.15, 101325, 1e-6},
		{"tropopause", 11000, 216.65, 22632, 5},
		{"stratosphere", 20000, 216.65, 5475, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ISA(quantity.Metres(tt.altM), 0)
			assert.InDelta(t, tt.tempK, float64(c.Temperature), 1e-6)
			assert.InDelta(t, tt.pressure, float64(c.Pressure), tt.tol)
		})
	}

	assert.InDelta(t, 1.225, float64(ISA(0, 0).Density), 1e-3)
	assert.InDelta(t, 298.15, float64(ISA(0, 10).Temperature), 1e-9)
	assert.Less(t, float64(ISA(0, 10).Density), float64(ISA(0, 0).Density))
}

func TestMachAndCalibratedAirspeed(t *testing.T) {
	sea := ISA(0, 0)
	a := SpeedOfSound(sea.Temperature)
	assert.InDelta(t, 340.29, float64(a), 0.01)
	assert.InDelta(t, 1, float64(Mach(a, sea.Temperature)), 1e-9)
	assert.Zero(t, float64(Mach(100, 0)))

	assert.InDelta(t, 100, float64(CalibratedAirspeed(100, sea)), 1e-6)
	assert.Less(t, float64(CalibratedAirspeed(100, ISA(3000, 0))), 100.0)
}

func TestAtmosphereWritesHostUnits(t *testing.T) {
	store := newVars(t)
	require.NoError(t, store.Set(sim.TrueAirspeedKey, 100))

	require.NoError(t, Atmosphere{}.Apply(time.Second, store))

	assert.InDelta(t, 288.15, read(t, store, sim.AmbientTemperatureKey), 1e-6)
	assert.InDelta(t, 29.92, read(t, store, sim.AmbientPressureKey), 0.01)
	assert.InDelta(t, 1.225, read(t, store, sim.AmbientDensityKey), 1e-3)
	assert.InDelta(t, 100, read(t, store, sim.IndicatedAirspeedKey), 1e-6)
	assert.InDelta(t, 100/340.29, read(t, store, sim.MachNumberKey), 1e-4)
}

func TestTerrain(t *testing.T) {
	terrain := Terrain{ElevationM: 100, SafetyMarginM: 1}

	t.Run("airborne", func(t *testing.T) {
		store := newVars(t)
		require.NoError(t, store.Set(sim.IndicatedAltitudeKey, 500))
		require.NoError(t, store.Set(sim.IsOnGroundKey, 1))

		require.NoError(t, terrain.Apply(time.Second, store))
		assert.Zero(t, read(t, store, sim.IsOnGroundKey))
		assert.InDelta(t, 500, read(t, store, sim.IndicatedAltitudeKey), 1e-9)
	})

	t.Run("below floor", func(t *testing.T) {
		store := newVars(t)
		require.NoError(t, store.Set(sim.IndicatedAltitudeKey, 50))
		require.NoError(t, store.Set(sim.VerticalSpeedKey, -500))

		require.NoError(t, terrain.Apply(time.Second, store))
		assert.Equal(t, 1.0, read(t, store, sim.IsOnGroundKey))
		assert.InDelta(t, 101, read(t, store, sim.IndicatedAltitudeKey), 1e-9)
		assert.Zero(t, read(t, store, sim.VerticalSpeedKey))
	})

	t.Run("climbing off the floor keeps vertical speed", func(t *testing.T) {
		store := newVars(t)
		require.NoError(t, store.Set(sim.IndicatedAltitudeKey, 101))
		require.NoError(t, store.Set(sim.VerticalSpeedKey, 300))

		require.NoError(t, terrain.Apply(time.Second, store))
		assert.Equal(t, 1.0, read(t, store, sim.IsOnGroundKey))
		assert.InDelta(t, 300, read(t, store, sim.VerticalSpeedKey), 1e-9)
	})
}

func TestHostSample(t *testing.T) {
	store := simvar.NewStore()
	host := NewHost(store,
		&Wind{East: 5},
		&Aircraft{HeadingDeg: 90},
		DefaultTerrain(),
		Atmosphere{},
	)
	assert.Len(t, store.Names(), len(sim.SignalKeys))

	uctx := sim.NewUpdateContext(store)
	r, err := host.Sample(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	uctx.Update(r, 50*time.Millisecond)

	assert.True(t, uctx.IsOnGround())
	assert.InDelta(t, 288.15, float64(uctx.AmbientTemperature()), 0.1)
	rel := uctx.LocalRelativeWind()
	assert.InDelta(t, 0, float64(rel.Lateral()), 1e-9)
	assert.InDelta(t, 5, float64(rel.Longitudinal()), 1e-9)
}

func TestHostSampleErrors(t *testing.T) {
	boom := errors.New("boom")
	host := NewHost(simvar.NewStore(), effectFunc(func(time.Duration, Vars) error { return boom }))

	_, err := host.Sample(context.Background(), time.Second)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewHost(simvar.NewStore()).Sample(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
