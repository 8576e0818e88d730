package sim

import (
	"time"

	"flight-state/internal/geometry/vector"
	"flight-state/internal/quantity"
	"flight-state/internal/simvar"

	"gonum.org/v1/gonum/unit"
)

// UpdateContext provides data unowned by any aircraft system for the
// purpose of handling a simulation tick. It is refreshed in place once per
// tick by Update and read by every system afterwards. It is a plain value:
// copying it is cheap and copies share nothing.
//
// The context does no locking. Update must complete before anything reads
// the context for that tick.
type UpdateContext struct {
	ambientTemperatureID     simvar.Identifier
	indicatedAirspeedID      simvar.Identifier
	trueAirspeedID           simvar.Identifier
	indicatedAltitudeID      simvar.Identifier
	isOnGroundID             simvar.Identifier
	ambientPressureID        simvar.Identifier
	ambientDensityID         simvar.Identifier
	verticalSpeedID          simvar.Identifier
	localLongitudinalSpeedID simvar.Identifier
	localLateralSpeedID      simvar.Identifier
	localVerticalSpeedID     simvar.Identifier
	accelBodyXID             simvar.Identifier
	accelBodyYID             simvar.Identifier
	accelBodyZID             simvar.Identifier
	windVelocityXID          simvar.Identifier
	windVelocityYID          simvar.Identifier
	windVelocityZID          simvar.Identifier
	planePitchID             simvar.Identifier
	planeBankID              simvar.Identifier
	trueHeadingID            simvar.Identifier
	machNumberID             simvar.Identifier

	delta              Delta
	indicatedAirspeed  unit.Velocity
	trueAirspeed       unit.Velocity
	indicatedAltitude  unit.Length
	ambientTemperature unit.Temperature
	ambientPressure    unit.Pressure
	isOnGround         bool
	verticalSpeed      unit.Velocity
	localAcceleration  LocalAcceleration
	worldAmbientWind   WorldVelocity3D
	localRelativeWind  Velocity3D
	localVelocity      Velocity3D
	attitude           Attitude
	machNumber         quantity.MachNumber
	airDensity         quantity.MassDensity
	trueHeading        unit.Angle
}

// NewUpdateContext registers every signal the context reads and returns a
// context with zeroed state.
func NewUpdateContext(reg simvar.Registry) UpdateContext {
	return UpdateContext{
		ambientTemperatureID:     reg.Identifier(AmbientTemperatureKey),
		indicatedAirspeedID:      reg.Identifier(IndicatedAirspeedKey),
		trueAirspeedID:           reg.Identifier(TrueAirspeedKey),
		indicatedAltitudeID:      reg.Identifier(IndicatedAltitudeKey),
		isOnGroundID:             reg.Identifier(IsOnGroundKey),
		ambientPressureID:        reg.Identifier(AmbientPressureKey),
		ambientDensityID:         reg.Identifier(AmbientDensityKey),
		verticalSpeedID:          reg.Identifier(VerticalSpeedKey),
		localLongitudinalSpeedID: reg.Identifier(LocalLongitudinalSpeedKey),
		localLateralSpeedID:      reg.Identifier(LocalLateralSpeedKey),
		localVerticalSpeedID:     reg.Identifier(LocalVerticalSpeedKey),
		accelBodyXID:             reg.Identifier(AccelBodyXKey),
		accelBodyYID:             reg.Identifier(AccelBodyYKey),
		accelBodyZID:             reg.Identifier(AccelBodyZKey),
		windVelocityXID:          reg.Identifier(WindVelocityXKey),
		windVelocityYID:          reg.Identifier(WindVelocityYKey),
		windVelocityZID:          reg.Identifier(WindVelocityZKey),
		planePitchID:             reg.Identifier(PlanePitchKey),
		planeBankID:              reg.Identifier(PlaneBankKey),
		trueHeadingID:            reg.Identifier(TrueHeadingKey),
		machNumberID:             reg.Identifier(MachNumberKey),
	}
}

// Update refreshes the context from the values read for this tick.
// Order matters: the relative wind is derived last, from the attitude,
// heading and velocities refreshed above it.
func (c *UpdateContext) Update(r simvar.Reader, delta time.Duration) {
	c.ambientTemperature = quantity.Kelvin(r.Read(c.ambientTemperatureID))
	c.indicatedAirspeed = quantity.MetresPerSecond(r.Read(c.indicatedAirspeedID))
	c.trueAirspeed = quantity.MetresPerSecond(r.Read(c.trueAirspeedID))
	c.indicatedAltitude = quantity.Metres(r.Read(c.indicatedAltitudeID))
	c.isOnGround = simvar.ReadBool(r, c.isOnGroundID)
	c.ambientPressure = quantity.InchesOfMercury(r.Read(c.ambientPressureID))
	c.verticalSpeed = quantity.FeetPerMinute(r.Read(c.verticalSpeedID))

	c.delta = Delta(delta)

	c.localAcceleration = NewLocalAcceleration(
		quantity.MetresPerSecondSquared(r.Read(c.accelBodyXID)),
		quantity.MetresPerSecondSquared(r.Read(c.accelBodyYID)),
		quantity.MetresPerSecondSquared(r.Read(c.accelBodyZID)),
	)

	c.worldAmbientWind = NewWorldVelocity3D(
		quantity.MetresPerSecond(r.Read(c.windVelocityXID)),
		quantity.MetresPerSecond(r.Read(c.windVelocityYID)),
		quantity.MetresPerSecond(r.Read(c.windVelocityZID)),
	)

	c.localVelocity = NewVelocity3D(
		quantity.FeetPerSecond(r.Read(c.localLateralSpeedID)),
		quantity.FeetPerSecond(r.Read(c.localVerticalSpeedID)),
		quantity.FeetPerSecond(r.Read(c.localLongitudinalSpeedID)),
	)

	c.attitude = newAttitude(
		quantity.Degrees(r.Read(c.planePitchID)),
		quantity.Degrees(r.Read(c.planeBankID)),
	)

	c.machNumber = quantity.MachNumber(r.Read(c.machNumberID))
	c.airDensity = quantity.KilogramsPerCubicMetre(r.Read(c.ambientDensityID))
	c.trueHeading = quantity.Degrees(r.Read(c.trueHeadingID))

	c.updateRelativeWind()
}

// updateRelativeWind recomputes the relative wind instead of reading the
// host's RELATIVE WIND VELOCITY signals, which drop any lateral component
// until a certain ground speed is reached.
//
// World wind is rotated into the aircraft frame (inverse heading, then bank,
// then inverse pitch) and the aircraft's own body velocity is subtracted.
func (c *UpdateContext) updateRelativeWind() {
	worldAmbientWind := c.worldAmbientWind.ToMSVector()

	pitchRotation := c.attitude.PitchRotationTransform()
	bankRotation := c.attitude.BankRotationTransform()
	headingRotation := c.TrueHeadingRotationTransform()

	ambientWindInPlaneLocalCoordinates := pitchRotation.Inverse().Apply(
		bankRotation.Apply(headingRotation.Inverse().Apply(worldAmbientWind)),
	)

	relativeWind := ambientWindInPlaneLocalCoordinates.Sub(c.localVelocity.ToMSVector())

	c.localRelativeWind = velocity3DFromMS(relativeWind)
}

// WithDelta returns a copy of the context with only the delta replaced.
func (c UpdateContext) WithDelta(delta time.Duration) UpdateContext {
	c.delta = Delta(delta)
	return c
}

func (c UpdateContext) Delta() time.Duration    { return c.delta.Duration() }
func (c UpdateContext) DeltaAsSeconds() float64 { return c.delta.Seconds() }
func (c UpdateContext) DeltaAsTime() unit.Time  { return c.delta.Time() }

func (c UpdateContext) IndicatedAirspeed() unit.Velocity        { return c.indicatedAirspeed }
func (c UpdateContext) TrueAirspeed() unit.Velocity             { return c.trueAirspeed }
func (c UpdateContext) IndicatedAltitude() unit.Length          { return c.indicatedAltitude }
func (c UpdateContext) AmbientTemperature() unit.Temperature    { return c.ambientTemperature }
func (c UpdateContext) AmbientPressure() unit.Pressure          { return c.ambientPressure }
func (c UpdateContext) AmbientAirDensity() quantity.MassDensity { return c.airDensity }
func (c UpdateContext) VerticalSpeed() unit.Velocity            { return c.verticalSpeed }
func (c UpdateContext) IsOnGround() bool                        { return c.isOnGround }
func (c UpdateContext) IsInFlight() bool                        { return !c.isOnGround }
func (c UpdateContext) MachNumber() quantity.MachNumber         { return c.machNumber }

func (c UpdateContext) LongAccel() unit.Acceleration      { return c.localAcceleration.LongAccel() }
func (c UpdateContext) LatAccel() unit.Acceleration       { return c.localAcceleration.LatAccel() }
func (c UpdateContext) VertAccel() unit.Acceleration      { return c.localAcceleration.VertAccel() }
func (c UpdateContext) Acceleration() LocalAcceleration   { return c.localAcceleration }
func (c UpdateContext) LocalVelocity() Velocity3D         { return c.localVelocity }
func (c UpdateContext) LocalRelativeWind() Velocity3D     { return c.localRelativeWind }
func (c UpdateContext) WorldAmbientWind() WorldVelocity3D { return c.worldAmbientWind }

func (c UpdateContext) Attitude() Attitude      { return c.attitude }
func (c UpdateContext) Pitch() unit.Angle       { return c.attitude.Pitch() }
func (c UpdateContext) Bank() unit.Angle        { return c.attitude.Bank() }
func (c UpdateContext) TrueHeading() unit.Angle { return c.trueHeading }

// TrueHeadingRotationTransform rotates about the world vertical (y) axis by
// the true heading.
func (c UpdateContext) TrueHeadingRotationTransform() vector.Rotation {
	return vector.FromAxisAngle(vector.YAxis, float64(c.trueHeading))
}
