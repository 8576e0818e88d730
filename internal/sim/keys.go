package sim

// Host signal names read by UpdateContext. Units are part of the contract
// with the host and are converted on ingest.
const (
	AmbientDensityKey         = "AMBIENT DENSITY"            // kg/m³
	AmbientTemperatureKey     = "AMBIENT TEMPERATURE"        // K
	IndicatedAirspeedKey      = "AIRSPEED INDICATED"         // m/s
	TrueAirspeedKey           = "AIRSPEED TRUE"              // m/s
	IndicatedAltitudeKey      = "INDICATED ALTITUDE"         // m
	IsOnGroundKey             = "SIM ON GROUND"              // boolean
	AmbientPressureKey        = "AMBIENT PRESSURE"           // inHg
	VerticalSpeedKey          = "VELOCITY WORLD Y"           // ft/min
	AccelBodyXKey             = "ACCELERATION BODY X"        // m/s²
	AccelBodyYKey             = "ACCELERATION BODY Y"        // m/s²
	AccelBodyZKey             = "ACCELERATION BODY Z"        // m/s²
	WindVelocityXKey          = "AMBIENT WIND X"             // m/s, east
	WindVelocityYKey          = "AMBIENT WIND Y"             // m/s, up
	WindVelocityZKey          = "AMBIENT WIND Z"             // m/s, north
	PlanePitchKey             = "PLANE PITCH DEGREES"        // deg
	PlaneBankKey              = "PLANE BANK DEGREES"         // deg
	MachNumberKey             = "AIRSPEED MACH"              // ratio
	TrueHeadingKey            = "PLANE HEADING DEGREES TRUE" // deg
	LocalLateralSpeedKey      = "VELOCITY BODY X"            // ft/s
	LocalVerticalSpeedKey     = "VELOCITY BODY Y"            // ft/s
	LocalLongitudinalSpeedKey = "VELOCITY BODY Z"            // ft/s
)

// SignalKeys lists every signal UpdateContext registers, in registration order.
var SignalKeys = []string{
	AmbientTemperatureKey,
	IndicatedAirspeedKey,
	TrueAirspeedKey,
	IndicatedAltitudeKey,
	IsOnGroundKey,
	AmbientPressureKey,
	AmbientDensityKey,
	VerticalSpeedKey,
	LocalLongitudinalSpeedKey,
	LocalLateralSpeedKey,
	LocalVerticalSpeedKey,
	AccelBodyXKey,
	AccelBodyYKey,
	AccelBodyZKey,
	WindVelocityXKey,
	WindVelocityYKey,
	WindVelocityZKey,
	PlanePitchKey,
	PlaneBankKey,
	TrueHeadingKey,
	MachNumberKey,
}
