// Package quantity provides the typed physical quantities used by the flight
// state context. Scalars are gonum unit types holding SI base units; this
// package adds the aviation units the host simulator reports in.
//
// Conversions never fail. NaN and infinities pass through unchanged.
package quantity

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// Conversion factors to SI base units.
const (
	MetresPerFoot           = 0.3048
	MetresPerNauticalMile   = 1852.0
	PascalsPerInchOfMercury = 3386.389
	PascalsPerHectopascal   = 100.0
	KilogramsPerSlug        = 14.593902937206364
	ZeroCelsius             = 273.15

	secondsPerMinute = 60.0
	secondsPerHour   = 3600.0
)

// MassDensity represents a mass density in kilograms per cubic metre.
type MassDensity float64

// Unit converts the MassDensity to a *unit.Unit.
func (d MassDensity) Unit() *unit.Unit {
	return unit.New(float64(d), unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: -3,
	})
}

// MachNumber is the ratio of true airspeed to the local speed of sound.
type MachNumber float64

// Unit converts the MachNumber to a dimensionless *unit.Unit.
func (m MachNumber) Unit() *unit.Unit {
	return unit.New(float64(m), unit.Dimensions{})
}

// MetresPerSecond returns a velocity of v m/s.
func MetresPerSecond(v float64) unit.Velocity { return unit.Velocity(v) }

// FeetPerSecond returns a velocity of v ft/s.
func FeetPerSecond(v float64) unit.Velocity { return unit.Velocity(v * MetresPerFoot) }

// FeetPerMinute returns a velocity of v ft/min.
func FeetPerMinute(v float64) unit.Velocity {
	return unit.Velocity(v * MetresPerFoot / secondsPerMinute)
}

// Knots returns a velocity of v nautical miles per hour.
func Knots(v float64) unit.Velocity {
	return unit.Velocity(v * MetresPerNauticalMile / secondsPerHour)
}

// InMetresPerSecond reports v in m/s.
func InMetresPerSecond(v unit.Velocity) float64 { return float64(v) }

// InFeetPerSecond reports v in ft/s.
func InFeetPerSecond(v unit.Velocity) float64 { return float64(v) / MetresPerFoot }

// InFeetPerMinute reports v in ft/min.
func InFeetPerMinute(v unit.Velocity) float64 {
	return float64(v) * secondsPerMinute / MetresPerFoot
}

// InKnots reports v in knots.
func InKnots(v unit.Velocity) float64 {
	return float64(v) * secondsPerHour / MetresPerNauticalMile
}

// MetresPerSecondSquared returns an acceleration of a m/s².
func MetresPerSecondSquared(a float64) unit.Acceleration { return unit.Acceleration(a) }

// FeetPerSecondSquared returns an acceleration of a ft/s².
func FeetPerSecondSquared(a float64) unit.Acceleration {
	return unit.Acceleration(a * MetresPerFoot)
}

// InMetresPerSecondSquared reports a in m/s².
func InMetresPerSecondSquared(a unit.Acceleration) float64 { return float64(a) }

// InFeetPerSecondSquared reports a in ft/s².
func InFeetPerSecondSquared(a unit.Acceleration) float64 { return float64(a) / MetresPerFoot }

// Metres returns a length of l m.
func Metres(l float64) unit.Length { return unit.Length(l) }

// Feet returns a length of l ft.
func Feet(l float64) unit.Length { return unit.Length(l * MetresPerFoot) }

// InFeet reports l in feet.
func InFeet(l unit.Length) float64 { return float64(l) / MetresPerFoot }

// Radians returns an angle of a rad.
func Radians(a float64) unit.Angle { return unit.Angle(a) }

// Degrees returns an angle of a degrees. No wrapping is applied.
func Degrees(a float64) unit.Angle { return unit.Angle(a * math.Pi / 180) }

// InRadians reports a in radians.
func InRadians(a unit.Angle) float64 { return float64(a) }

// InDegrees reports a in degrees.
func InDegrees(a unit.Angle) float64 { return float64(a) * 180 / math.Pi }

// Pascals returns a pressure of p Pa.
func Pascals(p float64) unit.Pressure { return unit.Pressure(p) }

// InchesOfMercury returns a pressure of p inHg.
func InchesOfMercury(p float64) unit.Pressure {
	return unit.Pressure(p * PascalsPerInchOfMercury)
}

// Hectopascals returns a pressure of p hPa.
func Hectopascals(p float64) unit.Pressure { return unit.Pressure(p * PascalsPerHectopascal) }

// InInchesOfMercury reports p in inHg.
func InInchesOfMercury(p unit.Pressure) float64 {
	return float64(p) / PascalsPerInchOfMercury
}

// InHectopascals reports p in hPa.
func InHectopascals(p unit.Pressure) float64 { return float64(p) / PascalsPerHectopascal }

// Kelvin returns a thermodynamic temperature of t K.
func Kelvin(t float64) unit.Temperature { return unit.Temperature(t) }

// DegreesCelsius returns the thermodynamic temperature of t °C.
func DegreesCelsius(t float64) unit.Temperature { return unit.Temperature(t + ZeroCelsius) }

// InDegreesCelsius reports t in °C.
func InDegreesCelsius(t unit.Temperature) float64 { return float64(t) - ZeroCelsius }

// KilogramsPerCubicMetre returns a density of d kg/m³.
func KilogramsPerCubicMetre(d float64) MassDensity { return MassDensity(d) }

// SlugsPerCubicFoot returns a density of d slug/ft³.
func SlugsPerCubicFoot(d float64) MassDensity {
	return MassDensity(d * KilogramsPerSlug / (MetresPerFoot * MetresPerFoot * MetresPerFoot))
}

// InSlugsPerCubicFoot reports d in slug/ft³.
func InSlugsPerCubicFoot(d MassDensity) float64 {
	return float64(d) * (MetresPerFoot * MetresPerFoot * MetresPerFoot) / KilogramsPerSlug
}

// Seconds returns a time of s seconds.
func Seconds(s float64) unit.Time { return unit.Time(s) }
