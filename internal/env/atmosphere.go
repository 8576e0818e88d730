package env

import (
	"math"
	"time"

	"flight-state/internal/quantity"
	"flight-state/internal/sim"

	"gonum.org/v1/gonum/unit"
)

// International Standard Atmosphere constants.
const (
	GasConstant        = 287.058 // J/(kg·K), dry air
	HeatCapacityRatio  = 1.4
	Gravity            = 9.80665 // m/s²
	SeaLevelTempK      = 288.15
	SeaLevelPressurePa = 101325.0
	LapseRate          = 0.0065 // K/m, troposphere
	TropopauseAltM     = 11000.0
	StratosphereTempK  = 216.65
)

// Conditions are the static air properties at one altitude.
type Conditions struct {
	Temperature unit.Temperature
	Pressure    unit.Pressure
	Density     quantity.MassDensity
}

// ISA returns standard conditions at altitude, with the temperature shifted
// by offsetK. Pressure follows the standard profile regardless of the offset.
func ISA(altitude unit.Length, offsetK float64) Conditions {
	h := float64(altitude)
	exponent := Gravity / (LapseRate * GasConstant)

	var t, p float64
	if h <= TropopauseAltM {
		t = SeaLevelTempK - LapseRate*h
		p = SeaLevelPressurePa * math.Pow(t/SeaLevelTempK, exponent)
	} else {
		pTropo := SeaLevelPressurePa * math.Pow(StratosphereTempK/SeaLevelTempK, exponent)
		t = StratosphereTempK
		p = pTropo * math.Exp(-Gravity*(h-TropopauseAltM)/(GasConstant*StratosphereTempK))
	}
	t += offsetK

	return Conditions{
		Temperature: quantity.Kelvin(t),
		Pressure:    quantity.Pascals(p),
		Density:     quantity.KilogramsPerCubicMetre(p / (GasConstant * t)),
	}
}

// SpeedOfSound returns the speed of sound in dry air at t.
func SpeedOfSound(t unit.Temperature) unit.Velocity {
	if t <= 0 {
		return 0
	}
	return unit.Velocity(math.Sqrt(HeatCapacityRatio * GasConstant * float64(t)))
}

// Mach returns tas as a fraction of the local speed of sound.
func Mach(tas unit.Velocity, t unit.Temperature) quantity.MachNumber {
	a := SpeedOfSound(t)
	if a == 0 {
		return 0
	}
	return quantity.MachNumber(float64(tas) / float64(a))
}

// CalibratedAirspeed converts tas with the compressible Saint-Venant relation.
func CalibratedAirspeed(tas unit.Velocity, c Conditions) unit.Velocity {
	m := float64(Mach(tas, c.Temperature))
	p := float64(c.Pressure)
	qc := p * (math.Pow(1+0.2*m*m, 3.5) - 1)

	a0 := float64(SpeedOfSound(quantity.Kelvin(SeaLevelTempK)))
	term := qc/SeaLevelPressurePa + 1
	if term < 1 {
		return 0
	}
	return unit.Velocity(a0 * math.Sqrt(5*(math.Pow(term, 1/3.5)-1)))
}

// Atmosphere derives air data from INDICATED ALTITUDE and AIRSPEED TRUE and
// writes temperature, pressure, density, indicated airspeed and Mach.
type Atmosphere struct {
	// TemperatureOffsetK is the deviation from ISA temperature
	TemperatureOffsetK float64
}

func (a Atmosphere) Apply(_ time.Duration, vars Vars) error {
	alt, err := get(vars, sim.IndicatedAltitudeKey)
	if err != nil {
		return err
	}
	tasMS, err := get(vars, sim.TrueAirspeedKey)
	if err != nil {
		return err
	}

	c := ISA(quantity.Metres(alt), a.TemperatureOffsetK)
	tas := quantity.MetresPerSecond(tasMS)

	return set(vars,
		signal{sim.AmbientTemperatureKey, float64(c.Temperature)},
		signal{sim.AmbientPressureKey, quantity.InInchesOfMercury(c.Pressure)},
		signal{sim.AmbientDensityKey, float64(c.Density)},
		signal{sim.IndicatedAirspeedKey, float64(CalibratedAirspeed(tas, c))},
		signal{sim.MachNumberKey, float64(Mach(tas, c.Temperature))},
	)
}
