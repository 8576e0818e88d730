package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FLIGHTSTATE_HTTP_PORT.
const EnvPrefix = "FLIGHTSTATE"

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel  string        `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string        `json:"logFormat" mapstructure:"logFormat"`
	TickHz    float64       `json:"tickHz" mapstructure:"tickHz"`
	MaxStep   time.Duration `json:"maxStep" mapstructure:"maxStep"`

	HTTP     HTTPConfig     `json:"http" mapstructure:"http"`
	Stream   StreamConfig   `json:"stream" mapstructure:"stream"`
	Scenario ScenarioConfig `json:"scenario" mapstructure:"scenario"`
	Influx   InfluxConfig   `json:"influx" mapstructure:"influx"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
}

type HTTPConfig struct {
	Port int `json:"port" mapstructure:"port"`
}

type StreamConfig struct {
	MaxHz float64 `json:"maxHz" mapstructure:"maxHz"`
}

// ScenarioConfig drives the synthetic host simulation.
type ScenarioConfig struct {
	Wind               WindConfig     `json:"wind" mapstructure:"wind"`
	Aircraft           AircraftConfig `json:"aircraft" mapstructure:"aircraft"`
	Terrain            TerrainConfig  `json:"terrain" mapstructure:"terrain"`
	TemperatureOffsetK float64        `json:"temperatureOffsetK" mapstructure:"temperatureOffsetK"`
}

type WindConfig struct {
	Speed         float64       `json:"speed" mapstructure:"speed"`
	FromDeg       float64       `json:"fromDeg" mapstructure:"fromDeg"`
	GustAmplitude float64       `json:"gustAmplitude" mapstructure:"gustAmplitude"`
	GustPeriod    time.Duration `json:"gustPeriod" mapstructure:"gustPeriod"`
}

type AircraftConfig struct {
	PitchDeg      float64 `json:"pitchDeg" mapstructure:"pitchDeg"`
	BankDeg       float64 `json:"bankDeg" mapstructure:"bankDeg"`
	HeadingDeg    float64 `json:"headingDeg" mapstructure:"headingDeg"`
	TurnRateDeg   float64 `json:"turnRateDeg" mapstructure:"turnRateDeg"`
	TrueAirspeed  float64 `json:"trueAirspeed" mapstructure:"trueAirspeed"`
	Acceleration  float64 `json:"acceleration" mapstructure:"acceleration"`
	AltitudeM     float64 `json:"altitudeM" mapstructure:"altitudeM"`
	VerticalSpeed float64 `json:"verticalSpeed" mapstructure:"verticalSpeed"`
}

type TerrainConfig struct {
	ElevationM    float64 `json:"elevationM" mapstructure:"elevationM"`
	SafetyMarginM float64 `json:"safetyMarginM" mapstructure:"safetyMarginM"`
}

// InfluxConfig holds InfluxDB telemetry settings
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	URL        string `json:"url" mapstructure:"url"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

type StorageConfig struct {
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// SQLiteConfig holds SQLite snapshot recorder settings
type SQLiteConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Path      string `json:"path" mapstructure:"path"`
	BatchSize int    `json:"batchSize" mapstructure:"batchSize"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("tickHz", 20.0)
	v.SetDefault("maxStep", "0s")

	v.SetDefault("http.port", 8080)
	v.SetDefault("stream.maxHz", 10.0)

	v.SetDefault("scenario.wind.speed", 5.0)
	v.SetDefault("scenario.wind.fromDeg", 270.0)
	v.SetDefault("scenario.wind.gustAmplitude", 0.0)
	v.SetDefault("scenario.wind.gustPeriod", "10s")
	v.SetDefault("scenario.aircraft.pitchDeg", 2.0)
	v.SetDefault("scenario.aircraft.bankDeg", 0.0)
	v.SetDefault("scenario.aircraft.headingDeg", 0.0)
	v.SetDefault("scenario.aircraft.turnRateDeg", 3.0)
	v.SetDefault("scenario.aircraft.trueAirspeed", 60.0)
	v.SetDefault("scenario.aircraft.acceleration", 0.0)
	v.SetDefault("scenario.aircraft.altitudeM", 1000.0)
	v.SetDefault("scenario.aircraft.verticalSpeed", 0.0)
	v.SetDefault("scenario.terrain.elevationM", 0.0)
	v.SetDefault("scenario.terrain.safetyMarginM", 1.0)
	v.SetDefault("scenario.temperatureOffsetK", 0.0)

	v.SetDefault("influx.enabled", false)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "flight-state")
	v.SetDefault("influx.bucket", "flight_state")
	v.SetDefault("influx.backupPath", "")

	v.SetDefault("storage.sqlite.enabled", false)
	v.SetDefault("storage.sqlite.path", "./flight_state.db")
	v.SetDefault("storage.sqlite.batchSize", 50)
}

// Load reads configuration from the JSON file at path, applies defaults and
// FLIGHTSTATE_ environment overrides, and validates the result. An empty
// path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickHz <= 0 {
		return fmt.Errorf("%w: tickHz must be positive, got %v", ErrInvalid, c.TickHz)
	}
	if c.MaxStep < 0 {
		return fmt.Errorf("%w: maxStep must not be negative, got %v", ErrInvalid, c.MaxStep)
	}
	if c.Stream.MaxHz <= 0 {
		return fmt.Errorf("%w: stream.maxHz must be positive, got %v", ErrInvalid, c.Stream.MaxHz)
	}
	if c.Storage.SQLite.Enabled && c.Storage.SQLite.BatchSize <= 0 {
		return fmt.Errorf("%w: storage.sqlite.batchSize must be positive, got %d", ErrInvalid, c.Storage.SQLite.BatchSize)
	}
	return nil
}
