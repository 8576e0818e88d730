// Package influx records flight state ticks as InfluxDB points.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"flight-state/internal/sim"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
)

// Measurement is the point name written for every tick.
const Measurement = "flight_state"

var ErrNoBackend = errors.New("influx: server unreachable and no backup path configured")

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
	// BackupPath receives gzipped line protocol while the server is unreachable.
	BackupPath string
}

// Sink writes one point per tick, either to InfluxDB or to a backup file.
type Sink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	backup *gzip.Writer
	file   io.Closer
	log    zerolog.Logger
}

// New connects to InfluxDB. When the server does not answer a ping the sink
// falls back to the backup file.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Sink, error) {
	log = log.With().Str("component", "influx").Logger()

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000))

	running, err := client.Ping(ctx)
	if err == nil && running {
		s := &Sink{client: client, writer: client.WriteAPI(cfg.Org, cfg.Bucket), log: log}
		go s.drainErrors(cfg.Bucket)
		log.Info().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("InfluxDB client initialized")
		return s, nil
	}
	client.Close()

	if cfg.BackupPath == "" {
		if err == nil {
			err = ErrNoBackend
		}
		return nil, fmt.Errorf("ping %s: %w", cfg.URL, err)
	}

	log.Warn().Err(err).Str("backupPath", cfg.BackupPath).
		Msg("InfluxDB unreachable, writing to backup file")
	f, err := os.OpenFile(cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating backup file: %w", err)
	}
	return newBackupSink(f, log), nil
}

func newBackupSink(w io.WriteCloser, log zerolog.Logger) *Sink {
	return &Sink{backup: gzip.NewWriter(w), file: w, log: log}
}

func (s *Sink) drainErrors(bucket string) {
	for err := range s.writer.Errors() {
		s.log.Error().Err(err).Str("bucket", bucket).Msg("Error sending data to InfluxDB")
	}
}

// Record implements sim.Sink.
func (s *Sink) Record(_ context.Context, st sim.State) error {
	p := Point(st)
	if s.writer != nil {
		s.writer.WritePoint(p)
		return nil
	}

	line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
	if _, err := io.WriteString(s.backup, line); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending points and releases the client or backup file.
func (s *Sink) Close() error {
	if s.writer != nil {
		s.writer.Flush()
		s.client.Close()
		return nil
	}
	if err := s.backup.Close(); err != nil {
		return err
	}
	return s.file.Close()
}

// Point converts a tick into a flight_state point.
func Point(st sim.State) *influxdb2_write.Point {
	tags := map[string]string{
		"on_ground": strconv.FormatBool(st.OnGround),
	}
	fields := map[string]any{
		"tick":                st.Tick,
		"delta_s":             st.DeltaS,
		"indicated_airspeed":  st.IndicatedAirspeed,
		"true_airspeed":       st.TrueAirspeed,
		"indicated_altitude":  st.IndicatedAltitude,
		"ambient_temperature": st.AmbientTemperature,
		"ambient_pressure":    st.AmbientPressure,
		"air_density":         st.AirDensity,
		"vertical_speed":      st.VerticalSpeed,
		"mach":                st.Mach,
		"pitch_deg":           st.PitchDeg,
		"bank_deg":            st.BankDeg,
		"true_heading_deg":    st.TrueHeadingDeg,
		"wind_from_deg":       st.WindFromDeg,
		"wind_speed":          st.WindSpeed,
		"rel_wind_lateral":    st.RelativeWind.Lateral,
		"rel_wind_vertical":   st.RelativeWind.Vertical,
		"rel_wind_long":       st.RelativeWind.Longitudinal,
		"accel_lateral":       st.Acceleration.Lateral,
		"accel_vertical":      st.Acceleration.Vertical,
		"accel_long":          st.Acceleration.Longitudinal,
	}
	return influxdb2.NewPoint(Measurement, tags, fields, st.TS)
}
