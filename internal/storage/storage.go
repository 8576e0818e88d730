// Package storage keeps a SQLite history of flight state ticks.
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flight-state/internal/sim"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StateRecord is one persisted tick.
type StateRecord struct {
	ID       uint      `gorm:"primaryKey"`
	Tick     uint64    `gorm:"index"`
	Time     time.Time `gorm:"index"`
	Paused   bool
	OnGround bool

	IndicatedAirspeed  float64
	TrueAirspeed       float64
	IndicatedAltitude  float64
	AmbientTemperature float64
	AmbientPressure    float64
	AirDensity         float64
	VerticalSpeed      float64
	Mach               float64

	PitchDeg       float64
	BankDeg        float64
	TrueHeadingDeg float64

	WindEast  float64
	WindUp    float64
	WindNorth float64

	RelWindLateral      float64
	RelWindVertical     float64
	RelWindLongitudinal float64
}

func (StateRecord) TableName() string { return "flight_states" }

// NewStateRecord flattens st into a row.
func NewStateRecord(st sim.State) StateRecord {
	return StateRecord{
		Tick:     st.Tick,
		Time:     st.TS,
		Paused:   st.Paused,
		OnGround: st.OnGround,

		IndicatedAirspeed:  st.IndicatedAirspeed,
		TrueAirspeed:       st.TrueAirspeed,
		IndicatedAltitude:  st.IndicatedAltitude,
		AmbientTemperature: st.AmbientTemperature,
		AmbientPressure:    st.AmbientPressure,
		AirDensity:         st.AirDensity,
		VerticalSpeed:      st.VerticalSpeed,
		Mach:               st.Mach,

		PitchDeg:       st.PitchDeg,
		BankDeg:        st.BankDeg,
		TrueHeadingDeg: st.TrueHeadingDeg,

		WindEast:  st.WorldWind.East,
		WindUp:    st.WorldWind.Up,
		WindNorth: st.WorldWind.North,

		RelWindLateral:      st.RelativeWind.Lateral,
		RelWindVertical:     st.RelativeWind.Vertical,
		RelWindLongitudinal: st.RelativeWind.Longitudinal,
	}
}

// maxPendingBatches bounds how many batches are held while inserts fail.
const maxPendingBatches = 10

// Recorder buffers ticks and inserts them in batches. It implements sim.Sink.
// While the database keeps failing, only the newest maxPendingBatches
// batches are kept.
type Recorder struct {
	db        *gorm.DB
	batchSize int
	log       zerolog.Logger

	mu      sync.Mutex
	pending []StateRecord
}

// Open opens (or creates) the SQLite database at path and migrates the schema.
func Open(path string, batchSize int, log zerolog.Logger) (*Recorder, error) {
	if batchSize <= 0 {
		batchSize = 1
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log = log.With().Str("component", "storage").Logger()
	log.Info().Str("path", path).Int("batchSize", batchSize).Msg("Using local SQLite DB")

	return &Recorder{
		db:        db,
		batchSize: batchSize,
		log:       log,
		pending:   make([]StateRecord, 0, batchSize),
	}, nil
}

func (r *Recorder) Record(ctx context.Context, st sim.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, NewStateRecord(st))
	if len(r.pending) < r.batchSize {
		return nil
	}
	return r.flushLocked(ctx)
}

// Flush writes every buffered tick.
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked(ctx)
}

func (r *Recorder) flushLocked(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(r.pending, r.batchSize).Error; err != nil {
		r.keepForRetry()
		return fmt.Errorf("insert %d records: %w", len(r.pending), err)
	}
	r.log.Trace().Int("count", len(r.pending)).Msg("flushed state records")
	r.pending = r.pending[:0]
	return nil
}

// keepForRetry clears the keys set by a partial insert and drops the oldest
// records beyond the pending cap.
func (r *Recorder) keepForRetry() {
	for i := range r.pending {
		r.pending[i].ID = 0
	}
	if limit := maxPendingBatches * r.batchSize; len(r.pending) > limit {
		dropped := len(r.pending) - limit
		r.pending = append(r.pending[:0], r.pending[dropped:]...)
		r.log.Warn().Int("dropped", dropped).Msg("insert keeps failing, dropping oldest state records")
	}
}

// Recent returns up to limit records in insertion order, newest first. Tick
// numbers restart with every engine run, so they do not order a history.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]StateRecord, error) {
	var out []StateRecord
	err := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&out).Error
	return out, err
}

// Close flushes pending ticks and closes the database.
func (r *Recorder) Close() error {
	flushErr := r.Flush(context.Background())

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return flushErr
}
