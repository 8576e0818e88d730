package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flight-state/internal/sim"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, batchSize int) (*Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flight_state.db")
	r, err := Open(path, batchSize, zerolog.Nop())
	require.NoError(t, err)
	return r, path
}

func count(t *testing.T, r *Recorder) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.db.Model(&StateRecord{}).Count(&n).Error)
	return n
}

func state(tick uint64) sim.State {
	return sim.State{
		Tick:           tick,
		TS:             time.Unix(1700000000+int64(tick), 0).UTC(),
		TrueAirspeed:   60,
		TrueHeadingDeg: 90,
		WorldWind:      sim.WorldAxes{East: 5},
		RelativeWind:   sim.BodyAxes{Longitudinal: -55},
	}
}

func TestNewStateRecord(t *testing.T) {
	rec := NewStateRecord(state(3))

	assert.Equal(t, uint64(3), rec.Tick)
	assert.Equal(t, 60.0, rec.TrueAirspeed)
	assert.Equal(t, 90.0, rec.TrueHeadingDeg)
	assert.Equal(t, 5.0, rec.WindEast)
	assert.Equal(t, -55.0, rec.RelWindLongitudinal)
	assert.Zero(t, rec.ID)
}

func TestRecorderBatches(t *testing.T) {
	r, _ := openTemp(t, 2)
	defer r.Close()
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, state(1)))
	assert.Equal(t, int64(0), count(t, r))

	require.NoError(t, r.Record(ctx, state(2)))
	assert.Equal(t, int64(2), count(t, r))

	require.NoError(t, r.Record(ctx, state(3)))
	assert.Equal(t, int64(2), count(t, r))

	require.NoError(t, r.Flush(ctx))
	assert.Equal(t, int64(3), count(t, r))
}

func TestRecorderCloseFlushes(t *testing.T) {
	r, path := openTemp(t, 10)
	ctx := context.Background()
	for i := uint64(1); i <= 4; i++ {
		require.NoError(t, r.Record(ctx, state(i)))
	}
	require.NoError(t, r.Close())

	reopened, err := Open(path, 10, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	recent, err := reopened.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(4), recent[0].Tick)
	assert.Equal(t, uint64(3), recent[1].Tick)
	assert.True(t, recent[0].Time.Equal(state(4).TS))
}

func TestRecentOrdersAcrossRuns(t *testing.T) {
	r, path := openTemp(t, 1)
	ctx := context.Background()
	for i := uint64(1); i <= 100; i++ {
		require.NoError(t, r.Record(ctx, state(i)))
	}
	require.NoError(t, r.Close())

	// a new engine run starts counting ticks from 1 again
	r, err := Open(path, 1, zerolog.Nop())
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, r.Record(ctx, state(1)))
	require.NoError(t, r.Record(ctx, state(2)))

	recent, err := r.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(2), recent[0].Tick)
	assert.Equal(t, uint64(1), recent[1].Tick)
	assert.Equal(t, int64(102), count(t, r))
}

func TestRecorderBoundsPendingWhileFailing(t *testing.T) {
	r, _ := openTemp(t, 2)
	ctx := context.Background()

	sqlDB, err := r.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	for i := uint64(1); i <= 50; i++ {
		_ = r.Record(ctx, state(i))
	}

	assert.Len(t, r.pending, maxPendingBatches*2)
	assert.Equal(t, uint64(31), r.pending[0].Tick)
	assert.Equal(t, uint64(50), r.pending[len(r.pending)-1].Tick)
	for _, rec := range r.pending {
		assert.Zero(t, rec.ID)
	}
	assert.Error(t, r.Flush(ctx))
}
