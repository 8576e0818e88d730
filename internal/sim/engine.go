package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-state/internal/simvar"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	ErrNoSource   = errors.New("sim: no source configured")
	ErrNoRegistry = errors.New("sim: no registry configured")
	ErrStopped    = errors.New("sim: engine stopped")
)

// Source samples the host simulation once per tick.
type Source interface {
	Sample(ctx context.Context, dt time.Duration) (simvar.Reader, error)
}

// System consumes the context after it has been refreshed for a tick.
type System interface {
	Update(c UpdateContext)
}

// SystemFunc adapts a function to System.
type SystemFunc func(c UpdateContext)

func (f SystemFunc) Update(c UpdateContext) { f(c) }

// Sink records the state published at the end of each tick.
type Sink interface {
	Record(ctx context.Context, st State) error
}

type stateReq struct {
	reply chan State
}

type subscribeReq struct {
	ch chan State
}

type Engine struct {
	// Actor channels
	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan State
	done        chan struct{}

	tickHz  float64
	maxStep time.Duration
	source  Source
	systems []System
	sinks   []Sink
	log     zerolog.Logger

	ticks        metric.Int64Counter
	sampleErrors metric.Int64Counter
	tickDuration metric.Float64Histogram

	// Actor-owned state
	uctx   UpdateContext
	tick   uint64
	paused bool
	last   State
}

type Config struct {
	TickHz float64
	// MaxStep caps the delta handed to systems. Longer ticks are split into
	// consecutive sub-steps. Zero disables sub-stepping.
	MaxStep time.Duration

	Source   Source
	Registry simvar.Registry
	Systems  []System
	Sinks    []Sink

	Logger zerolog.Logger
	Meter  metric.Meter
}

func New(cfg Config) (*Engine, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Registry == nil {
		return nil, ErrNoRegistry
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = 20
	}
	if cfg.Meter == nil {
		cfg.Meter = noop.Meter{}
	}

	e := &Engine{
		cmdCh:       make(chan Command, 128),
		stateReqCh:  make(chan stateReq),
		subscribeCh: make(chan subscribeReq),
		unsubCh:     make(chan chan State, 32),
		done:        make(chan struct{}),
		tickHz:      cfg.TickHz,
		maxStep:     cfg.MaxStep,
		source:      cfg.Source,
		systems:     cfg.Systems,
		sinks:       cfg.Sinks,
		log:         cfg.Logger.With().Str("component", "engine").Logger(),
		uctx:        NewUpdateContext(cfg.Registry),
	}

	var err error
	if e.ticks, err = cfg.Meter.Int64Counter("flightstate.ticks",
		metric.WithDescription("Ticks that refreshed the flight state context")); err != nil {
		return nil, fmt.Errorf("ticks counter: %w", err)
	}
	if e.sampleErrors, err = cfg.Meter.Int64Counter("flightstate.sample.errors",
		metric.WithDescription("Ticks skipped because the host could not be sampled")); err != nil {
		return nil, fmt.Errorf("sample errors counter: %w", err)
	}
	if e.tickDuration, err = cfg.Meter.Float64Histogram("flightstate.tick.duration",
		metric.WithDescription("Time spent refreshing the context and running systems"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("tick duration histogram: %w", err)
	}

	e.last = NewState(time.Now(), 0, e.uctx)
	return e, nil
}

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		e.log.Warn().Str("command", string(cmd.Type())).Msg("command queue full, dropping")
	}
}

func (e *Engine) GetState(ctx context.Context) (State, error) {
	req := stateReq{reply: make(chan State, 1)}
	select {
	case e.stateReqCh <- req:
	case <-e.done:
		return State{}, ErrStopped
	case <-ctx.Done():
		return State{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan State, func()) {
	ch := make(chan State, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-e.done:
		close(ch)
		return ch, func() {}
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Run owns the engine state until ctx is done. Once it returns, GetState
// fails with ErrStopped and Subscribe hands out closed channels. Run must
// be called at most once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	now := time.Now()
	subs := map[chan State]struct{}{}

	publish := func(st State) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	tick := time.NewTicker(time.Duration(float64(time.Second) / e.tickHz))
	defer tick.Stop()

	e.log.Info().Float64("tickHz", e.tickHz).Dur("maxStep", e.maxStep).Msg("engine started")

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			e.log.Info().Uint64("ticks", e.tick).Msg("engine stopped")
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- e.last

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- e.last

		case cmd := <-e.cmdCh:
			e.apply(cmd)

		case t := <-tick.C:
			dt := t.Sub(now)
			if dt <= 0 {
				dt = time.Duration(float64(time.Second) / e.tickHz)
			}
			now = t

			publish(e.advance(ctx, t, dt))
		}
	}
}

func (e *Engine) apply(cmd Command) {
	switch cmd.Type() {
	case CmdPause:
		e.paused = true
	case CmdResume:
		e.paused = false
	}
	e.last.Paused = e.paused
	e.log.Debug().Str("command", string(cmd.Type())).Msg("command applied")
}

// advance runs one tick: sample the host, refresh the context, run every
// system, then record the resulting state. The returned state is also the
// engine's last state.
func (e *Engine) advance(ctx context.Context, ts time.Time, dt time.Duration) State {
	if e.paused {
		e.last.TS = ts
		e.last.Paused = true
		return e.last
	}

	start := time.Now()

	reader, err := e.source.Sample(ctx, dt)
	if err != nil {
		e.sampleErrors.Add(ctx, 1)
		e.log.Warn().Err(err).Uint64("tick", e.tick).Msg("sampling host failed, keeping previous state")
		e.last.TS = ts
		e.last.Warning = "sample failed: " + err.Error()
		return e.last
	}

	e.uctx.Update(reader, dt)
	e.runSystems(dt)
	e.tick++

	st := NewState(ts, e.tick, e.uctx)
	for _, sink := range e.sinks {
		if err := sink.Record(ctx, st); err != nil {
			e.log.Error().Err(err).Uint64("tick", e.tick).Msg("recording state failed")
		}
	}

	e.ticks.Add(ctx, 1)
	e.tickDuration.Record(ctx, time.Since(start).Seconds())
	e.last = st
	return st
}

func (e *Engine) runSystems(dt time.Duration) {
	if e.maxStep <= 0 || dt <= e.maxStep {
		for _, s := range e.systems {
			s.Update(e.uctx)
		}
		return
	}

	for remaining := dt; remaining > 0; {
		step := min(remaining, e.maxStep)
		sub := e.uctx.WithDelta(step)
		for _, s := range e.systems {
			s.Update(sub)
		}
		remaining -= step
	}
}
