package env

import (
	"context"
	"fmt"
	"time"

	"flight-state/internal/sim"
	"flight-state/internal/simvar"
)

// Host is a synthetic host simulation. Every Sample applies its effects to
// the store and hands the store back as the tick's reader.
type Host struct {
	store *simvar.Store
	env   Environment
}

// NewHost registers every signal the flight state reads and chains effects
// in the order given.
func NewHost(store *simvar.Store, effects ...Environment) *Host {
	for _, k := range sim.SignalKeys {
		store.Identifier(k)
	}

	h := &Host{store: store, env: NoOp}
	if len(effects) > 0 {
		h.env = &Chain{Effects: effects}
	}
	return h
}

func (h *Host) Store() *simvar.Store { return h.store }

func (h *Host) Sample(ctx context.Context, dt time.Duration) (simvar.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := h.env.Apply(dt, h.store); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	return h.store, nil
}
