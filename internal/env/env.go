// Package env synthesises the raw signals a host flight simulation would
// publish. Effects write host-unit values into a variable store once per
// tick; the sim package then reads them back through identifiers.
package env

import (
	"fmt"
	"time"
)

// Vars is the writable side of the host variable store.
type Vars interface {
	Get(name string) (float64, error)
	Set(name string, v float64) error
}

// Environment is an effect that writes host signals for one tick.
// Implementations may read signals written by effects earlier in a Chain.
type Environment interface {
	Apply(dt time.Duration, vars Vars) error
}

// Chain is a composite environment that applies multiple effects in sequence.
type Chain struct {
	Effects []Environment
}

// Apply applies all effects in the chain, in order, and stops at the first
// one that fails.
func (c *Chain) Apply(dt time.Duration, vars Vars) error {
	for i, effect := range c.Effects {
		if err := effect.Apply(dt, vars); err != nil {
			return fmt.Errorf("effect %d (%T): %w", i, effect, err)
		}
	}
	return nil
}

// NoOp is an environment that does nothing.
var NoOp Environment = noOpEnv{}

type noOpEnv struct{}

func (noOpEnv) Apply(time.Duration, Vars) error { return nil }

type signal struct {
	name  string
	value float64
}

func set(vars Vars, signals ...signal) error {
	for _, s := range signals {
		if err := vars.Set(s.name, s.value); err != nil {
			return fmt.Errorf("set %q: %w", s.name, err)
		}
	}
	return nil
}

func get(vars Vars, name string) (float64, error) {
	v, err := vars.Get(name)
	if err != nil {
		return 0, fmt.Errorf("get %q: %w", name, err)
	}
	return v, nil
}
