// Package simvar is the boundary with the host simulation's variable
// registry. Named signals are resolved to identifiers once, then read by
// identifier every tick.
package simvar

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownVariable is returned when writing a name that was never registered.
	ErrUnknownVariable = errors.New("simvar: unknown variable")
	// ErrUnknownIdentifier is returned when looking up an identifier the store never issued.
	ErrUnknownIdentifier = errors.New("simvar: unknown identifier")
)

// Identifier is a stable handle to a named signal.
type Identifier uint32

// Registry hands out identifiers for signal names.
type Registry interface {
	Identifier(name string) Identifier
}

// Reader returns the current tick's raw value of a signal.
type Reader interface {
	Read(id Identifier) float64
}

// ReadBool interprets a raw value as a boolean. Any non-zero value is true.
func ReadBool(r Reader, id Identifier) bool {
	return r.Read(id) != 0
}

// Store is an in-memory Registry and Reader. It is not safe for concurrent
// use; the tick loop owns it.
type Store struct {
	ids    map[string]Identifier
	names  []string
	values []float64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{ids: make(map[string]Identifier)}
}

// Identifier returns the identifier for name, registering it on first use.
// Registered variables read as zero until set.
func (s *Store) Identifier(name string) Identifier {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := Identifier(len(s.names))
	s.ids[name] = id
	s.names = append(s.names, name)
	s.values = append(s.values, 0)
	return id
}

// Read returns the value of id, or NaN when id was not issued by this store.
func (s *Store) Read(id Identifier) float64 {
	v, err := s.Lookup(id)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Lookup returns the value of id.
func (s *Store) Lookup(id Identifier) (float64, error) {
	if int(id) >= len(s.values) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownIdentifier, id)
	}
	return s.values[id], nil
}

// Get returns the value of a registered name.
func (s *Store) Get(name string) (float64, error) {
	id, ok := s.ids[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return s.values[id], nil
}

// Set writes the value of a registered name.
func (s *Store) Set(name string, v float64) error {
	id, ok := s.ids[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	s.values[id] = v
	return nil
}

// SetBool writes 1 for true and 0 for false.
func (s *Store) SetBool(name string, v bool) error {
	if v {
		return s.Set(name, 1)
	}
	return s.Set(name, 0)
}

// Name returns the name registered for id.
func (s *Store) Name(id Identifier) (string, bool) {
	if int(id) >= len(s.names) {
		return "", false
	}
	return s.names[id], true
}

// Names returns the registered names in sorted order.
func (s *Store) Names() []string {
	out := append([]string(nil), s.names...)
	sort.Strings(out)
	return out
}

// Values returns a copy of every registered value keyed by name.
func (s *Store) Values() map[string]float64 {
	out := make(map[string]float64, len(s.names))
	for i, name := range s.names {
		out[name] = s.values[i]
	}
	return out
}
