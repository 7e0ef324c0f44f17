package interpreter

import (
	"fmt"
	"maps"
)

// Mangle builds the slot key of identifier ident inside function fn
func Mangle(fn, ident string) string {
	return fn + "." + ident
}

// SymbolTable maps mangled names to integer slots. Slots are shared by every
// invocation of the owning function and are never removed during a run.
type SymbolTable struct {
	slots map[string]int32
	order []string // declaration order
}

// NewSymbolTable creates an empty table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{slots: make(map[string]int32)}
}

// Declare creates a zero slot for name unless it already exists
func (s *SymbolTable) Declare(name string) {
	if _, ok := s.slots[name]; ok {
		return
	}
	s.slots[name] = 0
	s.order = append(s.order, name)
}

// Read returns the current value of a declared slot
func (s *SymbolTable) Read(name string) (int32, error) {
	v, ok := s.slots[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, name)
	}
	return v, nil
}

// Write overwrites the value of a declared slot
func (s *SymbolTable) Write(name string, v int32) error {
	if _, ok := s.slots[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnboundVariable, name)
	}
	s.slots[name] = v
	return nil
}

// Lookup is Read without the error
func (s *SymbolTable) Lookup(name string) (int32, bool) {
	v, ok := s.slots[name]
	return v, ok
}

// Names returns the declared slot names in declaration order
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

// Snapshot copies the current slot values
func (s *SymbolTable) Snapshot() map[string]int32 {
	return maps.Clone(s.slots)
}

// Len returns the number of declared slots
func (s *SymbolTable) Len() int {
	return len(s.slots)
}

func (s *SymbolTable) reset() {
	clear(s.slots)
	s.order = s.order[:0]
}
