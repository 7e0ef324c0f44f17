// Package expect reads and writes the final state of a run as YAML. A dump
// written by Encode is a valid expectation file for Load.
package expect

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"microc/pkg/interpreter"
)

// State is the final slot mapping of a run plus the error kind it ended
// with, empty on success
type State struct {
	Slots map[string]int32 `yaml:"slots"`
	Error string           `yaml:"error,omitempty"`
}

// NewState captures a run's slots and error
func NewState(slots map[string]int32, runErr error) *State {
	return &State{Slots: slots, Error: interpreter.KindOf(runErr)}
}

// Load reads an expectation file; unknown fields are rejected
func Load(path string) (*State, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	st, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("expect: parse %s: %w", path, err)
	}
	return st, nil
}

// Decode reads one YAML document from r
func Decode(r io.Reader) (*State, error) {
	var st State
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&st); err != nil {
		return nil, err
	}
	if st.Slots == nil {
		st.Slots = make(map[string]int32)
	}
	return &st, nil
}

// Encode writes st to w as YAML with slots sorted by name
func (st *State) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("expect: marshal: %w", err)
	}
	return enc.Close()
}

// Check compares a run against the expectation and returns one line per
// mismatch. Slots the expectation does not name are not checked.
func (st *State) Check(slots map[string]int32, runErr error) []string {
	var issues []string

	got := interpreter.KindOf(runErr)
	switch {
	case runErr != nil && got == "":
		issues = append(issues, fmt.Sprintf("run failed: %v", runErr))
	case got != st.Error && st.Error == "":
		issues = append(issues, fmt.Sprintf("unexpected error %s: %v", got, runErr))
	case got != st.Error:
		issues = append(issues, fmt.Sprintf("expected error %s, got %q", st.Error, got))
	}

	for _, name := range slices.Sorted(maps.Keys(st.Slots)) {
		want := st.Slots[name]
		v, ok := slots[name]
		if !ok {
			issues = append(issues, fmt.Sprintf("%s: expected %d, never declared", name, want))
			continue
		}
		if v != want {
			issues = append(issues, fmt.Sprintf("%s: expected %d, got %d", name, want, v))
		}
	}

	return issues
}
