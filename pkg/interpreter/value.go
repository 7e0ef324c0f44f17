package interpreter

import (
	"fmt"
)

type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindInt
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating an expression: an integer from arithmetic
// or a boolean from a comparison. Slots only ever hold integers.
type Value struct {
	Kind ValueKind
	I64  int64
	Bool bool
}

// String renders the value as a string.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.I64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "<nil>"
	}
}

// AsInt64 returns the integer payload; booleans are not integers here.
func (v Value) AsInt64() (int64, error) {
	if v.Kind != KindInt {
		return 0, fmt.Errorf("%w: expected int, found %s", ErrTypeMismatch, v.Kind)
	}
	return v.I64, nil
}

// AsBool returns the boolean payload; integers are not conditions here.
func (v Value) AsBool() (bool, error) {
	if v.Kind != KindBool {
		return false, fmt.Errorf("%w: expected bool, found %s", ErrTypeMismatch, v.Kind)
	}
	return v.Bool, nil
}

func newInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

func newBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IntValue wraps an integer as a Value.
func IntValue(i int64) Value { return newInt(i) }

// BoolValue wraps a boolean as a Value.
func BoolValue(b bool) Value { return newBool(b) }
