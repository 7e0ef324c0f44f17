package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"microc/pkg/lexer"
)

// Error kinds. Every one of them aborts the run.
var (
	ErrUnboundVariable      = errors.New("unbound variable")
	ErrUnsupportedOperator  = errors.New("unsupported operator")
	ErrUnsupportedStatement = errors.New("unsupported statement")
	ErrMissingReturn        = errors.New("missing return")
	ErrReentrantCall        = errors.New("reentrant call")
	ErrUndefinedFunction    = errors.New("undefined function")
	ErrArityMismatch        = errors.New("arity mismatch")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrMissingEntry         = errors.New("missing entry function")
	ErrMaxStepsExceeded     = errors.New("maximum steps exceeded")
)

var kindNames = []struct {
	err  error
	name string
}{
	{ErrUnboundVariable, "UnboundVariable"},
	{ErrUnsupportedOperator, "UnsupportedOperator"},
	{ErrUnsupportedStatement, "UnsupportedStatement"},
	{ErrMissingReturn, "MissingReturn"},
	{ErrReentrantCall, "ReentrantCall"},
	{ErrUndefinedFunction, "UndefinedFunction"},
	{ErrArityMismatch, "ArityMismatch"},
	{ErrTypeMismatch, "TypeMismatch"},
	{ErrMissingEntry, "MissingEntry"},
	{ErrMaxStepsExceeded, "MaxStepsExceeded"},
}

// KindOf names the error kind of err, e.g. "ReentrantCall".
// It returns "" for nil and for errors that are not interpreter errors.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}

// RuntimeError describes a failed run: which kind of error, where it happened
// and which calls were active at the time.
type RuntimeError struct {
	Err      error          // one of the Err* kinds
	Msg      string         // detail, usually the offending name
	Function string         // qualifier of the function being executed
	Pos      lexer.Position // source position, zero when unknown
	Chain    []string       // active calls, outermost first
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Function != "" {
		fmt.Fprintf(&sb, " in %s", e.Function)
	}
	if e.Pos.IsValid() {
		fmt.Fprintf(&sb, " at %s", e.Pos)
	}
	if len(e.Chain) > 1 {
		fmt.Fprintf(&sb, " (call chain: %s)", strings.Join(e.Chain, " -> "))
	}
	return sb.String()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Kind names the error kind, e.g. "UnboundVariable".
func (e *RuntimeError) Kind() string {
	return KindOf(e.Err)
}
