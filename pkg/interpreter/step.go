package interpreter

import (
	"fmt"
	"os"

	"microc/pkg/ast"
	"microc/pkg/lexer"
)

// Exec runs a program with stdout as writer and returns the final slots
func Exec(program *ast.Program, opts ...Option) (map[string]int32, error) {
	it := NewInterpreter(program, append([]Option{WithWriter(os.Stdout)}, opts...)...)
	if err := it.Run(); err != nil {
		return it.Snapshot(), err
	}
	return it.Snapshot(), nil
}

// step counts one executed statement against the budget
func (i *Interpreter) step(pos lexer.Position) error {
	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return i.errorf(ErrMaxStepsExceeded, pos, "limit %d", i.maxSteps)
	}
	i.steps++
	return nil
}

// wrap truncates n to the configured word size, two's complement
func (i *Interpreter) wrap(n int64) int64 {
	switch i.wordSize {
	case Word8:
		return int64(int8(n))
	case Word16:
		return int64(int16(n))
	default:
		return int64(int32(n))
	}
}

// errorf builds a RuntimeError for the innermost active function
func (i *Interpreter) errorf(kind error, pos lexer.Position, format string, args ...any) *RuntimeError {
	e := &RuntimeError{
		Err:   kind,
		Msg:   fmt.Sprintf(format, args...),
		Pos:   pos,
		Chain: i.Chain(),
	}
	if f := i.currentFrame(); f != nil {
		e.Function = f.FuncName
	}
	return e
}
