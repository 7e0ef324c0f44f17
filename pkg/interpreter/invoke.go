package interpreter

import (
	"github.com/charmbracelet/log"

	"microc/pkg/ast"
	"microc/pkg/lexer"
)

// call invokes c.Name from function caller. Arguments are evaluated once, in
// the caller's scope, before the callee's parameter slots are written.
func (i *Interpreter) call(c *ast.Call, caller string) (Value, error) {
	callee, ok := i.program.Function(c.Name)
	if !ok {
		return Value{}, i.errorf(ErrUndefinedFunction, c.Pos, "%s", c.Name)
	}
	if len(c.Args) != len(callee.Params) {
		return Value{}, i.errorf(ErrArityMismatch, c.Pos, "%s takes %d arguments, got %d", c.Name, len(callee.Params), len(c.Args))
	}

	args := make([]int32, len(c.Args))
	for k, a := range c.Args {
		v, err := i.evalInt(a, caller)
		if err != nil {
			return Value{}, err
		}
		args[k] = int32(v)
	}

	// the callee's slots are in use further up the chain
	if i.isActive(callee.Name) {
		log.Debug("Reentrant call rejected", "function", callee.Name, "chain", i.Chain())
		return Value{}, i.errorf(ErrReentrantCall, c.Pos, "%s is already active", callee.Name)
	}

	out, err := i.runFunction(callee, args, c.Pos)
	if err != nil {
		return Value{}, err
	}
	if !out.hasValue {
		return Value{}, i.errorf(ErrMissingReturn, c.Pos, "%s finished without returning a value", callee.Name)
	}

	return out.value, nil
}

// runFunction binds args to fn's parameter slots and executes its body with
// fn as the qualifier. The frame is popped however the body ends.
func (i *Interpreter) runFunction(fn *ast.Function, args []int32, pos lexer.Position) (outcome, error) {
	if len(args) != len(fn.Params) {
		return outcome{}, i.errorf(ErrArityMismatch, pos, "%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	frame := i.pushFrame(fn.Name, pos)
	defer i.popFrame()

	for k, p := range fn.Params {
		name := Mangle(fn.Name, p)
		i.slots.Declare(name)
		if err := i.slots.Write(name, args[k]); err != nil {
			return outcome{}, i.errorf(ErrUnboundVariable, pos, "%s", name)
		}
	}

	log.Debug("Call", "function", fn.Name, "args", args, "caller", frame.Caller, "depth", frame.Depth)

	out, err := i.execBlock(fn.Body, fn.Name)
	if err != nil {
		return outcome{}, err
	}

	if out.hasValue {
		log.Debug("Return", "function", fn.Name, "value", out.value)
	} else {
		log.Debug("Return", "function", fn.Name)
	}

	return out, nil
}
