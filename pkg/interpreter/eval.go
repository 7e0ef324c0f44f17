package interpreter

import (
	"microc/pkg/ast"
)

// eval evaluates e inside function fn. Identifiers resolve to fn's slots.
// Apart from the calls it makes, evaluation only reads slots.
func (i *Interpreter) eval(e ast.Expr, fn string) (Value, error) {
	switch ex := e.(type) {
	case *ast.IntLit:
		return newInt(i.wrap(ex.Value)), nil

	case *ast.Ident:
		v, err := i.slots.Read(Mangle(fn, ex.Name))
		if err != nil {
			return Value{}, i.errorf(ErrUnboundVariable, ex.Pos, "%s", Mangle(fn, ex.Name))
		}
		return newInt(int64(v)), nil

	case *ast.Unary:
		return i.evalUnary(ex, fn)

	case *ast.Binary:
		return i.evalBinary(ex, fn)

	case *ast.Call:
		if ex == nil {
			break
		}
		return i.call(ex, fn)
	}

	return Value{}, i.errorf(ErrUnsupportedOperator, positionOf(e), "expression %T", e)
}

// evalInt evaluates e and requires an integer result
func (i *Interpreter) evalInt(e ast.Expr, fn string) (int64, error) {
	v, err := i.eval(e, fn)
	if err != nil {
		return 0, err
	}
	if _, err := v.AsInt64(); err != nil {
		return 0, i.errorf(ErrTypeMismatch, e.Position(), "%s: expected int, found %s", e, v.Kind)
	}
	return v.I64, nil
}

// evalBool evaluates e and requires a boolean result
func (i *Interpreter) evalBool(e ast.Expr, fn string) (bool, error) {
	v, err := i.eval(e, fn)
	if err != nil {
		return false, err
	}
	if _, err := v.AsBool(); err != nil {
		return false, i.errorf(ErrTypeMismatch, e.Position(), "%s: expected bool, found %s", e, v.Kind)
	}
	return v.Bool, nil
}

func (i *Interpreter) evalUnary(u *ast.Unary, fn string) (Value, error) {
	switch u.Op {
	case ast.OpNeg:
		x, err := i.evalInt(u.X, fn)
		if err != nil {
			return Value{}, err
		}
		return newInt(i.wrap(-x)), nil

	case ast.OpNot:
		b, err := i.evalBool(u.X, fn)
		if err != nil {
			return Value{}, err
		}
		return newBool(!b), nil

	default:
		return Value{}, i.errorf(ErrUnsupportedOperator, u.Pos, "unary %q", u.Op)
	}
}

func (i *Interpreter) evalBinary(b *ast.Binary, fn string) (Value, error) {
	switch {
	case b.Op == ast.OpAnd || b.Op == ast.OpOr:
		l, err := i.evalBool(b.Left, fn)
		if err != nil {
			return Value{}, err
		}
		// short-circuit
		if b.Op == ast.OpAnd && !l {
			return newBool(false), nil
		}
		if b.Op == ast.OpOr && l {
			return newBool(true), nil
		}
		r, err := i.evalBool(b.Right, fn)
		if err != nil {
			return Value{}, err
		}
		return newBool(r), nil

	case b.Op.IsComparison():
		l, r, err := i.evalOperands(b, fn)
		if err != nil {
			return Value{}, err
		}
		return newBool(compare(b.Op, l, r)), nil

	case b.Op == ast.OpAdd || b.Op == ast.OpSub || b.Op == ast.OpMul:
		l, r, err := i.evalOperands(b, fn)
		if err != nil {
			return Value{}, err
		}
		switch b.Op {
		case ast.OpAdd:
			return newInt(i.wrap(l + r)), nil
		case ast.OpSub:
			return newInt(i.wrap(l - r)), nil
		default:
			return newInt(i.wrap(l * r)), nil
		}
	}

	// / and % land here too
	return Value{}, i.errorf(ErrUnsupportedOperator, b.Pos, "binary %q", b.Op)
}

// evalOperands evaluates both sides left to right as integers
func (i *Interpreter) evalOperands(b *ast.Binary, fn string) (int64, int64, error) {
	l, err := i.evalInt(b.Left, fn)
	if err != nil {
		return 0, 0, err
	}
	r, err := i.evalInt(b.Right, fn)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func compare(op ast.Operation, l, r int64) bool {
	switch op {
	case ast.OpEq:
		return l == r
	case ast.OpNeq:
		return l != r
	case ast.OpLt:
		return l < r
	case ast.OpLe:
		return l <= r
	case ast.OpGt:
		return l > r
	default:
		return l >= r
	}
}
