package interpreter

import (
	"fmt"

	"microc/pkg/ast"
	"microc/pkg/lexer"
)

type controlKind int

const (
	controlNone controlKind = iota
	controlReturn
)

// outcome is what executing a statement yields: either keep going, or the
// enclosing function returned (with or without a value)
type outcome struct {
	kind     controlKind
	value    Value
	hasValue bool
}

func (o outcome) returned() bool { return o.kind == controlReturn }

// execBlock runs stmts in order until one of them returns
func (i *Interpreter) execBlock(stmts []ast.Stmt, fn string) (outcome, error) {
	for _, s := range stmts {
		out, err := i.execStmt(s, fn)
		if err != nil {
			return outcome{}, err
		}
		if out.returned() {
			return out, nil
		}
	}
	return outcome{}, nil
}

// execStmt executes one statement of function fn
func (i *Interpreter) execStmt(s ast.Stmt, fn string) (outcome, error) {
	if s == nil {
		return outcome{}, i.errorf(ErrUnsupportedStatement, lexer.Position{}, "nil statement")
	}
	if err := i.step(s.Position()); err != nil {
		return outcome{}, err
	}

	switch st := s.(type) {
	case *ast.Decl:
		name := Mangle(fn, st.Name)
		i.slots.Declare(name)
		if st.Init == nil {
			return outcome{}, nil
		}
		return outcome{}, i.assign(name, st.Init, fn, st.Pos)

	case *ast.Assign:
		return outcome{}, i.assign(Mangle(fn, st.Name), st.Value, fn, st.Pos)

	case *ast.If:
		cond, err := i.evalBool(st.Cond, fn)
		if err != nil {
			return outcome{}, err
		}
		if cond {
			return i.execBlock(st.Then, fn)
		}
		return i.execBlock(st.Else, fn)

	case *ast.While:
		for first := true; ; first = false {
			if !first {
				if err := i.step(st.Pos); err != nil {
					return outcome{}, err
				}
			}
			cond, err := i.evalBool(st.Cond, fn)
			if err != nil {
				return outcome{}, err
			}
			if !cond {
				return outcome{}, nil
			}
			out, err := i.execBlock(st.Body, fn)
			if err != nil || out.returned() {
				return out, err
			}
		}

	case *ast.Return:
		if st.Value == nil {
			return outcome{kind: controlReturn}, nil
		}
		v, err := i.evalInt(st.Value, fn)
		if err != nil {
			return outcome{}, err
		}
		return outcome{kind: controlReturn, value: newInt(v), hasValue: true}, nil

	case *ast.ExprStmt:
		if st.Call == nil {
			break
		}
		// the value is dropped, the callee's slot writes are not
		_, err := i.call(st.Call, fn)
		return outcome{}, err

	case *ast.Print:
		v, err := i.eval(st.Value, fn)
		if err != nil {
			return outcome{}, err
		}
		fmt.Fprintln(i.out, v.String())
		return outcome{}, nil
	}

	return outcome{}, i.errorf(ErrUnsupportedStatement, s.Position(), "%T", s)
}

// assign evaluates value and stores it in the named slot
func (i *Interpreter) assign(name string, value ast.Expr, fn string, pos lexer.Position) error {
	v, err := i.evalInt(value, fn)
	if err != nil {
		return err
	}
	if err := i.slots.Write(name, int32(v)); err != nil {
		return i.errorf(ErrUnboundVariable, pos, "%s", name)
	}
	return nil
}

// positionOf tolerates nil nodes
func positionOf(n ast.Node) lexer.Position {
	if n == nil {
		return lexer.Position{}
	}
	return n.Position()
}
