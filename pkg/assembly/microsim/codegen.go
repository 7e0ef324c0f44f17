package microsim

import (
	"fmt"

	"microc/pkg/ast"
	"microc/pkg/interpreter"
)

// emitFunction emits fn with its prologue and epilogue. The entry keeps no
// registers; every other function saves BL, CL, DL and the flags and copies
// its arguments from the stack into its shadow slots.
func (m *microSim) emitFunction(fn *ast.Function) error {
	m.currentFunc = fn
	isEntry := fn.Name == m.program.Entry

	m.addText("")
	m.addText(fmt.Sprintf("%s:\t\t\t; %s", label(fn), fn.Signature()))
	if !isEntry {
		m.addText("\tPUSH BL\t\t\t; save registers")
		m.addText("\tPUSH CL")
		m.addText("\tPUSH DL")
		m.addText("\tPUSHF")
	}

	// the last argument is pushed last, so it sits closest to SP
	for k, p := range fn.Params {
		slot, err := m.slotOf(p)
		if err != nil {
			return err
		}
		offset := argOffset + len(fn.Params) - 1 - k
		m.addText(fmt.Sprintf("\tMOV AL, [SP+%d]\t\t; load argument %s", offset, p))
		m.addText(fmt.Sprintf("\tMOV %s, AL\t\t; %s", slot, interpreter.Mangle(fn.Name, p)))
	}

	if err := m.emitBlock(fn.Body); err != nil {
		return fmt.Errorf("%s: %w", fn.Name, err)
	}

	m.addText(returnLabel(fn) + ":")
	if !isEntry {
		m.addText("\tPOPF\t\t\t; restore registers")
		m.addText("\tPOP DL")
		m.addText("\tPOP CL")
		m.addText("\tPOP BL")
	}
	m.addText("\tRET")

	return nil
}

func (m *microSim) emitBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := m.emitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *microSim) emitStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.Decl:
		if st.Init == nil {
			return nil
		}
		return m.emitStore(st.Name, st.Init, st.String())

	case *ast.Assign:
		return m.emitStore(st.Name, st.Value, st.String())

	case *ast.If:
		elseLabel := m.newLabel("else")
		endLabel := m.newLabel("end_if")

		m.addText(fmt.Sprintf("\t\t\t\t; if %s", st.Cond))
		if err := m.emitBranch(st.Cond, elseLabel, false); err != nil {
			return err
		}
		if err := m.emitBlock(st.Then); err != nil {
			return err
		}
		if len(st.Else) == 0 {
			m.addText(elseLabel + ":")
			return nil
		}
		m.addText("\tJMP " + endLabel)
		m.addText(elseLabel + ":\t\t\t; else")
		if err := m.emitBlock(st.Else); err != nil {
			return err
		}
		m.addText(endLabel + ":")
		return nil

	case *ast.While:
		startLabel := m.newLabel("loop_start")
		endLabel := m.newLabel("loop_end")

		m.addText(fmt.Sprintf("%s:\t\t\t; while %s", startLabel, st.Cond))
		if err := m.emitBranch(st.Cond, endLabel, false); err != nil {
			return err
		}
		if err := m.emitBlock(st.Body); err != nil {
			return err
		}
		m.addText("\tJMP " + startLabel)
		m.addText(endLabel + ":")
		return nil

	case *ast.Return:
		if st.Value != nil {
			if err := m.emitExpr(st.Value); err != nil {
				return err
			}
		}
		m.addText(fmt.Sprintf("\tJMP %s\t\t; %s", returnLabel(m.currentFunc), st))
		return nil

	case *ast.ExprStmt:
		return m.emitCall(st.Call)

	case *ast.Print:
		return fmt.Errorf("%w: print at %s", ErrUnsupported, st.Pos)
	}

	return fmt.Errorf("%w: statement %T", ErrUnsupported, s)
}

// emitStore evaluates value into AL and stores it in the slot of name
func (m *microSim) emitStore(name string, value ast.Expr, comment string) error {
	slot, err := m.slotOf(name)
	if err != nil {
		return err
	}
	if err := m.emitExpr(value); err != nil {
		return err
	}
	m.addText(fmt.Sprintf("\tMOV %s, AL\t\t; %s", slot, comment))
	return nil
}

// emitExpr leaves the value of an integer expression in AL. Intermediate
// values go through the stack; BL is scratch.
func (m *microSim) emitExpr(e ast.Expr) error {
	switch ex := e.(type) {
	case *ast.IntLit:
		m.addText("\tMOV AL, " + imm(ex.Value))
		return nil

	case *ast.Ident:
		slot, err := m.slotOf(ex.Name)
		if err != nil {
			return err
		}
		m.addText("\tMOV AL, " + slot)
		return nil

	case *ast.Unary:
		if ex.Op != ast.OpNeg {
			return fmt.Errorf("%w: %s outside a condition", ErrUnsupported, ex)
		}
		if err := m.emitExpr(ex.X); err != nil {
			return err
		}
		m.addText("\tNEG AL")
		return nil

	case *ast.Binary:
		var instr string
		switch ex.Op {
		case ast.OpAdd:
			instr = "ADD AL, BL"
		case ast.OpSub:
			instr = "SUB AL, BL"
		case ast.OpMul:
			instr = "MUL AL, BL"
		case ast.OpDiv, ast.OpMod:
			return fmt.Errorf("%w: operator %s", ErrUnsupported, ex.Op)
		default:
			return fmt.Errorf("%w: %s outside a condition", ErrUnsupported, ex)
		}
		if err := m.emitOperands(ex); err != nil {
			return err
		}
		m.addText("\t" + instr)
		return nil

	case *ast.Call:
		return m.emitCall(ex)
	}

	return fmt.Errorf("%w: expression %T", ErrUnsupported, e)
}

// emitOperands leaves the left operand in AL and the right one in BL
func (m *microSim) emitOperands(b *ast.Binary) error {
	if err := m.emitExpr(b.Right); err != nil {
		return err
	}
	m.addText("\tPUSH AL")
	if err := m.emitExpr(b.Left); err != nil {
		return err
	}
	m.addText("\tPOP BL")
	return nil
}

// emitCall pushes the arguments left to right, calls and drops them again.
// The result stays in AL.
func (m *microSim) emitCall(c *ast.Call) error {
	callee, ok := m.program.Function(c.Name)
	if !ok {
		return fmt.Errorf("%w: %s", interpreter.ErrUndefinedFunction, c.Name)
	}
	if len(callee.Params) != len(c.Args) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", interpreter.ErrArityMismatch, c.Name, len(callee.Params), len(c.Args))
	}

	for _, a := range c.Args {
		if err := m.emitExpr(a); err != nil {
			return err
		}
		m.addText("\tPUSH AL")
	}
	m.addText(fmt.Sprintf("\tCALL %s\t\t; %s", label(callee), c))
	for range c.Args {
		m.addText("\tPOP BL\t\t\t; drop argument")
	}
	return nil
}

// jumps holds, per comparison, the jump taken when it holds and when it does not
var jumps = map[ast.Operation][2]string{
	ast.OpGt:  {"JA", "JNA"},
	ast.OpLt:  {"JB", "JAE"},
	ast.OpEq:  {"JE", "JNE"},
	ast.OpNeq: {"JNE", "JE"},
	ast.OpGe:  {"JAE", "JB"},
	ast.OpLe:  {"JBE", "JA"},
}

// emitBranch jumps to target when cond evaluates to when, and falls through
// otherwise
func (m *microSim) emitBranch(cond ast.Expr, target string, when bool) error {
	switch c := cond.(type) {
	case *ast.Unary:
		if c.Op == ast.OpNot {
			return m.emitBranch(c.X, target, !when)
		}

	case *ast.Binary:
		switch {
		case c.Op.IsComparison():
			if lit, ok := c.Right.(*ast.IntLit); ok {
				if err := m.emitExpr(c.Left); err != nil {
					return err
				}
				m.addText("\tCMP AL, " + imm(lit.Value))
			} else {
				if err := m.emitOperands(c); err != nil {
					return err
				}
				m.addText("\tCMP AL, BL")
			}
			jump := jumps[c.Op][1]
			if when {
				jump = jumps[c.Op][0]
			}
			m.addText(fmt.Sprintf("\t%s %s", jump, target))
			return nil

		case c.Op == ast.OpAnd && !when, c.Op == ast.OpOr && when:
			// either side decides on its own
			if err := m.emitBranch(c.Left, target, when); err != nil {
				return err
			}
			return m.emitBranch(c.Right, target, when)

		case c.Op == ast.OpAnd, c.Op == ast.OpOr:
			skip := m.newLabel("skip")
			if err := m.emitBranch(c.Left, skip, !when); err != nil {
				return err
			}
			if err := m.emitBranch(c.Right, target, when); err != nil {
				return err
			}
			m.addText(skip + ":")
			return nil
		}
	}

	return fmt.Errorf("%w: %s is not a condition", interpreter.ErrTypeMismatch, cond)
}
