package builder

import (
	"strconv"

	"github.com/charmbracelet/log"

	"microc/pkg/ast"
	"microc/pkg/lexer"
)

// includeAction records an #include directive; only microio.h exists
func (b *Builder) includeAction() {
	header := b.currentToken.Literal
	if header != MicroIO {
		b.addUnsupportedHeaderError(header, b.currentToken.Pos)
		return
	}
	if !b.program.HasInclude(header) {
		b.program.Includes = append(b.program.Includes, header)
	}
}

func (b *Builder) retIntAction()  { b.returns = true }
func (b *Builder) retVoidAction() { b.returns = false }

// functionStartAction opens a new function definition named by the current token
func (b *Builder) functionStartAction() {
	b.function = &ast.Function{
		Name:    b.currentToken.Lexeme,
		Returns: b.returns,
		Pos:     b.currentToken.Pos,
	}
}

// paramAction appends a parameter to the function being defined
func (b *Builder) paramAction() {
	if b.function == nil {
		return
	}
	name := b.currentToken.Lexeme
	for _, p := range b.function.Params {
		if p == name {
			b.addDuplicateParameterError(name, b.currentToken.Pos)
			return
		}
	}
	b.function.Params = append(b.function.Params, name)
}

// funcEndAction attaches the body and registers the function with the program
func (b *Builder) funcEndAction() {
	if b.function == nil {
		return
	}
	b.function.Body = b.popBlock()
	if !b.program.Add(b.function) {
		b.addRedefinitionError(b.function.Name, b.function.Pos)
	}
	log.Debug("Function parsed", "name", b.function.Name, "params", len(b.function.Params), "stmts", len(b.function.Body))
	b.function = nil
}

func (b *Builder) blockStartAction() {
	b.blocks.Push([]ast.Stmt{})
}

func (b *Builder) blockEndAction() {
	if b.blocks.Size() == 0 {
		return
	}
	b.closed.Push(b.blocks.Pop())
}

// markAction remembers where the current keyword or operator starts
func (b *Builder) markAction() {
	b.marks.Push(b.currentToken.Pos)
}

// captureTargetAction stores the identifier a declaration or assignment writes to
func (b *Builder) captureTargetAction() {
	b.names.Push(b.currentToken)
}

func (b *Builder) pushOpAction() {
	b.ops.Push(b.currentToken)
}

func (b *Builder) declInitAction() {
	value := b.popExpr()
	target := b.popName()
	b.emit(&ast.Decl{Name: target.Lexeme, Init: value, Pos: target.Pos})
}

func (b *Builder) declBareAction() {
	target := b.popName()
	b.emit(&ast.Decl{Name: target.Lexeme, Pos: target.Pos})
}

func (b *Builder) assignAction() {
	value := b.popExpr()
	target := b.popName()
	b.emit(&ast.Assign{Name: target.Lexeme, Value: value, Pos: target.Pos})
}

// compoundAction lowers `x op= e` to `x = x op e`
func (b *Builder) compoundAction() {
	value := b.popExpr()
	op := b.ops.Pop()
	target := b.popName()
	b.emitUpdate(target, ast.GetLexOperation(op.Type), value)
}

// stepAction lowers `x++` and `x--` to `x = x +/- 1`
func (b *Builder) stepAction(op ast.Operation) {
	target := b.popName()
	b.emitUpdate(target, op, &ast.IntLit{Value: 1, Pos: b.currentToken.Pos})
}

func (b *Builder) emitUpdate(target lexer.Token, op ast.Operation, value ast.Expr) {
	self := &ast.Ident{Name: target.Lexeme, Pos: target.Pos}
	b.emit(&ast.Assign{
		Name:  target.Lexeme,
		Value: &ast.Binary{Op: op, Left: self, Right: value, Pos: target.Pos},
		Pos:   target.Pos,
	})
}

// callStartAction opens a call to the function named by the current token
func (b *Builder) callStartAction() {
	b.calls.Push(&ast.Call{Name: b.currentToken.Lexeme, Pos: b.currentToken.Pos})
}

func (b *Builder) argAction() {
	arg := b.popExpr()
	if call := b.calls.Peek(); call != nil {
		call.Args = append(call.Args, arg)
	}
}

func (b *Builder) callEndAction() {
	if call := b.calls.Pop(); call != nil {
		b.exprs.Push(call)
	}
}

// exprStmtAction turns the call on top of the operand stack into a statement
func (b *Builder) exprStmtAction() {
	target := b.popName()
	call, ok := b.popExpr().(*ast.Call)
	if !ok {
		return
	}
	b.emit(&ast.ExprStmt{Call: call, Pos: target.Pos})
}

func (b *Builder) ifAction() {
	then := b.popBlock()
	cond := b.popExpr()
	b.emit(&ast.If{Cond: cond, Then: then, Pos: b.popMark()})
}

func (b *Builder) ifElseAction() {
	els := b.popBlock()
	then := b.popBlock()
	cond := b.popExpr()
	b.emit(&ast.If{Cond: cond, Then: then, Else: els, Pos: b.popMark()})
}

func (b *Builder) whileAction() {
	body := b.popBlock()
	cond := b.popExpr()
	b.emit(&ast.While{Cond: cond, Body: body, Pos: b.popMark()})
}

func (b *Builder) returnValueAction() {
	value := b.popExpr()
	b.emit(&ast.Return{Value: value, Pos: b.popMark()})
}

func (b *Builder) returnVoidAction() {
	b.emit(&ast.Return{Pos: b.popMark()})
}

func (b *Builder) printAction() {
	value := b.popExpr()
	pos := b.popMark()
	b.prints = append(b.prints, pos)
	b.emit(&ast.Print{Value: value, Pos: pos})
}

// pushNumAction pushes the integer literal matched last
func (b *Builder) pushNumAction() {
	n, err := strconv.ParseInt(b.currentToken.Lexeme, 10, 64)
	if err != nil {
		b.addLiteralRangeError(b.currentToken.Lexeme, b.currentToken.Pos)
	}
	b.exprs.Push(&ast.IntLit{Value: n, Pos: b.currentToken.Pos})
}

// loadAction pushes a variable reference
func (b *Builder) loadAction() {
	b.exprs.Push(&ast.Ident{Name: b.currentToken.Lexeme, Pos: b.currentToken.Pos})
}

// binaryOpAction combines the two topmost operands
func (b *Builder) binaryOpAction(op ast.Operation) {
	right := b.popExpr()
	left := b.popExpr()
	b.exprs.Push(&ast.Binary{Op: op, Left: left, Right: right, Pos: left.Position()})
}

// relAction combines two operands with the pending relational operator
func (b *Builder) relAction() {
	right := b.popExpr()
	op := b.ops.Pop()
	left := b.popExpr()
	b.exprs.Push(&ast.Binary{Op: ast.GetLexOperation(op.Type), Left: left, Right: right, Pos: left.Position()})
}

func (b *Builder) unaryOpAction(op ast.Operation) {
	x := b.popExpr()
	b.exprs.Push(&ast.Unary{Op: op, X: x, Pos: b.popMark()})
}

// programEndAction runs the whole-program checks once every function is known
func (b *Builder) programEndAction() {
	b.check()
}

// ExecuteAction executes the semantic action corresponding to the given action name
func (b *Builder) ExecuteAction(actionName string) {
	SemanticActions := map[string]func(){
		"@include":        b.includeAction,
		"@ret_int":        b.retIntAction,
		"@ret_void":       b.retVoidAction,
		"@func_start":     b.functionStartAction,
		"@param":          b.paramAction,
		"@func_end":       b.funcEndAction,
		"@block_start":    b.blockStartAction,
		"@block_end":      b.blockEndAction,
		"@mark":           b.markAction,
		"@capture_target": b.captureTargetAction,
		"@push_op":        b.pushOpAction,
		"@decl_init":      b.declInitAction,
		"@decl_bare":      b.declBareAction,
		"@assign":         b.assignAction,
		"@compound":       b.compoundAction,
		"@incr":           func() { b.stepAction(ast.OpAdd) },
		"@decr":           func() { b.stepAction(ast.OpSub) },
		"@call_start":     b.callStartAction,
		"@arg":            b.argAction,
		"@call_end":       b.callEndAction,
		"@expr_stmt":      b.exprStmtAction,
		"@if":             b.ifAction,
		"@if_else":        b.ifElseAction,
		"@while":          b.whileAction,
		"@return_value":   b.returnValueAction,
		"@return_void":    b.returnVoidAction,
		"@print":          b.printAction,
		"@push_num":       b.pushNumAction,
		"@load":           b.loadAction,
		"@add":            func() { b.binaryOpAction(ast.OpAdd) },
		"@sub":            func() { b.binaryOpAction(ast.OpSub) },
		"@mul":            func() { b.binaryOpAction(ast.OpMul) },
		"@div":            func() { b.binaryOpAction(ast.OpDiv) },
		"@mod":            func() { b.binaryOpAction(ast.OpMod) },
		"@and":            func() { b.binaryOpAction(ast.OpAnd) },
		"@or":             func() { b.binaryOpAction(ast.OpOr) },
		"@rel":            b.relAction,
		"@not":            func() { b.unaryOpAction(ast.OpNot) },
		"@neg":            func() { b.unaryOpAction(ast.OpNeg) },
		"@program_end":    b.programEndAction,
	}

	if action, exists := SemanticActions[actionName]; exists {
		action()
	} else {
		log.Error("Unknown semantic action", "action", actionName)
	}
}
