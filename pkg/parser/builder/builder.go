package builder

import (
	"microc/pkg/ast"
	"microc/pkg/lexer"
	"microc/pkg/parser/stack"
)

// Builder assembles an ast.Program from the semantic actions the parser
// fires while it walks the grammar.
type Builder struct {
	exprs        *stack.Stack[ast.Expr]       // Operand stack
	names        *stack.Stack[lexer.Token]    // Captured assignment / declaration targets
	ops          *stack.Stack[lexer.Token]    // Pending relational and compound operators
	marks        *stack.Stack[lexer.Position] // Keyword positions for statements and unary operators
	calls        *stack.Stack[*ast.Call]      // Calls whose arguments are being collected
	blocks       *stack.Stack[[]ast.Stmt]     // Open blocks, innermost on top
	closed       *stack.Stack[[]ast.Stmt]     // Finished blocks waiting for their statement
	program      *ast.Program                 // Program under construction
	function     *ast.Function                // Function under construction
	returns      bool                         // Return type of the next function
	prints       []lexer.Position             // print statements, checked against #include
	currentToken lexer.Token                  // Last token matched by the parser
	errors       []string                     // List of semantic errors
}

// NewBuilder creates a new Builder instance
func NewBuilder() *Builder {
	return &Builder{
		exprs:   stack.NewStack[ast.Expr](),
		names:   stack.NewStack[lexer.Token](),
		ops:     stack.NewStack[lexer.Token](),
		marks:   stack.NewStack[lexer.Position](),
		calls:   stack.NewStack[*ast.Call](),
		blocks:  stack.NewStack[[]ast.Stmt](),
		closed:  stack.NewStack[[]ast.Stmt](),
		program: ast.NewProgram(),
	}
}

// Program returns the program built so far
func (b *Builder) Program() *ast.Program {
	return b.program
}

// SetCurrentToken sets the current token being processed
func (b *Builder) SetCurrentToken(token lexer.Token) {
	b.currentToken = token
}

// emit appends a statement to the innermost open block
func (b *Builder) emit(s ast.Stmt) {
	if b.blocks.Size() == 0 {
		return
	}
	top := b.blocks.Pop()
	b.blocks.Push(append(top, s))
}

// popExpr pops an operand, substituting a literal zero on underflow so a
// broken tree never holds nil expressions
func (b *Builder) popExpr() ast.Expr {
	if b.exprs.Size() == 0 {
		return &ast.IntLit{Pos: b.currentToken.Pos}
	}
	return b.exprs.Pop()
}

func (b *Builder) popBlock() []ast.Stmt {
	if b.closed.Size() == 0 {
		return []ast.Stmt{}
	}
	return b.closed.Pop()
}

func (b *Builder) popMark() lexer.Position {
	if b.marks.Size() == 0 {
		return b.currentToken.Pos
	}
	return b.marks.Pop()
}

func (b *Builder) popName() lexer.Token {
	if b.names.Size() == 0 {
		return b.currentToken
	}
	return b.names.Pop()
}
