// Package ast holds the parsed form of a microc program. It is the input
// contract of the interpreter and the assembly backend: the parser builds it,
// tests may build it by hand.
package ast

import (
	"fmt"
	"strings"

	"microc/pkg/lexer"
)

// EntryFunction is the function a program starts in
const EntryFunction = "main"

// Node is implemented by every statement and expression
type Node interface {
	Position() lexer.Position
	String() string
}

// Stmt is a statement node
type Stmt interface {
	Node
	StmtNode()
}

// Expr is an expression node
type Expr interface {
	Node
	ExprNode()
}

// Program is a set of function definitions plus the designated entry point
type Program struct {
	Functions map[string]*Function // function name -> definition
	Order     []string             // declaration order
	Entry     string               // entry function name
	Includes  []string             // headers named by #include
}

// NewProgram returns an empty program whose entry is main
func NewProgram() *Program {
	return &Program{
		Functions: make(map[string]*Function),
		Entry:     EntryFunction,
	}
}

// Add appends a function definition; it returns false if the name is taken
func (p *Program) Add(fn *Function) bool {
	if _, exists := p.Functions[fn.Name]; exists {
		return false
	}
	p.Functions[fn.Name] = fn
	p.Order = append(p.Order, fn.Name)
	return true
}

// Function looks a definition up by name
func (p *Program) Function(name string) (*Function, bool) {
	fn, ok := p.Functions[name]
	return fn, ok
}

// HasInclude reports whether header was named by an #include directive
func (p *Program) HasInclude(header string) bool {
	for _, h := range p.Includes {
		if h == header {
			return true
		}
	}
	return false
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, h := range p.Includes {
		fmt.Fprintf(&sb, "#include <%s>\n", h)
	}
	for i, name := range p.Order {
		if i > 0 || len(p.Includes) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Functions[name].String())
	}
	return sb.String()
}

// Function is an immutable function definition
type Function struct {
	Name    string
	Params  []string
	Returns bool // int (true) or void (false)
	Body    []Stmt
	Pos     lexer.Position
}

func (f *Function) Position() lexer.Position { return f.Pos }

// Signature renders the C declaration line without the body
func (f *Function) Signature() string {
	ret := "void"
	if f.Returns {
		ret = "int"
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = "int " + p
	}
	return fmt.Sprintf("%s %s(%s)", ret, f.Name, strings.Join(params, ", "))
}

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Signature())
	sb.WriteString(" ")
	writeBlock(&sb, f.Body, 0)
	sb.WriteString("\n")
	return sb.String()
}

func writeBlock(sb *strings.Builder, stmts []Stmt, depth int) {
	sb.WriteString("{\n")
	for _, s := range stmts {
		sb.WriteString(strings.Repeat("    ", depth+1))
		switch st := s.(type) {
		case *If:
			fmt.Fprintf(sb, "if (%s) ", st.Cond)
			writeBlock(sb, st.Then, depth+1)
			if st.Else != nil {
				sb.WriteString(" else ")
				writeBlock(sb, st.Else, depth+1)
			}
		case *While:
			fmt.Fprintf(sb, "while (%s) ", st.Cond)
			writeBlock(sb, st.Body, depth+1)
		default:
			sb.WriteString(s.String())
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("    ", depth))
	sb.WriteString("}")
}

// Decl is `int x;` or `int x = e;`
type Decl struct {
	Name string
	Init Expr // nil for a bare declaration
	Pos  lexer.Position
}

// Assign is `x = e;`
type Assign struct {
	Name  string
	Value Expr
	Pos   lexer.Position
}

// If is `if (c) { ... }` with an optional else block
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // nil when there is no else
	Pos  lexer.Position
}

// While is `while (c) { ... }`
type While struct {
	Cond Expr
	Body []Stmt
	Pos  lexer.Position
}

// Return is `return e;` or `return;`
type Return struct {
	Value Expr // nil for a bare return
	Pos   lexer.Position
}

// ExprStmt is a call evaluated for its side effects
type ExprStmt struct {
	Call *Call
	Pos  lexer.Position
}

// Print is `print(e);`
type Print struct {
	Value Expr
	Pos   lexer.Position
}

func (*Decl) StmtNode()     {}
func (*Assign) StmtNode()   {}
func (*If) StmtNode()       {}
func (*While) StmtNode()    {}
func (*Return) StmtNode()   {}
func (*ExprStmt) StmtNode() {}
func (*Print) StmtNode()    {}

func (s *Decl) Position() lexer.Position     { return s.Pos }
func (s *Assign) Position() lexer.Position   { return s.Pos }
func (s *If) Position() lexer.Position       { return s.Pos }
func (s *While) Position() lexer.Position    { return s.Pos }
func (s *Return) Position() lexer.Position   { return s.Pos }
func (s *ExprStmt) Position() lexer.Position { return s.Pos }
func (s *Print) Position() lexer.Position    { return s.Pos }

func (s *Decl) String() string {
	if s.Init == nil {
		return fmt.Sprintf("int %s;", s.Name)
	}
	return fmt.Sprintf("int %s = %s;", s.Name, s.Init)
}

func (s *Assign) String() string { return fmt.Sprintf("%s = %s;", s.Name, s.Value) }

func (s *If) String() string {
	if s.Else != nil {
		return fmt.Sprintf("if (%s) {...} else {...}", s.Cond)
	}
	return fmt.Sprintf("if (%s) {...}", s.Cond)
}

func (s *While) String() string { return fmt.Sprintf("while (%s) {...}", s.Cond) }

func (s *Return) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value)
}

func (s *ExprStmt) String() string { return s.Call.String() + ";" }
func (s *Print) String() string    { return fmt.Sprintf("print(%s);", s.Value) }

// IntLit is an integer literal
type IntLit struct {
	Value int64
	Pos   lexer.Position
}

// Ident is a reference to a variable by its unmangled source name
type Ident struct {
	Name string
	Pos  lexer.Position
}

// Unary is `-x` or `!c`
type Unary struct {
	Op  Operation
	X   Expr
	Pos lexer.Position
}

// Binary is `l op r`
type Binary struct {
	Op    Operation
	Left  Expr
	Right Expr
	Pos   lexer.Position
}

// Call is `f(a, b)`
type Call struct {
	Name string
	Args []Expr
	Pos  lexer.Position
}

func (*IntLit) ExprNode() {}
func (*Ident) ExprNode()  {}
func (*Unary) ExprNode()  {}
func (*Binary) ExprNode() {}
func (*Call) ExprNode()   {}

func (e *IntLit) Position() lexer.Position { return e.Pos }
func (e *Ident) Position() lexer.Position  { return e.Pos }
func (e *Unary) Position() lexer.Position  { return e.Pos }
func (e *Binary) Position() lexer.Position { return e.Pos }
func (e *Call) Position() lexer.Position   { return e.Pos }

func (e *IntLit) String() string { return fmt.Sprintf("%d", e.Value) }
func (e *Ident) String() string  { return e.Name }

func (e *Unary) String() string {
	if e.Op == OpNeg {
		return fmt.Sprintf("-%s", e.X)
	}
	return fmt.Sprintf("%s%s", e.Op, e.X)
}

func (e *Binary) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

// Convenience constructors, mostly for building programs by hand.

func Int(v int64) *IntLit                         { return &IntLit{Value: v} }
func Var(name string) *Ident                      { return &Ident{Name: name} }
func Bin(op Operation, l, r Expr) *Binary         { return &Binary{Op: op, Left: l, Right: r} }
func CallOf(name string, args ...Expr) *Call      { return &Call{Name: name, Args: args} }
func Declare(name string, init Expr) *Decl        { return &Decl{Name: name, Init: init} }
func Set(name string, value Expr) *Assign         { return &Assign{Name: name, Value: value} }
func Ret(value Expr) *Return                      { return &Return{Value: value} }
func Discard(name string, args ...Expr) *ExprStmt { return &ExprStmt{Call: CallOf(name, args...)} }
