package parser_test

import (
	"strings"
	"testing"

	"microc/pkg/ast"
	"microc/pkg/color"
	"microc/pkg/lexer"
	"microc/pkg/parser"
)

func init() {
	color.EnableColor(false)
}

const decrementSrc = `// Function to decrement a value and return it
int my_decrement(int x) {
    x = x - 1;
    return x;
}

void main() {
    int initial_val;
    int final_result;

    initial_val = 10;
    final_result = 0;
    final_result = my_decrement(initial_val);
    final_result = my_decrement(5);
    my_decrement(final_result);
}`

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func TestGrammarIsLL1(t *testing.T) {
	_, conflicts := parser.BuildTable(parser.Grammar())
	if len(conflicts) > 0 {
		t.Fatalf("grammar has conflicts:\n%s", strings.Join(conflicts, "\n"))
	}
}

func TestParseFunctions(t *testing.T) {
	prog := mustParse(t, decrementSrc)

	if got := strings.Join(prog.Order, ","); got != "my_decrement,main" {
		t.Fatalf("expected functions my_decrement,main, got %s", got)
	}

	dec, ok := prog.Function("my_decrement")
	if !ok {
		t.Fatal("my_decrement not found")
	}
	if !dec.Returns || len(dec.Params) != 1 || dec.Params[0] != "x" {
		t.Errorf("unexpected signature %s", dec.Signature())
	}
	if len(dec.Body) != 2 {
		t.Fatalf("expected 2 statements in my_decrement, got %d", len(dec.Body))
	}
	if got := dec.Body[0].String(); got != "x = (x - 1);" {
		t.Errorf("unexpected statement %q", got)
	}
	if got := dec.Body[1].String(); got != "return x;" {
		t.Errorf("unexpected statement %q", got)
	}

	main, _ := prog.Function("main")
	if main.Returns || len(main.Params) != 0 {
		t.Errorf("unexpected signature %s", main.Signature())
	}

	want := []string{
		"int initial_val;",
		"int final_result;",
		"initial_val = 10;",
		"final_result = 0;",
		"final_result = my_decrement(initial_val);",
		"final_result = my_decrement(5);",
		"my_decrement(final_result);",
	}
	if len(main.Body) != len(want) {
		t.Fatalf("expected %d statements in main, got %d", len(want), len(main.Body))
	}
	for i, w := range want {
		if got := main.Body[i].String(); got != w {
			t.Errorf("statement %d: expected %q, got %q", i, w, got)
		}
	}
	if _, ok := main.Body[6].(*ast.ExprStmt); !ok {
		t.Errorf("expected a discarded call, got %T", main.Body[6])
	}
}

func TestExpressionShape(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"10 - 3 - 2", "((10 - 3) - 2)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a || b && c", "(a || (b && c))"},
		{"a > 1 && b <= 2", "((a > 1) && (b <= 2))"},
		{"x + 1 == y - 1", "((x + 1) == (y - 1))"},
		{"!a || -b > 0", "(!a || (-b > 0))"},
		{"f(1, g(2)) + 1", "(f(1, g(2)) + 1)"},
		{"x-1", "(x - 1)"},
		{"-5 * 2", "(-5 * 2)"},
		{"a / b % c", "((a / b) % c)"},
	}

	for _, test := range tests {
		src := "int f(int a, int b) { return a; }\nint g(int a) { return a; }\n" +
			"void main() { int a; int b; int c; int x; int y; x = " + test.expr + "; }"
		prog := mustParse(t, src)
		main, _ := prog.Function("main")
		assign, ok := main.Body[len(main.Body)-1].(*ast.Assign)
		if !ok {
			t.Fatalf("%s: expected assignment, got %T", test.expr, main.Body[len(main.Body)-1])
		}
		if got := assign.Value.String(); got != test.expected {
			t.Errorf("%s: expected %s, got %s", test.expr, test.expected, got)
		}
	}
}

func TestNegativeLiteral(t *testing.T) {
	prog := mustParse(t, "void main() { int x = -7; }")
	main, _ := prog.Function("main")
	decl := main.Body[0].(*ast.Decl)
	lit, ok := decl.Init.(*ast.IntLit)
	if !ok || lit.Value != -7 {
		t.Errorf("expected literal -7, got %s", decl.Init)
	}
}

func TestCompoundAssignments(t *testing.T) {
	src := `void main() {
    int x = 1;
    x += 2;
    x -= 3;
    x *= 4;
    x /= 5;
    x++;
    x--;
}`
	prog := mustParse(t, src)
	main, _ := prog.Function("main")
	want := []string{
		"int x = 1;",
		"x = (x + 2);",
		"x = (x - 3);",
		"x = (x * 4);",
		"x = (x / 5);",
		"x = (x + 1);",
		"x = (x - 1);",
	}
	for i, w := range want {
		if got := main.Body[i].String(); got != w {
			t.Errorf("statement %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestControlFlow(t *testing.T) {
	src := `void main() {
    int x = 0;
    if (x > 1) {
        x = 1;
    } else if (x > 0) {
        x = 2;
    } else {
        x = 3;
    }
    while (x < 10) {
        x = x + 1;
        if (x == 5) {
            x = 9;
        }
    }
    if (x) {}
}`
	prog := mustParse(t, src)
	main, _ := prog.Function("main")
	if len(main.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(main.Body))
	}

	outer, ok := main.Body[1].(*ast.If)
	if !ok {
		t.Fatalf("expected if, got %T", main.Body[1])
	}
	if len(outer.Then) != 1 || len(outer.Else) != 1 {
		t.Fatalf("unexpected branches then=%d else=%d", len(outer.Then), len(outer.Else))
	}
	inner, ok := outer.Else[0].(*ast.If)
	if !ok {
		t.Fatalf("expected else-if, got %T", outer.Else[0])
	}
	if inner.Cond.String() != "(x > 0)" || len(inner.Else) != 1 {
		t.Errorf("unexpected else-if %s", inner)
	}
	if outer.Pos.Line != 3 || inner.Pos.Line != 5 {
		t.Errorf("unexpected positions %s, %s", outer.Pos, inner.Pos)
	}

	loop, ok := main.Body[2].(*ast.While)
	if !ok {
		t.Fatalf("expected while, got %T", main.Body[2])
	}
	if len(loop.Body) != 2 {
		t.Errorf("expected 2 statements in loop, got %d", len(loop.Body))
	}

	empty := main.Body[3].(*ast.If)
	if empty.Then == nil || len(empty.Then) != 0 || empty.Else != nil {
		t.Errorf("expected empty then and no else, got %v / %v", empty.Then, empty.Else)
	}
}

func TestReturnForms(t *testing.T) {
	prog := mustParse(t, "int f(void) { if (1 > 0) { return 1; } return; }\nvoid main() { f(); return; }")
	f, _ := prog.Function("f")
	if len(f.Params) != 0 {
		t.Errorf("expected no params for f(void), got %v", f.Params)
	}
	ret := f.Body[1].(*ast.Return)
	if ret.Value != nil {
		t.Errorf("expected bare return, got %s", ret)
	}
}

func TestIncludeAndPrint(t *testing.T) {
	prog := mustParse(t, "#include <microio.h>\nvoid main() { int x = 3; print(x + 1); }")
	if !prog.HasInclude("microio.h") {
		t.Error("expected microio.h include")
	}
	main, _ := prog.Function("main")
	if got := main.Body[1].String(); got != "print((x + 1));" {
		t.Errorf("unexpected print %q", got)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"void main() { int x = 1 }", "Missing semicolon"},
		{"void main() { int x = 1\n int y; }", "Missing semicolon"},
		{"void main() { int x; x = (1 + 2; }", "Missing closing parenthesis"},
		{"void main() { if 1 > 0 { } }", "Missing opening parenthesis"},
		{"void main() { if () { } }", "Empty condition"},
		{"void main() { int x; x = ; }", "Missing expression"},
		{"void main() { int = 3; }", "Missing identifier"},
		{"void main() { int x; x = 1 @ 2; }", "Illegal character '@'"},
		{"void main() { int x; ", "Missing closing brace"},
		{"x = 1;", "Expected function definition"},
	}

	for _, test := range tests {
		p := parser.NewParser(lexer.NewLexer(test.src))
		p.Parse()
		errs := p.Errors()
		if len(errs) == 0 {
			t.Errorf("%q: expected a syntax error", test.src)
			continue
		}
		if !strings.Contains(errs[0], test.expected) {
			t.Errorf("%q: expected %q, got %q", test.src, test.expected, errs[0])
		}
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"int f(int a) { return a; }", "'void main()' function not found"},
		{"int main() { return 0; }", "'void main()' function not found"},
		{"void main() { g(1); }", "Undefined function `g`"},
		{"int g(int a) { return a; }\nvoid main() { g(1, 2); }", "Argument count mismatch"},
		{"int g(int a) { return a; }\nint g(int b) { return b; }\nvoid main() { }", "Redefinition of function `g`"},
		{"void g() { }\nvoid main() { g(); }", "Only main may return void"},
		{"void main() { print(1); }", "print requires"},
		{"#include <stdio.h>\nvoid main() { }", "Unsupported header `stdio.h`"},
		{"int g(int a, int a) { return a; }\nvoid main() { }", "Duplicate parameter `a`"},
		{"void main() { int x = 99999999999999999999; }", "Integer literal out of range"},
	}

	for _, test := range tests {
		_, err := parser.Parse(test.src)
		if err == nil {
			t.Errorf("%q: expected an error", test.src)
			continue
		}
		perr, ok := err.(*parser.Error)
		if !ok || perr.Kind != parser.SemanticError {
			t.Errorf("%q: expected a semantic error, got %v", test.src, err)
			continue
		}
		if !strings.Contains(err.Error(), test.expected) {
			t.Errorf("%q: expected %q, got %q", test.src, test.expected, err.Error())
		}
	}
}

func TestUndeclaredVariablesParse(t *testing.T) {
	// variable binding is checked when the program runs
	if _, err := parser.Parse("void main() { y = 1; }"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
