package interpreter_test

import (
	"io"
	"testing"

	"microc/pkg/ast"
	"microc/pkg/interpreter"
	"microc/pkg/parser"
)

// run parses src and executes it, discarding print output
func run(t *testing.T, src string, opts ...interpreter.Option) (*interpreter.Interpreter, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return runProgram(prog, opts...)
}

func runProgram(prog *ast.Program, opts ...interpreter.Option) (*interpreter.Interpreter, error) {
	it := interpreter.NewInterpreter(prog, append([]interpreter.Option{interpreter.WithWriter(io.Discard)}, opts...)...)
	return it, it.Run()
}

func mustRun(t *testing.T, src string, opts ...interpreter.Option) *interpreter.Interpreter {
	t.Helper()
	it, err := run(t, src, opts...)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return it
}

// expectSlots compares the given slots against the interpreter state
func expectSlots(t *testing.T, it *interpreter.Interpreter, want map[string]int32) {
	t.Helper()
	snap := it.Snapshot()
	for name, w := range want {
		got, ok := snap[name]
		if !ok {
			t.Errorf("slot %s was never declared", name)
			continue
		}
		if got != w {
			t.Errorf("slot %s: expected %d, got %d", name, w, got)
		}
	}
}

// program builds a Program from hand-made functions
func program(fns ...*ast.Function) *ast.Program {
	p := ast.NewProgram()
	for _, fn := range fns {
		p.Add(fn)
	}
	return p
}

func mainFn(body ...ast.Stmt) *ast.Function {
	return &ast.Function{Name: "main", Body: body}
}

func intFn(name string, params []string, body ...ast.Stmt) *ast.Function {
	return &ast.Function{Name: name, Params: params, Returns: true, Body: body}
}
