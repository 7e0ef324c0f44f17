package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microc/internal/expect"
	"microc/pkg/color"
	"microc/pkg/interpreter"
)

func init() {
	color.EnableColor(false)
}

func TestFixtures(t *testing.T) {
	fixtures := []string{
		"03_if_statement",
		"04_functions",
		"05_comprehensive",
		"06_recursion",
		"07_print",
	}

	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			r := &Runner{
				SourceFile: filepath.Join("testdata", name+".c"),
				ExpectFile: filepath.Join("testdata", name+".yaml"),
				Stdout:     &out,
			}
			if err := r.Run(); err != nil {
				t.Fatalf("run failed: %v\n%s", err, out.String())
			}
		})
	}
}

func TestTextDump(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{SourceFile: filepath.Join("testdata", "07_print.c"), Stdout: &out}
	if err := r.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"1\n4\n9\n", "=== Final State ===", "main.i = 4", "square.v = 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestYAMLDump(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{SourceFile: filepath.Join("testdata", "03_if_statement.c"), DumpFormat: DumpYAML, Stdout: &out}
	if err := r.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st, err := expect.Decode(&out)
	if err != nil {
		t.Fatalf("dump is not valid YAML: %v", err)
	}
	if st.Slots["main.z"] != 10 || st.Error != "" {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestRuntimeErrorWithoutExpectation(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{SourceFile: filepath.Join("testdata", "06_recursion.c"), Stdout: &out}

	err := r.Run()
	if !errors.Is(err, interpreter.ErrReentrantCall) {
		t.Fatalf("expected ErrReentrantCall, got %v", err)
	}
	if !strings.Contains(out.String(), "error: reentrant call") {
		t.Errorf("expected the error in the dump:\n%s", out.String())
	}
}

func TestExpectationMismatch(t *testing.T) {
	dir := t.TempDir()
	expectFile := filepath.Join(dir, "wrong.yaml")
	if err := os.WriteFile(expectFile, []byte("slots:\n  main.z: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := &Runner{
		SourceFile: filepath.Join("testdata", "03_if_statement.c"),
		ExpectFile: expectFile,
		Stdout:     &out,
	}
	err := r.Run()
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("expected ErrExpectation, got %v", err)
	}
	if !strings.Contains(out.String(), "main.z: expected 20, got 10") {
		t.Errorf("expected the mismatch to be reported:\n%s", out.String())
	}
}

func TestWordSizeAndSteps(t *testing.T) {
	src := filepath.Join(t.TempDir(), "wrap.c")
	if err := os.WriteFile(src, []byte("void main() { int x = 127; x++; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := &Runner{SourceFile: src, WordSize: 8, DumpFormat: DumpYAML, Stdout: &out}
	if err := r.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "main.x: -128") {
		t.Errorf("expected 8-bit wrap:\n%s", out.String())
	}

	loop := filepath.Join(t.TempDir(), "loop.c")
	if err := os.WriteFile(loop, []byte("void main() { while (1 > 0) { } }"), 0o644); err != nil {
		t.Fatal(err)
	}
	r = &Runner{SourceFile: loop, MaxSteps: 50, Stdout: &out}
	if err := r.Run(); !errors.Is(err, interpreter.ErrMaxStepsExceeded) {
		t.Errorf("expected ErrMaxStepsExceeded, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		header string
	}{
		{"syntax", "void main() { int x = 1 }", "=== Syntax Errors ==="},
		{"semantic", "void main() { print(1); }", "=== Semantic Errors ==="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "bad.c")
			if err := os.WriteFile(src, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			r := &Runner{SourceFile: src, Stdout: &out}
			if err := r.Run(); err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(out.String(), tt.header) {
				t.Errorf("expected %q in:\n%s", tt.header, out.String())
			}
		})
	}
}

func TestCompile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "a.asm")

	var out bytes.Buffer
	r := &Runner{
		SourceFile:    filepath.Join("testdata", "05_comprehensive.c"),
		OutputFile:    output,
		ShouldCompile: true,
		Stdout:        &out,
	}
	if err := r.Run(); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	code, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("no assembly written: %v", err)
	}
	if !strings.Contains(string(code), "CALL func_process_number") {
		t.Errorf("unexpected assembly:\n%s", code)
	}
	// compiling alone does not run the program
	if strings.Contains(out.String(), "=== Final State ===") {
		t.Error("expected no interpreter run")
	}
}

func TestCompileRejectsPrint(t *testing.T) {
	r := &Runner{
		SourceFile:    filepath.Join("testdata", "07_print.c"),
		OutputFile:    filepath.Join(t.TempDir(), "a.asm"),
		ShouldCompile: true,
		Stdout:        &bytes.Buffer{},
	}
	if err := r.Run(); err == nil {
		t.Error("expected print to be rejected by the backend")
	}
}

func TestOptionErrors(t *testing.T) {
	r := &Runner{SourceFile: filepath.Join("testdata", "03_if_statement.c"), DumpFormat: "json", Stdout: &bytes.Buffer{}}
	if err := r.Run(); err == nil {
		t.Error("expected an unknown dump format to fail")
	}

	r = &Runner{SourceFile: filepath.Join("testdata", "missing.c"), Stdout: &bytes.Buffer{}}
	if err := r.Run(); err == nil {
		t.Error("expected a missing source file to fail")
	}
}
