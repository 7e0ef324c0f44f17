package microsim_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microc/pkg/assembly/microsim"
	"microc/pkg/interpreter"
	"microc/pkg/parser"
)

func generate(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	asm := microsim.NewMicroSim(prog, filepath.Join(t.TempDir(), "out.asm"))
	if err := asm.Generate(); err != nil {
		return "", err
	}
	return asm.GetCode(), nil
}

func expectLines(t *testing.T, code string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(code, l+"\n") && !strings.Contains(code, l+"\t") {
			t.Errorf("expected %q in:\n%s", l, code)
		}
	}
}

const functionsSrc = `
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

func TestFunctions(t *testing.T) {
	code, err := generate(t, functionsSrc)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	expectLines(t, code,
		"\tCALL main_func",
		"\tHLT",
		"func_my_decrement:",
		"\tPUSH BL",
		"\tPUSHF",
		"\tMOV AL, [SP+6]",
		"\tMOV [0x80], AL",
		"\tMOV AL, [0x81]",
		"\tCALL func_my_decrement",
		"\tMOV [0x82], AL",
		"\tPOP BL",
		"\tPOPF",
		"\tRET",
		"main_func:",
	)

	// slot table
	for _, name := range []string{"my_decrement.x", "main.initial_val", "main.final_result"} {
		if !strings.Contains(code, name) {
			t.Errorf("expected %s in the slot table", name)
		}
	}

	// the entry saves nothing
	mainCode := code[strings.Index(code, "main_func:"):]
	if strings.Contains(mainCode, "PUSHF") {
		t.Error("main should not save registers")
	}
}

func TestArgumentOffsets(t *testing.T) {
	code, err := generate(t, "int add(int a, int b) { return a + b; }\nvoid main() { int s = add(1, -1); }")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	expectLines(t, code,
		"\tMOV AL, [SP+7]",
		"\tMOV AL, [SP+6]",
		"\tMOV AL, 0xFF",
		"\tADD AL, BL",
		"\tJMP func_add_ret",
	)
	if strings.Count(code, "\tPOP BL\t\t\t; drop argument") != 2 {
		t.Errorf("expected both arguments dropped:\n%s", code)
	}
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name  string
		cond  string
		lines []string
	}{
		{"greater", "x > 5", []string{"\tCMP AL, 0x05", "\tJNA else_0"}},
		{"less", "x < 5", []string{"\tJAE else_0"}},
		{"equal", "x == 5", []string{"\tJNE else_0"}},
		{"not equal", "x != 5", []string{"\tJE else_0"}},
		{"greater or equal", "x >= 5", []string{"\tJB else_0"}},
		{"less or equal", "x <= 5", []string{"\tJA else_0"}},
		{"variable operand", "x > y", []string{"\tCMP AL, BL", "\tJNA else_0"}},
		{"and", "x > 1 && y < 9", []string{"\tJNA else_0", "\tJAE else_0"}},
		{"or", "x > 1 || y < 9", []string{"\tJA skip_2", "\tJAE else_0", "skip_2:"}},
		{"not", "!(x == 5)", []string{"\tJE else_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fmt.Sprintf("void main() { int x = 3; int y = 4; if (%s) { x = 1; } }", tt.cond)
			code, err := generate(t, src)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			expectLines(t, code, tt.lines...)
			expectLines(t, code, "else_0:")
		})
	}
}

func TestWhileAndElse(t *testing.T) {
	code, err := generate(t, `void main() {
    int i = 0;
    while (i < 3) {
        i++;
    }
    if (i == 3) {
        i = 0;
    } else {
        i = 1;
    }
}`)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	expectLines(t, code,
		"loop_start_0:",
		"\tJAE loop_end_1",
		"\tJMP loop_start_0",
		"loop_end_1:",
		"\tJNE else_2",
		"\tJMP end_if_3",
		"else_2:",
		"end_if_3:",
	)
}

func TestRejected(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
	}{
		{"division", "void main() { int x = 4 / 2; }", microsim.ErrUnsupported},
		{"modulo", "void main() { int x = 4 % 2; }", microsim.ErrUnsupported},
		{"print", "#include <microio.h>\nvoid main() { print(1); }", microsim.ErrUnsupported},
		{"bool value", "void main() { int x = 1 > 0; }", microsim.ErrUnsupported},
		{"int condition", "void main() { int x = 1; while (x) { x = 0; } }", interpreter.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, tt.src)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestTooManySlots(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("void main() {\n")
	for k := 0; k <= microsim.MaxSlots; k++ {
		fmt.Fprintf(&sb, "    int v%d;\n", k)
	}
	sb.WriteString("}")

	_, err := generate(t, sb.String())
	if !errors.Is(err, microsim.ErrTooManySlots) {
		t.Errorf("expected ErrTooManySlots, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	prog, err := parser.Parse(functionsSrc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "asm", "a.asm")
	asm := microsim.NewMicroSim(prog, out)

	if err := asm.Build(); err == nil {
		t.Error("expected Build before Generate to fail")
	}
	if err := asm.Generate(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := asm.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != asm.GetCode() {
		t.Error("written file differs from the generated code")
	}
}
