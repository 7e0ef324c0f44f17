package interpreter_test

import (
	"testing"

	"microc/pkg/interpreter"
)

func TestWordSizeWrap(t *testing.T) {
	tests := []struct {
		name string
		bits int
		src  string
		want int32
	}{
		{"32-bit add overflow", 32, "void main() { int x = 2147483647; x = x + 1; }", -2147483648},
		{"32-bit sub underflow", 32, "void main() { int x = -2147483648; x--; }", 2147483647},
		{"32-bit mul", 32, "void main() { int x = 65536 * 65536; }", 0},
		{"32-bit negate min", 32, "void main() { int x = -2147483648; x = -x; }", -2147483648},
		{"16-bit add overflow", 16, "void main() { int x = 32767; x += 1; }", -32768},
		{"16-bit literal truncation", 16, "void main() { int x = 65537; }", 1},
		{"8-bit add overflow", 8, "void main() { int x = 127; x++; }", -128},
		{"8-bit mul", 8, "void main() { int x = 16 * 16; }", 0},
		{"8-bit sub", 8, "void main() { int x = 0 - 129; }", 127},
		{"8-bit compare after wrap", 8, "void main() { int x = 0; if (127 + 1 < 0) { x = 1; } }", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := mustRun(t, tt.src, interpreter.WithWordSize(tt.bits))
			expectSlots(t, it, map[string]int32{"main.x": tt.want})
		})
	}
}

func TestInvalidWordSizeKeepsDefault(t *testing.T) {
	it := interpreter.NewInterpreter(nil, interpreter.WithWordSize(12))
	if it.WordSize() != interpreter.Word32 {
		t.Errorf("expected %d bits, got %d", interpreter.Word32, it.WordSize())
	}
}
