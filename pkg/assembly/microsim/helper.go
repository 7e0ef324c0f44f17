package microsim

import (
	"fmt"

	"microc/pkg/ast"
)

// addText adds an instruction to the text section
func (m *microSim) addText(instruction string) {
	m.text.WriteString(instruction + "\n")
}

func (m *microSim) addHeader(line string) {
	m.header.WriteString(line + "\n")
}

// newLabel returns a fresh label with the given prefix
func (m *microSim) newLabel(prefix string) string {
	l := fmt.Sprintf("%s_%d", prefix, m.labelCounter)
	m.labelCounter++
	return l
}

// label is the code label of a function
func label(fn *ast.Function) string {
	if fn.Name == ast.EntryFunction {
		return "main_func"
	}
	return "func_" + fn.Name
}

// returnLabel is where a function's epilogue starts
func returnLabel(fn *ast.Function) string {
	return label(fn) + "_ret"
}

// imm formats v as an 8-bit immediate, two's complement
func imm(v int64) string {
	return fmt.Sprintf("0x%02X", uint8(v))
}

// addr formats a direct memory operand
func addr(a int) string {
	return fmt.Sprintf("[0x%02X]", a)
}

func formatSlot(name string, a int) string {
	return fmt.Sprintf(";   %-24s: 0x%02X", name, a)
}
