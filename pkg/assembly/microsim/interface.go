package microsim

import (
	"bytes"
	"errors"

	"microc/pkg/assembly"
	"microc/pkg/ast"
)

const (
	// SlotBase is the address of the first static slot
	SlotBase = 0x80
	// MaxSlots keeps the slots below the stack, which grows down from 0xBF
	MaxSlots = 32

	// argOffset is the distance from SP to the last pushed argument once the
	// callee has saved BL, CL, DL and the flags
	argOffset = 6
)

var (
	ErrUnsupported  = errors.New("not supported by the MicroSim backend")
	ErrTooManySlots = errors.New("too many variables for static allocation")
)

type microSim struct {
	program *ast.Program
	output  string // path Build writes to

	header bytes.Buffer // comments and slot table
	text   bytes.Buffer // entry and functions

	slots []string       // mangled names in address order
	addrs map[string]int // mangled name -> address

	labelCounter int
	currentFunc  *ast.Function
}

// NewMicroSim creates a MicroSim assembly generator for program
func NewMicroSim(program *ast.Program, output string) assembly.Assembly {
	return &microSim{
		program: program,
		output:  output,
		addrs:   make(map[string]int),
	}
}

// Generate lays out the static slots and emits every function
func (m *microSim) Generate() error {
	if m.program == nil {
		return errors.New("no program to compile")
	}
	entry, ok := m.program.Function(m.program.Entry)
	if !ok {
		return errors.New("entry function " + m.program.Entry + " not found")
	}

	if err := m.collectSlots(); err != nil {
		return err
	}

	m.addHeader("; compiled by microc (static memory model)")
	m.addHeader("")
	if len(m.slots) > 0 {
		m.addHeader("; Variable addresses:")
		for _, name := range m.slots {
			m.addHeader(formatSlot(name, m.addrs[name]))
		}
		m.addHeader("")
	}

	m.addText("\tCALL " + label(entry))
	m.addText("\tHLT")

	for _, name := range m.program.Order {
		if err := m.emitFunction(m.program.Functions[name]); err != nil {
			return err
		}
	}

	return nil
}

// GetCode returns the generated assembly
func (m *microSim) GetCode() string {
	var b bytes.Buffer
	b.Write(m.header.Bytes())
	b.Write(m.text.Bytes())
	return b.String()
}
