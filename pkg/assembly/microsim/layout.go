package microsim

import (
	"fmt"

	"github.com/charmbracelet/log"

	"microc/pkg/ast"
	"microc/pkg/interpreter"
)

// collectSlots assigns one byte per mangled name, starting at SlotBase, in
// function order with parameters first. Every invocation of a function
// shares these addresses, the same way the interpreter shares its slots.
func (m *microSim) collectSlots() error {
	for _, name := range m.program.Order {
		fn := m.program.Functions[name]
		for _, local := range ast.Locals(fn) {
			mangled := interpreter.Mangle(fn.Name, local)
			if _, exists := m.addrs[mangled]; exists {
				continue
			}
			if len(m.slots) == MaxSlots {
				return fmt.Errorf("%w: %s needs slot %d, limit is %d", ErrTooManySlots, mangled, len(m.slots)+1, MaxSlots)
			}
			m.addrs[mangled] = SlotBase + len(m.slots)
			m.slots = append(m.slots, mangled)
		}
	}

	log.Debug("Static layout", "slots", len(m.slots), "base", fmt.Sprintf("0x%02X", SlotBase))
	return nil
}

// slotOf returns the operand of ident inside the current function
func (m *microSim) slotOf(ident string) (string, error) {
	mangled := interpreter.Mangle(m.currentFunc.Name, ident)
	a, ok := m.addrs[mangled]
	if !ok {
		return "", fmt.Errorf("%w: %s", interpreter.ErrUnboundVariable, mangled)
	}
	return addr(a), nil
}
