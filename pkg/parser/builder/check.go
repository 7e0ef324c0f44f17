package builder

import (
	"microc/pkg/ast"
)

// MicroIO is the only header a program may include; it provides print
const MicroIO = "microio.h"

// check validates what can only be known once every function has been seen:
// the entry point, void usage, call targets and print's header.
// Variable usage is left to the interpreter.
func (b *Builder) check() {
	entry, ok := b.program.Function(b.program.Entry)
	if !ok || entry.Returns || len(entry.Params) > 0 {
		b.addMissingEntryError()
	}

	for _, name := range b.program.Order {
		fn := b.program.Functions[name]
		if !fn.Returns && fn.Name != b.program.Entry {
			b.addVoidFunctionError(fn.Name, fn.Pos)
		}

		for _, call := range ast.Calls(fn) {
			callee, ok := b.program.Function(call.Name)
			if !ok {
				b.addUndefinedFunctionError(call.Name, call.Pos)
				continue
			}
			if len(callee.Params) != len(call.Args) {
				b.addArityError(call.Name, len(callee.Params), len(call.Args), call.Pos)
			}
		}
	}

	if !b.program.HasInclude(MicroIO) {
		for _, pos := range b.prints {
			b.addMissingIncludeError(pos)
		}
	}
}
