package interpreter

import "microc/pkg/lexer"

// Frame records one active invocation. It owns no storage: locals live in the
// function's shared slots. Frames only exist to detect re-entrancy and to
// report the call chain.
type Frame struct {
	FuncName string         // function being executed
	Caller   string         // qualifier of the calling function, empty for the entry
	Depth    int            // number of frames below this one
	CallPos  lexer.Position // position of the call expression
}

// pushFrame marks fn as active
func (i *Interpreter) pushFrame(fn string, pos lexer.Position) *Frame {
	frame := &Frame{
		FuncName: fn,
		Depth:    len(i.chain),
		CallPos:  pos,
	}
	if caller := i.currentFrame(); caller != nil {
		frame.Caller = caller.FuncName
	}

	i.chain = append(i.chain, frame)
	return frame
}

// popFrame removes the innermost frame
func (i *Interpreter) popFrame() *Frame {
	if len(i.chain) == 0 {
		return nil
	}

	f := i.chain[len(i.chain)-1]
	i.chain = i.chain[:len(i.chain)-1]
	return f
}

// currentFrame returns the current call frame, or nil if none
func (i *Interpreter) currentFrame() *Frame {
	if len(i.chain) == 0 {
		return nil
	}

	return i.chain[len(i.chain)-1]
}

// isActive reports whether fn is somewhere on the active chain
func (i *Interpreter) isActive(fn string) bool {
	for _, f := range i.chain {
		if f.FuncName == fn {
			return true
		}
	}
	return false
}

// Chain returns the names of the active functions, outermost first
func (i *Interpreter) Chain() []string {
	names := make([]string, len(i.chain))
	for k, f := range i.chain {
		names[k] = f.FuncName
	}
	return names
}
