package interpreter

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"microc/pkg/ast"
	"microc/pkg/lexer"
)

// Supported integer widths
const (
	Word8  = 8
	Word16 = 16
	Word32 = 32
)

// Interpreter executes an ast.Program under the shadow variable model: every
// parameter and local of a function lives in one slot keyed by
// (function, name), shared by all invocations of that function.
type Interpreter struct {
	program *ast.Program // program being run
	slots   *SymbolTable // shadow variable storage
	chain   []*Frame     // active invocations, outermost first

	out io.Writer // output writer for print

	maxSteps int // maximum executed statements (0 = unlimited)
	steps    int // statements executed
	wordSize int // integer width in bits
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print statements
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of executed statements before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithWordSize sets the integer width arithmetic wraps at: 8, 16 or 32 bits.
// Other widths are ignored.
func WithWordSize(bits int) Option {
	return func(i *Interpreter) {
		switch bits {
		case Word8, Word16, Word32:
			i.wordSize = bits
		default:
			log.Warn("Unsupported word size, keeping current", "bits", bits, "current", i.wordSize)
		}
	}
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(program *ast.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		program:  program,
		slots:    NewSymbolTable(),
		chain:    make([]*Frame, 0, 8),
		out:      nil, // caller should set, or use WithWriter
		maxSteps: 0,   // 0 => unlimited
		wordSize: Word32,
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// Load replaces the current program, resetting state
func (i *Interpreter) Load(program *ast.Program) {
	i.program = program
	i.Reset()
}

// Reset clears runtime state (slots, call chain, counters)
func (i *Interpreter) Reset() {
	i.slots.reset()
	i.chain = i.chain[:0]
	i.steps = 0
}

// Run executes the entry function from a fresh symbol table until it
// finishes, returns or fails. The final slots stay readable afterwards.
func (i *Interpreter) Run() error {
	i.Reset()

	entryName := ast.EntryFunction
	if i.program != nil && i.program.Entry != "" {
		entryName = i.program.Entry
	}

	var entry *ast.Function
	if i.program != nil {
		entry, _ = i.program.Function(entryName)
	}
	if entry == nil {
		return &RuntimeError{Err: ErrMissingEntry, Msg: entryName}
	}

	log.Debug("Run", "entry", entry.Name, "functions", len(i.program.Functions), "word", i.wordSize)

	if _, err := i.runFunction(entry, nil, lexer.Position{}); err != nil {
		log.Debug("Run failed", "error", err, "steps", i.steps)
		return err
	}

	log.Debug("Run finished", "steps", i.steps, "slots", i.slots.Len())
	return nil
}

// Program returns the loaded program
func (i *Interpreter) Program() *ast.Program {
	return i.program
}

// Output returns the output writer used for print
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// Slots returns the symbol table itself
func (i *Interpreter) Slots() *SymbolTable {
	return i.slots
}

// Snapshot returns the final mangled name -> value mapping
func (i *Interpreter) Snapshot() map[string]int32 {
	return i.slots.Snapshot()
}

// Lookup reads the slot of ident in function fn
func (i *Interpreter) Lookup(fn, ident string) (int32, bool) {
	return i.slots.Lookup(Mangle(fn, ident))
}

// Steps returns how many statements the last run executed
func (i *Interpreter) Steps() int {
	return i.steps
}

// WordSize returns the integer width in bits
func (i *Interpreter) WordSize() int {
	return i.wordSize
}
