package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"microc/internal/expect"
	"microc/pkg/assembly"
	"microc/pkg/assembly/microsim"
	"microc/pkg/ast"
	"microc/pkg/color"
	"microc/pkg/interpreter"
	"microc/pkg/lexer"
	"microc/pkg/parser"
)

// Dump formats for the final state
const (
	DumpText = "text"
	DumpYAML = "yaml"
)

var ErrExpectation = errors.New("final state does not match expectation")

type Runner struct {
	Help            bool   // Show help message
	Verbose         bool   // Enable verbose output
	ShouldInterpret bool   // Whether to run the program
	ShouldCompile   bool   // Whether to emit MicroSim assembly
	NoColor         bool   // Disable colored output
	SourceFile      string // Path to the source file
	OutputFile      string // Path to the assembly output
	WordSize        int    // Interpreter word size in bits
	MaxSteps        int    // Statement budget, 0 = unlimited
	DumpFormat      string // Final state format: text or yaml
	ExpectFile      string // YAML expectation to check the final state against

	Stdout io.Writer // defaults to os.Stdout
}

// Run parses the source file, then compiles and/or interprets it based on
// the options set. Interpreting is the default when compiling is not asked for.
func (opts *Runner) Run() error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	switch opts.DumpFormat {
	case "", DumpText, DumpYAML:
	default:
		return fmt.Errorf("unknown dump format %q", opts.DumpFormat)
	}

	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.SourceFile, err)
	}

	l := lexer.NewLexer(string(input))
	p := parser.NewParser(l)
	p.Parse()

	syntaxErrors := p.Errors()
	if len(syntaxErrors) > 0 {
		fmt.Fprintln(out, color.BrightRedText("=== Syntax Errors ==="))
		fmt.Fprintln(out, syntaxErrors[0])
		return fmt.Errorf("parsing failed with %d errors", len(syntaxErrors))
	}

	semanticErrors := p.GetSemanticErrors()
	if len(semanticErrors) > 0 {
		fmt.Fprintln(out, color.BrightRedText("=== Semantic Errors ==="))
		fmt.Fprintln(out, semanticErrors[0])
		return fmt.Errorf("semantic analysis failed with %d errors", len(semanticErrors))
	}

	prog := p.Program()
	log.Info("Parsed program", "functions", len(prog.Order), "includes", prog.Includes)

	if opts.Verbose {
		fmt.Fprintln(out, color.GreenText("\n=== Parsed Functions ==="))
		fmt.Fprint(out, prog.String())
	}

	if opts.ShouldCompile {
		var arch assembly.Assembly = microsim.NewMicroSim(prog, opts.OutputFile)

		if err := arch.Generate(); err != nil {
			return fmt.Errorf("assembly generation failed: %w", err)
		}

		if opts.Verbose {
			fmt.Fprintln(out, color.GreenText("\n=== Generated Assembly ==="))
			fmt.Fprint(out, arch.GetCode())
		}

		if err := arch.Build(); err != nil {
			return fmt.Errorf("assembly build failed: %w", err)
		}
		log.Info("Wrote assembly", "file", opts.OutputFile)
	}

	if opts.ShouldInterpret || !opts.ShouldCompile {
		return opts.interpret(prog, out)
	}

	return nil
}

func (opts *Runner) interpret(prog *ast.Program, out io.Writer) error {
	iopts := []interpreter.Option{interpreter.WithWriter(out), interpreter.WithMaxSteps(opts.MaxSteps)}
	if opts.WordSize != 0 {
		iopts = append(iopts, interpreter.WithWordSize(opts.WordSize))
	}
	intr := interpreter.NewInterpreter(prog, iopts...)

	if opts.DumpFormat != DumpYAML {
		fmt.Fprintln(out, color.GreenText("\n=== Program Output ==="))
	}
	runErr := intr.Run()
	log.Info("Run finished", "steps", intr.Steps(), "slots", intr.Slots().Len(), "error", interpreter.KindOf(runErr))

	switch opts.DumpFormat {
	case DumpYAML:
		if err := expect.NewState(intr.Snapshot(), runErr).Encode(out); err != nil {
			return err
		}
	default:
		opts.dumpText(out, intr, runErr)
	}

	if opts.ExpectFile == "" {
		if runErr != nil {
			return fmt.Errorf("interpretation failed: %w", runErr)
		}
		return nil
	}

	want, err := expect.Load(opts.ExpectFile)
	if err != nil {
		return err
	}
	if issues := want.Check(intr.Snapshot(), runErr); len(issues) > 0 {
		fmt.Fprintln(out, color.BrightRedText("=== Expectation Mismatches ==="))
		for _, issue := range issues {
			fmt.Fprintln(out, issue)
		}
		return fmt.Errorf("%w: %s", ErrExpectation, strings.Join(issues, "; "))
	}

	log.Info("Expectation met", "file", opts.ExpectFile)
	return nil
}

func (opts *Runner) dumpText(out io.Writer, intr *interpreter.Interpreter, runErr error) {
	fmt.Fprintln(out, color.GreenText("\n=== Final State ==="))
	slots := intr.Snapshot()
	for _, name := range intr.Slots().Names() {
		fmt.Fprintf(out, "%s = %s\n", color.CyanText(name), color.YellowText(fmt.Sprint(slots[name])))
	}
	if runErr != nil {
		fmt.Fprintf(out, "%s %v\n", color.BrightRedText("error:"), runErr)
	}
}
