package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"microc/internal/logger"
	"microc/internal/runner"
	"microc/pkg/color"
)

// Main entry point for microc.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.ShouldInterpret, "r", false, "Run with interpreter (default unless -c is given)")
	flag.BoolVar(&options.ShouldCompile, "c", false, "Compile to MicroSim assembly")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.OutputFile, "o", "a.asm", "Assembly output file")
	flag.IntVar(&options.WordSize, "w", 32, "Interpreter word size in bits (8, 16 or 32)")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum executed statements, 0 = unlimited")
	flag.StringVar(&options.DumpFormat, "d", runner.DumpText, "Final state format (text, yaml)")
	flag.StringVar(&options.ExpectFile, "e", "", "YAML file with the expected final state")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	if err := options.Run(); err != nil {
		log.Fatal("Run failed", "error", err)
	}
}
