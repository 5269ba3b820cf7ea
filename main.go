//go:build !js

package main

import (
	"flag"
	"fmt"
	"os"

	"gotranslator/pkg/compiler"
	"gotranslator/pkg/interp"
	"gotranslator/pkg/utils"
)

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output IR file path (default: input with .ir extension)")
	runProgram := flag.Bool("run", false, "interpret the generated IR file")
	runIRPath := flag.String("run-ir", "", "interpret an existing IR file")
	showIR := flag.Bool("show-ir", false, "print the generated IR to stdout")
	flag.Parse()

	if *runProgram && *runIRPath != "" {
		fmt.Fprintln(os.Stderr, "use either -run or -run-ir, not both")
		os.Exit(2)
	}

	translatedOutput := ""
	if *inPath != "" {
		source, err := utils.ReadSource(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
			os.Exit(1)
		}

		text, instrs, err := compiler.Compile(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if *showIR {
			fmt.Print(text)
		}

		output := *outPath
		if output == "" {
			output = defaultOutputPath(*inPath)
		}

		if err := writeIR(output, text); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write IR file %q: %v\n", output, err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "translated %d instructions -> %s\n", len(instrs), output)
		translatedOutput = output
	}

	if *inPath == "" && *runIRPath == "" && !*runProgram {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to translate, -run to interpret translated output, or -run-ir <file> to interpret an existing IR file")
		flag.Usage()
		os.Exit(2)
	}

	runTarget := ""
	switch {
	case *runIRPath != "":
		runTarget = *runIRPath
	case *runProgram:
		if translatedOutput == "" {
			fmt.Fprintln(os.Stderr, "-run requires -in, or use -run-ir <file>")
			os.Exit(2)
		}
		runTarget = translatedOutput
	default:
		return
	}

	if err := runIR(runTarget); err != nil {
		fmt.Fprintf(os.Stderr, "run failed for %q: %v\n", runTarget, err)
		os.Exit(1)
	}
}

func defaultOutputPath(inPath string) string {
	return utils.ReplaceExt(inPath, ".ir")
}

func writeIR(path string, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

func runIR(path string) error {
	text, err := utils.ReadSource(path)
	if err != nil {
		return err
	}
	return interp.Interpret(text, interp.NewStreamTerminal(os.Stdin, os.Stdout))
}
