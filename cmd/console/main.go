package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"gotranslator/pkg/compiler"
	"gotranslator/pkg/interp"
	"gotranslator/pkg/utils"
)

// usage: console <source> [--show-ir] [--hibernate file] [--resume file]
//
// With --hibernate, a run that stops on end of input saves the machine to
// file instead of failing. --resume restores such a file and continues it
// with fresh input.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <source> [--show-ir] [--hibernate file] [--resume file]", os.Args[0])
	}
	filename := os.Args[1]

	opts := flag.NewFlagSet("console", flag.ExitOnError)
	showIR := opts.Bool("show-ir", false, "print the generated IR before running")
	hibernatePath := opts.String("hibernate", "", "save the machine here when input runs out")
	resumePath := opts.String("resume", "", "restore the machine from this snapshot before running")
	_ = opts.Parse(os.Args[2:])

	fullPath, baseDir, err := utils.GetPathInfo(filename)
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	source, err := utils.ReadSource(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	fmt.Fprintln(os.Stderr, "Translating source file:", fullPath)
	fmt.Fprintln(os.Stderr, "Base directory:", baseDir)

	text, program, err := compiler.Compile(source)
	if err != nil {
		log.Fatalf("Translation failed: %v", err)
	}

	if *showIR {
		fmt.Print("Generated IR:\n", text, "\n")
	}

	vm := interp.NewMachine(interp.NewStreamTerminal(os.Stdin, os.Stdout))
	if *resumePath != "" {
		if err := vm.RestoreFromFile(*resumePath); err != nil {
			log.Fatalf("Failed to restore %s: %v", *resumePath, err)
		}
	} else if err := vm.Load(program); err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	err = vm.Run()
	if err != nil && *hibernatePath != "" && errors.Is(err, interp.ErrEndOfInput) {
		if err := vm.HibernateToFile(*hibernatePath); err != nil {
			log.Fatalf("Failed to hibernate: %v", err)
		}
		fmt.Fprintf(os.Stderr, "input exhausted, machine saved to %s after %d steps\n", *hibernatePath, vm.Steps)
		return
	}
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
