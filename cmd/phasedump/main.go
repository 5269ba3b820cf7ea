package main

import (
	"fmt"
	"os"
	"strings"

	"gotranslator/pkg/compiler"
	"gotranslator/pkg/ir"
	"gotranslator/pkg/utils"
)

const testSource = `dim x, y %;
x as 10;
y as x * 2;
write(x + y);
end
`

// Prints every phase of the translation of one source file: tokens, AST,
// the emitted IR lines and the IR parsed back into instructions.
func main() {
	src := testSource
	if len(os.Args) > 1 {
		data, err := utils.ReadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = data
	}

	fmt.Printf("Source:\n%s\n", src)

	tokens, err := compiler.Lex(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	program, err := compiler.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	fmt.Println("AST")
	for _, item := range program.Items {
		fmt.Println(" ", item)
	}
	fmt.Println()

	var lines []string
	err = compiler.Generate(program, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "codegen error:", err)
		os.Exit(1)
	}

	fmt.Printf("Generated IR (%d lines)\n", len(lines))
	for i, line := range lines {
		fmt.Printf("%4d  %s\n", i+1, line)
	}
	fmt.Println()

	instrs, err := ir.Parse(strings.Join(lines, "\n"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ir error:", err)
		os.Exit(1)
	}

	fmt.Println("Instructions")
	for _, in := range instrs {
		fmt.Printf("  %-10T %s\n", in, in)
	}
}
