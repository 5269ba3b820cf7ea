package compiler

import (
	"errors"
	"fmt"
	"strings"

	"gotranslator/pkg/ir"
)

// Compile translates source text to IR text and checks that the text
// parses back into instructions. Errors are wrapped with the phase that
// produced them; the typed error stays reachable through errors.As.
func Compile(src string) (string, []ir.Instr, error) {
	program, err := Parse(src)
	if err != nil {
		var lexErr *LexError
		if errors.As(err, &lexErr) {
			return "", nil, fmt.Errorf("lex error: %w", err)
		}
		return "", nil, fmt.Errorf("parse error: %w", err)
	}

	var out strings.Builder
	err = Generate(program, func(line string) {
		out.WriteString(line)
		out.WriteByte('\n')
	})
	if err != nil {
		return "", nil, fmt.Errorf("codegen error: %w", err)
	}

	text := out.String()
	instrs, err := ir.Parse(text)
	if err != nil {
		return text, nil, fmt.Errorf("ir error: %w", err)
	}
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if i < len(instrs) && instrs[i].String() != line {
			return text, nil, fmt.Errorf("ir error: %w", &ir.ParseError{
				Line: i + 1,
				Text: line,
				Msg:  fmt.Sprintf("re-reads as %q", instrs[i].String()),
			})
		}
	}
	return text, instrs, nil
}
