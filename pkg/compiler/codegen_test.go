package compiler

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"gotranslator/pkg/ir"
)

// generate parses src and returns the emitted IR lines.
func generate(t *testing.T, src string) []string {
	t.Helper()
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var lines []string
	if err := Generate(block, func(line string) { lines = append(lines, line) }); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return lines
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Integer constants fold",
			input: "dim x %; x as 2 + 3; end",
			want:  []string{"x = 5"},
		},
		{
			name:  "Mixed constants fold to Float",
			input: "dim x !; x as 2 + 3.0; end",
			want:  []string{"x = 5.0"},
		},
		{
			name:  "Integer variable is cast before Float arithmetic",
			input: "dim a %; dim y !; y as a + 3.0; end",
			want:  []string{"#t0 = Float(a)", "y = #t0 + 3.0"},
		},
		{
			name:  "Sub-expressions use temporaries",
			input: "dim a, b, c %; c as (a + b) * (a - b); end",
			want:  []string{"#t0 = a + b", "#t1 = a - b", "c = #t0 * #t1"},
		},
		{
			name:  "Integer expression assigned to Float",
			input: "dim a %; dim f !; f as a * 2; end",
			want:  []string{"#t0 = a * 2", "f = Float(#t0)"},
		},
		{
			name:  "Integer variable assigned to Float",
			input: "dim a %; dim f !; f as a; end",
			want:  []string{"f = Float(a)"},
		},
		{
			name:  "Integer constant assigned to Float",
			input: "dim f !; f as 7; end",
			want:  []string{"f = 7.0"},
		},
		{
			name:  "Unary not",
			input: "dim a, b $; a as not b; b as not true; end",
			want:  []string{"a = not b", "b = False"},
		},
		{
			name:  "String concatenation folds",
			input: `write("a" + "b"); end`,
			want:  []string{`Output("ab")`},
		},
		{
			name:  "Division by zero is left for runtime",
			input: "dim x %; x as 1 / 0; end",
			want:  []string{"x = 1 / 0"},
		},
		{
			name:  "Mixed comparison folds",
			input: "dim b $; b as 1 < 2.5; end",
			want:  []string{"b = True"},
		},
		{
			name:  "Output keeps the top operation inline",
			input: "dim x %; x as 1; write(x + 1, x); end",
			want:  []string{"x = 1", "Output(x + 1)", "Output(x)"},
		},
		{
			name:  "Radix literals",
			input: "dim x %; x as 1010b + 1Ah; end",
			want:  []string{"x = 36"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Generate() mismatch.\nGot:  %q\nWant: %q", got, tt.want)
			}
		})
	}
}

func TestGenerateInput(t *testing.T) {
	got := generate(t, "dim n %; dim s @; dim f !; read(n, s, f); end")
	want := []string{"Input(n)", "n = Integer(n)", "Input(s)", "Input(f)", "f = Float(f)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate() mismatch.\nGot:  %q\nWant: %q", got, want)
	}
}

func TestGenerateShadowing(t *testing.T) {
	src := `dim x %;
x as 1;
if true then
  dim x @;
  x as "in";
  write(x);
endif
write(x);
end`
	want := []string{
		"x = 1",
		"if True goto @l0",
		"goto @l1",
		"@l0:",
		`#t0 = "in"`,
		"Output(#t0)",
		"@l1:",
		"Output(x)",
	}
	got := generate(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate() mismatch.\nGot:  %q\nWant: %q", got, want)
	}
}

func TestGenerateRenamesLiteralSpelledNames(t *testing.T) {
	src := `dim True %;
dim False $;
True as 5;
False as True > 2;
write(True + 1, False);
end`
	want := []string{
		"#t0 = 5",
		"#t1 = #t0 > 2",
		"Output(#t0 + 1)",
		"Output(#t1)",
	}
	got := generate(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate() mismatch.\nGot:  %q\nWant: %q", got, want)
	}
}

func TestGenerateSiblingScopesReuseName(t *testing.T) {
	src := "if true then dim y %; y as 1; endif if true then dim y !; y as 2.0; endif end"
	got := strings.Join(generate(t, src), "\n")
	if !strings.Contains(got, "y = 1") || !strings.Contains(got, "y = 2.0") {
		t.Errorf("expected both sibling declarations to keep the name y, got:\n%s", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pos     Pos
		message string
	}{
		{"Undeclared variable", "x as 1; end", Pos{1, 1}, `variable "x" is not declared`},
		{"Redeclared in same scope", "dim x %; dim x !; end", Pos{1, 14}, `variable "x" is already declared`},
		{"String into Integer", "dim s @; s as 1; end", Pos{1, 15}, "cannot assign Integer value to String variable"},
		{"Float into Integer", "dim i %; i as 1.5; end", Pos{1, 15}, "cannot assign Float value to Integer variable"},
		{"Operator on wrong types", `dim s @; s as "a" - "b"; end`, Pos{1, 19}, "operator `-` cannot be applied to String and String"},
		{"Not on Integer", "dim b $; b as not 1; end", Pos{1, 15}, "operator `not` cannot be applied to Integer"},
		{"Non-Bool condition", "dim x %; if x then endif end", Pos{1, 13}, "condition must be Bool, got Integer"},
		{"Non-Bool while guard", "while 1 + 1 do endwhile end", Pos{1, 7}, "condition must be Bool"},
		{"Float loop variable", "dim f !; for f as 1 to 2 do endfor end", Pos{1, 14}, `loop variable "f" must be Integer`},
		{"String loop bound", `dim i %; for i as 1 to "a" do endfor end`, Pos{1, 24}, "operator `>` cannot be applied to Integer and String"},
		{"Out of scope", "if true then dim y %; endif y as 1; end", Pos{1, 29}, `variable "y" is not declared`},
		{"Undeclared read", "read(q); end", Pos{1, 6}, `variable "q" is not declared`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			err = Generate(block, func(string) {})
			var cgErr *CodeGenError
			if !errors.As(err, &cgErr) {
				t.Fatalf("expected *CodeGenError, got %T (%v)", err, err)
			}
			if cgErr.Pos != tt.pos {
				t.Errorf("expected error at %v, got %v (%v)", tt.pos, cgErr.Pos, err)
			}
			if !strings.Contains(cgErr.Msg, tt.message) {
				t.Errorf("expected message containing %q, got %q", tt.message, cgErr.Msg)
			}
		})
	}
}

// Every emitted line must parse back into an instruction that renders to
// the same text.
func TestGeneratedLinesRoundTrip(t *testing.T) {
	src := `dim i, n %;
dim f !;
dim s @;
dim ok $;
dim True %;
read(n, s);
True as n + 1;
write(True);
f as n / 2 + 0.5;
ok as (f >= 1.0) and (s <> "");
for i as 1 to n * 2 do
  if i = 3 then
    write("three\n");
  else if not ok then
    write(i ^ 2, f - i);
  else
    write(s + "!");
  endif
endfor
while ok do
  ok as false;
endwhile
end`
	for _, line := range generate(t, src) {
		in, err := ir.ParseLine(line)
		if err != nil {
			t.Errorf("ParseLine(%q) error = %v", line, err)
			continue
		}
		if in.String() != line {
			t.Errorf("round trip: %q became %q", line, in.String())
		}
	}
}
