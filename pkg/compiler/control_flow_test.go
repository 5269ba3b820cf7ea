package compiler

import (
	"reflect"
	"testing"
)

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "if without else",
			input: "dim x %; if x = 1 then x as 2; endif end",
			want: []string{
				"if x = 1 goto @l0",
				"goto @l1",
				"@l0:",
				"x = 2",
				"@l1:",
			},
		},
		{
			name:  "if with else",
			input: "dim x %; if x = 1 then x as 2; else x as 3; endif end",
			want: []string{
				"if x = 1 goto @l0",
				"goto @l1",
				"@l0:",
				"x = 2",
				"goto @l2",
				"@l1:",
				"x = 3",
				"@l2:",
			},
		},
		{
			name:  "else if chain",
			input: "dim x %; if x = 1 then x as 2; else if x = 2 then x as 3; else x as 4; endif end",
			want: []string{
				"if x = 1 goto @l0",
				"if x = 2 goto @l1",
				"goto @l2",
				"@l0:",
				"x = 2",
				"goto @l3",
				"@l1:",
				"x = 3",
				"goto @l3",
				"@l2:",
				"x = 4",
				"@l3:",
			},
		},
		{
			name:  "for loop",
			input: "dim i %; for i as 1 to 3 do write(i); endfor end",
			want: []string{
				"i = 1",
				"@l0:",
				"if i > 3 goto @l1",
				"Output(i)",
				"i = i + 1",
				"goto @l0",
				"@l1:",
			},
		},
		{
			name:  "for loop with Float bound",
			input: "dim i %; for i as 0 to 2.5 do endfor end",
			want: []string{
				"i = 0",
				"@l0:",
				"#t0 = Float(i)",
				"if #t0 > 2.5 goto @l1",
				"i = i + 1",
				"goto @l0",
				"@l1:",
			},
		},
		{
			name:  "while loop",
			input: "dim b $; b as true; while b do b as false; endwhile end",
			want: []string{
				"b = True",
				"@l0:",
				"if b goto @l1",
				"goto @l2",
				"@l1:",
				"b = False",
				"goto @l0",
				"@l2:",
			},
		},
		{
			name:  "while with compound guard",
			input: "dim i %; while (i < 10) and (i <> 5) do i as i + 1; endwhile end",
			want: []string{
				"@l0:",
				"#t0 = i < 10",
				"#t1 = i <> 5",
				"if #t0 and #t1 goto @l1",
				"goto @l2",
				"@l1:",
				"i = i + 1",
				"goto @l0",
				"@l2:",
			},
		},
		{
			name:  "nested loops",
			input: "dim i, j %; for i as 1 to 2 do for j as 1 to i do write(j); endfor endfor end",
			want: []string{
				"i = 1",
				"@l0:",
				"if i > 2 goto @l1",
				"j = 1",
				"@l2:",
				"if j > i goto @l3",
				"Output(j)",
				"j = j + 1",
				"goto @l2",
				"@l3:",
				"i = i + 1",
				"goto @l0",
				"@l1:",
			},
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
