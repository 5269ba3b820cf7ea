package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		op   string
		a, b int64
		want bool
		ok   bool
	}{
		{"=", 2, 2, true, true},
		{"<>", 2, 2, false, true},
		{"<", 1, 2, true, true},
		{"<=", 2, 2, true, true},
		{">", 1, 2, false, true},
		{">=", 3, 2, true, true},
		{"+", 1, 2, false, false},
	}
	for _, tc := range tests {
		got, ok := Compare(tc.op, tc.a, tc.b)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Compare(%q, %d, %d) = (%t, %t); want (%t, %t)", tc.op, tc.a, tc.b, got, ok, tc.want, tc.ok)
		}
	}

	if got, ok := Compare("<", 1.5, 2.0); !got || !ok {
		t.Errorf("Compare(<, 1.5, 2.0) = (%t, %t); want (true, true)", got, ok)
	}
}

func TestIntPow(t *testing.T) {
	tests := []struct {
		base, exp, want int64
	}{
		{2, 0, 1},
		{2, 10, 1024},
		{-3, 3, -27},
		{0, 0, 1},
		{7, 1, 7},
	}
	for _, tc := range tests {
		if got := IntPow(tc.base, tc.exp); got != tc.want {
			t.Errorf("IntPow(%d, %d) = %d; want %d", tc.base, tc.exp, got, tc.want)
		}
	}
}
