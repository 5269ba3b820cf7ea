package ir

// Compare evaluates a relational operator. ok is false when op is not one.
func Compare[T int64 | float64](op string, a, b T) (result, ok bool) {
	switch op {
	case "=":
		return a == b, true
	case "<>":
		return a != b, true
	case "<":
		return a < b, true
	case "<=":
		return a <= b, true
	case ">":
		return a > b, true
	case ">=":
		return a >= b, true
	}
	return false, false
}

// IntPow computes base^exp for exp >= 0 with wrapping overflow.
func IntPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
