package number

import "math/bits"

// absU64 returns the magnitude of a signed 64-bit value as an unsigned one.
// This also correctly handles math.MinInt64, whose negation overflows
// int64 but whose bit pattern, reinterpreted as uint64, already is 2^63.
func absU64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// gcdU64 is the Euclidean algorithm over unsigned magnitudes. There is no
// standard-library or ecosystem gcd for machine integers in this corpus
// (math/big.Int.GCD operates on arbitrary-precision values); see DESIGN.md.
func gcdU64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// gcdSigned returns a divisor g such that num/g and den/g are the reduced
// Natural pair: den/g is positive, and the sign of num/g matches the sign
// of the original fraction num/den. Dividing both fields of a Natural by
// gcdSigned(num, den) normalizes it in one step.
func gcdSigned(num, den int64) int64 {
	g := gcdU64(absU64(num), absU64(den))
	if g == 0 {
		g = 1
	}
	gi := int64(g)
	if den < 0 {
		gi = -gi
	}
	return gi
}

// addI64Checked returns a+b and true if the addition stayed within int64.
func addI64Checked(a, b int64) (int64, bool) {
	sum := a + b
	// Overflow iff operands share a sign but the result's sign differs.
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		return 0, false
	}
	return sum, true
}

// mulI64Checked returns a*b and true if the multiplication stayed within
// int64. Implemented via bits.Mul64 on magnitudes, which sidesteps the
// a/b-roundtrip idiom's edge case at math.MinInt64.
func mulI64Checked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absU64(a), absU64(b))
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return -int64(lo), true
	}
	if lo >= 1<<63 {
		return 0, false
	}
	return int64(lo), true
}

// powI64Checked computes base^exp (exp >= 0) via checked squaring,
// reporting false the moment any intermediate multiplication overflows.
func powI64Checked(base int64, exp uint32) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			result, ok = mulI64Checked(result, base)
			if !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		var ok bool
		base, ok = mulI64Checked(base, base)
		if !ok {
			return 0, false
		}
	}
	return result, true
}
