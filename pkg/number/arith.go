package number

import (
	"fmt"
	"math/big"
)

// ratOf lifts a Natural (num, den) pair to a *big.Rat.
func ratOf(num, den int64) *big.Rat {
	return new(big.Rat).SetFrac(big.NewInt(num), big.NewInt(den))
}

// Add dispatches on the variant of a and b. Natural+Natural is attempted in
// signed 64-bit arithmetic and silently escalates to Large on any overflow;
// Large is involved whenever either operand is Large; FiniteField operands
// must share a field index and delegate to state's Field.Add. Mixing a
// FiniteField operand with anything else is a LogicError.
func (a BorrowedNumber) Add(b BorrowedNumber, state State) Number {
	switch {
	case a.kind == KindNatural && b.kind == KindNatural:
		return addNatural(a.num, a.den, b.num, b.den)

	case a.kind == KindNatural && b.kind == KindLarge:
		return NewLarge(new(big.Rat).Add(ratOf(a.num, a.den), b.big))
	case a.kind == KindLarge && b.kind == KindNatural:
		return NewLarge(new(big.Rat).Add(a.big, ratOf(b.num, b.den)))

	case a.kind == KindLarge && b.kind == KindLarge:
		return NewLarge(new(big.Rat).Add(a.big, b.big))

	case a.kind == KindFiniteField && b.kind == KindFiniteField:
		if a.ffIndex != b.ffIndex {
			panic(&LogicError{Msg: fmt.Sprintf(
				"cannot add numbers from different finite fields: field #%d vs field #%d",
				a.ffIndex, b.ffIndex)})
		}
		f := state.Field(a.ffIndex)
		return NewFiniteField(f.Add(a.ffElem, b.ffElem), a.ffIndex)

	case a.kind == KindFiniteField || b.kind == KindFiniteField:
		panic(&LogicError{Msg: "cannot add a finite-field value to a non-finite-field number"})

	default:
		panic(&LogicError{Msg: "Add on unknown Kind combination"})
	}
}

func addNatural(n1, d1, n2, d2 int64) Number {
	if lcm, ok := mulI64Checked(d2, d1/gcdU64AsI64(d1, d2)); ok {
		if num2, ok := mulI64Checked(n2, lcm/d2); ok {
			if num1, ok := mulI64Checked(n1, lcm/d1); ok {
				if sum, ok := addI64Checked(num1, num2); ok {
					g := gcdSigned(sum, lcm)
					return Number{kind: KindNatural, num: sum / g, den: lcm / g}
				}
			}
		}
	}
	return NewLarge(new(big.Rat).Add(ratOf(n1, d1), ratOf(n2, d2)))
}

// gcdU64AsI64 returns gcd(|a|, |b|) as an int64, used where the original
// formula divides by a plain (unsigned) gcd rather than the sign-carrying
// gcdSigned used for final normalization.
func gcdU64AsI64(a, b int64) int64 {
	return int64(gcdU64(absU64(a), absU64(b)))
}

// Mul dispatches the same four cases as Add. Natural*Natural cross-cancels
// common factors before multiplying, so the checked multiplications operate
// on the smallest possible magnitudes.
func (a BorrowedNumber) Mul(b BorrowedNumber, state State) Number {
	switch {
	case a.kind == KindNatural && b.kind == KindNatural:
		return mulNatural(a.num, a.den, b.num, b.den)

	case a.kind == KindNatural && b.kind == KindLarge:
		return NewLarge(new(big.Rat).Mul(ratOf(a.num, a.den), b.big))
	case a.kind == KindLarge && b.kind == KindNatural:
		return NewLarge(new(big.Rat).Mul(a.big, ratOf(b.num, b.den)))

	case a.kind == KindLarge && b.kind == KindLarge:
		return NewLarge(new(big.Rat).Mul(a.big, b.big))

	case a.kind == KindFiniteField && b.kind == KindFiniteField:
		if a.ffIndex != b.ffIndex {
			panic(&LogicError{Msg: fmt.Sprintf(
				"cannot multiply numbers from different finite fields: field #%d vs field #%d",
				a.ffIndex, b.ffIndex)})
		}
		f := state.Field(a.ffIndex)
		return NewFiniteField(f.Mul(a.ffElem, b.ffElem), a.ffIndex)

	case a.kind == KindFiniteField || b.kind == KindFiniteField:
		panic(&LogicError{Msg: "cannot multiply a finite-field value by a non-finite-field number"})

	default:
		panic(&LogicError{Msg: "Mul on unknown Kind combination"})
	}
}

func mulNatural(n1, d1, n2, d2 int64) Number {
	gcd1 := gcdU64AsI64(n1, d2)
	gcd2 := gcdU64AsI64(d1, n2)

	nn, nnOK := mulI64Checked(n1/gcd1, n2/gcd2)
	if nnOK {
		if nd, ndOK := mulI64Checked(d1/gcd2, d2/gcd1); ndOK {
			return Number{kind: KindNatural, num: nn, den: nd}
		}
	}
	num := new(big.Int).Mul(big.NewInt(n1/gcd1), big.NewInt(n2/gcd2))
	den := new(big.Int).Mul(big.NewInt(d1/gcd2), big.NewInt(d2/gcd1))
	return NewLarge(new(big.Rat).SetFrac(num, den))
}

// Pow computes a^b where a and b are both Natural; any other combination
// is unimplemented, matching the distilled spec. A negative exponent
// inverts the base first. Exponents at or above 2^32 are a LogicError
// ("too large"), not silent truncation. The result is a (factor, residual)
// pair: the rational factor raised to the integer part of the exponent,
// and Natural(1, e_d) carrying the un-simplified root-exponent — no
// perfect-power simplification happens at this layer.
func (a BorrowedNumber) Pow(b BorrowedNumber, _ State) (Number, Number) {
	if a.kind != KindNatural || b.kind != KindNatural {
		panic(&UnimplementedError{Msg: fmt.Sprintf(
			"Pow of configuration %s^%s is not implemented", a.kind, b.kind)})
	}

	n1, d1 := a.num, a.den
	n2, d2 := b.num, b.den
	if n2 < 0 {
		n2 = -n2
		n1, d1 = d1, n1
	}

	const maxExponent = int64(1) << 32
	if n2 >= maxExponent {
		panic(&LogicError{Msg: fmt.Sprintf("exponent is too large: %d", n2)})
	}
	exp := uint32(n2)

	if pn, ok := powI64Checked(n1, exp); ok {
		if pd, ok := powI64Checked(d1, exp); ok {
			return Number{kind: KindNatural, num: pn, den: pd}, Number{kind: KindNatural, num: 1, den: d2}
		}
	}

	base := ratOf(n1, d1)
	result := new(big.Rat).SetInt64(1)
	for i := uint32(0); i < exp; i++ {
		result.Mul(result, base)
	}
	return NewLarge(result), Number{kind: KindNatural, num: 1, den: d2}
}

// Cmp is a total order across {Natural, Large} and within FiniteField
// values sharing a field. Comparisons mixing a FiniteField value with a
// differently-kinded operand are undefined and panic with a LogicError
// (well-formed input never produces them).
func (a BorrowedNumber) Cmp(b BorrowedNumber) int {
	switch {
	case a.kind == KindNatural && b.kind == KindNatural:
		return cmpNatural(a.num, a.den, b.num, b.den)

	case a.kind == KindLarge && b.kind == KindLarge:
		return a.big.Cmp(b.big)

	case a.kind == KindFiniteField && b.kind == KindFiniteField:
		switch {
		case a.ffElem < b.ffElem:
			return -1
		case a.ffElem > b.ffElem:
			return 1
		default:
			return 0
		}

	case a.kind == KindNatural && b.kind == KindLarge:
		return ratOf(a.num, a.den).Cmp(b.big)
	case a.kind == KindLarge && b.kind == KindNatural:
		return a.big.Cmp(ratOf(b.num, b.den))

	default:
		panic(&LogicError{Msg: "Cmp on an undefined Kind combination (finite field vs non-matching kind)"})
	}
}

func cmpNatural(n1, d1, n2, d2 int64) int {
	if n1 < 0 && n2 > 0 {
		return -1
	}
	if n1 > 0 && n2 < 0 {
		return 1
	}

	a1, ok1 := mulI64Checked(n1, d2)
	a2, ok2 := mulI64Checked(n2, d1)
	if ok1 && ok2 {
		switch {
		case a1 < a2:
			return -1
		case a1 > a2:
			return 1
		default:
			return 0
		}
	}
	big1 := new(big.Int).Mul(big.NewInt(n1), big.NewInt(d2))
	big2 := new(big.Int).Mul(big.NewInt(n2), big.NewInt(d1))
	return big1.Cmp(big2)
}
