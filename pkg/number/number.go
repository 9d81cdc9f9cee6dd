// Package number implements the tagged rational/finite-field coefficient
// that backs every atom in the symbolic-expression core: a machine-word
// rational that transparently promotes to arbitrary precision on overflow,
// or an element of an indexed finite field.
package number

import (
	"fmt"
	"math/big"
)

// Kind discriminates the payload a Number or BorrowedNumber carries.
type Kind uint8

const (
	// KindNatural is a rational whose numerator and denominator both fit
	// in a signed 64-bit word.
	KindNatural Kind = iota
	// KindLarge is an arbitrary-precision rational.
	KindLarge
	// KindFiniteField is an element of an indexed finite field.
	KindFiniteField
)

func (k Kind) String() string {
	switch k {
	case KindNatural:
		return "Natural"
	case KindLarge:
		return "Large"
	case KindFiniteField:
		return "FiniteField"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// FieldIndex identifies one entry in a collaborating State's field table.
type FieldIndex uint32

// Field is the arithmetic a finite field must provide on its element
// representation. Implementations are expected to keep elements reduced:
// Add and Mul always return a value in [0, Prime()).
type Field interface {
	Add(a, b uint64) uint64
	Mul(a, b uint64) uint64
	Prime() uint64
}

// State is the read-only collaborator the coefficient layer consumes to
// resolve a FieldIndex to the Field that can operate on it. The core never
// mutates a State; callers own synchronizing any mutation of the
// collaborator's field table against concurrent arithmetic.
type State interface {
	Field(idx FieldIndex) Field
}

// Number is an owned coefficient: a machine rational, an arbitrary-precision
// rational, or a finite-field element. The zero value is a Natural with
// numerator and denominator both 0, which is not a valid coefficient;
// NewNatural(0, 1) builds zero.
//
// Number is immutable once constructed; every operation that would "change"
// a Number instead returns a new one.
type Number struct {
	kind Kind

	// Natural
	num, den int64

	// Large
	big *big.Rat

	// FiniteField
	ffElem  uint64
	ffIndex FieldIndex
}

// NewNatural builds a Number from a raw (num, den) pair without normalizing.
// den must be non-zero; callers that need canonical form should call
// Normalize on the result (or on the BorrowedNumber view).
func NewNatural(num, den int64) Number {
	if den == 0 {
		panic(&LogicError{Msg: "Natural denominator must not be zero"})
	}
	return Number{kind: KindNatural, num: num, den: den}
}

// NewLarge wraps an arbitrary-precision rational. r is not copied; callers
// must not mutate r after handing it to NewLarge.
func NewLarge(r *big.Rat) Number {
	return Number{kind: KindLarge, big: r}
}

// NewFiniteField builds a finite-field coefficient. elem is assumed already
// reduced modulo the field at idx.
func NewFiniteField(elem uint64, idx FieldIndex) Number {
	return Number{kind: KindFiniteField, ffElem: elem, ffIndex: idx}
}

// Kind reports which variant n holds.
func (n Number) Kind() Kind { return n.kind }

// Natural returns the (num, den) pair of a Natural Number. It panics if n is
// not Natural.
func (n Number) Natural() (int64, int64) {
	if n.kind != KindNatural {
		panic(&LogicError{Msg: "Natural() called on non-Natural Number", Kind: n.kind})
	}
	return n.num, n.den
}

// Large returns the *big.Rat of a Large Number. It panics if n is not Large.
func (n Number) Large() *big.Rat {
	if n.kind != KindLarge {
		panic(&LogicError{Msg: "Large() called on non-Large Number", Kind: n.kind})
	}
	return n.big
}

// FiniteField returns the (element, field index) pair of a FiniteField
// Number. It panics if n is not FiniteField.
func (n Number) FiniteField() (uint64, FieldIndex) {
	if n.kind != KindFiniteField {
		panic(&LogicError{Msg: "FiniteField() called on non-FiniteField Number", Kind: n.kind})
	}
	return n.ffElem, n.ffIndex
}

// IsZero reports whether n is the additive identity of its variant.
// Natural is zero iff its numerator is zero (the denominator is ignored).
// Large is never constructed as a literal zero by this package (Naturals
// take that case), but a *big.Rat with Sign() == 0 is still reported zero.
// FiniteField is zero iff its element is 0.
func (n Number) IsZero() bool {
	switch n.kind {
	case KindNatural:
		return n.num == 0
	case KindLarge:
		return n.big.Sign() == 0
	case KindFiniteField:
		return n.ffElem == 0
	default:
		panic(&LogicError{Msg: "IsZero on unknown Kind", Kind: n.kind})
	}
}

// ToBorrowed produces a zero-copy view of n. The view must not outlive n.
func (n Number) ToBorrowed() BorrowedNumber {
	switch n.kind {
	case KindNatural:
		return BorrowedNumber{kind: KindNatural, num: n.num, den: n.den}
	case KindLarge:
		return BorrowedNumber{kind: KindLarge, big: n.big}
	case KindFiniteField:
		return BorrowedNumber{kind: KindFiniteField, ffElem: n.ffElem, ffIndex: n.ffIndex}
	default:
		panic(&LogicError{Msg: "ToBorrowed on unknown Kind", Kind: n.kind})
	}
}

// Normalize reduces n to canonical form: Natural is divided through by
// gcd(|num|, |den|) with the sign carried on the numerator; Large and
// FiniteField are assumed canonical already and are returned unchanged.
func (n Number) Normalize() Number {
	return n.ToBorrowed().Normalize()
}

// Equal is structural equality on the variant. Naturals compare
// pre-normalization: callers that want value-equality must Normalize first.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindNatural:
		return n.num == o.num && n.den == o.den
	case KindLarge:
		return n.big.Cmp(o.big) == 0
	case KindFiniteField:
		return n.ffElem == o.ffElem && n.ffIndex == o.ffIndex
	default:
		return false
	}
}

func (n Number) String() string {
	switch n.kind {
	case KindNatural:
		if n.den == 1 {
			return fmt.Sprintf("%d", n.num)
		}
		return fmt.Sprintf("%d/%d", n.num, n.den)
	case KindLarge:
		return n.big.RatString()
	case KindFiniteField:
		return fmt.Sprintf("%d (mod field #%d)", n.ffElem, n.ffIndex)
	default:
		return "<invalid Number>"
	}
}

// BorrowedNumber is a structurally-identical view of Number that holds a
// reference to a Large's *big.Rat rather than owning a copy. It is produced
// by Number.ToBorrowed or by the packed codec's GetNumberView, and must not
// outlive the Number or byte slice it was read from.
type BorrowedNumber struct {
	kind Kind

	num, den int64

	big *big.Rat

	ffElem  uint64
	ffIndex FieldIndex
}

// BorrowedNatural builds a BorrowedNumber view directly from a (num, den)
// pair, as used by the packed codec when decoding a Natural run.
func BorrowedNatural(num, den int64) BorrowedNumber {
	return BorrowedNumber{kind: KindNatural, num: num, den: den}
}

// BorrowedLarge builds a BorrowedNumber view over an existing *big.Rat
// without copying it.
func BorrowedLarge(r *big.Rat) BorrowedNumber {
	return BorrowedNumber{kind: KindLarge, big: r}
}

// BorrowedFiniteField builds a BorrowedNumber view of a finite-field element.
func BorrowedFiniteField(elem uint64, idx FieldIndex) BorrowedNumber {
	return BorrowedNumber{kind: KindFiniteField, ffElem: elem, ffIndex: idx}
}

// Kind reports which variant b holds.
func (b BorrowedNumber) Kind() Kind { return b.kind }

// Natural returns the (num, den) pair of a Natural view. It panics if b is
// not Natural.
func (b BorrowedNumber) Natural() (int64, int64) {
	if b.kind != KindNatural {
		panic(&LogicError{Msg: "Natural() called on non-Natural BorrowedNumber", Kind: b.kind})
	}
	return b.num, b.den
}

// Large returns the *big.Rat a Large view points at. It panics if b is not
// Large.
func (b BorrowedNumber) Large() *big.Rat {
	if b.kind != KindLarge {
		panic(&LogicError{Msg: "Large() called on non-Large BorrowedNumber", Kind: b.kind})
	}
	return b.big
}

// FiniteField returns the (element, field index) pair of a FiniteField view.
// It panics if b is not FiniteField.
func (b BorrowedNumber) FiniteField() (uint64, FieldIndex) {
	if b.kind != KindFiniteField {
		panic(&LogicError{Msg: "FiniteField() called on non-FiniteField BorrowedNumber", Kind: b.kind})
	}
	return b.ffElem, b.ffIndex
}

// IsZero mirrors Number.IsZero for a borrowed view.
func (b BorrowedNumber) IsZero() bool {
	return b.ToOwned().IsZero()
}

// ToOwned clones a BorrowedNumber into an owned Number. For the Large case
// this shares the *big.Rat pointer, matching the Rust original's Clone on a
// reference-counted rational: the caller must not mutate a shared *big.Rat.
func (b BorrowedNumber) ToOwned() Number {
	switch b.kind {
	case KindNatural:
		return Number{kind: KindNatural, num: b.num, den: b.den}
	case KindLarge:
		return Number{kind: KindLarge, big: b.big}
	case KindFiniteField:
		return Number{kind: KindFiniteField, ffElem: b.ffElem, ffIndex: b.ffIndex}
	default:
		panic(&LogicError{Msg: "ToOwned on unknown Kind", Kind: b.kind})
	}
}

// Normalize reduces a Natural view by gcd(|num|, |den|), carrying sign on
// the numerator. Large and FiniteField views are returned unchanged (via
// ToOwned) since both are assumed canonical on construction.
func (b BorrowedNumber) Normalize() Number {
	if b.kind != KindNatural {
		return b.ToOwned()
	}
	g := gcdSigned(b.num, b.den)
	return Number{kind: KindNatural, num: b.num / g, den: b.den / g}
}
