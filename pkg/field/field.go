// Package field provides a concrete number.State backed by a table of
// prime moduli, so the core arithmetic in pkg/number never has to know how
// a finite field is represented. Each Field is a minimal POD value: a
// single prime, cheap to copy.
package field

import (
	"fmt"
	"math/bits"

	"github.com/oisee/numcore/pkg/number"
)

// Prime is the modulus of one finite field entry in a Table.
type Prime struct {
	value uint64
}

// NewPrime wraps p as a field modulus. It does not verify primality —
// callers are expected to register only values they know to be prime.
func NewPrime(p uint64) Prime {
	if p < 2 {
		panic(fmt.Sprintf("field: modulus %d is not a valid prime", p))
	}
	return Prime{value: p}
}

// Add returns (a + b) mod p, guarding against the sum overflowing uint64
// before the reduction.
func (f Prime) Add(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		_, sum = bits.Div64(carry, sum, f.value)
		return sum
	}
	return sum % f.value
}

// Mul returns (a * b) mod p using a full 128-bit product so neither
// operand needs to be pre-reduced below sqrt(2^64).
func (f Prime) Mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo % f.value
	}
	_, rem := bits.Div64(hi%f.value, lo, f.value)
	return rem
}

// Prime returns the field's modulus.
func (f Prime) Prime() uint64 { return f.value }

// Table is a registry of finite fields, indexed by number.FieldIndex —
// the concrete number.State the core arithmetic dispatches FiniteField
// operations against.
type Table struct {
	fields []Prime
}

// NewTable builds a Table from a list of prime moduli, assigning them
// FieldIndex values 0..len(primes)-1 in order.
func NewTable(primes ...uint64) *Table {
	t := &Table{fields: make([]Prime, 0, len(primes))}
	for _, p := range primes {
		t.Register(p)
	}
	return t
}

// Register appends a new prime field to the table and returns the
// FieldIndex it was assigned. Table takes no locks: Register must not run
// concurrently with another Register or with Field lookups.
func (t *Table) Register(p uint64) number.FieldIndex {
	idx := number.FieldIndex(len(t.fields))
	t.fields = append(t.fields, NewPrime(p))
	return idx
}

// Field implements number.State, resolving idx to the registered Prime.
// It panics if idx is out of range: an unregistered field index reaching
// arithmetic is a programming error, not recoverable input.
func (t *Table) Field(idx number.FieldIndex) number.Field {
	if int(idx) >= len(t.fields) {
		panic(&number.LogicError{Msg: fmt.Sprintf("field: index %d not registered", idx)})
	}
	return t.fields[idx]
}

// Len returns the number of registered fields.
func (t *Table) Len() int { return len(t.fields) }
