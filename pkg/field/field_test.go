package field

import (
	"math"
	"testing"
)

func TestAddWithinRange(t *testing.T) {
	p := NewPrime(7)
	if got := p.Add(5, 4); got != 2 {
		t.Errorf("Add(5,4) = %d, want 2", got)
	}
	if got := p.Add(3, 4); got != 0 {
		t.Errorf("Add(3,4) = %d, want 0", got)
	}
}

func TestAddOverflowsUint64(t *testing.T) {
	p := NewPrime(97)
	a := uint64(math.MaxUint64) - 3
	b := uint64(10)
	want := (a%p.value + b%p.value) % p.value
	if got := p.Add(a, b); got != want {
		t.Errorf("Add(%d,%d) = %d, want %d", a, b, got, want)
	}
}

func TestMulWithLargeOperands(t *testing.T) {
	p := NewPrime(18446744073709551557) // largest prime below 2^64
	a := uint64(math.MaxUint64) - 1
	b := uint64(math.MaxUint64) - 2
	if got := p.Mul(a, b); got >= p.value {
		t.Errorf("Mul(%d,%d) = %d, not reduced below modulus %d", a, b, got, p.value)
	}
}

func TestTableRegisterAndResolve(t *testing.T) {
	tbl := NewTable(7, 11)
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	if got := tbl.Field(0).Prime(); got != 7 {
		t.Errorf("Field(0).Prime() = %d, want 7", got)
	}
	if got := tbl.Field(1).Prime(); got != 11 {
		t.Errorf("Field(1).Prime() = %d, want 11", got)
	}

	idx := tbl.Register(13)
	if idx != 2 {
		t.Errorf("Register returned index %d, want 2", idx)
	}
	if got := tbl.Field(idx).Prime(); got != 13 {
		t.Errorf("Field(%d).Prime() = %d, want 13", idx, got)
	}
}

func TestFieldPanicsOnUnregisteredIndex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Field(5) on a one-entry table did not panic")
		}
	}()
	tbl := NewTable(7)
	tbl.Field(5)
}

func TestNewPrimeRejectsTooSmall(t *testing.T) {
	for _, p := range []uint64{0, 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewPrime(%d) did not panic", p)
				}
			}()
			NewPrime(p)
		}()
	}
}
