package number

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	cases := []struct {
		num, den     int64
		wantN, wantD int64
	}{
		{3, 1, 3, 1},
		{-1, 2, -1, 2},
		{1, -2, -1, 2},
		{-6, -4, 3, 2},
		{300, 1, 300, 1},
		{0, 5, 0, 1},
	}
	for _, c := range cases {
		n1 := NewNatural(c.num, c.den).Normalize()
		gotN, gotD := n1.Natural()
		require.Equal(t, c.wantN, gotN, "numerator for %d/%d", c.num, c.den)
		require.Equal(t, c.wantD, gotD, "denominator for %d/%d", c.num, c.den)

		n2 := n1.Normalize()
		require.True(t, n1.Equal(n2), "normalize not idempotent for %d/%d", c.num, c.den)
	}
}

func TestIsZero(t *testing.T) {
	require.True(t, NewNatural(0, 7).IsZero())
	require.False(t, NewNatural(1, 7).IsZero())
	require.True(t, NewFiniteField(0, 0).IsZero())
	require.False(t, NewFiniteField(1, 0).IsZero())
	require.False(t, NewLarge(big.NewRat(3, 4)).IsZero())
}

func TestEqualityIsPreNormalization(t *testing.T) {
	a := NewNatural(2, 4)
	b := NewNatural(1, 2)
	require.False(t, a.Equal(b), "Equal must not normalize implicitly")
	require.True(t, a.Normalize().Equal(b.Normalize()))
}

func TestToBorrowedRoundTrips(t *testing.T) {
	r := big.NewRat(22, 7)
	n := NewLarge(r)
	view := n.ToBorrowed()
	require.Equal(t, KindLarge, view.Kind())
	require.Same(t, r, view.Large())

	back := view.ToOwned()
	require.True(t, back.Equal(n))
}

func TestNaturalAndFiniteFieldAccessorsPanicOnWrongKind(t *testing.T) {
	n := NewNatural(1, 1)
	require.Panics(t, func() { n.Large() })
	require.Panics(t, func() { n.FiniteField() })

	f := NewFiniteField(5, 2)
	require.Panics(t, func() { f.Natural() })
	require.Panics(t, func() { f.Large() })
}

func TestAbsU64HandlesMinInt64(t *testing.T) {
	require.Equal(t, uint64(1)<<63, absU64(math.MinInt64))
}

func TestGcdSigned(t *testing.T) {
	require.Equal(t, int64(1), gcdSigned(-1, 2))
	require.Equal(t, int64(-1), gcdSigned(1, -2))
	require.Equal(t, int64(-2), gcdSigned(-6, -4))
	require.Equal(t, int64(2), gcdSigned(6, 4))
}
