package packed

import (
	"math"
	"math/big"
	"testing"

	"github.com/oisee/numcore/pkg/number"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, n number.Number) {
	t.Helper()
	buf := WritePacked(n, nil)
	view, rest := GetNumberView(buf)
	require.Empty(t, rest)
	require.True(t, view.ToOwned().Equal(n), "round trip mismatch for %v", n)
	require.Equal(t, len(buf), GetPackedSize(n))

	skipped := SkipRational(buf)
	require.Empty(t, skipped)
}

func TestRoundTripNaturalWidths(t *testing.T) {
	cases := []struct {
		num, den int64
	}{
		{0, 1},
		{1, 1},
		{-1, 1},
		{127, 1},
		{-200, 1},
		{1, 300},
		{70000, 1},
		{1, 70000},
		{math.MaxInt64, 1},
		{math.MinInt64, 1},
		{3, 4},
		{-3, 4},
	}
	for _, c := range cases {
		roundTrip(t, number.NewNatural(c.num, c.den))
	}
}

func TestRoundTripLarge(t *testing.T) {
	cases := []*big.Rat{
		big.NewRat(22, 7),
		big.NewRat(-22, 7),
		new(big.Rat).SetInt(big.NewInt(0).Lsh(big.NewInt(1), 256)),
	}
	for _, r := range cases {
		roundTrip(t, number.NewLarge(r))
	}
}

func TestRoundTripFiniteField(t *testing.T) {
	roundTrip(t, number.NewFiniteField(5, 2))
	roundTrip(t, number.NewFiniteField(0, 0))
}

func TestWritePackedFixedAgreesWithGetPackedSize(t *testing.T) {
	ns := []number.Number{
		number.NewNatural(0, 1),
		number.NewNatural(-70000, 3),
		number.NewFiniteField(9, 1),
	}
	for _, n := range ns {
		size := GetPackedSize(n)
		dest := make([]byte, size)
		WritePackedFixed(n, dest)

		view, rest := GetNumberView(dest)
		require.Empty(t, rest)
		require.True(t, view.ToOwned().Equal(n))
	}
}

func TestWritePackedFixedPanicsOnLarge(t *testing.T) {
	n := number.NewLarge(big.NewRat(1, 3))
	dest := make([]byte, GetPackedSize(n))
	require.Panics(t, func() { WritePackedFixed(n, dest) })
}

func TestIsZeroRatAndIsOneRat(t *testing.T) {
	zero := WritePacked(number.NewNatural(0, 1), nil)
	one := WritePacked(number.NewNatural(1, 1), nil)
	two := WritePacked(number.NewNatural(2, 1), nil)

	require.True(t, IsZeroRat(zero))
	require.False(t, IsZeroRat(one))
	require.True(t, IsOneRat(one))
	require.False(t, IsOneRat(zero))
	require.False(t, IsOneRat(two))
}

func TestSkipRationalOverMultipleEntries(t *testing.T) {
	var buf []byte
	buf = WritePacked(number.NewNatural(1, 2), buf)
	buf = WritePacked(number.NewNatural(70000, 1), buf)
	buf = WritePacked(number.NewFiniteField(3, 0), buf)

	rest := SkipRational(buf)
	rest = SkipRational(rest)
	rest = SkipRational(rest)
	require.Empty(t, rest)
}

func TestDiscriminatorRejectsAmbiguousCodes(t *testing.T) {
	require.Panics(t, func() { validateDiscriminator(0) })       // NUM code 0
	require.Panics(t, func() { validateDiscriminator(6) })       // NUM code 6
	require.Panics(t, func() { validateDiscriminator(0x51) })    // DEN code 5
	require.Panics(t, func() { validateDiscriminator(0x61) })    // DEN code 6
	require.Panics(t, func() { validateDiscriminator(0x80 | 5) }) // sign + FIN_NUM
	require.Panics(t, func() { validateDiscriminator(0x80 | 7) }) // sign + ARB_NUM
}

func TestGetFracU64IgnoresSign(t *testing.T) {
	buf := WritePacked(number.NewNatural(-5, 2), nil)
	n, d, rest := GetFracU64(buf)
	require.Equal(t, uint64(5), n)
	require.Equal(t, uint64(2), d)
	require.Empty(t, rest)
}
