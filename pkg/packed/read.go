package packed

import (
	"encoding/binary"
	"math/big"

	"github.com/oisee/numcore/pkg/number"
)

func discFields(disc uint8) (numK, denK kind) {
	return kind(disc & numMask), kind((disc & denMask) >> denShift)
}

// validateDiscriminator rejects the ambiguous/illegal bit patterns called
// out in §6: NUM code 0 or 6, DEN codes 5 or 6, and a sign bit set together
// with FIN_NUM or ARB_NUM (neither a finite-field element nor the
// magnitude-only Large encoding carries its sign on this byte).
func validateDiscriminator(disc uint8) (numK, denK kind) {
	numK, denK = discFields(disc)
	switch numK {
	case kindNone, 6:
		panic(&FormatError{Msg: "invalid NUM code 0 or 6"})
	case kindU8, kindU16, kindU32, kindU64, kindFin, kindArb:
		// ok
	default:
		panic(&FormatError{Msg: "unrecognized NUM code"})
	}
	switch denK {
	case 5, 6:
		panic(&FormatError{Msg: "invalid DEN code 5 or 6"})
	case kindNone, kindU8, kindU16, kindU32, kindU64, kindArb:
		// ok
	default:
		panic(&FormatError{Msg: "unrecognized DEN code"})
	}
	if disc&signBit != 0 && (numK == kindFin || numK == kindArb) {
		panic(&FormatError{Msg: "sign bit set together with FIN_NUM or ARB_NUM"})
	}
	return numK, denK
}

// GetNumberView decodes the head coefficient of src, returning a
// zero-copy view plus the slice after it — the read side of §4.2.
func GetNumberView(src []byte) (number.BorrowedNumber, []byte) {
	disc := src[0]
	numK, _ := validateDiscriminator(disc)

	switch numK {
	case kindArb:
		return readLarge(src)
	case kindFin:
		rest := src[1:]
		elemView, rest := GetNumberView(rest)
		elem, idx := elemView.Natural()
		return number.BorrowedFiniteField(uint64(elem), number.FieldIndex(idx)), rest
	default:
		n, d, rest := GetFracI64(src)
		return number.BorrowedNatural(n, d), rest
	}
}

func readLarge(src []byte) (number.BorrowedNumber, []byte) {
	rest := src[1:] // skip discriminator
	sign := rest[0]
	rest = rest[1:]

	numLen, n := binary.Uvarint(rest)
	rest = rest[n:]
	numBytes := rest[:numLen]
	rest = rest[numLen:]

	denLen, n := binary.Uvarint(rest)
	rest = rest[n:]
	denBytes := rest[:denLen]
	rest = rest[denLen:]

	num := new(big.Int).SetBytes(numBytes)
	den := new(big.Int).SetBytes(denBytes)
	if sign != 0 {
		num.Neg(num)
	}
	r := new(big.Rat).SetFrac(num, den)
	return number.BorrowedLarge(r), rest
}

// GetFracU64 decodes assuming Natural, applying no sign interpretation: a
// negative numerator is represented only as a positive magnitude here,
// since the unsigned caller is expected to already know the sign
// convention it wants (GetFracI64 is the signed counterpart most callers
// want). Encountering an arbitrary-precision discriminator is a fatal
// "Overflow" LogicError, matching §4.2.
func GetFracU64(src []byte) (num, den uint64, rest []byte) {
	disc := src[0]
	numK, denK := validateDiscriminator(disc)
	rest = src[1:]
	num, rest = readMagnitude(rest, numK)
	den, rest = readMagnitude(rest, denK)
	return num, den, rest
}

// GetFracI64 decodes assuming Natural, applying the sign bit to the
// numerator.
func GetFracI64(src []byte) (num, den int64, rest []byte) {
	disc := src[0]
	numU, denU, rest := GetFracU64(src)
	num, den = int64(numU), int64(denU)
	if disc&signBit != 0 {
		num = -num
	}
	return num, den, rest
}

// SkipRational advances past the coefficient at the head of src without
// decoding its payload.
func SkipRational(src []byte) []byte {
	disc := src[0]
	numK, denK := validateDiscriminator(disc)

	switch numK {
	case kindArb:
		rest := src[2:] // discriminator + sign byte
		numLen, n := binary.Uvarint(rest)
		rest = rest[n+int(numLen):]
		denLen, n := binary.Uvarint(rest)
		rest = rest[n+int(denLen):]
		return rest
	case kindFin:
		return SkipRational(src[1:])
	default:
		size := 1 + sizeOfNatural(numK) + sizeOfNatural(denK)
		return src[size:]
	}
}

// IsZeroRat is an O(1) probe defined only for a Natural encoded with a
// one-byte numerator and implicit denominator 1 — the canonical fast form
// a normalizing producer always emits for a literal zero. Any other
// encoding, including a wider-width zero, reports false.
func IsZeroRat(src []byte) bool {
	return len(src) >= 2 && src[0] == uint8(kindU8) && src[1] == 0
}

// IsOneRat mirrors IsZeroRat for the literal value one.
func IsOneRat(src []byte) bool {
	return len(src) >= 2 && src[0] == uint8(kindU8) && src[1] == 1
}
