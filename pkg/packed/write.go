package packed

import (
	"encoding/binary"
	"math/big"

	"github.com/oisee/numcore/pkg/number"
)

// WritePacked appends the packed encoding of n to dest and returns the
// extended slice, the append-only-byte-vector write side of §4.2.
func WritePacked(n number.Number, dest []byte) []byte {
	switch n.Kind() {
	case number.KindNatural:
		num, den := n.Natural()
		return writeNatural(dest, num, den)
	case number.KindLarge:
		return writeLarge(dest, n.Large())
	case number.KindFiniteField:
		elem, idx := n.FiniteField()
		dest = append(dest, finNum)
		return writeUnsignedPair(dest, elem, uint64(idx))
	default:
		panic(&number.LogicError{Msg: "WritePacked on unknown Kind"})
	}
}

func writeNatural(dest []byte, num, den int64) []byte {
	numU := absU64(num)
	denU := absU64(den)
	before := len(dest)
	dest = writeUnsignedPair(dest, numU, denU)
	if (num >= 0) != (den >= 0) {
		dest[before] |= signBit
	}
	return dest
}

func absU64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// writeLarge appends the canonical external serialization resolved in §9:
// discriminator, sign byte, then numerator and denominator magnitudes each
// as a big-endian byte string prefixed by its length (binary.Uvarint).
func writeLarge(dest []byte, r *big.Rat) []byte {
	dest = append(dest, arbNum)
	sign := byte(0)
	if r.Sign() < 0 {
		sign = 1
	}
	dest = append(dest, sign)

	numBytes := new(big.Int).Abs(r.Num()).Bytes()
	denBytes := new(big.Int).Abs(r.Denom()).Bytes()

	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(numBytes)))
	dest = append(dest, lenBuf[:n]...)
	dest = append(dest, numBytes...)

	n = binary.PutUvarint(lenBuf[:], uint64(len(denBytes)))
	dest = append(dest, lenBuf[:n]...)
	dest = append(dest, denBytes...)
	return dest
}

// WritePackedFixed writes n into a pre-sized slot. The caller guarantees
// len(dest) == GetPackedSize(n); WritePackedFixed never grows dest. Large
// has no fixed-width encoding (its magnitudes are themselves
// variable-length), so it panics with UnimplementedError per §9's resolved
// Open Question.
func WritePackedFixed(n number.Number, dest []byte) {
	switch n.Kind() {
	case number.KindNatural:
		num, den := n.Natural()
		writeNaturalFixed(dest, num, den)
	case number.KindLarge:
		panic(&UnimplementedError{Msg: "writing a fixed-width packed Large rational"})
	case number.KindFiniteField:
		elem, idx := n.FiniteField()
		dest[0] = finNum
		writeUnsignedPairFixed(dest[1:], elem, uint64(idx))
	default:
		panic(&number.LogicError{Msg: "WritePackedFixed on unknown Kind"})
	}
}

func writeNaturalFixed(dest []byte, num, den int64) {
	numU := absU64(num)
	denU := absU64(den)
	writeUnsignedPairFixed(dest, numU, denU)
	if (num >= 0) != (den >= 0) {
		dest[0] |= signBit
	}
}

func writeUnsignedPairFixed(dest []byte, num, den uint64) {
	numKind := kindForMagnitude(num)
	dest[0] = uint8(numKind)
	rest := dest[1:]
	putMagnitudeFixed(rest, numKind, num)
	rest = rest[sizeOfNatural(numKind):]

	if den != 1 {
		denKind := kindForMagnitude(den)
		dest[0] |= uint8(denKind) << denShift
		putMagnitudeFixed(rest, denKind, den)
	}
}

// GetPackedSize returns the exact byte length WritePacked(n, ...) will
// append, so callers can pre-size a fixed slot for WritePackedFixed.
func GetPackedSize(n number.Number) int {
	switch n.Kind() {
	case number.KindNatural:
		num, den := n.Natural()
		return unsignedPairSize(absU64(num), absU64(den))
	case number.KindLarge:
		r := n.Large()
		numLen := len(new(big.Int).Abs(r.Num()).Bytes())
		denLen := len(new(big.Int).Abs(r.Denom()).Bytes())
		return 2 + uvarintLen(uint64(numLen)) + numLen + uvarintLen(uint64(denLen)) + denLen
	case number.KindFiniteField:
		elem, idx := n.FiniteField()
		return 1 + unsignedPairSize(elem, uint64(idx))
	default:
		panic(&number.LogicError{Msg: "GetPackedSize on unknown Kind"})
	}
}

func uvarintLen(v uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutUvarint(buf[:], v)
}
