// Package packed implements the variable-width byte encoding for a single
// coefficient: a discriminator byte followed by a numerator, an optional
// denominator, a finite-field escape, or an arbitrary-precision escape.
// Runs are self-delimiting and individually skippable without decoding
// their payload, so they can be placed back-to-back on an atom tape with
// no length prefix.
package packed

import (
	"encoding/binary"
	"fmt"

	"github.com/oisee/numcore/pkg/number"
)

// kind is the shared 3-or-4-bit vocabulary used by both the NUM and DEN
// discriminator fields: 0 means "none/implicit 1" (only legal for DEN),
// 1..4 select the u8/u16/u32/u64 magnitude width, 5 (NUM only) escapes to
// a finite-field element, 7 escapes to an arbitrary-precision rational.
type kind uint8

const (
	kindNone kind = 0
	kindU8   kind = 1
	kindU16  kind = 2
	kindU32  kind = 3
	kindU64  kind = 4
	kindFin  kind = 5 // NUM only
	kindArb  kind = 7
)

const (
	numMask  uint8 = 0b00001111
	denMask  uint8 = 0b01110000
	denShift       = 4
	signBit  uint8 = 0b10000000
)

// finNum is the FIN_NUM discriminator on its own (no denominator field, no
// sign bit — a finite-field element is never negative).
const finNum = uint8(kindFin)

// arbNum is the ARB_NUM|ARB_DEN discriminator for a Large escape.
const arbNum = uint8(kindArb) | uint8(kindArb)<<denShift

// FormatError marks malformed or ambiguous wire bytes: an unknown NUM/DEN
// code, or a sign bit set together with a FIN_NUM/ARB_NUM discriminator.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("packed: format error: %s", e.Msg)
}

// UnimplementedError marks an operation that is only reachable through
// misuse: WritePackedFixed on a Large value has no fixed-width encoding.
type UnimplementedError struct {
	Msg string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("packed: not implemented: %s", e.Msg)
}

// sizeOfNatural returns the number of magnitude bytes a kind occupies.
func sizeOfNatural(k kind) int {
	switch k {
	case kindNone:
		return 0
	case kindU8:
		return 1
	case kindU16:
		return 2
	case kindU32:
		return 4
	case kindU64:
		return 8
	default:
		panic(&FormatError{Msg: fmt.Sprintf("unsupported natural-field kind %d", k)})
	}
}

// kindForMagnitude picks the smallest unsigned kind that fits v, matching
// §4.2's u8/u16/u32/u64 selection rule.
func kindForMagnitude(v uint64) kind {
	switch {
	case v < 0xFF:
		return kindU8
	case v < 0xFFFF:
		return kindU16
	case v < 0xFFFFFFFF:
		return kindU32
	default:
		return kindU64
	}
}

func appendMagnitude(dest []byte, k kind, v uint64) []byte {
	switch k {
	case kindU8:
		return append(dest, uint8(v))
	case kindU16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v))
		return append(dest, buf[:]...)
	case kindU32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return append(dest, buf[:]...)
	default: // kindU64
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v)
		return append(dest, buf[:]...)
	}
}

func putMagnitudeFixed(dest []byte, k kind, v uint64) {
	switch k {
	case kindU8:
		dest[0] = uint8(v)
	case kindU16:
		binary.LittleEndian.PutUint16(dest, uint16(v))
	case kindU32:
		binary.LittleEndian.PutUint32(dest, uint32(v))
	default: // kindU64
		binary.LittleEndian.PutUint64(dest, v)
	}
}

// readMagnitude reads one NUM- or DEN-field magnitude, returning 1 for an
// implicit (kindNone) denominator. It panics with a LogicError carrying
// "Overflow" on kindArb, matching GetFracU64/GetFracI64's documented fatal
// behavior on an arbitrary-precision discriminator.
func readMagnitude(src []byte, k kind) (uint64, []byte) {
	switch k {
	case kindNone:
		return 1, src
	case kindU8:
		return uint64(src[0]), src[1:]
	case kindU16:
		return uint64(binary.LittleEndian.Uint16(src)), src[2:]
	case kindU32:
		return uint64(binary.LittleEndian.Uint32(src)), src[4:]
	case kindU64:
		return binary.LittleEndian.Uint64(src), src[8:]
	case kindArb:
		panic(&number.LogicError{Msg: "Overflow"})
	default:
		panic(&FormatError{Msg: fmt.Sprintf("unsupported natural-field kind %d", k)})
	}
}

// writeUnsignedPair appends the unsigned-natural encoding of (num, den) to
// dest and returns the extended slice. No sign bit is ever set here;
// writeNatural sets it afterward on the discriminator byte it returns.
func writeUnsignedPair(dest []byte, num, den uint64) []byte {
	discAt := len(dest)
	numKind := kindForMagnitude(num)
	dest = append(dest, uint8(numKind))
	dest = appendMagnitude(dest, numKind, num)

	if den != 1 {
		denKind := kindForMagnitude(den)
		dest[discAt] |= uint8(denKind) << denShift
		dest = appendMagnitude(dest, denKind, den)
	}
	return dest
}

func unsignedPairSize(num, den uint64) int {
	size := 1 + sizeOfNatural(kindForMagnitude(num))
	if den != 1 {
		size += sizeOfNatural(kindForMagnitude(den))
	}
	return size
}
