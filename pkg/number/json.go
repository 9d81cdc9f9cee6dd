package number

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// jsonForm is the wire shape for a Number: only the fields belonging to the
// variant named by Kind are populated.
type jsonForm struct {
	Kind  string `json:"kind"`
	Num   int64  `json:"num,omitempty"`
	Den   int64  `json:"den,omitempty"`
	Big   string `json:"big,omitempty"` // big.Rat.RatString(), e.g. "22/7"
	Elem  uint64 `json:"elem,omitempty"`
	Index uint32 `json:"index,omitempty"`
}

// MarshalJSON encodes n as a tagged object; Number has no exported fields,
// so the default struct marshaling would otherwise produce "{}".
func (n Number) MarshalJSON() ([]byte, error) {
	var f jsonForm
	switch n.kind {
	case KindNatural:
		f = jsonForm{Kind: "natural", Num: n.num, Den: n.den}
	case KindLarge:
		f = jsonForm{Kind: "large", Big: n.big.RatString()}
	case KindFiniteField:
		f = jsonForm{Kind: "finite_field", Elem: n.ffElem, Index: uint32(n.ffIndex)}
	default:
		return nil, fmt.Errorf("number: cannot marshal unknown Kind %d", n.kind)
	}
	return json.Marshal(f)
}

// GobEncode implements gob.GobEncoder by reusing the JSON wire form, so a
// Number survives a gob-serialized checkpoint the same way it survives a
// JSON ledger dump.
func (n Number) GobEncode() ([]byte, error) {
	return n.MarshalJSON()
}

// GobDecode implements gob.GobDecoder, the counterpart to GobEncode.
func (n *Number) GobDecode(data []byte) error {
	return n.UnmarshalJSON(data)
}

// UnmarshalJSON decodes the tagged form MarshalJSON produces.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f jsonForm
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	switch f.Kind {
	case "natural":
		*n = NewNatural(f.Num, f.Den)
	case "large":
		r, ok := new(big.Rat).SetString(f.Big)
		if !ok {
			return fmt.Errorf("number: invalid big rational literal %q", f.Big)
		}
		*n = NewLarge(r)
	case "finite_field":
		*n = NewFiniteField(f.Elem, FieldIndex(f.Index))
	default:
		return fmt.Errorf("number: unknown Kind %q", f.Kind)
	}
	return nil
}
