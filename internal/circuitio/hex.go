// Package circuitio implements the JSON ingestion and serialization layer:
// every external artifact (setup parameters, subcircuit library, placement
// trace, permutation, reference string, proof) is JSON with field elements
// encoded as little-endian hex strings. JSON is used here rather than a
// native binary codec because it is itself part of the external interface
// contract, not an ambient choice — see DESIGN.md.
package circuitio

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// FieldHex (de)serializes an fr.Element as a little-endian hex string.
type FieldHex fr.Element

func (f FieldHex) MarshalJSON() ([]byte, error) {
	e := fr.Element(f)
	be := e.Marshal()
	le := reversed(be)
	return json.Marshal("0x" + hex.EncodeToString(le))
}

func (f *FieldHex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	le, err := decodeHex(s)
	if err != nil {
		return err
	}
	be := reversed(le)
	var e fr.Element
	e.SetBytes(be)
	*f = FieldHex(e)
	return nil
}

// Element returns the underlying field element.
func (f FieldHex) Element() fr.Element { return fr.Element(f) }

// FromElement wraps an fr.Element for JSON output.
func FromElement(e fr.Element) FieldHex { return FieldHex(e) }

// G1Hex (de)serializes a compressed G1 point as hex, in the curve
// library's native (big-endian, top-bit-flagged) compressed encoding.
type G1Hex bls12381.G1Affine

func (g G1Hex) MarshalJSON() ([]byte, error) {
	p := bls12381.G1Affine(g)
	b := p.Bytes()
	return json.Marshal("0x" + hex.EncodeToString(b[:]))
}

func (g *G1Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := decodeHex(s)
	if err != nil {
		return err
	}
	var p bls12381.G1Affine
	var buf [48]byte
	if len(raw) != len(buf) {
		return fmt.Errorf("circuitio: expected %d-byte compressed G1 point, got %d", len(buf), len(raw))
	}
	copy(buf[:], raw)
	if _, err := p.SetBytes(buf[:]); err != nil {
		return err
	}
	*g = G1Hex(p)
	return nil
}

func (g G1Hex) Point() bls12381.G1Affine { return bls12381.G1Affine(g) }

func FromG1(p bls12381.G1Affine) G1Hex { return G1Hex(p) }

// G2Hex mirrors G1Hex for compressed G2 points.
type G2Hex bls12381.G2Affine

func (g G2Hex) MarshalJSON() ([]byte, error) {
	p := bls12381.G2Affine(g)
	b := p.Bytes()
	return json.Marshal("0x" + hex.EncodeToString(b[:]))
}

func (g *G2Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := decodeHex(s)
	if err != nil {
		return err
	}
	var p bls12381.G2Affine
	var buf [96]byte
	if len(raw) != len(buf) {
		return fmt.Errorf("circuitio: expected %d-byte compressed G2 point, got %d", len(buf), len(raw))
	}
	copy(buf[:], raw)
	if _, err := p.SetBytes(buf[:]); err != nil {
		return err
	}
	*g = G2Hex(p)
	return nil
}

func (g G2Hex) Point() bls12381.G2Affine { return bls12381.G2Affine(g) }

func FromG2(p bls12381.G2Affine) G2Hex { return G2Hex(p) }

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

func marshalPair(a, b uint64) ([]byte, error) {
	return json.Marshal([2]uint64{a, b})
}

func unmarshalPair(data []byte) (uint64, uint64, error) {
	var pair [2]uint64
	if err := json.Unmarshal(data, &pair); err != nil {
		return 0, 0, err
	}
	return pair[0], pair[1], nil
}
