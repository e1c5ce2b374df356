package transcript

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BindG1Batch feeds the canonical compressed encoding of each point into the
// transcript under one label/round tag. Shared by the prover and verifier
// so both derive identical challenges from identical proof messages.
func BindG1Batch(t *Transcript, label string, roundTag uint32, points ...bls12381.G1Affine) error {
	buf := make([]byte, 0, 48*len(points))
	for _, p := range points {
		b := p.Bytes()
		buf = append(buf, b[:]...)
	}
	return t.Bind(label, roundTag, buf)
}

// BindFrBatch feeds the canonical little-endian encoding of each scalar into
// the transcript under one label/round tag.
func BindFrBatch(t *Transcript, label string, roundTag uint32, elems ...fr.Element) error {
	buf := make([]byte, 0, 32*len(elems))
	for _, e := range elems {
		b := e.Marshal()
		for i := len(b) - 1; i >= 0; i-- {
			buf = append(buf, b[i])
		}
	}
	return t.Bind(label, roundTag, buf)
}
