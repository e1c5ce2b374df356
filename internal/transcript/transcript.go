// Package transcript implements Fiat-Shamir challenge derivation: messages
// are bound into a Keccak-256 sponge via gnark-crypto's fiat-shamir
// transcript, tagged per round to separate multiple challenges drawn from
// the same proof message, and the resulting digest is reduced to a field
// element by clearing the top two bits and reading the remaining bytes
// little-endian.
package transcript

import (
	"encoding/binary"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/sha3"
)

// Labels, in the fixed order gnark-crypto's fiatshamir.Transcript requires
// at construction.
const (
	LabelTheta0 = "theta0"
	LabelTheta1 = "theta1"
	LabelTheta2 = "theta2"
	LabelKappa0 = "kappa0"
	LabelChi    = "chi"
	LabelZeta   = "zeta"
	LabelKappa1 = "kappa1"
	LabelKappa2 = "kappa2"
)

var allLabels = []string{
	LabelTheta0, LabelTheta1, LabelTheta2,
	LabelKappa0,
	LabelChi, LabelZeta,
	LabelKappa1,
	LabelKappa2,
}

// Transcript accumulates proof bytes and derives round challenges.
type Transcript struct {
	fs *fiatshamir.Transcript
}

// New builds a transcript over the full fixed challenge schedule used by
// the prover and verifier (three theta's from Proof0, kappa0 from Proof1,
// chi/zeta from Proof2, kappa1 from Proof3, kappa2 from Proof4).
func New() *Transcript {
	return &Transcript{fs: fiatshamir.NewTranscript(sha3.NewLegacyKeccak256(), allLabels...)}
}

// Bind appends data to the challenge named by label, domain-separated by a
// small round tag so several challenges can be derived from the same
// underlying message (e.g. theta0/theta1/theta2 all bind Proof0).
func (t *Transcript) Bind(label string, roundTag uint32, data []byte) error {
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(buf, roundTag)
	copy(buf[4:], data)
	return t.fs.Bind(label, buf)
}

// Challenge finalizes the named round and returns the derived field
// element.
func (t *Transcript) Challenge(label string) (fr.Element, error) {
	digest, err := t.fs.ComputeChallenge(label)
	if err != nil {
		return fr.Element{}, err
	}
	return elementFromDigestLE(digest), nil
}

// elementFromDigestLE clears the top two bits of the digest's most
// significant (last, when read little-endian) byte, then interprets the
// remaining bytes as a little-endian integer and reduces it mod r.
func elementFromDigestLE(digest []byte) fr.Element {
	buf := make([]byte, len(digest))
	copy(buf, digest)
	buf[len(buf)-1] &= 0x3f
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	var e fr.Element
	e.SetBytes(buf)
	return e
}
