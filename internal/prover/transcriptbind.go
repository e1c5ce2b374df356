package prover

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
)

// bindG1Batch and bindFrBatch delegate to the shared transcript helpers so
// the prover and verifier derive identical challenges from identical proof
// messages without duplicating the binding logic.
func bindG1Batch(t *transcript.Transcript, label string, roundTag uint32, points ...bls12381.G1Affine) error {
	return transcript.BindG1Batch(t, label, roundTag, points...)
}

func bindFrBatch(t *transcript.Transcript, label string, roundTag uint32, elems ...fr.Element) error {
	return transcript.BindFrBatch(t, label, roundTag, elems...)
}
