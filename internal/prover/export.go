package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
)

// PermutationLabels re-exports permutationLabels for the verifier, which
// needs to rebuild the same s0/s1 label grids to reconstruct the f/g
// commitments independently of any witness data.
func PermutationLabels(params circuitio.SetupParams, perm []circuitio.PermutationEntry) (s0, s1, id0, id1 []fr.Element) {
	return permutationLabels(params, perm)
}

// IndicatorGrid re-exports indicatorGrid for the verifier's K/L/K0
// reconstruction.
func IndicatorGrid(mI, sMax, target int, byRow bool) []fr.Element {
	return indicatorGrid(mI, sMax, target, byRow)
}

// VanishingX re-exports vanishingX (t_k(X) = X^k-1) for the verifier.
func VanishingX(k int) (*bipoly.DensePolynomial2D, error) { return vanishingX(k) }

// VanishingY re-exports vanishingY (t_k(Y) = Y^k-1) for the verifier.
func VanishingY(k int) (*bipoly.DensePolynomial2D, error) { return vanishingY(k) }

// Generator re-exports the root-of-unity helper used to derive the shifted
// evaluation points for M/N.
func Generator(size int) fr.Element { return generator(size) }

// GeneratorInv re-exports the inverse root-of-unity helper.
func GeneratorInv(size int) fr.Element { return generatorInv(size) }
