package groupenc

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
)

func genTable(rsx, rsy int) *XYPowerTable {
	_, _, g1gen, _ := bls12381.Generators()
	points := make([]bls12381.G1Affine, rsx*rsy)
	for h := 0; h < rsx; h++ {
		for i := 0; i < rsy; i++ {
			var scalar fr.Element
			scalar.SetInt64(int64(h*rsy + i + 1))
			var scalarBig big.Int
			scalar.BigInt(&scalarBig)
			var p bls12381.G1Affine
			p.ScalarMultiplication(&g1gen, &scalarBig)
			points[h*rsy+i] = p
		}
	}
	return &XYPowerTable{RSX: rsx, RSY: rsy, Points: points}
}

func TestEncodePolyMatchesDirectMSM(t *testing.T) {
	table := genTable(4, 4)

	coeffs := make([]fr.Element, 16)
	coeffs[0].SetInt64(3)
	coeffs[1].SetInt64(5)  // X^0 Y^1
	coeffs[4].SetInt64(7)  // X^1 Y^0
	coeffs[5].SetInt64(11) // X^1 Y^1
	p, err := bipoly.FromCoeffs(coeffs, 4, 4)
	require.NoError(t, err)
	p.OptimizeSize()

	got, err := EncodePoly(p, table)
	require.NoError(t, err)

	var want bls12381.G1Affine
	scalars := []fr.Element{coeffs[0], coeffs[1], coeffs[4], coeffs[5]}
	points := []bls12381.G1Affine{table.at(0, 0), table.at(0, 1), table.at(1, 0), table.at(1, 1)}
	want, err = MSM(scalars, points)
	require.NoError(t, err)

	require.True(t, got.Equal(&want))
}
