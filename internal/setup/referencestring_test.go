package setup

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
)

func tinyLibrary() CircuitLibrary {
	params := circuitio.SetupParams{L: 2, LD: 4, MD: 8, N: 4, SD: 1, SMax: 2}
	sub := circuitio.SubcircuitInfo{ID: 0, NWires: 8, FlattenMap: []uint64{0, 1, 2, 3, 4, 5, 6, 7}}
	row := func(vals ...int64) []circuitio.FieldHex {
		out := make([]circuitio.FieldHex, len(vals))
		for i, v := range vals {
			var e fr.Element
			e.SetInt64(v)
			out[i] = circuitio.FromElement(e)
		}
		return out
	}
	r1cs := circuitio.SubcircuitR1CS{
		ACompactColMat: [][]circuitio.FieldHex{row(1, 0, 0, 0)},
		BCompactColMat: [][]circuitio.FieldHex{row(1, 0, 0, 0)},
		CCompactColMat: [][]circuitio.FieldHex{row(1, 0, 0, 0)},
		AActiveWires:   []uint64{0},
		BActiveWires:   []uint64{0},
		CActiveWires:   []uint64{0},
	}
	globalWires := make([]circuitio.GlobalWireRef, 8)
	for i := range globalWires {
		globalWires[i] = circuitio.GlobalWireRef{SubcircuitID: 0, LocalWireIdx: uint64(i)}
	}
	return CircuitLibrary{
		Params:      params,
		Subcircuits: map[uint64]circuitio.SubcircuitInfo{0: sub},
		R1CS:        map[uint64]circuitio.SubcircuitR1CS{0: r1cs},
		GlobalWires: globalWires,
	}
}

func TestXYPowersMatchesTrapdoorIdentities(t *testing.T) {
	lib := tinyLibrary()
	tau, err := SampleTau()
	require.NoError(t, err)

	rs, err := GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	_, _, g1gen, _ := bls12381.Generators()

	wantX := scalarMulG1(g1gen, tau.X)
	gotX := rs.Sigma1.XYPowers.Points[1*rs.Sigma1.XYPowers.RSY+0] // h=1,i=0 -> flat index 2*s_max
	require.True(t, wantX.Equal(&gotX))

	wantY := scalarMulG1(g1gen, tau.Y)
	gotY := rs.Sigma1.XYPowers.Points[0*rs.Sigma1.XYPowers.RSY+1] // h=0,i=1 -> flat index 1
	require.True(t, wantY.Equal(&gotY))
}

func TestGenerateReferenceStringShapes(t *testing.T) {
	lib := tinyLibrary()
	tau, err := SampleTau()
	require.NoError(t, err)

	rs, err := GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	require.Equal(t, int(lib.Params.MD), len(rs.Sigma1.GammaInvOPubMj))
	for g := 0; g < int(lib.Params.L); g++ {
		require.False(t, rs.Sigma1.GammaInvOPubMj[g].IsInfinity())
	}
	for g := int(lib.Params.L); g < int(lib.Params.LD); g++ {
		require.Equal(t, int(lib.Params.SMax), len(rs.Sigma1.EtaInvLiOInterAlpha4Kj[g]))
	}
	for g := int(lib.Params.LD); g < int(lib.Params.MD); g++ {
		require.Equal(t, int(lib.Params.SMax), len(rs.Sigma1.DeltaInvLiOPrv[g]))
	}
}
