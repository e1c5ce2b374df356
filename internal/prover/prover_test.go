package prover

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

func tinyLibrary() setup.CircuitLibrary {
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
	return setup.CircuitLibrary{
		Params:      params,
		Subcircuits: map[uint64]circuitio.SubcircuitInfo{0: sub},
		R1CS:        map[uint64]circuitio.SubcircuitR1CS{0: r1cs},
		GlobalWires: globalWires,
	}
}

func tinyPlacements(sMax int) []circuitio.PlacementVariable {
	vals := func() []circuitio.FieldHex {
		out := make([]circuitio.FieldHex, 8)
		var zero fr.Element
		for i := range out {
			out[i] = circuitio.FromElement(zero)
		}
		return out
	}
	placements := make([]circuitio.PlacementVariable, sMax)
	for i := range placements {
		placements[i] = circuitio.PlacementVariable{SubcircuitID: 0, Variables: vals()}
	}
	return placements
}

func TestProveProducesAllFiveMessages(t *testing.T) {
	lib := tinyLibrary()
	tau, err := setup.SampleTau()
	require.NoError(t, err)
	rs, err := setup.GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	inst := &Instance{
		Lib:        lib,
		Placements: tinyPlacements(int(lib.Params.SMax)),
	}

	p := NewProver(inst, rs)
	proof, binding, err := p.Prove()
	require.NoError(t, err)
	require.NotNil(t, proof)
	require.NotNil(t, binding)

	require.False(t, proof.P0.U.IsInfinity())
	require.False(t, proof.P1.R.IsInfinity())
	require.False(t, proof.P2.QCX.IsInfinity())
	require.False(t, proof.P4.PiX.IsInfinity())

	j := proof.ToJSON()
	back := ProofFromJSON(j)
	require.True(t, proof.P0.U.Equal(&back.P0.U))
	require.True(t, proof.P3.VHat.Equal(&back.P3.VHat))
}

func TestWithSelfCheckOptionIsWired(t *testing.T) {
	lib := tinyLibrary()
	tau, err := setup.SampleTau()
	require.NoError(t, err)
	rs, err := setup.GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	inst := &Instance{
		Lib:        lib,
		Placements: tinyPlacements(int(lib.Params.SMax)),
	}

	p := NewProver(inst, rs, WithSelfCheck(false))
	require.False(t, p.selfCheck)
	_, _, err = p.Prove()
	require.NoError(t, err)
}
