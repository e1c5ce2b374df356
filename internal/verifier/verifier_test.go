package verifier

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/prover"
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

func TestVerifyAcceptsHonestProof(t *testing.T) {
	lib := tinyLibrary()
	tau, err := setup.SampleTau()
	require.NoError(t, err)
	rs, err := setup.GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	inst := &prover.Instance{
		Lib:        lib,
		Placements: tinyPlacements(int(lib.Params.SMax)),
	}

	p := prover.NewProver(inst, rs, prover.WithSelfCheck(true))
	proof, binding, err := p.Prove()
	require.NoError(t, err)

	publicVals, err := inst.PublicBinding()
	require.NoError(t, err)

	v, err := New(rs, lib.Params, inst.Permutation)
	require.NoError(t, err)

	ok, err := v.Verify(proof, binding, publicVals)
	require.NoError(t, err)
	require.True(t, ok)
}

// swapPermutation builds a 2-cycle copy constraint between grid cells
// (0,0) and (1,1): each cell's label is overridden to point at the
// other's identity coordinates, instead of its own. Exercises the
// non-identity path through the Round 1 grand-product recursion.
func swapPermutation() []circuitio.PermutationEntry {
	return []circuitio.PermutationEntry{
		{Row: 0, Col: 0, X: 1, Y: 1},
		{Row: 1, Col: 1, X: 0, Y: 0},
	}
}

func TestVerifyAcceptsHonestProofWithPermutation(t *testing.T) {
	lib := tinyLibrary()
	tau, err := setup.SampleTau()
	require.NoError(t, err)
	rs, err := setup.GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	inst := &prover.Instance{
		Lib:         lib,
		Placements:  tinyPlacements(int(lib.Params.SMax)),
		Permutation: swapPermutation(),
	}

	p := prover.NewProver(inst, rs, prover.WithSelfCheck(true))
	proof, binding, err := p.Prove()
	require.NoError(t, err)

	publicVals, err := inst.PublicBinding()
	require.NoError(t, err)

	v, err := New(rs, lib.Params, inst.Permutation)
	require.NoError(t, err)

	ok, err := v.Verify(proof, binding, publicVals)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	lib := tinyLibrary()
	tau, err := setup.SampleTau()
	require.NoError(t, err)
	rs, err := setup.GenerateReferenceString(lib, tau)
	require.NoError(t, err)

	inst := &prover.Instance{
		Lib:        lib,
		Placements: tinyPlacements(int(lib.Params.SMax)),
	}

	p := prover.NewProver(inst, rs)
	proof, binding, err := p.Prove()
	require.NoError(t, err)

	publicVals, err := inst.PublicBinding()
	require.NoError(t, err)

	// Corrupt one scalar so the recomputed challenges diverge from those
	// used to build the opening proofs.
	var one fr.Element
	one.SetOne()
	proof.P3.VHat.Add(&proof.P3.VHat, &one)

	v, err := New(rs, lib.Params, inst.Permutation)
	require.NoError(t, err)

	ok, err := v.Verify(proof, binding, publicVals)
	require.NoError(t, err)
	require.False(t, ok)
}
