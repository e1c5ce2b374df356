// Package prover implements the five-round proving protocol: witness-
// polynomial assembly and arithmetic quotients (round 0), the permutation
// grand-product (round 1), copy-constraint quotients (round 2), evaluation
// claims (round 3) and KZG-style opening proofs (round 4). Grounded on the
// round-by-round prover in backend/fflonk/bn254/prove.go, generalized from
// its fixed PLONK gate structure to this system's bivariate
// arithmetization.
package prover

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

// Instance bundles everything the prover needs beyond the reference string:
// the circuit library, the placement trace and its copy-constraint table.
type Instance struct {
	Lib          setup.CircuitLibrary
	Placements   []circuitio.PlacementVariable
	Permutation  []circuitio.PermutationEntry
}

// localByGlobal inverts a subcircuit's flattenMap: global wire id -> local
// wire index; a global wire the subcircuit does not own has no entry.
func localByGlobal(info circuitio.SubcircuitInfo) map[uint64]uint64 {
	out := make(map[uint64]uint64, len(info.FlattenMap))
	for local, global := range info.FlattenMap {
		out[global] = uint64(local)
	}
	return out
}

// placementRowValue evaluates sum_k mat[k][c] * variables[activeWires[k]]
// for one R1CS row index c, i.e. one column of the column-compacted matrix.
func placementRowValue(activeWires []uint64, mat [][]circuitio.FieldHex, c int, variables []circuitio.FieldHex) fr.Element {
	var acc fr.Element
	for k, w := range activeWires {
		if int(w) >= len(variables) {
			continue
		}
		var term fr.Element
		coeff := mat[k][c].Element()
		val := variables[w].Element()
		term.Mul(&coeff, &val)
		acc.Add(&acc, &term)
	}
	return acc
}

// witnessGrids computes the evaluation grids for u(X,Y), v(X,Y), w(X,Y) (each
// shape n x s_max) and the interface-wire grid b(X,Y) (shape m_I x s_max).
func (inst *Instance) witnessGrids() (u, v, w, b []fr.Element, err error) {
	params := inst.Lib.Params
	n := int(params.N)
	sMax := int(params.SMax)
	mI := int(params.MI())
	l := params.L

	if len(inst.Placements) != sMax {
		return nil, nil, nil, nil, fmt.Errorf("prover: placement count %d != s_max %d", len(inst.Placements), sMax)
	}

	u = make([]fr.Element, n*sMax)
	v = make([]fr.Element, n*sMax)
	w = make([]fr.Element, n*sMax)
	b = make([]fr.Element, mI*sMax)

	invMaps := make(map[uint64]map[uint64]uint64, len(inst.Lib.Subcircuits))
	for id, info := range inst.Lib.Subcircuits {
		invMaps[id] = localByGlobal(info)
	}

	for col, pl := range inst.Placements {
		r1cs, ok := inst.Lib.R1CS[pl.SubcircuitID]
		if !ok {
			return nil, nil, nil, nil, fmt.Errorf("prover: unknown subcircuit %d at placement %d", pl.SubcircuitID, col)
		}
		for c := 0; c < n; c++ {
			u[c*sMax+col] = placementRowValue(r1cs.AActiveWires, r1cs.ACompactColMat, c, pl.Variables)
			v[c*sMax+col] = placementRowValue(r1cs.BActiveWires, r1cs.BCompactColMat, c, pl.Variables)
			w[c*sMax+col] = placementRowValue(r1cs.CActiveWires, r1cs.CCompactColMat, c, pl.Variables)
		}

		inv := invMaps[pl.SubcircuitID]
		for row := 0; row < mI; row++ {
			global := l + uint64(row)
			if local, ok := inv[global]; ok && int(local) < len(pl.Variables) {
				b[row*sMax+col] = pl.Variables[local].Element()
			}
		}
	}

	return u, v, w, b, nil
}

// publicBinding reads the public-wire values ([0,l)) used to build the O_pub
// instance commitment, from the dedicated input/output placements (index 0
// carries the public-input placement, index 1 the public-output placement).
// A public wire absent from both placements' subcircuits contributes zero
// (open question, decided in DESIGN.md).
func (inst *Instance) publicBinding() ([]fr.Element, error) {
	params := inst.Lib.Params
	l := int(params.L)
	out := make([]fr.Element, l)
	if len(inst.Placements) < 2 {
		return out, nil
	}
	candidates := []circuitio.PlacementVariable{inst.Placements[0], inst.Placements[1]}
	for g := 0; g < l; g++ {
		for _, pl := range candidates {
			info, ok := inst.Lib.Subcircuits[pl.SubcircuitID]
			if !ok {
				continue
			}
			inv := localByGlobal(info)
			if local, found := inv[uint64(g)]; found && int(local) < len(pl.Variables) {
				out[g] = pl.Variables[local].Element()
				break
			}
		}
	}
	return out, nil
}

// PublicBinding exposes publicBinding for the verifier, which needs the
// same public wire values to reconstruct the instance-binding polynomial
// a(X) without access to the rest of the witness.
func (inst *Instance) PublicBinding() ([]fr.Element, error) { return inst.publicBinding() }
