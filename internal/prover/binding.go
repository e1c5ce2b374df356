package prover

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

// Binding is the public commitment to the instance: A = [a(x,y)]_1
// plus the wire-binding commitments O_pub, O_mid, O_prv. Shared by the
// prover (to keep Pi_B consistent with A) and the verifier, which receives
// it alongside the proof and uses A, O_pub, O_mid and O_prv as given in its
// pairing check.
type Binding struct {
	A, OPub, OMid, OPrv bls12381.G1Affine
}

// ComputeBinding implements encode_O_pub/encode_O_mid_no_zk/
// encode_O_prv_no_zk: walk the placement sequence once per
// wire class and MSM each wire's value against the reference-string row
// selected for its (global wire, placement slot). The zero-knowledge
// blinding contributions on O_mid/O_prv (the delta^-1/eta^-1 vanishing
// strings) are left at zero - an open-question simplification recorded in
// DESIGN.md, since this implementation's witness-indistinguishability
// instead relies entirely on the U/V/W/B/R blinding terms of Rounds 0-1.
func ComputeBinding(inst *Instance, rs *setup.ReferenceString) (*Binding, error) {
	params := inst.Lib.Params
	l := int(params.L)
	lD := int(params.LD)
	mD := int(params.MD)
	sMax := int(params.SMax)

	pubVals, err := inst.publicBinding()
	if err != nil {
		return nil, err
	}
	pubRows := rs.Sigma1.GammaInvOPubMj[:l]
	oPub, err := groupenc.EncodeWireSum(pubVals, pubRows)
	if err != nil {
		return nil, err
	}

	invMaps := make(map[uint64]map[uint64]uint64, len(inst.Lib.Subcircuits))
	for id, info := range inst.Lib.Subcircuits {
		invMaps[id] = localByGlobal(info)
	}

	wireSum := func(lo, hi int, table [][]bls12381.G1Affine) (bls12381.G1Affine, error) {
		var values []fr.Element
		var rows []bls12381.G1Affine
		for g := lo; g < hi; g++ {
			for col := 0; col < sMax && col < len(inst.Placements); col++ {
				pl := inst.Placements[col]
				inv, ok := invMaps[pl.SubcircuitID]
				if !ok {
					continue
				}
				local, found := inv[uint64(g)]
				if !found || int(local) >= len(pl.Variables) {
					continue
				}
				values = append(values, pl.Variables[local].Element())
				rows = append(rows, table[g][col])
			}
		}
		return groupenc.EncodeWireSum(values, rows)
	}

	oMid, err := wireSum(l, lD, rs.Sigma1.EtaInvLiOInterAlpha4Kj)
	if err != nil {
		return nil, err
	}
	oPrv, err := wireSum(lD, mD, rs.Sigma1.DeltaInvLiOPrv)
	if err != nil {
		return nil, err
	}

	aPoly, err := publicInstancePoly(inst)
	if err != nil {
		return nil, err
	}
	a, err := groupenc.EncodePoly(aPoly, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}

	return &Binding{A: a, OPub: oPub, OMid: oMid, OPrv: oPrv}, nil
}
