package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
)

type round3Result struct {
	chi, zeta fr.Element
	proof3    Proof3
}

func runRound3(inst *Instance, r0 *round0Result, r1 *round1Result, r2 *round2Result, t *transcript.Transcript) (*round3Result, error) {
	params := inst.Lib.Params
	mI := int(params.MI())
	sMax := int(params.SMax)

	if err := bindG1Batch(t, transcript.LabelChi, 0, r2.proof2.QCX, r2.proof2.QCY); err != nil {
		return nil, err
	}
	chi, err := t.Challenge(transcript.LabelChi)
	if err != nil {
		return nil, err
	}
	if err := bindG1Batch(t, transcript.LabelZeta, 1, r2.proof2.QCX, r2.proof2.QCY); err != nil {
		return nil, err
	}
	zeta, err := t.Challenge(transcript.LabelZeta)
	if err != nil {
		return nil, err
	}

	vHat, err := r0.V.Eval(chi, zeta)
	if err != nil {
		return nil, err
	}
	rHat, err := r1.R.Eval(chi, zeta)
	if err != nil {
		return nil, err
	}

	omXInv := generatorInv(mI)
	omYInv := generatorInv(sMax)
	var chiShift fr.Element
	chiShift.Mul(&omXInv, &chi)
	rHatOmX, err := r1.R.Eval(chiShift, zeta)
	if err != nil {
		return nil, err
	}
	var zetaShift fr.Element
	zetaShift.Mul(&omYInv, &zeta)
	rHatOmXOmY, err := r1.R.Eval(chiShift, zetaShift)
	if err != nil {
		return nil, err
	}

	return &round3Result{
		chi: chi, zeta: zeta,
		proof3: Proof3{
			VHat: vHat, RHat: rHat, RHatOmegaX: rHatOmX, RHatOmegaXOmegaY: rHatOmXOmY,
		},
	}, nil
}
