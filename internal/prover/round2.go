package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
)

// indicatorGrid builds an m_I x s_max evaluation grid that is 1 on the rows
// (if byRow) or columns matching target, 0 elsewhere.
func indicatorGrid(mI, sMax, target int, byRow bool) []fr.Element {
	out := make([]fr.Element, mI*sMax)
	one := fr.NewElement(1)
	for row := 0; row < mI; row++ {
		for col := 0; col < sMax; col++ {
			hit := false
			if byRow {
				hit = row == target
			} else {
				hit = col == target
			}
			if hit {
				out[row*sMax+col] = one
			}
		}
	}
	return out
}

type round2Result struct {
	QCX, QCY *bipoly.DensePolynomial2D
	kappa0   fr.Element
	proof2   Proof2
}

func runRound2(inst *Instance, rs *setup.ReferenceString, r0 *round0Result, r1 *round1Result, t *transcript.Transcript) (*round2Result, error) {
	params := inst.Lib.Params
	mI := int(params.MI())
	sMax := int(params.SMax)

	if err := bindG1Batch(t, transcript.LabelKappa0, 0, r1.proof1.R); err != nil {
		return nil, err
	}
	kappa0, err := t.Challenge(transcript.LabelKappa0)
	if err != nil {
		return nil, err
	}

	s0Ev, s1Ev, _, _ := permutationLabels(params, inst.Permutation)
	s0Poly, err := bipoly.FromROUEvals(s0Ev, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	s1Poly, err := bipoly.FromROUEvals(s1Ev, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}

	xMono, err := bipoly.FromCoeffs([]fr.Element{fr.Element{}, fr.NewElement(1)}, 2, 1)
	if err != nil {
		return nil, err
	}
	yMono, err := bipoly.FromCoeffs([]fr.Element{fr.Element{}, fr.NewElement(1)}, 1, 2)
	if err != nil {
		return nil, err
	}

	sum := func(parts ...*bipoly.DensePolynomial2D) (*bipoly.DensePolynomial2D, error) {
		acc := parts[0]
		var err error
		for _, p := range parts[1:] {
			acc, err = bipoly.Add(acc, p)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	fPoly, err := sum(r0.B, s0Poly.ScalarMul(r1.theta0), s1Poly.ScalarMul(r1.theta1))
	if err != nil {
		return nil, err
	}
	fPoly = fPoly.ScalarAdd(r1.theta2)

	gPoly, err := sum(r0.B, xMono.ScalarMul(r1.theta0), yMono.ScalarMul(r1.theta1))
	if err != nil {
		return nil, err
	}
	gPoly = gPoly.ScalarAdd(r1.theta2)

	omXInv := generatorInv(mI)
	omYInv := generatorInv(sMax)
	rOmegaX := r1.R.ScaleCoeffsX(omXInv)
	rOmegaXOmegaY := rOmegaX.ScaleCoeffsY(omYInv)

	kGrid, err := bipoly.FromROUEvals(indicatorGrid(mI, sMax, mI-1, true), mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	lGrid, err := bipoly.FromROUEvals(indicatorGrid(mI, sMax, sMax-1, false), mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	kl, err := bipoly.Mul(kGrid, lGrid)
	if err != nil {
		return nil, err
	}
	k0Grid, err := bipoly.FromROUEvals(indicatorGrid(mI, sMax, 0, true), mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}

	var one fr.Element
	one.SetOne()
	p1, err := bipoly.Mul(r1.R.ScalarSub(one), kl)
	if err != nil {
		return nil, err
	}

	rg, err := bipoly.Mul(r1.R, gPoly)
	if err != nil {
		return nil, err
	}
	rxf, err := bipoly.Mul(rOmegaX, fPoly)
	if err != nil {
		return nil, err
	}
	diff1, err := bipoly.Sub(rg, rxf)
	if err != nil {
		return nil, err
	}
	xMinus1, err := bipoly.FromCoeffs([]fr.Element{negOne(), fr.NewElement(1)}, 2, 1)
	if err != nil {
		return nil, err
	}
	p2, err := bipoly.Mul(xMinus1, diff1)
	if err != nil {
		return nil, err
	}

	rxyf, err := bipoly.Mul(rOmegaXOmegaY, fPoly)
	if err != nil {
		return nil, err
	}
	diff2, err := bipoly.Sub(rg, rxyf)
	if err != nil {
		return nil, err
	}
	p3, err := bipoly.Mul(k0Grid, diff2)
	if err != nil {
		return nil, err
	}

	q2, q3, err := p1.DivByVanishing(mI, sMax)
	if err != nil {
		return nil, err
	}
	q4, q5, err := p2.DivByVanishing(mI, sMax)
	if err != nil {
		return nil, err
	}
	q6, q7, err := p3.DivByVanishing(mI, sMax)
	if err != nil {
		return nil, err
	}

	var kappa0Sq fr.Element
	kappa0Sq.Mul(&kappa0, &kappa0)

	qcx, err := sum(q2, q4.ScalarMul(kappa0), q6.ScalarMul(kappa0Sq))
	if err != nil {
		return nil, err
	}
	qcy, err := sum(q3, q5.ScalarMul(kappa0), q7.ScalarMul(kappa0Sq))
	if err != nil {
		return nil, err
	}

	encQCX, err := groupenc.EncodePoly(qcx, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}
	encQCY, err := groupenc.EncodePoly(qcy, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}

	return &round2Result{
		QCX: qcx, QCY: qcy, kappa0: kappa0,
		proof2: Proof2{QCX: encQCX, QCY: encQCY},
	}, nil
}

func negOne() fr.Element {
	var e fr.Element
	e.SetOne()
	e.Neg(&e)
	return e
}
