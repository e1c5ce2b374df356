package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
	"github.com/tokamak-zk-evm/snark-core/internal/vectorops"
)

// permutationLabels builds the (s0, s1) grids used in Round 1: s0/s1 hold,
// for each (row,col) of the m_I x s_max interface grid, the
// omega-power label of the cell it is glued to by a copy constraint
// (identity labels for cells untouched by Permutation).
func permutationLabels(params circuitio.SetupParams, perm []circuitio.PermutationEntry) (s0, s1, id0, id1 []fr.Element) {
	mI := int(params.MI())
	sMax := int(params.SMax)
	omX := generator(mI)
	omY := generator(sMax)

	powX := make([]fr.Element, mI)
	powX[0].SetOne()
	for i := 1; i < mI; i++ {
		powX[i].Mul(&powX[i-1], &omX)
	}
	powY := make([]fr.Element, sMax)
	powY[0].SetOne()
	for i := 1; i < sMax; i++ {
		powY[i].Mul(&powY[i-1], &omY)
	}

	s0 = make([]fr.Element, mI*sMax)
	s1 = make([]fr.Element, mI*sMax)
	id0 = make([]fr.Element, mI*sMax)
	id1 = make([]fr.Element, mI*sMax)
	for row := 0; row < mI; row++ {
		for col := 0; col < sMax; col++ {
			idx := row*sMax + col
			id0[idx] = powX[row]
			id1[idx] = powY[col]
			s0[idx] = powX[row]
			s1[idx] = powY[col]
		}
	}
	for _, e := range perm {
		idx := int(e.Row)*sMax + int(e.Col)
		if idx < 0 || idx >= len(s0) {
			continue
		}
		s0[idx] = powX[int(e.X)%mI]
		s1[idx] = powY[int(e.Y)%sMax]
	}
	return s0, s1, id0, id1
}

type round1Result struct {
	r         *bipoly.DensePolynomial2D
	R         *bipoly.DensePolynomial2D
	theta0, theta1, theta2 fr.Element
	fEval, gEval           []fr.Element
	proof1                 Proof1
}

func runRound1(inst *Instance, rs *setup.ReferenceString, r0 *round0Result, bl *blinding, t *transcript.Transcript) (*round1Result, error) {
	params := inst.Lib.Params
	mI := int(params.MI())
	sMax := int(params.SMax)

	if err := bindG1Batch(t, transcript.LabelTheta0, 0, r0.proof0.U, r0.proof0.V, r0.proof0.W, r0.proof0.QAX, r0.proof0.QAY, r0.proof0.B); err != nil {
		return nil, err
	}
	theta0, err := t.Challenge(transcript.LabelTheta0)
	if err != nil {
		return nil, err
	}
	if err := bindG1Batch(t, transcript.LabelTheta1, 1, r0.proof0.U, r0.proof0.V, r0.proof0.W, r0.proof0.QAX, r0.proof0.QAY, r0.proof0.B); err != nil {
		return nil, err
	}
	theta1, err := t.Challenge(transcript.LabelTheta1)
	if err != nil {
		return nil, err
	}
	if err := bindG1Batch(t, transcript.LabelTheta2, 2, r0.proof0.U, r0.proof0.V, r0.proof0.W, r0.proof0.QAX, r0.proof0.QAY, r0.proof0.B); err != nil {
		return nil, err
	}
	theta2, err := t.Challenge(transcript.LabelTheta2)
	if err != nil {
		return nil, err
	}

	bEval := r0.b.ToROUEvals(nil, nil)
	s0, s1, id0, id1 := permutationLabels(params, inst.Permutation)

	n := mI * sMax
	fEval := make([]fr.Element, n)
	gEval := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var t0, t1 fr.Element
		t0.Mul(&theta0, &s0[i])
		t1.Mul(&theta1, &s1[i])
		fEval[i].Add(&bEval[i], &t0)
		fEval[i].Add(&fEval[i], &t1)
		fEval[i].Add(&fEval[i], &theta2)

		t0.Mul(&theta0, &id0[i])
		t1.Mul(&theta1, &id1[i])
		gEval[i].Add(&bEval[i], &t0)
		gEval[i].Add(&gEval[i], &t1)
		gEval[i].Add(&gEval[i], &theta2)
	}

	// fEval/gEval are stored row-major with X (row) slow and Y (col) fast,
	// bipoly's own flat-index convention. The grand-product recursion must
	// walk X as its primary axis - the same axis Round 2's K/K0 indicators
	// anchor on - so transpose to (sMax, mI) before running the backward
	// suffix-product, then transpose the result back.
	if err := vectorops.TransposeInplace(fEval, mI, sMax); err != nil {
		return nil, err
	}
	if err := vectorops.TransposeInplace(gEval, mI, sMax); err != nil {
		return nil, err
	}

	scalersTr := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var inv fr.Element
		inv.Inverse(&fEval[i])
		scalersTr[i].Mul(&gEval[i], &inv)
	}

	rEval := make([]fr.Element, n)
	rEval[n-1].SetOne()
	for k := n - 2; k >= 0; k-- {
		rEval[k].Mul(&rEval[k+1], &scalersTr[k+1])
	}

	if err := vectorops.TransposeInplace(fEval, sMax, mI); err != nil {
		return nil, err
	}
	if err := vectorops.TransposeInplace(gEval, sMax, mI); err != nil {
		return nil, err
	}
	if err := vectorops.TransposeInplace(rEval, sMax, mI); err != nil {
		return nil, err
	}

	rPoly, err := bipoly.FromROUEvals(rEval, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}

	tmI, err := vanishingX(mI)
	if err != nil {
		return nil, err
	}
	tsmax, err := vanishingY(sMax)
	if err != nil {
		return nil, err
	}
	R, err := bipoly.Add(rPoly, tmI.ScalarMul(bl.rRX))
	if err != nil {
		return nil, err
	}
	R, err = bipoly.Add(R, tsmax.ScalarMul(bl.rRY))
	if err != nil {
		return nil, err
	}

	encR, err := groupenc.EncodePoly(R, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}

	return &round1Result{
		r: rPoly, R: R,
		theta0: theta0, theta1: theta1, theta2: theta2,
		fEval: fEval, gEval: gEval,
		proof1: Proof1{R: encR},
	}, nil
}
