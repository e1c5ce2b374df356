package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
	"github.com/tokamak-zk-evm/snark-core/internal/vectorops"
)

type round4Result struct {
	proof4  Proof4
	residue fr.Element
}

// PublicInstancePoly builds the X-only (Y-constant) public-instance
// polynomial a(X) behind Pi_B and the Binding's A element, from the raw
// public wire values alone - so the verifier can reconstruct it from the
// public statement without needing the prover's witness. Constant across Y
// since public wires are bound once per proof rather than once per
// placement column - a resolved open question, recorded in DESIGN.md.
func PublicInstancePoly(vals []fr.Element) (*bipoly.DensePolynomial2D, error) {
	size := vectorops.NextPowerOfTwo(maxInt(2, len(vals)))
	evals := make([]fr.Element, size)
	copy(evals, vals)
	return bipoly.FromROUEvals(evals, size, 1, nil, nil)
}

func publicInstancePoly(inst *Instance) (*bipoly.DensePolynomial2D, error) {
	vals, err := inst.publicBinding()
	if err != nil {
		return nil, err
	}
	return PublicInstancePoly(vals)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// runRound4 builds the Round-4 opening proofs. The arithmetic identity
// (linearized by substituting the claimed V_hat for V) and the copy-constraint
// identity from Round 2 (re-linearized by substituting R_hat/R_hat_omegaX/
// R_hat_omegaXomegaY for R/r_omegaX/r_omegaXomegaY, and the scalar evaluations
// chi-1 and the K0 indicator's eval for their full-polynomial counterparts)
// are folded into ONE polynomial - the arithmetic identity with weight 1, the
// V_hat opening with kappa1, the copy-constraint identity with kappa1^2 and
// the R_hat opening with kappa1^3 - before a single div_by_ruffini call - commitment linearity (encode_poly is
// an MSM, hence additive) makes opening this combination equivalent to
// opening each piece separately and summing the resulting G1 points. The
// public-instance opening behind Pi_B needs no kappa1 weight, since both
// parties can compute a(X) unblinded, so it is divided on its own and added
// in afterward. M_X/M_Y and N_X/N_Y open R at the two omega-shifted points
// directly; their kappa2 batching weight is applied only by the verifier,
// since kappa2 is derived from Proof4 itself and so cannot influence its
// own contents.
func runRound4(inst *Instance, rs *setup.ReferenceString, r0 *round0Result, r1 *round1Result, r2 *round2Result, r3 *round3Result, t *transcript.Transcript) (*round4Result, error) {
	params := inst.Lib.Params
	mI := int(params.MI())
	sMax := int(params.SMax)

	if err := bindFrBatch(t, transcript.LabelKappa1, 0, r3.proof3.VHat, r3.proof3.RHat, r3.proof3.RHatOmegaX, r3.proof3.RHatOmegaXOmegaY); err != nil {
		return nil, err
	}
	kappa1, err := t.Challenge(transcript.LabelKappa1)
	if err != nil {
		return nil, err
	}
	var kappa1Sq, kappa1Cube fr.Element
	kappa1Sq.Mul(&kappa1, &kappa1)
	kappa1Cube.Mul(&kappa1Sq, &kappa1)

	tn, err := vanishingX(int(params.N))
	if err != nil {
		return nil, err
	}
	tsmax, err := vanishingY(sMax)
	if err != nil {
		return nil, err
	}
	tmI, err := vanishingX(mI)
	if err != nil {
		return nil, err
	}

	// Arithmetic identity, unweighted: U*V_hat - W - Q_AX*t_n - Q_AY*t_smax.
	qaxTn, err := bipoly.Mul(r0.QAX, tn)
	if err != nil {
		return nil, err
	}
	qayTs, err := bipoly.Mul(r0.QAY, tsmax)
	if err != nil {
		return nil, err
	}
	arithPoly, err := bipoly.Sub(r0.U.ScalarMul(r3.proof3.VHat), r0.W)
	if err != nil {
		return nil, err
	}
	arithPoly, err = bipoly.Sub(arithPoly, qaxTn)
	if err != nil {
		return nil, err
	}
	arithPoly, err = bipoly.Sub(arithPoly, qayTs)
	if err != nil {
		return nil, err
	}

	// V's direct opening, weighted by kappa1.
	vOpen := r0.V.ScalarSub(r3.proof3.VHat).ScalarMul(kappa1)

	// f(X,Y)/g(X,Y) as built in Round 2, needed again for the copy identity's
	// linearization.
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
	fPoly, err := bipoly.Add(r0.B, s0Poly.ScalarMul(r1.theta0))
	if err != nil {
		return nil, err
	}
	fPoly, err = bipoly.Add(fPoly, s1Poly.ScalarMul(r1.theta1))
	if err != nil {
		return nil, err
	}
	fPoly = fPoly.ScalarAdd(r1.theta2)
	gPoly, err := bipoly.Add(r0.B, xMono.ScalarMul(r1.theta0))
	if err != nil {
		return nil, err
	}
	gPoly, err = bipoly.Add(gPoly, yMono.ScalarMul(r1.theta1))
	if err != nil {
		return nil, err
	}
	gPoly = gPoly.ScalarAdd(r1.theta2)

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
	k0Eval, err := k0Grid.Eval(r3.chi, r3.zeta)
	if err != nil {
		return nil, err
	}

	var chiMinus1 fr.Element
	chiMinus1.Sub(&r3.chi, &one())

	// kappa0*(chi-1)*R_hat*g - kappa0*(chi-1)*R_hat_omegaX*f
	//   + kappa0^2*k0_eval*R_hat*g - kappa0^2*k0_eval*R_hat_omegaXomegaY*f
	// - Q_CX*t_mI - Q_CY*t_smax, plus the fixed KL*(R_hat-1) term.
	var w0, w0RhatOmX, w1, w1RhatOmXOmY fr.Element
	w0.Mul(&r2.kappa0, &chiMinus1)
	w0RhatOmX.Mul(&w0, &r3.proof3.RHatOmegaX)
	w0.Mul(&w0, &r3.proof3.RHat)

	var kappa0Sq fr.Element
	kappa0Sq.Mul(&r2.kappa0, &r2.kappa0)
	w1.Mul(&kappa0Sq, &k0Eval)
	w1RhatOmXOmY.Mul(&w1, &r3.proof3.RHatOmegaXOmegaY)
	w1.Mul(&w1, &r3.proof3.RHat)

	var rHatMinus1 fr.Element
	rHatMinus1.Sub(&r3.proof3.RHat, &one())

	copyPoly := kl.ScalarMul(rHatMinus1)
	copyPoly, err = bipoly.Add(copyPoly, gPoly.ScalarMul(w0))
	if err != nil {
		return nil, err
	}
	copyPoly, err = bipoly.Sub(copyPoly, fPoly.ScalarMul(w0RhatOmX))
	if err != nil {
		return nil, err
	}
	copyPoly, err = bipoly.Add(copyPoly, gPoly.ScalarMul(w1))
	if err != nil {
		return nil, err
	}
	copyPoly, err = bipoly.Sub(copyPoly, fPoly.ScalarMul(w1RhatOmXOmY))
	if err != nil {
		return nil, err
	}
	qcxTmI, err := bipoly.Mul(r2.QCX, tmI)
	if err != nil {
		return nil, err
	}
	qcyTs, err := bipoly.Mul(r2.QCY, tsmax)
	if err != nil {
		return nil, err
	}
	copyPoly, err = bipoly.Sub(copyPoly, qcxTmI)
	if err != nil {
		return nil, err
	}
	copyPoly, err = bipoly.Sub(copyPoly, qcyTs)
	if err != nil {
		return nil, err
	}

	rDirectOpen := r1.R.ScalarSub(r3.proof3.RHat).ScalarMul(kappa1Cube)

	combined, err := bipoly.Add(arithPoly, vOpen)
	if err != nil {
		return nil, err
	}
	combined, err = bipoly.Add(combined, copyPoly.ScalarMul(kappa1Sq))
	if err != nil {
		return nil, err
	}
	combined, err = bipoly.Add(combined, rDirectOpen)
	if err != nil {
		return nil, err
	}
	piACX, piACY, residue, err := combined.DivByRuffini(r3.chi, r3.zeta)
	if err != nil {
		return nil, err
	}

	aPoly, err := publicInstancePoly(inst)
	if err != nil {
		return nil, err
	}
	aEval, err := aPoly.Eval(r3.chi, r3.zeta)
	if err != nil {
		return nil, err
	}
	piBX, _, _, err := aPoly.ScalarSub(aEval).DivByRuffini(r3.chi, r3.zeta)
	if err != nil {
		return nil, err
	}

	omXInv := generatorInv(mI)
	omYInv := generatorInv(sMax)
	var chiShift, zetaShift fr.Element
	chiShift.Mul(&omXInv, &r3.chi)
	zetaShift.Mul(&omYInv, &r3.zeta)

	diffM := r1.R.ScalarSub(r3.proof3.RHatOmegaX)
	mX, mY, _, err := diffM.DivByRuffini(chiShift, r3.zeta)
	if err != nil {
		return nil, err
	}
	diffN := r1.R.ScalarSub(r3.proof3.RHatOmegaXOmegaY)
	nX, nY, _, err := diffN.DivByRuffini(chiShift, zetaShift)
	if err != nil {
		return nil, err
	}

	encode := func(p *bipoly.DensePolynomial2D) (groupenc.WireRow, error) {
		return groupenc.EncodePoly(p, rs.Sigma1.XYPowers)
	}

	encPiACX, err := encode(piACX)
	if err != nil {
		return nil, err
	}
	encPiACY, err := encode(piACY)
	if err != nil {
		return nil, err
	}
	encPiB, err := encode(piBX)
	if err != nil {
		return nil, err
	}
	encMX, err := encode(mX)
	if err != nil {
		return nil, err
	}
	encMY, err := encode(mY)
	if err != nil {
		return nil, err
	}
	encNX, err := encode(nX)
	if err != nil {
		return nil, err
	}
	encNY, err := encode(nY)
	if err != nil {
		return nil, err
	}

	piX := groupenc.AddBlinding(encPiACX, encPiB)
	piY := encPiACY

	return &round4Result{
		residue: residue,
		proof4: Proof4{
			PiX: piX, PiY: piY,
			MX: encMX, MY: encMY,
			NX: encNX, NY: encNY,
		},
	}, nil
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}
