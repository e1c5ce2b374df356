// Package verifier implements the multi-pairing check: it recomputes the
// prover's Fiat-Shamir challenges from the proof alone, rebuilds the
// arithmetic, copy-constraint and instance-binding identities as G1 linear
// combinations, folds the opening witnesses in via the verifier-only
// batching challenge kappa2, and accepts iff the resulting product of
// pairings equals the identity in GT. Grounded on the original verify_all
// reference routine, translated term for term into gnark-crypto's G1/G2
// arithmetic and PairingCheck.
package verifier

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/prover"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
)

// Verifier holds the witness-independent commitments derived once per
// circuit: s0/s1 (commitments to the permutation-label grids) and
// lagrangeKL (commitment to K*L, the grid-boundary indicator product), plus
// the K0 indicator polynomial kept around to evaluate at the verifier's own
// challenge point each call.
type Verifier struct {
	rs     *setup.ReferenceString
	params circuitio.SetupParams

	s0, s1, lagrangeKL bls12381.G1Affine
	k0Poly             *bipoly.DensePolynomial2D
}

// New builds a Verifier for a fixed circuit (params, perm) against rs. perm
// is the copy-constraint table published alongside the reference string,
// public data identical to what the prover consumed.
func New(rs *setup.ReferenceString, params circuitio.SetupParams, perm []circuitio.PermutationEntry) (*Verifier, error) {
	mI := int(params.MI())
	sMax := int(params.SMax)

	s0Ev, s1Ev, _, _ := prover.PermutationLabels(params, perm)
	s0Poly, err := bipoly.FromROUEvals(s0Ev, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	s1Poly, err := bipoly.FromROUEvals(s1Ev, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	s0, err := groupenc.EncodePoly(s0Poly, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}
	s1, err := groupenc.EncodePoly(s1Poly, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}

	kGrid := prover.IndicatorGrid(mI, sMax, mI-1, true)
	lGrid := prover.IndicatorGrid(mI, sMax, sMax-1, false)
	kPoly, err := bipoly.FromROUEvals(kGrid, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	lPoly, err := bipoly.FromROUEvals(lGrid, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	klPoly, err := bipoly.Mul(kPoly, lPoly)
	if err != nil {
		return nil, err
	}
	klPoly.OptimizeSize()
	lagrangeKL, err := groupenc.EncodePoly(klPoly, rs.Sigma1.XYPowers)
	if err != nil {
		return nil, err
	}

	k0Grid := prover.IndicatorGrid(mI, sMax, 0, true)
	k0Poly, err := bipoly.FromROUEvals(k0Grid, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}

	return &Verifier{rs: rs, params: params, s0: s0, s1: s1, lagrangeKL: lagrangeKL, k0Poly: k0Poly}, nil
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

func powSubOne(x fr.Element, k uint64) fr.Element {
	var pw, o, out fr.Element
	pw.Exp(x, new(big.Int).SetUint64(k))
	o = one()
	out.Sub(&pw, &o)
	return out
}

// deriveChallenges replays the prover's exact bind/challenge schedule over
// the proof's own messages, so a tampered proof element changes the
// challenges derived from it rather than only failing a later equality.
func (v *Verifier) deriveChallenges(proof *prover.Proof) (theta0, theta1, theta2, kappa0, chi, zeta, kappa1, kappa2 fr.Element, err error) {
	t := transcript.New()
	p0, p1, p2, p3, p4 := proof.P0, proof.P1, proof.P2, proof.P3, proof.P4

	if err = transcript.BindG1Batch(t, transcript.LabelTheta0, 0, p0.U, p0.V, p0.W, p0.QAX, p0.QAY, p0.B); err != nil {
		return
	}
	if theta0, err = t.Challenge(transcript.LabelTheta0); err != nil {
		return
	}
	if err = transcript.BindG1Batch(t, transcript.LabelTheta1, 1, p0.U, p0.V, p0.W, p0.QAX, p0.QAY, p0.B); err != nil {
		return
	}
	if theta1, err = t.Challenge(transcript.LabelTheta1); err != nil {
		return
	}
	if err = transcript.BindG1Batch(t, transcript.LabelTheta2, 2, p0.U, p0.V, p0.W, p0.QAX, p0.QAY, p0.B); err != nil {
		return
	}
	if theta2, err = t.Challenge(transcript.LabelTheta2); err != nil {
		return
	}

	if err = transcript.BindG1Batch(t, transcript.LabelKappa0, 0, p1.R); err != nil {
		return
	}
	if kappa0, err = t.Challenge(transcript.LabelKappa0); err != nil {
		return
	}

	if err = transcript.BindG1Batch(t, transcript.LabelChi, 0, p2.QCX, p2.QCY); err != nil {
		return
	}
	if chi, err = t.Challenge(transcript.LabelChi); err != nil {
		return
	}
	if err = transcript.BindG1Batch(t, transcript.LabelZeta, 1, p2.QCX, p2.QCY); err != nil {
		return
	}
	if zeta, err = t.Challenge(transcript.LabelZeta); err != nil {
		return
	}

	if err = transcript.BindFrBatch(t, transcript.LabelKappa1, 0, p3.VHat, p3.RHat, p3.RHatOmegaX, p3.RHatOmegaXOmegaY); err != nil {
		return
	}
	if kappa1, err = t.Challenge(transcript.LabelKappa1); err != nil {
		return
	}

	if err = transcript.BindG1Batch(t, transcript.LabelKappa2, 0, p4.PiX, p4.PiY, p4.MX, p4.MY, p4.NX, p4.NY); err != nil {
		return
	}
	if kappa2, err = t.Challenge(transcript.LabelKappa2); err != nil {
		return
	}
	return
}

// Verify checks proof against binding and the raw public wire values
// publicVals ([0,l)), per the verify_all equation: it rebuilds LHS_A
// (arithmetic), LHS_C (copy-constraint, via F/G label-shifted commitments)
// and LHS_B (instance binding), folds them with the opening witnesses
// Pi_X/Pi_Y/M_X/M_Y/N_X/N_Y under kappa2, and performs one batched
// multi-pairing check.
func (v *Verifier) Verify(proof *prover.Proof, binding *prover.Binding, publicVals []fr.Element) (bool, error) {
	params := v.params
	n := uint64(params.N)
	mI := int(params.MI())
	sMax := int(params.SMax)

	theta0, theta1, theta2, kappa0, chi, zeta, kappa1, kappa2, err := v.deriveChallenges(proof)
	if err != nil {
		return false, err
	}

	omegaMIInv := prover.GeneratorInv(mI)
	omegaSMaxInv := prover.GeneratorInv(sMax)

	tnEval := powSubOne(chi, n)
	tmIEval := powSubOne(chi, uint64(mI))
	tsmaxEval := powSubOne(zeta, uint64(sMax))

	aPoly, err := prover.PublicInstancePoly(publicVals)
	if err != nil {
		return false, err
	}
	aEval, err := aPoly.Eval(chi, zeta)
	if err != nil {
		return false, err
	}
	k0Eval, err := v.k0Poly.Eval(chi, zeta)
	if err != nil {
		return false, err
	}

	p0, p1, p2, p4 := proof.P0, proof.P1, proof.P2, proof.P4
	p3 := proof.P3
	G := v.rs.G

	term := func(p bls12381.G1Affine, s fr.Element) groupenc.G1Term { return groupenc.G1Term{Point: p, Scalar: s} }

	var kappa1VHat, negKappa1VHat, negOne, negTnEval, negTsmaxEval, negTmIEval fr.Element
	kappa1VHat.Mul(&kappa1, &p3.VHat)
	negKappa1VHat.Neg(&kappa1VHat)
	negOne = one()
	negOne.Neg(&negOne)
	negTnEval.Neg(&tnEval)
	negTsmaxEval.Neg(&tsmaxEval)
	negTmIEval.Neg(&tmIEval)

	lhsA := groupenc.CombineG1(
		term(p0.U, p3.VHat),
		term(p0.W, negOne),
		term(p0.V, kappa1),
		term(G, negKappa1VHat),
		term(p0.QAX, negTnEval),
		term(p0.QAY, negTsmaxEval),
	)

	one1 := one()
	f := groupenc.CombineG1(
		term(p0.B, one1),
		term(v.s0, theta0),
		term(v.s1, theta1),
		term(G, theta2),
	)

	rsy := v.rs.Sigma1.XYPowers.RSY
	xRow := v.rs.Sigma1.XYPowers.Points[1*rsy+0]
	yRow := v.rs.Sigma1.XYPowers.Points[0*rsy+1]

	gc := groupenc.CombineG1(
		term(p0.B, one1),
		term(xRow, theta0),
		term(yRow, theta1),
		term(G, theta2),
	)

	var chiMinus1, w0, kappa0Sq, w1, rhatMinus1 fr.Element
	chiMinus1.Sub(&chi, &one1)
	w0.Mul(&kappa0, &chiMinus1)
	kappa0Sq.Mul(&kappa0, &kappa0)
	w1.Mul(&kappa0Sq, &k0Eval)
	rhatMinus1.Sub(&p3.RHat, &one1)

	diff1 := groupenc.SubG1(groupenc.ScalarMulG1(gc, p3.RHat), groupenc.ScalarMulG1(f, p3.RHatOmegaX))
	diff2 := groupenc.SubG1(groupenc.ScalarMulG1(gc, p3.RHat), groupenc.ScalarMulG1(f, p3.RHatOmegaXOmegaY))

	lhsCTerm1 := groupenc.CombineG1(
		term(v.lagrangeKL, rhatMinus1),
		term(diff1, w0),
		term(diff2, w1),
		term(p2.QCX, negTmIEval),
		term(p2.QCY, negTsmaxEval),
	)

	var kappa1Sq, kappa1Cube, kappa1Four, kappa2Sq, kappa2Cube fr.Element
	kappa1Sq.Mul(&kappa1, &kappa1)
	kappa1Cube.Mul(&kappa1Sq, &kappa1)
	kappa1Four.Mul(&kappa1Cube, &kappa1)
	kappa2Sq.Mul(&kappa2, &kappa2)
	kappa2Cube.Mul(&kappa2Sq, &kappa2)

	var k1CubeRHat, k2RHatOmX, k2SqRHatOmXOmY fr.Element
	k1CubeRHat.Mul(&kappa1Cube, &p3.RHat)
	k2RHatOmX.Mul(&kappa2, &p3.RHatOmegaX)
	k2SqRHatOmXOmY.Mul(&kappa2Sq, &p3.RHatOmegaXOmegaY)
	var negK1CubeRHat, negK2RHatOmX, negK2SqRHatOmXOmY fr.Element
	negK1CubeRHat.Neg(&k1CubeRHat)
	negK2RHatOmX.Neg(&k2RHatOmX)
	negK2SqRHatOmXOmY.Neg(&k2SqRHatOmXOmY)

	lhsC := groupenc.AddG1(
		groupenc.ScalarMulG1(lhsCTerm1, kappa1Sq),
		groupenc.CombineG1(
			term(p1.R, kappa1Cube),
			term(G, negK1CubeRHat),
			term(p1.R, kappa2),
			term(G, negK2RHatOmX),
			term(p1.R, kappa2Sq),
			term(G, negK2SqRHatOmXOmY),
		),
	)

	var k2k1Four, onePlusK2K1Four, k2k1FourAEval, negK2K1FourAEval fr.Element
	k2k1Four.Mul(&kappa2, &kappa1Four)
	onePlusK2K1Four.Add(&k2k1Four, &one1)
	k2k1FourAEval.Mul(&k2k1Four, &aEval)
	negK2K1FourAEval.Neg(&k2k1FourAEval)

	lhsB := groupenc.CombineG1(
		term(binding.A, onePlusK2K1Four),
		term(G, negK2K1FourAEval),
	)

	sumAC := groupenc.AddG1(lhsA, lhsC)
	lhs := groupenc.AddG1(lhsB, groupenc.ScalarMulG1(sumAC, kappa2))

	var sPiX, sPiY, sMX, sMY, sNX, sNY, tmp fr.Element
	sPiX.Mul(&kappa2, &chi)
	sPiY.Mul(&kappa2, &zeta)
	tmp.Mul(&kappa2Sq, &omegaMIInv)
	sMX.Mul(&tmp, &chi)
	sMY.Mul(&kappa2Sq, &zeta)
	tmp.Mul(&kappa2Cube, &omegaMIInv)
	sNX.Mul(&tmp, &chi)
	tmp.Mul(&kappa2Cube, &omegaSMaxInv)
	sNY.Mul(&tmp, &zeta)

	aux := groupenc.CombineG1(
		term(p4.PiX, sPiX),
		term(p4.PiY, sPiY),
		term(p4.MX, sMX),
		term(p4.MY, sMY),
		term(p4.NX, sNX),
		term(p4.NY, sNY),
	)

	auxX := groupenc.CombineG1(
		term(p4.PiX, kappa2),
		term(p4.MX, kappa2Sq),
		term(p4.NX, kappa2Cube),
	)
	auxY := groupenc.CombineG1(
		term(p4.PiY, kappa2),
		term(p4.MY, kappa2Sq),
		term(p4.NY, kappa2Cube),
	)

	lhsPlusAux := groupenc.AddG1(lhs, aux)

	leftG1 := []bls12381.G1Affine{lhsPlusAux, p0.B, p0.U, p0.V, p0.W}
	leftG2 := []bls12381.G2Affine{v.rs.H, v.rs.Sigma2.Alpha4, v.rs.Sigma2.Alpha, v.rs.Sigma2.Alpha2, v.rs.Sigma2.Alpha3}

	rightG1 := []bls12381.G1Affine{
		groupenc.NegG1(binding.OPub),
		groupenc.NegG1(binding.OMid),
		groupenc.NegG1(binding.OPrv),
		groupenc.NegG1(auxX),
		groupenc.NegG1(auxY),
	}
	rightG2 := []bls12381.G2Affine{v.rs.Sigma2.Gamma, v.rs.Sigma2.Eta, v.rs.Sigma2.Delta, v.rs.Sigma2.X, v.rs.Sigma2.Y}

	allG1 := append(leftG1, rightG1...)
	allG2 := append(leftG2, rightG2...)

	return groupenc.PairingCheck(allG1, allG2)
}
