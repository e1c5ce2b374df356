package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

// vanishingX builds t_k(X) = X^k - 1 as a DensePolynomial2D constant in Y.
func vanishingX(k int) (*bipoly.DensePolynomial2D, error) {
	coeffs := make([]fr.Element, 2*k)
	var negOne fr.Element
	negOne.SetOne()
	negOne.Neg(&negOne)
	coeffs[0] = negOne
	coeffs[k] = fr.NewElement(1)
	return bipoly.FromCoeffs(coeffs, 2*k, 1)
}

// vanishingY builds t_k(Y) = Y^k - 1 as a DensePolynomial2D constant in X.
func vanishingY(k int) (*bipoly.DensePolynomial2D, error) {
	coeffs := make([]fr.Element, 2*k)
	var negOne fr.Element
	negOne.SetOne()
	negOne.Neg(&negOne)
	coeffs[0] = negOne
	coeffs[k] = fr.NewElement(1)
	return bipoly.FromCoeffs(coeffs, 1, 2*k)
}

// smallPolyX builds a low-degree polynomial constant in Y from ascending
// X-coefficients (used for the rW_X/rB_X blinding polynomials).
func smallPolyX(coeffs []fr.Element) (*bipoly.DensePolynomial2D, error) {
	size := 1
	for size < len(coeffs) {
		size <<= 1
	}
	padded := make([]fr.Element, size)
	copy(padded, coeffs)
	return bipoly.FromCoeffs(padded, size, 1)
}

func smallPolyY(coeffs []fr.Element) (*bipoly.DensePolynomial2D, error) {
	size := 1
	for size < len(coeffs) {
		size <<= 1
	}
	padded := make([]fr.Element, size)
	copy(padded, coeffs)
	return bipoly.FromCoeffs(padded, 1, size)
}

// round0 assembles the witness polynomials, blinds
// them, and forms the arithmetic-constraint quotients.
type round0Result struct {
	u, v, w, b       *bipoly.DensePolynomial2D // unblinded; Round 1 reads b's grid values, u/v/w are not read again
	U, V, W, B       *bipoly.DensePolynomial2D
	QAX, QAY         *bipoly.DensePolynomial2D
	proof0           Proof0
	blind            *blinding
}

func runRound0(inst *Instance, rs *setup.ReferenceString) (*round0Result, error) {
	params := inst.Lib.Params
	n := int(params.N)
	sMax := int(params.SMax)
	mI := int(params.MI())

	uEv, vEv, wEv, bEv, err := inst.witnessGrids()
	if err != nil {
		return nil, err
	}

	u, err := bipoly.FromROUEvals(uEv, n, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	v, err := bipoly.FromROUEvals(vEv, n, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	w, err := bipoly.FromROUEvals(wEv, n, sMax, nil, nil)
	if err != nil {
		return nil, err
	}
	b, err := bipoly.FromROUEvals(bEv, mI, sMax, nil, nil)
	if err != nil {
		return nil, err
	}

	bl, err := sampleBlinding()
	if err != nil {
		return nil, err
	}

	tn, err := vanishingX(n)
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

	blindAxis := func(base *bipoly.DensePolynomial2D, rx, ry fr.Element) (*bipoly.DensePolynomial2D, error) {
		x1, err := bipoly.Add(base, tn.ScalarMul(rx))
		if err != nil {
			return nil, err
		}
		return bipoly.Add(x1, tsmax.ScalarMul(ry))
	}

	U, err := blindAxis(u, bl.rUX, bl.rUY)
	if err != nil {
		return nil, err
	}
	V, err := blindAxis(v, bl.rVX, bl.rVY)
	if err != nil {
		return nil, err
	}

	rWXPoly, err := smallPolyX(bl.rWX[:])
	if err != nil {
		return nil, err
	}
	rWYPoly, err := smallPolyY(bl.rWY[:])
	if err != nil {
		return nil, err
	}
	wCrossX, err := bipoly.Mul(rWXPoly, tn)
	if err != nil {
		return nil, err
	}
	wCrossY, err := bipoly.Mul(rWYPoly, tsmax)
	if err != nil {
		return nil, err
	}
	W, err := bipoly.Add(w, wCrossX)
	if err != nil {
		return nil, err
	}
	W, err = bipoly.Add(W, wCrossY)
	if err != nil {
		return nil, err
	}

	rBXPoly, err := smallPolyX(bl.rBX[:])
	if err != nil {
		return nil, err
	}
	rBYPoly, err := smallPolyY(bl.rBY[:])
	if err != nil {
		return nil, err
	}
	bCrossX, err := bipoly.Mul(rBXPoly, tmI)
	if err != nil {
		return nil, err
	}
	bCrossY, err := bipoly.Mul(rBYPoly, tsmax)
	if err != nil {
		return nil, err
	}
	B, err := bipoly.Add(b, bCrossX)
	if err != nil {
		return nil, err
	}
	B, err = bipoly.Add(B, bCrossY)
	if err != nil {
		return nil, err
	}

	uv, err := bipoly.Mul(U, V)
	if err != nil {
		return nil, err
	}
	p0, err := bipoly.Sub(uv, W)
	if err != nil {
		return nil, err
	}
	p0.OptimizeSize()
	QAX, QAY, err := p0.DivByVanishing(n, sMax)
	if err != nil {
		return nil, err
	}

	table := rs.Sigma1.XYPowers
	encU, err := groupenc.EncodePoly(U, table)
	if err != nil {
		return nil, err
	}
	encV, err := groupenc.EncodePoly(V, table)
	if err != nil {
		return nil, err
	}
	encW, err := groupenc.EncodePoly(W, table)
	if err != nil {
		return nil, err
	}
	encQAX, err := groupenc.EncodePoly(QAX, table)
	if err != nil {
		return nil, err
	}
	encQAY, err := groupenc.EncodePoly(QAY, table)
	if err != nil {
		return nil, err
	}
	encB, err := groupenc.EncodePoly(B, table)
	if err != nil {
		return nil, err
	}

	return &round0Result{
		u: u, v: v, w: w, b: b,
		U: U, V: V, W: W, B: B,
		QAX: QAX, QAY: QAY,
		blind: bl,
		proof0: Proof0{
			U: encU, V: encV, W: encW, QAX: encQAX, QAY: encQAY, B: encB,
		},
	}, nil
}
