package bipoly

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// syntheticDivide divides p(X) = sum c[i]*X^i by (X-a), returning the
// quotient's ascending coefficients (degree len(c)-2) and the remainder.
func syntheticDivide(c []fr.Element, a fr.Element) ([]fr.Element, fr.Element) {
	n := len(c)
	if n == 0 {
		return nil, fr.Element{}
	}
	if n == 1 {
		return nil, c[0]
	}
	q := make([]fr.Element, n-1)
	q[n-2] = c[n-1]
	var t fr.Element
	for i := n - 2; i >= 1; i-- {
		t.Mul(&a, &q[i])
		q[i-1].Add(&c[i], &t)
	}
	var r fr.Element
	t.Mul(&a, &q[0])
	r.Add(&c[0], &t)
	return q, r
}

// DivByRuffini writes p(X,Y) = QX(X,Y)*(X-x) + QY(Y)*(Y-y) + r: per-Y-column
// synthetic division by (X-x) assembles QX and
// a vector of per-column remainders; that vector, read as a univariate in Y,
// is then synthetically divided by (Y-y) to produce QY and the scalar
// residue r.
func (p *DensePolynomial2D) DivByRuffini(x, y fr.Element) (qx, qy *DensePolynomial2D, r fr.Element, err error) {
	n, m := p.XSize, p.YSize
	qxCoeffs := make([]fr.Element, n*m)
	remainders := make([]fr.Element, m)

	col := make([]fr.Element, n)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			col[i] = p.at(i, j)
		}
		q, rem := syntheticDivide(col, x)
		for i := 0; i < len(q); i++ {
			qxCoeffs[i*m+j] = q[i]
		}
		remainders[j] = rem
	}

	qx, err = FromCoeffs(qxCoeffs, n, m)
	if err != nil {
		return nil, nil, fr.Element{}, err
	}
	qx.OptimizeSize()

	qyCoeffs := make([]fr.Element, m)
	qRaw, finalR := syntheticDivide(remainders, y)
	copy(qyCoeffs, qRaw)

	qy, err = FromCoeffs(qyCoeffs, 1, m)
	if err != nil {
		return nil, nil, fr.Element{}, err
	}
	qy.OptimizeSize()

	return qx, qy, finalR, nil
}

// longDivide divides the ascending coefficient slice num by denom
// (schoolbook long division), returning (quotient, remainder), both
// ascending. denom's leading (highest-index) coefficient must be nonzero.
func longDivide(num, denom []fr.Element) ([]fr.Element, []fr.Element) {
	denomDeg := len(denom) - 1
	for denomDeg > 0 && denom[denomDeg].IsZero() {
		denomDeg--
	}
	remainder := make([]fr.Element, len(num))
	copy(remainder, num)
	numDeg := len(remainder) - 1
	for numDeg > 0 && remainder[numDeg].IsZero() {
		numDeg--
	}
	if numDeg < denomDeg {
		return []fr.Element{}, remainder[:numDeg+1]
	}
	quotient := make([]fr.Element, numDeg-denomDeg+1)
	var leadInv fr.Element
	leadInv.Inverse(&denom[denomDeg])

	for numDeg >= denomDeg {
		var coef fr.Element
		coef.Mul(&remainder[numDeg], &leadInv)
		quotient[numDeg-denomDeg] = coef
		for i := 0; i <= denomDeg; i++ {
			var t fr.Element
			t.Mul(&coef, &denom[i])
			remainder[numDeg-denomDeg+i].Sub(&remainder[numDeg-denomDeg+i], &t)
		}
		numDeg--
	}
	return quotient, remainder[:denomDeg]
}

// DivideX performs long division of p by a univariate-in-X denominator,
// delegating per Y-column to longDivide.
func (p *DensePolynomial2D) DivideX(denom []fr.Element) (*DensePolynomial2D, error) {
	n, m := p.XSize, p.YSize
	qCoeffs := make([]fr.Element, n*m)
	col := make([]fr.Element, n)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			col[i] = p.at(i, j)
		}
		q, _ := longDivide(col, denom)
		for i := 0; i < len(q); i++ {
			qCoeffs[i*m+j] = q[i]
		}
	}
	res, err := FromCoeffs(qCoeffs, n, m)
	if err != nil {
		return nil, err
	}
	res.OptimizeSize()
	return res, nil
}

// DivideY performs long division of p by a univariate-in-Y denominator,
// delegating per X-row to longDivide.
func (p *DensePolynomial2D) DivideY(denom []fr.Element) (*DensePolynomial2D, error) {
	n, m := p.XSize, p.YSize
	qCoeffs := make([]fr.Element, n*m)
	for i := 0; i < n; i++ {
		row := p.Coeffs[i*m : (i+1)*m]
		q, _ := longDivide(row, denom)
		copy(qCoeffs[i*m:i*m+len(q)], q)
	}
	res, err := FromCoeffs(qCoeffs, n, m)
	if err != nil {
		return nil, err
	}
	res.OptimizeSize()
	return res, nil
}

func randomElement() (fr.Element, error) {
	var e fr.Element
	_, err := e.SetRandom()
	return e, err
}

// vanishingAxisEvals evaluates t_k(Z) = Z^k - 1 at the size-many roots of
// unity of the given size, optionally shifted by a coset.
func vanishingAxisEvals(size, k int, coset *fr.Element) []fr.Element {
	domain := axisDomain(size)
	out := make([]fr.Element, size)
	var base fr.Element
	base.SetOne()
	if coset != nil {
		base.Set(coset)
	}
	point := base
	var one fr.Element
	one.SetOne()
	kBig := big.NewInt(int64(k))
	for i := 0; i < size; i++ {
		var pk fr.Element
		pk.Exp(point, kBig)
		out[i].Sub(&pk, &one)
		point.Mul(&point, &domain.Generator)
	}
	return out
}

// DivByVanishing divides self by the vanishing pair t_c(X)=X^c-1,
// t_d(Y)=Y^d-1: self is assumed to have degrees >= (c,d). Implements a
// block-reduction + coset-NTT method: self is folded into a c x y_size
// block A' (which equals self mod t_c(X)), A' is opened on a Y-coset to
// divide out t_d(Y)
// and recover Q_Y, and the residual B = self - Q_Y*t_d(Y) is opened on an
// X-coset to divide out t_c(X) and recover Q_X.
func (p *DensePolynomial2D) DivByVanishing(c, d int) (qx, qy *DensePolynomial2D, err error) {
	self := p.Clone()
	self.OptimizeSize()
	if self.XSize < c {
		self, err = self.resizeTo(c, self.YSize)
		if err != nil {
			return nil, nil, err
		}
	}
	if self.YSize < d {
		self, err = self.resizeTo(self.XSize, d)
		if err != nil {
			return nil, nil, err
		}
	}

	m := self.XSize / c
	ySize := self.YSize

	aPrime := make([]fr.Element, c*ySize)
	for k := 0; k < m; k++ {
		for i := 0; i < c; i++ {
			rowBase := (k*c + i) * ySize
			outBase := i * ySize
			for j := 0; j < ySize; j++ {
				aPrime[outBase+j].Add(&aPrime[outBase+j], &self.Coeffs[rowBase+j])
			}
		}
	}
	aPoly, err := FromCoeffs(aPrime, c, ySize)
	if err != nil {
		return nil, nil, err
	}

	xi, err := randomElement()
	if err != nil {
		return nil, nil, err
	}
	aEvals := aPoly.ToROUEvals(nil, &xi)
	tdEvals := vanishingAxisEvals(ySize, d, &xi)

	qyEvals := make([]fr.Element, len(aEvals))
	for i := 0; i < c; i++ {
		base := i * ySize
		for j := 0; j < ySize; j++ {
			var inv fr.Element
			inv.Inverse(&tdEvals[j])
			qyEvals[base+j].Mul(&aEvals[base+j], &inv)
		}
	}
	qy, err = FromROUEvals(qyEvals, c, ySize, nil, &xi)
	if err != nil {
		return nil, nil, err
	}
	qy.OptimizeSize()

	rTerm := qy.MulMonomial(0, d)
	r, err := Sub(rTerm, qy)
	if err != nil {
		return nil, nil, err
	}
	b, err := Sub(self, r)
	if err != nil {
		return nil, nil, err
	}
	b.OptimizeSize()

	zeta, err := randomElement()
	if err != nil {
		return nil, nil, err
	}
	bEvals := b.ToROUEvals(&zeta, nil)
	tcEvals := vanishingAxisEvals(b.XSize, c, &zeta)

	qxEvals := make([]fr.Element, len(bEvals))
	for i := 0; i < b.XSize; i++ {
		var inv fr.Element
		inv.Inverse(&tcEvals[i])
		base := i * b.YSize
		for j := 0; j < b.YSize; j++ {
			qxEvals[base+j].Mul(&bEvals[base+j], &inv)
		}
	}
	qx, err = FromROUEvals(qxEvals, b.XSize, b.YSize, &zeta, nil)
	if err != nil {
		return nil, nil, err
	}
	qx.OptimizeSize()

	return qx, qy, nil
}
