package bipoly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// transformColumnsX runs an independent length-XSize transform over every
// Y-column (stride YSize), column-batched along X.
func (p *DensePolynomial2D) transformColumnsX(inverse bool) {
	domain := axisDomain(p.XSize)
	col := make([]fr.Element, p.XSize)
	for j := 0; j < p.YSize; j++ {
		for i := 0; i < p.XSize; i++ {
			col[i] = p.Coeffs[i*p.YSize+j]
		}
		if inverse {
			fft.BitReverse(col)
			domain.FFTInverse(col, fft.DIT)
		} else {
			domain.FFT(col, fft.DIF)
			fft.BitReverse(col)
		}
		for i := 0; i < p.XSize; i++ {
			p.Coeffs[i*p.YSize+j] = col[i]
		}
	}
}

// transformRowsY runs an independent length-YSize transform over every
// X-row (contiguous), row-batched along Y.
func (p *DensePolynomial2D) transformRowsY(inverse bool) {
	domain := axisDomain(p.YSize)
	for i := 0; i < p.XSize; i++ {
		row := p.Coeffs[i*p.YSize : (i+1)*p.YSize]
		if inverse {
			fft.BitReverse(row)
			domain.FFTInverse(row, fft.DIT)
		} else {
			domain.FFT(row, fft.DIF)
			fft.BitReverse(row)
		}
	}
}

// FromROUEvals performs the 2D inverse NTT (X columns then Y rows) that
// converts a grid of evaluations on the roots-of-unity domain into
// coefficient form. If cosetX/cosetY are supplied, the evaluations are
// understood to live on a coset of the respective axis, and the resulting
// coefficients are rescaled by factor^{-i} (resp factor^{-j}) to recover the
// polynomial's true coefficients.
func FromROUEvals(evals []fr.Element, xSize, ySize int, cosetX, cosetY *fr.Element) (*DensePolynomial2D, error) {
	p, err := FromCoeffs(evals, xSize, ySize)
	if err != nil {
		return nil, err
	}
	p.transformColumnsX(true)
	p.transformRowsY(true)
	if cosetX != nil {
		var inv fr.Element
		inv.Inverse(cosetX)
		p = p.ScaleCoeffsX(inv)
	}
	if cosetY != nil {
		var inv fr.Element
		inv.Inverse(cosetY)
		p = p.ScaleCoeffsY(inv)
	}
	p.OptimizeSize()
	return p, nil
}

// ToROUEvals is the inverse of FromROUEvals: it returns the grid of
// evaluations of p (optionally shifted by a coset on either axis) on the
// roots-of-unity domain of p's current shape.
func (p *DensePolynomial2D) ToROUEvals(cosetX, cosetY *fr.Element) []fr.Element {
	q := p.Clone()
	if cosetX != nil {
		q = q.ScaleCoeffsX(*cosetX)
	}
	if cosetY != nil {
		q = q.ScaleCoeffsY(*cosetY)
	}
	q.transformRowsY(false)
	q.transformColumnsX(false)
	return q.Coeffs
}

// EvalX partially evaluates p at X=x, returning a univariate-in-Y polynomial
// built with shape (1, YSize) and then trimmed by OptimizeSize.
func (p *DensePolynomial2D) EvalX(x fr.Element) *DensePolynomial2D {
	out := make([]fr.Element, p.YSize)
	col := make([]fr.Element, p.XSize)
	for j := 0; j < p.YSize; j++ {
		for i := 0; i < p.XSize; i++ {
			col[i] = p.at(i, j)
		}
		out[j] = horner(col, x)
	}
	res, _ := FromCoeffs(out, 1, p.YSize)
	res.OptimizeSize()
	return res
}

// EvalY partially evaluates p at Y=y, returning a univariate-in-X polynomial
// built with shape (XSize, 1) and then trimmed by OptimizeSize.
func (p *DensePolynomial2D) EvalY(y fr.Element) *DensePolynomial2D {
	out := make([]fr.Element, p.XSize)
	for i := 0; i < p.XSize; i++ {
		row := p.Coeffs[i*p.YSize : (i+1)*p.YSize]
		out[i] = horner(row, y)
	}
	res, _ := FromCoeffs(out, p.XSize, 1)
	res.OptimizeSize()
	return res
}

// Eval evaluates p(x,y) fully: partial evaluation at X=x followed by a
// Horner evaluation of the resulting Y-univariate at y. The result is
// always a field element and the returned error is always nil;
// ErrNotConstant is declared in this package but nothing returns it.
func (p *DensePolynomial2D) Eval(x, y fr.Element) (fr.Element, error) {
	xy := p.EvalX(x)
	return horner(xy.Coeffs, y), nil
}
