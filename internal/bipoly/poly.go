// Package bipoly implements a dense bivariate polynomial engine over F[X,Y]:
// power-of-two row/column sizes, coefficient<->evaluation conversions via a
// column/row-batched 2D NTT, multiplication via evaluation, and division by
// vanishing pairs and linear factors. The univariate primitive underneath
// every axis transform is github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft,
// the same way backend/fflonk/bn254/prove.go's quotient computation drives
// gnark-crypto's fft.Domain per round.
package bipoly

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/tokamak-zk-evm/snark-core/internal/vectorops"
)

var (
	ErrNotPowerOfTwo     = errors.New("bipoly: size must be a power of two")
	ErrSizeMismatch      = errors.New("bipoly: coefficient count does not match x_size*y_size")
	ErrNotConstant       = errors.New("bipoly: eval precondition violated, result is not a constant")
	ErrDegreeTooLow      = errors.New("bipoly: degree is lower than the vanishing polynomial's degree")
	ErrNonzeroResidue    = errors.New("bipoly: ruffini division left a nonzero residue")
	ErrIndexOutOfRange   = errors.New("bipoly: index out of range")
)

// DensePolynomial2D is a dense coefficient matrix of shape (XSize, YSize),
// both powers of two. Coeffs[i*YSize+j] holds the coefficient of X^i*Y^j.
// XDegree/YDegree track the largest nonzero index along each axis, or -1
// for the zero polynomial on that axis.
type DensePolynomial2D struct {
	XSize, YSize   int
	XDegree, YDegree int
	Coeffs         []fr.Element
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// FromCoeffs builds a polynomial from a flat coefficient slice. Sizes must
// be powers of two; degrees are set conservatively (xSize-1, ySize-1) — call
// OptimizeSize to tighten them.
func FromCoeffs(coeffs []fr.Element, xSize, ySize int) (*DensePolynomial2D, error) {
	if !isPow2(xSize) || !isPow2(ySize) {
		return nil, ErrNotPowerOfTwo
	}
	if len(coeffs) != xSize*ySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(coeffs), xSize*ySize)
	}
	out := make([]fr.Element, len(coeffs))
	copy(out, coeffs)
	return &DensePolynomial2D{
		XSize: xSize, YSize: ySize,
		XDegree: xSize - 1, YDegree: ySize - 1,
		Coeffs: out,
	}, nil
}

// Zero returns the additive identity with the given (power-of-two) shape.
func Zero(xSize, ySize int) (*DensePolynomial2D, error) {
	if !isPow2(xSize) || !isPow2(ySize) {
		return nil, ErrNotPowerOfTwo
	}
	return &DensePolynomial2D{
		XSize: xSize, YSize: ySize,
		XDegree: -1, YDegree: -1,
		Coeffs: make([]fr.Element, xSize*ySize),
	}, nil
}

func (p *DensePolynomial2D) at(i, j int) fr.Element { return p.Coeffs[i*p.YSize+j] }

func (p *DensePolynomial2D) IsZero() bool { return p.XDegree == -1 && p.YDegree == -1 }

// Clone deep-copies the polynomial.
func (p *DensePolynomial2D) Clone() *DensePolynomial2D {
	c := make([]fr.Element, len(p.Coeffs))
	copy(c, p.Coeffs)
	return &DensePolynomial2D{XSize: p.XSize, YSize: p.YSize, XDegree: p.XDegree, YDegree: p.YDegree, Coeffs: c}
}

// OptimizeSize recomputes XDegree/YDegree by scanning from the top of each
// axis, then shrinks each axis to the smallest power of two strictly
// greater than the corresponding degree.
func (p *DensePolynomial2D) OptimizeSize() {
	xDeg, yDeg := -1, -1
	for i := p.XSize - 1; i >= 0 && xDeg == -1; i-- {
		for j := 0; j < p.YSize; j++ {
			if !p.at(i, j).IsZero() {
				xDeg = i
				break
			}
		}
	}
	for j := p.YSize - 1; j >= 0 && yDeg == -1; j-- {
		for i := 0; i < p.XSize; i++ {
			if !p.at(i, j).IsZero() {
				yDeg = j
				break
			}
		}
	}
	p.XDegree, p.YDegree = xDeg, yDeg

	newXSize := smallestPow2GreaterThan(xDeg)
	newYSize := smallestPow2GreaterThan(yDeg)
	if newXSize == p.XSize && newYSize == p.YSize {
		return
	}
	resized, _ := vectorops.ResizeMatrix(p.Coeffs, p.XSize, p.YSize, newXSize, newYSize)
	p.Coeffs = resized
	p.XSize, p.YSize = newXSize, newYSize
}

func smallestPow2GreaterThan(degree int) int {
	size := 1
	for size <= degree {
		size <<= 1
	}
	return size
}

// resizeTo returns a clone resized (zero-padded) to (xSize, ySize); sizes
// must each be >= the current size.
func (p *DensePolynomial2D) resizeTo(xSize, ySize int) (*DensePolynomial2D, error) {
	if xSize == p.XSize && ySize == p.YSize {
		return p.Clone(), nil
	}
	coeffs, err := vectorops.ResizeMatrix(p.Coeffs, p.XSize, p.YSize, xSize, ySize)
	if err != nil {
		return nil, err
	}
	return &DensePolynomial2D{XSize: xSize, YSize: ySize, XDegree: p.XDegree, YDegree: p.YDegree, Coeffs: coeffs}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func commonShape(a, b *DensePolynomial2D) (int, int) {
	return maxInt(a.XSize, b.XSize), maxInt(a.YSize, b.YSize)
}

// Add returns a+b.
func Add(a, b *DensePolynomial2D) (*DensePolynomial2D, error) {
	return combine(a, b, func(x, y *fr.Element, out *fr.Element) { out.Add(x, y) })
}

// Sub returns a-b.
func Sub(a, b *DensePolynomial2D) (*DensePolynomial2D, error) {
	return combine(a, b, func(x, y *fr.Element, out *fr.Element) { out.Sub(x, y) })
}

func combine(a, b *DensePolynomial2D, op func(x, y, out *fr.Element)) (*DensePolynomial2D, error) {
	xs, ys := commonShape(a, b)
	ra, err := a.resizeTo(xs, ys)
	if err != nil {
		return nil, err
	}
	rb, err := b.resizeTo(xs, ys)
	if err != nil {
		return nil, err
	}
	res := &DensePolynomial2D{XSize: xs, YSize: ys, XDegree: xs - 1, YDegree: ys - 1, Coeffs: make([]fr.Element, xs*ys)}
	for i := range res.Coeffs {
		op(&ra.Coeffs[i], &rb.Coeffs[i], &res.Coeffs[i])
	}
	res.OptimizeSize()
	return res, nil
}

// Neg returns -p.
func (p *DensePolynomial2D) Neg() *DensePolynomial2D {
	res := p.Clone()
	for i := range res.Coeffs {
		res.Coeffs[i].Neg(&res.Coeffs[i])
	}
	return res
}

// ScalarAdd adds c to the constant coefficient only.
func (p *DensePolynomial2D) ScalarAdd(c fr.Element) *DensePolynomial2D {
	res := p.Clone()
	res.Coeffs[0].Add(&res.Coeffs[0], &c)
	res.OptimizeSize()
	return res
}

// ScalarSub subtracts c from the constant coefficient only.
func (p *DensePolynomial2D) ScalarSub(c fr.Element) *DensePolynomial2D {
	res := p.Clone()
	res.Coeffs[0].Sub(&res.Coeffs[0], &c)
	res.OptimizeSize()
	return res
}

// ScalarMul multiplies every coefficient by c.
func (p *DensePolynomial2D) ScalarMul(c fr.Element) *DensePolynomial2D {
	res := p.Clone()
	for i := range res.Coeffs {
		res.Coeffs[i].Mul(&res.Coeffs[i], &c)
	}
	if c.IsZero() {
		res.XDegree, res.YDegree = -1, -1
	}
	return res
}

// MulMonomial shifts coefficients by (a, b): the result's coefficient at
// (i+a, j+b) equals p's coefficient at (i,j); grows sizes as needed.
func (p *DensePolynomial2D) MulMonomial(a, b int) *DensePolynomial2D {
	if p.IsZero() {
		z, _ := Zero(p.XSize, p.YSize)
		return z
	}
	newXSize := smallestPow2GreaterThan(p.XDegree + a)
	newYSize := smallestPow2GreaterThan(p.YDegree + b)
	res := &DensePolynomial2D{XSize: newXSize, YSize: newYSize, Coeffs: make([]fr.Element, newXSize*newYSize)}
	for i := 0; i <= p.XDegree; i++ {
		for j := 0; j <= p.YDegree; j++ {
			res.Coeffs[(i+a)*newYSize+(j+b)] = p.at(i, j)
		}
	}
	res.OptimizeSize()
	return res
}

// ScaleCoeffsX replaces coefficient c_{i,j} by c_{i,j}*alpha^i, evaluating
// p(alpha*X, Y).
func (p *DensePolynomial2D) ScaleCoeffsX(alpha fr.Element) *DensePolynomial2D {
	res := p.Clone()
	var pow fr.Element
	pow.SetOne()
	for i := 0; i < res.XSize; i++ {
		for j := 0; j < res.YSize; j++ {
			idx := i*res.YSize + j
			res.Coeffs[idx].Mul(&res.Coeffs[idx], &pow)
		}
		pow.Mul(&pow, &alpha)
	}
	return res
}

// ScaleCoeffsY replaces coefficient c_{i,j} by c_{i,j}*alpha^j, evaluating
// p(X, alpha*Y).
func (p *DensePolynomial2D) ScaleCoeffsY(alpha fr.Element) *DensePolynomial2D {
	res := p.Clone()
	powers := make([]fr.Element, res.YSize)
	powers[0].SetOne()
	for j := 1; j < res.YSize; j++ {
		powers[j].Mul(&powers[j-1], &alpha)
	}
	for i := 0; i < res.XSize; i++ {
		base := i * res.YSize
		for j := 0; j < res.YSize; j++ {
			res.Coeffs[base+j].Mul(&res.Coeffs[base+j], &powers[j])
		}
	}
	return res
}

// GetUnivariatePolynomialX returns the column of coefficients at Y-index j,
// i.e. the coefficient of Y^j as a polynomial in X (not p evaluated at a
// root of unity), built as an x_size x 1 polynomial and trimmed by
// OptimizeSize.
func (p *DensePolynomial2D) GetUnivariatePolynomialX(j int) (*DensePolynomial2D, error) {
	if j < 0 || j >= p.YSize {
		return nil, ErrIndexOutOfRange
	}
	coeffs := make([]fr.Element, p.XSize)
	for i := 0; i < p.XSize; i++ {
		coeffs[i] = p.at(i, j)
	}
	res, err := FromCoeffs(coeffs, p.XSize, 1)
	if err != nil {
		return nil, err
	}
	res.OptimizeSize()
	return res, nil
}

// axisDomain returns (or builds) the fft.Domain of a given power-of-two size.
func axisDomain(size int) *fft.Domain {
	return fft.NewDomain(uint64(size))
}

// horner evaluates the univariate coefficient slice at x.
func horner(coeffs []fr.Element, x fr.Element) fr.Element {
	var res fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		res.Mul(&res, &x)
		res.Add(&res, &coeffs[i])
	}
	return res
}
