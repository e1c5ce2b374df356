// Package vectorops implements the pointwise and structural vector
// operations that the bivariate polynomial engine and the prover build on.
// Most functions write into a caller-provided buffer, following
// backend/fflonk/bn254/prove.go's buf/cres/twiddles0 pattern of explicit,
// reusable allocations over hidden per-call allocation; ResizeMatrix
// returns a newly allocated matrix and InnerProduct returns a scalar.
package vectorops

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

var (
	ErrLengthMismatch = errors.New("vectorops: length mismatch")
	ErrDivideByZero   = errors.New("vectorops: division by zero element")
	ErrNotPowerOfTwo  = errors.New("vectorops: size must be a power of two")
)

func checkSameLen(a, b []fr.Element) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	return nil
}

// PointwiseAdd sets out[i] = a[i] + b[i].
func PointwiseAdd(a, b, out []fr.Element) error {
	if err := checkSameLen(a, b); err != nil {
		return err
	}
	if err := checkSameLen(a, out); err != nil {
		return err
	}
	for i := range a {
		out[i].Add(&a[i], &b[i])
	}
	return nil
}

// PointwiseSub sets out[i] = a[i] - b[i].
func PointwiseSub(a, b, out []fr.Element) error {
	if err := checkSameLen(a, b); err != nil {
		return err
	}
	if err := checkSameLen(a, out); err != nil {
		return err
	}
	for i := range a {
		out[i].Sub(&a[i], &b[i])
	}
	return nil
}

// PointwiseMul sets out[i] = a[i] * b[i].
func PointwiseMul(a, b, out []fr.Element) error {
	if err := checkSameLen(a, b); err != nil {
		return err
	}
	if err := checkSameLen(a, out); err != nil {
		return err
	}
	for i := range a {
		out[i].Mul(&a[i], &b[i])
	}
	return nil
}

// PointwiseDiv sets out[i] = a[i] / b[i]; fails if any b[i] == 0.
func PointwiseDiv(a, b, out []fr.Element) error {
	if err := checkSameLen(a, b); err != nil {
		return err
	}
	if err := checkSameLen(a, out); err != nil {
		return err
	}
	inv := make([]fr.Element, len(b))
	for i := range b {
		if b[i].IsZero() {
			return fmt.Errorf("%w: at index %d", ErrDivideByZero, i)
		}
	}
	inv = fr.BatchInvert(b)
	for i := range a {
		out[i].Mul(&a[i], &inv[i])
	}
	return nil
}

// Scale sets out[i] = c * v[i].
func Scale(c fr.Element, v, out []fr.Element) error {
	if err := checkSameLen(v, out); err != nil {
		return err
	}
	for i := range v {
		out[i].Mul(&c, &v[i])
	}
	return nil
}

// InnerProduct returns sum_i a[i]*b[i].
func InnerProduct(a, b []fr.Element) (fr.Element, error) {
	var res fr.Element
	if err := checkSameLen(a, b); err != nil {
		return res, err
	}
	var tmp fr.Element
	for i := range a {
		tmp.Mul(&a[i], &b[i])
		res.Add(&res, &tmp)
	}
	return res, nil
}

// TransposeInplace reshapes a flattened rows x cols matrix (row-major) into
// cols x rows (row-major), in place.
func TransposeInplace(v []fr.Element, rows, cols int) error {
	if len(v) != rows*cols {
		return fmt.Errorf("%w: len=%d rows=%d cols=%d", ErrLengthMismatch, len(v), rows, cols)
	}
	out := make([]fr.Element, len(v))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = v[i*cols+j]
		}
	}
	copy(v, out)
	return nil
}

// OuterProduct sets out[i*len(row)+j] = col[i] * row[j].
func OuterProduct(col, row, out []fr.Element) error {
	if len(out) != len(col)*len(row) {
		return fmt.Errorf("%w: out has len %d, want %d", ErrLengthMismatch, len(out), len(col)*len(row))
	}
	for i := range col {
		base := i * len(row)
		for j := range row {
			out[base+j].Mul(&col[i], &row[j])
		}
	}
	return nil
}

// OuterProductParallel is the data-parallel twin of OuterProduct: each row of
// the output is an independent write, so rows are split across goroutines.
// Observable output is identical to OuterProduct.
func OuterProductParallel(col, row, out []fr.Element, nbTasks int) error {
	if len(out) != len(col)*len(row) {
		return fmt.Errorf("%w: out has len %d, want %d", ErrLengthMismatch, len(out), len(col)*len(row))
	}
	if nbTasks < 1 {
		nbTasks = 1
	}
	Parallelize(len(col), func(start, end int) {
		for i := start; i < end; i++ {
			base := i * len(row)
			for j := range row {
				out[base+j].Mul(&col[i], &row[j])
			}
		}
	}, nbTasks)
	return nil
}

// ScaledOuterProduct sets out[i*len(row)+j] = scalar * col[i] * row[j]. A nil
// scalar behaves like OuterProduct.
func ScaledOuterProduct(col, row []fr.Element, scalar *fr.Element, out []fr.Element) error {
	if scalar == nil {
		return OuterProduct(col, row, out)
	}
	scaledCol := make([]fr.Element, len(col))
	if err := Scale(*scalar, col, scaledCol); err != nil {
		return err
	}
	return OuterProduct(scaledCol, row, out)
}

// ExtendMonomialVec fills out with the geometric sequence implied by src.
// If src = [1, tau] and len(out) == k, out becomes [1, tau, tau^2, ..., tau^{k-1}].
// If len(out) < len(src), the sequence is truncated; otherwise it is
// extrapolated via out[i] = out[i-1] * src[1].
func ExtendMonomialVec(src, out []fr.Element) error {
	if len(src) < 2 {
		return fmt.Errorf("%w: src must have at least 2 elements", ErrLengthMismatch)
	}
	n := len(out)
	m := len(src)
	if n <= m {
		copy(out, src[:n])
		return nil
	}
	copy(out, src)
	ratio := src[1]
	for i := m; i < n; i++ {
		out[i].Mul(&out[i-1], &ratio)
	}
	return nil
}

// GenLagrangeEvalVec writes (L_0(x), ..., L_{k-1}(x)) into out, where L_i is
// the i-th Lagrange basis polynomial over the k-th roots of unity, computed
// via an inverse NTT of the monomial vector (1, x, x^2, ..., x^{k-1}).
func GenLagrangeEvalVec(x fr.Element, k int, out []fr.Element) error {
	if k <= 0 || k&(k-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if len(out) != k {
		return fmt.Errorf("%w: out has len %d, want %d", ErrLengthMismatch, len(out), k)
	}
	monomials := make([]fr.Element, k)
	monomials[0].SetOne()
	for i := 1; i < k; i++ {
		monomials[i].Mul(&monomials[i-1], &x)
	}
	domain := fft.NewDomain(uint64(k))
	fft.BitReverse(monomials)
	domain.FFTInverse(monomials, fft.DIT)
	copy(out, monomials)
	return nil
}

// ResizeMatrix copies the rc x cc submatrix src into a new rt x ct matrix,
// zero-padding (or truncating) as needed; both matrices are row-major.
func ResizeMatrix(src []fr.Element, rc, cc, rt, ct int) ([]fr.Element, error) {
	if len(src) != rc*cc {
		return nil, fmt.Errorf("%w: src has len %d, want %d", ErrLengthMismatch, len(src), rc*cc)
	}
	dst := make([]fr.Element, rt*ct)
	minR := rc
	if rt < minR {
		minR = rt
	}
	minC := cc
	if ct < minC {
		minC = ct
	}
	for i := 0; i < minR; i++ {
		copy(dst[i*ct:i*ct+minC], src[i*cc:i*cc+minC])
	}
	return dst, nil
}

// MatrixMatrixMul computes C = A*B for row-major A (m x n) and B (n x l),
// writing the m x l result into C.
func MatrixMatrixMul(a, b []fr.Element, m, n, l int, c []fr.Element) error {
	if len(a) != m*n {
		return fmt.Errorf("%w: A has len %d, want %d", ErrLengthMismatch, len(a), m*n)
	}
	if len(b) != n*l {
		return fmt.Errorf("%w: B has len %d, want %d", ErrLengthMismatch, len(b), n*l)
	}
	if len(c) != m*l {
		return fmt.Errorf("%w: C has len %d, want %d", ErrLengthMismatch, len(c), m*l)
	}
	var tmp fr.Element
	for i := 0; i < m; i++ {
		for k := 0; k < l; k++ {
			c[i*l+k].SetZero()
		}
		for j := 0; j < n; j++ {
			aij := a[i*n+j]
			if aij.IsZero() {
				continue
			}
			for k := 0; k < l; k++ {
				tmp.Mul(&aij, &b[j*l+k])
				c[i*l+k].Add(&c[i*l+k], &tmp)
			}
		}
	}
	return nil
}

// NextPowerOfTwo returns the smallest power of two >= n (n >= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
