package vectorops

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func elems(vs ...int64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i].SetInt64(v)
	}
	return out
}

func TestPointwiseOps(t *testing.T) {
	a := elems(1, 2, 3)
	b := elems(4, 5, 6)
	out := make([]fr.Element, 3)

	require.NoError(t, PointwiseAdd(a, b, out))
	require.Equal(t, elems(5, 7, 9), out)

	require.NoError(t, PointwiseSub(b, a, out))
	require.Equal(t, elems(3, 3, 3), out)

	require.NoError(t, PointwiseMul(a, b, out))
	require.Equal(t, elems(4, 10, 18), out)

	require.NoError(t, PointwiseDiv(out, a, out))
	require.Equal(t, elems(4, 5, 6), out)
}

func TestPointwiseDivByZero(t *testing.T) {
	a := elems(1, 2, 3)
	b := elems(1, 0, 1)
	out := make([]fr.Element, 3)
	require.ErrorIs(t, PointwiseDiv(a, b, out), ErrDivideByZero)
}

func TestInnerProduct(t *testing.T) {
	a := elems(1, 2, 3)
	b := elems(4, 5, 6)
	res, err := InnerProduct(a, b)
	require.NoError(t, err)
	var want fr.Element
	want.SetInt64(32)
	require.True(t, res.Equal(&want))
}

func TestTransposeInplace(t *testing.T) {
	// 2x3 matrix [[1,2,3],[4,5,6]] -> transposed 3x2 [[1,4],[2,5],[3,6]]
	v := elems(1, 2, 3, 4, 5, 6)
	require.NoError(t, TransposeInplace(v, 2, 3))
	require.Equal(t, elems(1, 4, 2, 5, 3, 6), v)
}

func TestOuterProduct(t *testing.T) {
	col := elems(1, 2)
	row := elems(10, 20, 30)
	out := make([]fr.Element, 6)
	require.NoError(t, OuterProduct(col, row, out))
	require.Equal(t, elems(10, 20, 30, 20, 40, 60), out)

	outPar := make([]fr.Element, 6)
	require.NoError(t, OuterProductParallel(col, row, outPar, 2))
	require.Equal(t, out, outPar)
}

func TestScaledOuterProduct(t *testing.T) {
	col := elems(1, 2)
	row := elems(10, 20)
	scalar := fr.NewElement(2)
	out := make([]fr.Element, 4)
	require.NoError(t, ScaledOuterProduct(col, row, &scalar, out))
	require.Equal(t, elems(20, 40, 40, 80), out)
}

func TestExtendMonomialVec(t *testing.T) {
	var tau fr.Element
	tau.SetInt64(3)
	src := []fr.Element{fr.NewElement(1), tau}
	out := make([]fr.Element, 5)
	require.NoError(t, ExtendMonomialVec(src, out))
	require.Equal(t, elems(1, 3, 9, 27, 81), out)

	// truncation
	short := make([]fr.Element, 1)
	require.NoError(t, ExtendMonomialVec(src, short))
	require.Equal(t, elems(1), short)
}

func TestResizeMatrix(t *testing.T) {
	src := elems(1, 2, 3, 4) // 2x2
	dst, err := ResizeMatrix(src, 2, 2, 3, 3)
	require.NoError(t, err)
	want := elems(
		1, 2, 0,
		3, 4, 0,
		0, 0, 0,
	)
	require.Equal(t, want, dst)
}

func TestMatrixMatrixMul(t *testing.T) {
	a := elems(1, 2, 3, 4) // 2x2
	b := elems(5, 6, 7, 8) // 2x2
	c := make([]fr.Element, 4)
	require.NoError(t, MatrixMatrixMul(a, b, 2, 2, 2, c))
	require.Equal(t, elems(19, 22, 43, 50), c)
}

func TestGenLagrangeEvalVecAtRootIsIndicator(t *testing.T) {
	k := 4
	domain := fr.Element{}
	_ = domain
	// Evaluate the Lagrange basis at x=1 (the 0-th root of unity): L_0(1)=1, others 0.
	var one fr.Element
	one.SetOne()
	out := make([]fr.Element, k)
	require.NoError(t, GenLagrangeEvalVec(one, k, out))
	require.True(t, out[0].IsOne())
	for i := 1; i < k; i++ {
		require.True(t, out[i].IsZero(), "index %d", i)
	}
}
