package bipoly

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

func mustPoly(t *testing.T, coeffs []fr.Element, xSize, ySize int) *DensePolynomial2D {
	t.Helper()
	p, err := FromCoeffs(coeffs, xSize, ySize)
	require.NoError(t, err)
	return p
}

func TestOptimizeSizeShrinksToTrueDegree(t *testing.T) {
	// 1 + X (degree (1,0)) padded into a 4x4 grid.
	coeffs := make([]fr.Element, 16)
	coeffs[0].SetInt64(1)
	coeffs[4].SetInt64(1) // X^1 * Y^0, flat index 1*4+0
	p := mustPoly(t, coeffs, 4, 4)
	p.OptimizeSize()
	require.Equal(t, 2, p.XSize)
	require.Equal(t, 1, p.YSize)
	require.Equal(t, 1, p.XDegree)
	require.Equal(t, 0, p.YDegree)
}

func TestAddSubRoundTrip(t *testing.T) {
	a := mustPoly(t, elems(1, 2, 3, 4), 2, 2)
	b := mustPoly(t, elems(5, 6, 7, 8), 2, 2)

	sum, err := Add(a, b)
	require.NoError(t, err)
	back, err := Sub(sum, b)
	require.NoError(t, err)

	gotX, err := back.Eval(fr.NewElement(3), fr.NewElement(5))
	require.NoError(t, err)
	wantX, err := a.Eval(fr.NewElement(3), fr.NewElement(5))
	require.NoError(t, err)
	require.True(t, gotX.Equal(&wantX))
}

func TestMulMonomialShift(t *testing.T) {
	p := mustPoly(t, elems(1, 2, 3, 4), 2, 2) // 1 + 2Y + 3X + 4XY
	shifted := p.MulMonomial(1, 1)
	x := fr.NewElement(2)
	y := fr.NewElement(5)
	got, err := shifted.Eval(x, y)
	require.NoError(t, err)

	var xy fr.Element
	xy.Mul(&x, &y)
	base, err := p.Eval(x, y)
	require.NoError(t, err)
	var want fr.Element
	want.Mul(&base, &xy)
	require.True(t, got.Equal(&want))
}

func TestMulMatchesPointwiseEvaluation(t *testing.T) {
	a := mustPoly(t, elems(1, 2, 3, 4), 2, 2)
	b := mustPoly(t, elems(5, 0, 0, 7), 2, 2)

	prod, err := Mul(a, b)
	require.NoError(t, err)

	x := fr.NewElement(11)
	y := fr.NewElement(13)
	got, err := prod.Eval(x, y)
	require.NoError(t, err)

	va, err := a.Eval(x, y)
	require.NoError(t, err)
	vb, err := b.Eval(x, y)
	require.NoError(t, err)
	var want fr.Element
	want.Mul(&va, &vb)
	require.True(t, got.Equal(&want))
}

func TestNTTRoundTrip(t *testing.T) {
	p := mustPoly(t, elems(1, 2, 3, 4, 5, 6, 7, 8), 4, 2)
	evals := p.ToROUEvals(nil, nil)
	back, err := FromROUEvals(evals, 4, 2, nil, nil)
	require.NoError(t, err)

	x := fr.NewElement(9)
	y := fr.NewElement(17)
	got, err := back.Eval(x, y)
	require.NoError(t, err)
	want, err := p.Eval(x, y)
	require.NoError(t, err)
	require.True(t, got.Equal(&want))
}

func TestNTTRoundTripWithCoset(t *testing.T) {
	p := mustPoly(t, elems(3, 1, 4, 1), 2, 2)
	cx := fr.NewElement(7)
	cy := fr.NewElement(19)
	evals := p.ToROUEvals(&cx, &cy)
	back, err := FromROUEvals(evals, 2, 2, &cx, &cy)
	require.NoError(t, err)

	x := fr.NewElement(2)
	y := fr.NewElement(3)
	got, err := back.Eval(x, y)
	require.NoError(t, err)
	want, err := p.Eval(x, y)
	require.NoError(t, err)
	require.True(t, got.Equal(&want))
}
