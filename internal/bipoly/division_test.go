package bipoly

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func TestDivByRuffiniIdentity(t *testing.T) {
	qx := mustPoly(t, elems(1, 2, 3, 4), 2, 2)   // 1 + 2Y + 3X + 4XY
	qy := mustPoly(t, elems(5, 6), 1, 2)         // 5 + 6Y
	var r fr.Element
	r.SetInt64(9)

	x0 := fr.NewElement(3)
	y0 := fr.NewElement(7)

	xMinusX0 := mustPoly(t, []fr.Element{negOf(x0), fr.NewElement(1)}, 2, 1)
	yMinusY0 := mustPoly(t, []fr.Element{negOf(y0), fr.NewElement(1)}, 1, 2)

	term1, err := Mul(qx, xMinusX0)
	require.NoError(t, err)
	term2, err := Mul(qy, yMinusY0)
	require.NoError(t, err)
	sum, err := Add(term1, term2)
	require.NoError(t, err)
	p := sum.ScalarAdd(r)

	qxGot, qyGot, rGot, err := p.DivByRuffini(x0, y0)
	require.NoError(t, err)

	x := fr.NewElement(11)
	y := fr.NewElement(13)

	lhs, err := p.Eval(x, y)
	require.NoError(t, err)

	vqx, err := qxGot.Eval(x, y)
	require.NoError(t, err)
	vqy, err := qyGot.Eval(x, y)
	require.NoError(t, err)

	var xDiff, yDiff, t1, t2, rhs fr.Element
	xDiff.Sub(&x, &x0)
	yDiff.Sub(&y, &y0)
	t1.Mul(&vqx, &xDiff)
	t2.Mul(&vqy, &yDiff)
	rhs.Add(&t1, &t2)
	rhs.Add(&rhs, &rGot)

	require.True(t, lhs.Equal(&rhs))
}

func negOf(e fr.Element) fr.Element {
	var out fr.Element
	out.Neg(&e)
	return out
}

func TestDivByVanishingIdentity(t *testing.T) {
	qx := mustPoly(t, elems(1, 2, 3, 4), 2, 2) // 1 + 2Y + 3X + 4XY
	qy := mustPoly(t, elems(5, 6), 1, 2)       // 5 + 6Y

	c, d := 2, 2
	tc := mustPoly(t, []fr.Element{negOf(fr.NewElement(1)), fr.Element{}, fr.NewElement(1), fr.Element{}}, 4, 1) // X^2 - 1
	td := mustPoly(t, []fr.Element{negOf(fr.NewElement(1)), fr.Element{}, fr.NewElement(1), fr.Element{}}, 1, 4) // Y^2 - 1

	term1, err := Mul(qx, tc)
	require.NoError(t, err)
	term2, err := Mul(qy, td)
	require.NoError(t, err)
	p, err := Add(term1, term2)
	require.NoError(t, err)

	qxGot, qyGot, err := p.DivByVanishing(c, d)
	require.NoError(t, err)

	x := fr.NewElement(21)
	y := fr.NewElement(37)

	lhs, err := p.Eval(x, y)
	require.NoError(t, err)

	vqx, err := qxGot.Eval(x, y)
	require.NoError(t, err)
	vqy, err := qyGot.Eval(x, y)
	require.NoError(t, err)

	var xc, yd, one, t1, t2, rhs fr.Element
	one.SetOne()
	xc.Exp(x, big.NewInt(int64(c)))
	yd.Exp(y, big.NewInt(int64(d)))
	xc.Sub(&xc, &one)
	yd.Sub(&yd, &one)
	t1.Mul(&vqx, &xc)
	t2.Mul(&vqy, &yd)
	rhs.Add(&t1, &t2)

	require.True(t, lhs.Equal(&rhs))
}

func TestDivideXYLongDivision(t *testing.T) {
	// p = (X-2)*(3 + 5Y) ; dividing by (X-2) along X should recover (3+5Y).
	x0 := fr.NewElement(2)
	xMinusX0 := mustPoly(t, []fr.Element{negOf(x0), fr.NewElement(1)}, 2, 1)
	factor := mustPoly(t, elems(3, 5), 1, 2)
	p, err := Mul(xMinusX0, factor)
	require.NoError(t, err)

	q, err := p.DivideX([]fr.Element{negOf(x0), fr.NewElement(1)})
	require.NoError(t, err)

	x := fr.NewElement(9)
	y := fr.NewElement(4)
	got, err := q.Eval(x, y)
	require.NoError(t, err)
	want, err := factor.Eval(x, y)
	require.NoError(t, err)
	require.True(t, got.Equal(&want))
}
