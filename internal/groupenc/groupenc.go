// Package groupenc implements the group-encoding layer: MSM-based
// commitments to bivariate polynomials and to the wire-value linear
// combinations that bind public, intermediate, and private wires to the
// reference string. Grounded on gnark-crypto's ecc.MultiExp /
// bls12381.PairingCheck, the same primitives backend/fflonk/bn254/prove.go's
// commitToEntangledPolyAndBlinding drives for its own polynomial
// commitments.
package groupenc

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/bipoly"
)

var (
	ErrLengthMismatch  = errors.New("groupenc: scalar/point slice length mismatch")
	ErrDegreeExceedsRS = errors.New("groupenc: polynomial degree exceeds reference-string table shape")
)

// msmConfig is shared across every commitment in this package so the
// observable output (which MSM algorithm gnark-crypto picks) is consistent.
var msmConfig = ecc.MultiExpConfig{}

// MSM computes sum_i scalars[i]*points[i] in G1.
func MSM(scalars []fr.Element, points []bls12381.G1Affine) (bls12381.G1Affine, error) {
	if len(scalars) != len(points) {
		return bls12381.G1Affine{}, fmt.Errorf("%w: %d scalars, %d points", ErrLengthMismatch, len(scalars), len(points))
	}
	var res bls12381.G1Affine
	if len(scalars) == 0 {
		return res, nil
	}
	if _, err := res.MultiExp(points, scalars, msmConfig); err != nil {
		return bls12381.G1Affine{}, err
	}
	return res, nil
}

// XYPowerTable holds the {[x^h y^i]_1} table (sigma_1.xy_powers) with its
// logical shape (RSX, RSY) = (max(2n,2m_I), 2*s_max), row-major in the same
// i*y_size+j order as DensePolynomial2D's coefficients.
type XYPowerTable struct {
	RSX, RSY int
	Points   []bls12381.G1Affine // length RSX*RSY
}

func (t *XYPowerTable) at(h, i int) bls12381.G1Affine { return t.Points[h*t.RSY+i] }

// EncodePoly commits to p by MSM against the (x_degree+1, y_degree+1)
// top-left submatrix of both p's coefficients and the xy_powers table.
// Fails if p's effective degrees exceed the table's logical shape.
func EncodePoly(p *bipoly.DensePolynomial2D, table *XYPowerTable) (bls12381.G1Affine, error) {
	xdim := p.XDegree + 1
	ydim := p.YDegree + 1
	if xdim == 0 || ydim == 0 {
		return bls12381.G1Affine{}, nil
	}
	if xdim > table.RSX || ydim > table.RSY {
		return bls12381.G1Affine{}, fmt.Errorf("%w: poly (%d,%d) vs table (%d,%d)", ErrDegreeExceedsRS, xdim, ydim, table.RSX, table.RSY)
	}
	scalars := make([]fr.Element, 0, xdim*ydim)
	points := make([]bls12381.G1Affine, 0, xdim*ydim)
	for h := 0; h < xdim; h++ {
		for i := 0; i < ydim; i++ {
			scalars = append(scalars, p.Coeffs[h*p.YSize+i])
			points = append(points, table.at(h, i))
		}
	}
	return MSM(scalars, points)
}

// WireRow is one reference-string row used to bind a single wire's value at
// a given placement, selected from gamma_inv_o_pub_mj /
// eta_inv_li_o_inter_alpha4_kj / delta_inv_li_o_prv depending on wire class.
type WireRow = bls12381.G1Affine

// EncodeWireSum computes the MSM of per-wire values against their selected
// reference-string rows — the shared core of encode_O_pub,
// encode_O_mid_no_zk and encode_O_prv_no_zk, which differ only in which
// sigma_1 table supplies the rows.
func EncodeWireSum(values []fr.Element, rows []WireRow) (bls12381.G1Affine, error) {
	return MSM(values, rows)
}

// AddBlinding adds the zero-knowledge contribution (already itself an MSM
// of blinding randomizers against the delta/eta vanishing-string rows of
// sigma_1) to a base commitment.
func AddBlinding(base, blinding bls12381.G1Affine) bls12381.G1Affine {
	var res bls12381.G1Affine
	var jac bls12381.G1Jac
	jac.FromAffine(&base)
	var blindJac bls12381.G1Jac
	blindJac.FromAffine(&blinding)
	jac.AddAssign(&blindJac)
	res.FromJacobian(&jac)
	return res
}

// PairingCheck evaluates Π e(a_i, b_i) and reports whether it equals 1 in GT.
func PairingCheck(a []bls12381.G1Affine, b []bls12381.G2Affine) (bool, error) {
	return bls12381.PairingCheck(a, b)
}
