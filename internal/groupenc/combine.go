package groupenc

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ScalarMulG1 computes s*p in G1.
func ScalarMulG1(p bls12381.G1Affine, s fr.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(&p, &bi)
	return out
}

// AddG1 computes p+q in G1.
func AddG1(p, q bls12381.G1Affine) bls12381.G1Affine {
	var pj, qj bls12381.G1Jac
	pj.FromAffine(&p)
	qj.FromAffine(&q)
	pj.AddAssign(&qj)
	var out bls12381.G1Affine
	out.FromJacobian(&pj)
	return out
}

// SubG1 computes p-q in G1.
func SubG1(p, q bls12381.G1Affine) bls12381.G1Affine {
	var pj, qj bls12381.G1Jac
	pj.FromAffine(&p)
	qj.FromAffine(&q)
	pj.SubAssign(&qj)
	var out bls12381.G1Affine
	out.FromJacobian(&pj)
	return out
}

// NegG1 computes -p in G1.
func NegG1(p bls12381.G1Affine) bls12381.G1Affine {
	var out bls12381.G1Affine
	out.Neg(&p)
	return out
}

// G1Term is one scalar*point term of a linear combination.
type G1Term struct {
	Point  bls12381.G1Affine
	Scalar fr.Element
}

// CombineG1 computes sum_i terms[i].Scalar*terms[i].Point. Used by the
// verifier for its handful-of-terms linear combinations, where building an
// MSM input slice for MultiExp would be needless overhead next to a direct
// scalar-multiply-and-accumulate loop.
func CombineG1(terms ...G1Term) bls12381.G1Affine {
	var acc bls12381.G1Jac
	for _, term := range terms {
		sp := ScalarMulG1(term.Point, term.Scalar)
		var spj bls12381.G1Jac
		spj.FromAffine(&sp)
		acc.AddAssign(&spj)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return out
}
