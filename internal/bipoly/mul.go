package bipoly

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// Mul computes a*b by evaluating both operands on the roots-of-unity grid of
// the smallest power-of-two shape containing the product's true degree,
// multiplying pointwise, and inverting back to coefficient form.
func Mul(a, b *DensePolynomial2D) (*DensePolynomial2D, error) {
	if a.IsZero() || b.IsZero() {
		return Zero(maxInt(a.XSize, b.XSize), maxInt(a.YSize, b.YSize))
	}
	targetX := smallestPow2GreaterThan(a.XDegree + b.XDegree)
	targetY := smallestPow2GreaterThan(a.YDegree + b.YDegree)

	ra, err := a.resizeTo(targetX, targetY)
	if err != nil {
		return nil, err
	}
	rb, err := b.resizeTo(targetX, targetY)
	if err != nil {
		return nil, err
	}

	evalsA := ra.ToROUEvals(nil, nil)
	evalsB := rb.ToROUEvals(nil, nil)

	prod := make([]fr.Element, len(evalsA))
	for i := range prod {
		prod[i].Mul(&evalsA[i], &evalsB[i])
	}

	res, err := FromROUEvals(prod, targetX, targetY, nil, nil)
	if err != nil {
		return nil, err
	}
	res.OptimizeSize()
	return res, nil
}
