// Package setup implements trusted-setup reference-string generation: given
// toxic-waste trapdoor tau=(x,y,alpha,gamma,delta,eta) and the circuit's
// subcircuit library, it evaluates the QAP polynomials o_j(x), the
// Lagrange/combination polynomials L_i, K_j, and encodes the structured
// reference string sigma=(sigma_1, sigma_2) via a batch of scalar
// multiplications. Grounded on backend/fflonk/bn254/setup.go, which
// likewise evaluates circuit polynomials at a trapdoor and encodes them
// into a verifying/proving key.
package setup

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Tau is the toxic waste sampled once per ceremony.
type Tau struct {
	X, Y, Alpha, Gamma, Delta, Eta fr.Element
}

// SampleTau draws a uniformly random trapdoor. The caller is responsible
// for discarding it after GenerateReferenceString returns.
func SampleTau() (Tau, error) {
	var t Tau
	for _, e := range []*fr.Element{&t.X, &t.Y, &t.Alpha, &t.Gamma, &t.Delta, &t.Eta} {
		if _, err := e.SetRandom(); err != nil {
			return Tau{}, err
		}
	}
	return t, nil
}
