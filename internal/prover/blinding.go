package prover

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// blinding holds the zero-knowledge randomizers drawn once per proof, in
// Round 0.
type blinding struct {
	rUX, rUY fr.Element
	rVX, rVY fr.Element
	rOMid    fr.Element
	rRX, rRY fr.Element
	rWX, rWY [4]fr.Element // last entry always zero
	rBX, rBY [2]fr.Element
}

func sampleBlinding() (*blinding, error) {
	b := &blinding{}
	scalars := []*fr.Element{
		&b.rUX, &b.rUY, &b.rVX, &b.rVY, &b.rOMid, &b.rRX, &b.rRY,
		&b.rWX[0], &b.rWX[1], &b.rWX[2],
		&b.rWY[0], &b.rWY[1], &b.rWY[2],
		&b.rBX[0], &b.rBX[1], &b.rBY[0], &b.rBY[1],
	}
	for _, s := range scalars {
		if _, err := s.SetRandom(); err != nil {
			return nil, err
		}
	}
	return b, nil
}
