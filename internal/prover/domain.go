package prover

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
)

// generator returns the size-th root of unity used as the canonical
// generator of the multiplicative subgroup of that order.
func generator(size int) fr.Element {
	return fft.NewDomain(uint64(size)).Generator
}

func generatorInv(size int) fr.Element {
	var inv fr.Element
	g := generator(size)
	inv.Inverse(&g)
	return inv
}
