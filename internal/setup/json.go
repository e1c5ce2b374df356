package setup

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
)

func g1Rows(rows []bls12381.G1Affine) []circuitio.G1Hex {
	out := make([]circuitio.G1Hex, len(rows))
	for i, p := range rows {
		out[i] = circuitio.FromG1(p)
	}
	return out
}

func g1RowsFrom(rows []circuitio.G1Hex) []bls12381.G1Affine {
	out := make([]bls12381.G1Affine, len(rows))
	for i, p := range rows {
		out[i] = p.Point()
	}
	return out
}

func g1Matrix(rows [][]bls12381.G1Affine) [][]circuitio.G1Hex {
	out := make([][]circuitio.G1Hex, len(rows))
	for i, r := range rows {
		out[i] = g1Rows(r)
	}
	return out
}

func g1MatrixFrom(rows [][]circuitio.G1Hex) [][]bls12381.G1Affine {
	out := make([][]bls12381.G1Affine, len(rows))
	for i, r := range rows {
		out[i] = g1RowsFrom(r)
	}
	return out
}

// ToJSON converts rs into the wire schema of combined_sigma.json, flattening
// the xy_powers table into the (RSX, RSY) row-major grid the schema
// expects.
func (rs *ReferenceString) ToJSON() circuitio.ReferenceStringJSON {
	table := rs.Sigma1.XYPowers
	xyRows := make([][]circuitio.G1Hex, table.RSX)
	for h := 0; h < table.RSX; h++ {
		row := make([]circuitio.G1Hex, table.RSY)
		for i := 0; i < table.RSY; i++ {
			row[i] = circuitio.FromG1(table.Points[h*table.RSY+i])
		}
		xyRows[h] = row
	}

	kxhRows := make([][]circuitio.G1Hex, len(rs.Sigma1.DeltaInvAlphaKXhTx))
	for k, row := range rs.Sigma1.DeltaInvAlphaKXhTx {
		kxhRows[k] = g1Rows(row[:])
	}
	kyiRows := make([][]circuitio.G1Hex, len(rs.Sigma1.DeltaInvAlphaKYiTy))
	for k, row := range rs.Sigma1.DeltaInvAlphaKYiTy {
		kyiRows[k] = g1Rows(row[:])
	}

	return circuitio.ReferenceStringJSON{
		G: circuitio.FromG1(rs.G),
		H: circuitio.FromG2(rs.H),
		Sigma1: circuitio.Sigma1JSON{
			XYPowers:               xyRows,
			Delta:                  circuitio.FromG1(rs.Sigma1.Delta),
			Eta:                    circuitio.FromG1(rs.Sigma1.Eta),
			GammaInvOPubMj:         [][]circuitio.G1Hex{g1Rows(rs.Sigma1.GammaInvOPubMj)},
			EtaInvLiOInterAlpha4Kj: g1Matrix(rs.Sigma1.EtaInvLiOInterAlpha4Kj),
			DeltaInvLiOPrv:         g1Matrix(rs.Sigma1.DeltaInvLiOPrv),
			DeltaInvAlphaKXhTx:     kxhRows,
			DeltaInvAlpha4XjTx:     g1Rows(rs.Sigma1.DeltaInvAlpha4XjTx[:]),
			DeltaInvAlphaKYiTy:     kyiRows,
		},
		Sigma2: circuitio.Sigma2JSON{
			Alpha:  circuitio.FromG2(rs.Sigma2.Alpha),
			Alpha2: circuitio.FromG2(rs.Sigma2.Alpha2),
			Alpha3: circuitio.FromG2(rs.Sigma2.Alpha3),
			Alpha4: circuitio.FromG2(rs.Sigma2.Alpha4),
			Gamma:  circuitio.FromG2(rs.Sigma2.Gamma),
			Delta:  circuitio.FromG2(rs.Sigma2.Delta),
			Eta:    circuitio.FromG2(rs.Sigma2.Eta),
			X:      circuitio.FromG2(rs.Sigma2.X),
			Y:      circuitio.FromG2(rs.Sigma2.Y),
		},
	}
}

// ReferenceStringFromJSON parses the wire schema back into a ReferenceString.
func ReferenceStringFromJSON(j circuitio.ReferenceStringJSON) *ReferenceString {
	rsx := len(j.Sigma1.XYPowers)
	rsy := 0
	if rsx > 0 {
		rsy = len(j.Sigma1.XYPowers[0])
	}
	points := make([]bls12381.G1Affine, rsx*rsy)
	for h, row := range j.Sigma1.XYPowers {
		for i, p := range row {
			points[h*rsy+i] = p.Point()
		}
	}

	var kxh [3][3]bls12381.G1Affine
	for k, row := range j.Sigma1.DeltaInvAlphaKXhTx {
		for h, p := range row {
			kxh[k][h] = p.Point()
		}
	}
	var kyi [4][3]bls12381.G1Affine
	for k, row := range j.Sigma1.DeltaInvAlphaKYiTy {
		for i, p := range row {
			kyi[k][i] = p.Point()
		}
	}
	var xj [2]bls12381.G1Affine
	copy(xj[:], g1RowsFrom(j.Sigma1.DeltaInvAlpha4XjTx))

	var pubMj []bls12381.G1Affine
	if len(j.Sigma1.GammaInvOPubMj) > 0 {
		pubMj = g1RowsFrom(j.Sigma1.GammaInvOPubMj[0])
	}

	return &ReferenceString{
		G: j.G.Point(),
		H: j.H.Point(),
		Sigma1: Sigma1{
			XYPowers:               &groupenc.XYPowerTable{RSX: rsx, RSY: rsy, Points: points},
			Delta:                  j.Sigma1.Delta.Point(),
			Eta:                    j.Sigma1.Eta.Point(),
			GammaInvOPubMj:         pubMj,
			EtaInvLiOInterAlpha4Kj: g1MatrixFrom(j.Sigma1.EtaInvLiOInterAlpha4Kj),
			DeltaInvLiOPrv:         g1MatrixFrom(j.Sigma1.DeltaInvLiOPrv),
			DeltaInvAlphaKXhTx:     kxh,
			DeltaInvAlpha4XjTx:     xj,
			DeltaInvAlphaKYiTy:     kyi,
		},
		Sigma2: Sigma2{
			Alpha:  j.Sigma2.Alpha.Point(),
			Alpha2: j.Sigma2.Alpha2.Point(),
			Alpha3: j.Sigma2.Alpha3.Point(),
			Alpha4: j.Sigma2.Alpha4.Point(),
			Gamma:  j.Sigma2.Gamma.Point(),
			Delta:  j.Sigma2.Delta.Point(),
			Eta:    j.Sigma2.Eta.Point(),
			X:      j.Sigma2.X.Point(),
			Y:      j.Sigma2.Y.Point(),
		},
	}
}
