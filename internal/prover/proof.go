package prover

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
)

// Proof0 is the first proof message: (U,V,W,Q_AX,Q_AY,B).
type Proof0 struct {
	U, V, W, QAX, QAY, B bls12381.G1Affine
}

// Proof1 is the second proof message: (R).
type Proof1 struct{ R bls12381.G1Affine }

// Proof2 is the third proof message: (Q_CX, Q_CY).
type Proof2 struct{ QCX, QCY bls12381.G1Affine }

// Proof3 is the fourth proof message: (V_hat, R_hat, R_hat_omegaX, R_hat_omegaXomegaY).
type Proof3 struct{ VHat, RHat, RHatOmegaX, RHatOmegaXOmegaY fr.Element }

// Proof4 is the fifth proof message: (Pi_X, Pi_Y, M_X, M_Y, N_X, N_Y).
type Proof4 struct{ PiX, PiY, MX, MY, NX, NY bls12381.G1Affine }

// Proof is the full five-message proof emitted by Prove.
type Proof struct {
	P0 Proof0
	P1 Proof1
	P2 Proof2
	P3 Proof3
	P4 Proof4
}

// ToJSON converts to the proof.json wire schema.
func (p *Proof) ToJSON() circuitio.ProofJSON {
	return circuitio.ProofJSON{
		Proof0: circuitio.Proof0JSON{
			U: circuitio.FromG1(p.P0.U), V: circuitio.FromG1(p.P0.V), W: circuitio.FromG1(p.P0.W),
			QAX: circuitio.FromG1(p.P0.QAX), QAY: circuitio.FromG1(p.P0.QAY), B: circuitio.FromG1(p.P0.B),
		},
		Proof1: circuitio.Proof1JSON{R: circuitio.FromG1(p.P1.R)},
		Proof2: circuitio.Proof2JSON{QCX: circuitio.FromG1(p.P2.QCX), QCY: circuitio.FromG1(p.P2.QCY)},
		Proof3: circuitio.Proof3JSON{
			VHat: circuitio.FromElement(p.P3.VHat), RHat: circuitio.FromElement(p.P3.RHat),
			RHatOmegaX: circuitio.FromElement(p.P3.RHatOmegaX), RHatOmegaXY: circuitio.FromElement(p.P3.RHatOmegaXOmegaY),
		},
		Proof4: circuitio.Proof4JSON{
			PiX: circuitio.FromG1(p.P4.PiX), PiY: circuitio.FromG1(p.P4.PiY),
			MX: circuitio.FromG1(p.P4.MX), MY: circuitio.FromG1(p.P4.MY),
			NX: circuitio.FromG1(p.P4.NX), NY: circuitio.FromG1(p.P4.NY),
		},
	}
}

// ProofFromJSON parses the wire schema into a Proof.
func ProofFromJSON(j circuitio.ProofJSON) *Proof {
	return &Proof{
		P0: Proof0{
			U: j.Proof0.U.Point(), V: j.Proof0.V.Point(), W: j.Proof0.W.Point(),
			QAX: j.Proof0.QAX.Point(), QAY: j.Proof0.QAY.Point(), B: j.Proof0.B.Point(),
		},
		P1: Proof1{R: j.Proof1.R.Point()},
		P2: Proof2{QCX: j.Proof2.QCX.Point(), QCY: j.Proof2.QCY.Point()},
		P3: Proof3{
			VHat: j.Proof3.VHat.Element(), RHat: j.Proof3.RHat.Element(),
			RHatOmegaX: j.Proof3.RHatOmegaX.Element(), RHatOmegaXOmegaY: j.Proof3.RHatOmegaXY.Element(),
		},
		P4: Proof4{
			PiX: j.Proof4.PiX.Point(), PiY: j.Proof4.PiY.Point(),
			MX: j.Proof4.MX.Point(), MY: j.Proof4.MY.Point(),
			NX: j.Proof4.NX.Point(), NY: j.Proof4.NY.Point(),
		},
	}
}
