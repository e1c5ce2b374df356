package circuitio

// Sigma1JSON mirrors the sigma_1 object of combined_sigma.json.
type Sigma1JSON struct {
	XYPowers               [][]G1Hex `json:"xy_powers"`
	Delta                  G1Hex     `json:"delta"`
	Eta                    G1Hex     `json:"eta"`
	GammaInvOPubMj         [][]G1Hex `json:"gamma_inv_o_pub_mj"`
	EtaInvLiOInterAlpha4Kj [][]G1Hex `json:"eta_inv_li_o_inter_alpha4_kj"`
	DeltaInvLiOPrv         [][]G1Hex `json:"delta_inv_li_o_prv"`
	DeltaInvAlphaKXhTx     [][]G1Hex `json:"delta_inv_alphak_xh_tx"`
	DeltaInvAlpha4XjTx     []G1Hex   `json:"delta_inv_alpha4_xj_tx"`
	DeltaInvAlphaKYiTy     [][]G1Hex `json:"delta_inv_alphak_yi_ty"`
}

// Sigma2JSON mirrors the sigma_2 object of combined_sigma.json.
type Sigma2JSON struct {
	Alpha  G2Hex `json:"alpha"`
	Alpha2 G2Hex `json:"alpha2"`
	Alpha3 G2Hex `json:"alpha3"`
	Alpha4 G2Hex `json:"alpha4"`
	Gamma  G2Hex `json:"gamma"`
	Delta  G2Hex `json:"delta"`
	Eta    G2Hex `json:"eta"`
	X      G2Hex `json:"x"`
	Y      G2Hex `json:"y"`
}

// ReferenceStringJSON mirrors combined_sigma.json in full.
type ReferenceStringJSON struct {
	G      G1Hex      `json:"G"`
	H      G2Hex      `json:"H"`
	Sigma1 Sigma1JSON `json:"sigma_1"`
	Sigma2 Sigma2JSON `json:"sigma_2"`
}

// ProofJSON mirrors the Fiat-Shamir-ordered proof messages
// (Proof0..Proof4), serialized for proof.json.
type ProofJSON struct {
	Proof0 Proof0JSON `json:"proof0"`
	Proof1 Proof1JSON `json:"proof1"`
	Proof2 Proof2JSON `json:"proof2"`
	Proof3 Proof3JSON `json:"proof3"`
	Proof4 Proof4JSON `json:"proof4"`
}

type Proof0JSON struct {
	U   G1Hex `json:"U"`
	V   G1Hex `json:"V"`
	W   G1Hex `json:"W"`
	QAX G1Hex `json:"Q_AX"`
	QAY G1Hex `json:"Q_AY"`
	B   G1Hex `json:"B"`
}

type Proof1JSON struct {
	R G1Hex `json:"R"`
}

type Proof2JSON struct {
	QCX G1Hex `json:"Q_CX"`
	QCY G1Hex `json:"Q_CY"`
}

type Proof3JSON struct {
	VHat        FieldHex `json:"V_hat"`
	RHat        FieldHex `json:"R_hat"`
	RHatOmegaX  FieldHex `json:"R_hat_omega_x"`
	RHatOmegaXY FieldHex `json:"R_hat_omega_x_omega_y"`
}

type Proof4JSON struct {
	PiX G1Hex `json:"Pi_X"`
	PiY G1Hex `json:"Pi_Y"`
	MX  G1Hex `json:"M_X"`
	MY  G1Hex `json:"M_Y"`
	NX  G1Hex `json:"N_X"`
	NY  G1Hex `json:"N_Y"`
}
