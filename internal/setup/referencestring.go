package setup

import (
	"fmt"
	"math/big"
	"runtime"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/groupenc"
	"github.com/tokamak-zk-evm/snark-core/internal/vectorops"
)

// Sigma1 holds every G1 row of the reference string.
type Sigma1 struct {
	XYPowers *groupenc.XYPowerTable

	Delta bls12381.G1Affine
	Eta   bls12381.G1Affine

	// Indexed [globalWireIdx] for public wires (one row per wire: the
	// public binding does not vary across placements, only the
	// instance's placement values select which wire gets used).
	GammaInvOPubMj []bls12381.G1Affine

	// Indexed [globalWireIdx][placementSlot] for interface wires.
	EtaInvLiOInterAlpha4Kj [][]bls12381.G1Affine

	// Indexed [globalWireIdx][placementSlot] for private wires.
	DeltaInvLiOPrv [][]bls12381.G1Affine

	// delta^-1 alpha^k x^h t_n(x), k in {1,2,3} (row index k-1), h in {0,1,2}.
	DeltaInvAlphaKXhTx [3][3]bls12381.G1Affine
	// delta^-1 alpha^4 x^j t_mI(x), j in {0,1}.
	DeltaInvAlpha4XjTx [2]bls12381.G1Affine
	// delta^-1 alpha^k y^i t_smax(y), k in {1,2,3,4} (row index k-1), i in {0,1,2}.
	DeltaInvAlphaKYiTy [4][3]bls12381.G1Affine
}

// Sigma2 holds the G2 half of the reference string.
type Sigma2 struct {
	Alpha, Alpha2, Alpha3, Alpha4 bls12381.G2Affine
	Gamma, Delta, Eta             bls12381.G2Affine
	X, Y                          bls12381.G2Affine
}

// ReferenceString is sigma=(sigma_1,sigma_2) plus the two curve generators.
type ReferenceString struct {
	G      bls12381.G1Affine
	H      bls12381.G2Affine
	Sigma1 Sigma1
	Sigma2 Sigma2
}

// CircuitLibrary bundles the parsed subcircuit library needed to evaluate
// the QAP at tau.X.
type CircuitLibrary struct {
	Params      circuitio.SetupParams
	Subcircuits map[uint64]circuitio.SubcircuitInfo
	R1CS        map[uint64]circuitio.SubcircuitR1CS
	GlobalWires []circuitio.GlobalWireRef // index = global wire id
}

func scalarMulG1(base bls12381.G1Affine, s fr.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(&base, &bi)
	return out
}

func scalarMulG2(base bls12381.G2Affine, s fr.Element) bls12381.G2Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G2Affine
	out.ScalarMultiplication(&base, &bi)
	return out
}

// vanishingEval returns x^k - 1.
func vanishingEval(x fr.Element, k uint64) fr.Element {
	var pw, one, res fr.Element
	one.SetOne()
	pw.Exp(x, new(big.Int).SetUint64(k))
	res.Sub(&pw, &one)
	return res
}

// qapEvalWire evaluates o_j(x) = alpha*u_j(x) + alpha^2*v_j(x) + alpha^3*w_j(x)
// for the given local wire index of a subcircuit, where u_j/v_j/w_j are the
// n-point Lagrange interpolation of the wire's row in the column-compacted
// R1CS matrices.
func qapEvalWire(r1cs circuitio.SubcircuitR1CS, localWire uint64, n int, lagrangeAtX []fr.Element, tau Tau) (fr.Element, error) {
	rowValue := func(activeWires []uint64, mat [][]circuitio.FieldHex) (fr.Element, error) {
		for idx, w := range activeWires {
			if w == localWire {
				row := mat[idx]
				elems := make([]fr.Element, len(row))
				for i, fh := range row {
					elems[i] = fh.Element()
				}
				return vectorops.InnerProduct(lagrangeAtX, elems)
			}
		}
		return fr.Element{}, nil
	}

	u, err := rowValue(r1cs.AActiveWires, r1cs.ACompactColMat)
	if err != nil {
		return fr.Element{}, err
	}
	v, err := rowValue(r1cs.BActiveWires, r1cs.BCompactColMat)
	if err != nil {
		return fr.Element{}, err
	}
	w, err := rowValue(r1cs.CActiveWires, r1cs.CCompactColMat)
	if err != nil {
		return fr.Element{}, err
	}

	var alpha2, alpha3, t1, t2, t3, o fr.Element
	alpha2.Mul(&tau.Alpha, &tau.Alpha)
	alpha3.Mul(&alpha2, &tau.Alpha)
	t1.Mul(&tau.Alpha, &u)
	t2.Mul(&alpha2, &v)
	t3.Mul(&alpha3, &w)
	o.Add(&t1, &t2)
	o.Add(&o, &t3)
	return o, nil
}

// wireClass classifies a global wire index as public, interface, or private.
type wireClass int

const (
	wirePublic wireClass = iota
	wireInterface
	wirePrivate
)

func classify(params circuitio.SetupParams, globalIdx uint64) wireClass {
	switch {
	case globalIdx < params.L:
		return wirePublic
	case globalIdx < params.LD:
		return wireInterface
	default:
		return wirePrivate
	}
}

// GenerateReferenceString runs the deterministic-given-tau MSM/scalar-mult
// batch that encodes sigma_1/sigma_2.
func GenerateReferenceString(lib CircuitLibrary, tau Tau) (*ReferenceString, error) {
	params := lib.Params
	n := int(params.N)
	sMax := int(params.SMax)
	mI := int(params.MI())

	rsx := vectorops.NextPowerOfTwo(maxInt(2*n, 2*mI))
	rsy := vectorops.NextPowerOfTwo(2 * sMax)

	_, _, g1gen, g2gen := bls12381.Generators()

	rs := &ReferenceString{G: g1gen, H: g2gen}

	// sigma_2
	rs.Sigma2.Alpha = scalarMulG2(g2gen, tau.Alpha)
	var alpha2, alpha3, alpha4 fr.Element
	alpha2.Mul(&tau.Alpha, &tau.Alpha)
	alpha3.Mul(&alpha2, &tau.Alpha)
	alpha4.Mul(&alpha3, &tau.Alpha)
	rs.Sigma2.Alpha2 = scalarMulG2(g2gen, alpha2)
	rs.Sigma2.Alpha3 = scalarMulG2(g2gen, alpha3)
	rs.Sigma2.Alpha4 = scalarMulG2(g2gen, alpha4)
	rs.Sigma2.Gamma = scalarMulG2(g2gen, tau.Gamma)
	rs.Sigma2.Delta = scalarMulG2(g2gen, tau.Delta)
	rs.Sigma2.Eta = scalarMulG2(g2gen, tau.Eta)
	rs.Sigma2.X = scalarMulG2(g2gen, tau.X)
	rs.Sigma2.Y = scalarMulG2(g2gen, tau.Y)

	// sigma_1.xy_powers: {[x^h y^i]_1} for h<rsx, i<rsy.
	xPowers := make([]fr.Element, rsx)
	if err := vectorops.ExtendMonomialVec([]fr.Element{fr.NewElement(1), tau.X}, xPowers); err != nil {
		return nil, err
	}
	yPowers := make([]fr.Element, rsy)
	if err := vectorops.ExtendMonomialVec([]fr.Element{fr.NewElement(1), tau.Y}, yPowers); err != nil {
		return nil, err
	}
	scalars := make([]fr.Element, rsx*rsy)
	for h := 0; h < rsx; h++ {
		for i := 0; i < rsy; i++ {
			scalars[h*rsy+i].Mul(&xPowers[h], &yPowers[i])
		}
	}
	montScalars := make([]fr.Element, len(scalars))
	copy(montScalars, scalars)
	for i := range montScalars {
		montScalars[i].FromMont()
	}
	points := bls12381.BatchScalarMultiplicationG1(&g1gen, montScalars)
	rs.Sigma1.XYPowers = &groupenc.XYPowerTable{RSX: rsx, RSY: rsy, Points: points}

	var deltaInv, etaInv, gammaInv fr.Element
	deltaInv.Inverse(&tau.Delta)
	etaInv.Inverse(&tau.Eta)
	gammaInv.Inverse(&tau.Gamma)
	rs.Sigma1.Delta = scalarMulG1(g1gen, tau.Delta)
	rs.Sigma1.Eta = scalarMulG1(g1gen, tau.Eta)

	// Lagrange bases used below.
	lagrangeAtX, err := lagrangeBasisEval(tau.X, n)
	if err != nil {
		return nil, err
	}
	lagrangeYAtSMax, err := lagrangeBasisEval(tau.Y, sMax)
	if err != nil {
		return nil, err
	}
	lagrangeXAtMI, err := lagrangeBasisEval(tau.X, mI)
	if err != nil {
		return nil, err
	}

	mD := int(params.MD)
	rs.Sigma1.GammaInvOPubMj = make([]bls12381.G1Affine, mD)
	rs.Sigma1.EtaInvLiOInterAlpha4Kj = make([][]bls12381.G1Affine, mD)
	rs.Sigma1.DeltaInvLiOPrv = make([][]bls12381.G1Affine, mD)

	if mD > len(lib.GlobalWires) {
		return nil, fmt.Errorf("setup: global wire list shorter than m_D (%d)", mD)
	}

	// Each global wire's row is independent of every other wire's - it only
	// reads tau and the shared Lagrange bases and writes into its own slot
	// g of the output slices - so the batch runs over worker-sized chunks
	// via errgroup instead of one goroutine per wire.
	nWorkers := runtime.NumCPU()
	if nWorkers > mD {
		nWorkers = mD
	}
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunk := (mD + nWorkers - 1) / nWorkers
	var eg errgroup.Group
	for start := 0; start < mD; start += chunk {
		end := start + chunk
		if end > mD {
			end = mD
		}
		start, end := start, end
		eg.Go(func() error {
			for g := start; g < end; g++ {
				ref := lib.GlobalWires[g]
				_, ok := lib.Subcircuits[ref.SubcircuitID]
				r1cs, ok2 := lib.R1CS[ref.SubcircuitID]
				if !ok || !ok2 {
					return fmt.Errorf("setup: unknown subcircuit id %d for global wire %d", ref.SubcircuitID, g)
				}
				oj, err := qapEvalWire(r1cs, ref.LocalWireIdx, n, lagrangeAtX, tau)
				if err != nil {
					return err
				}

				switch classify(params, uint64(g)) {
				case wirePublic:
					var mj, row fr.Element // M_j term is zero: the row is gamma^-1 * o_j(x), see DESIGN.md
					mj.SetZero()
					row.Add(&oj, &mj)
					row.Mul(&row, &gammaInv)
					rs.Sigma1.GammaInvOPubMj[g] = scalarMulG1(g1gen, row)
				case wireInterface:
					kj := lagrangeXAtMI[uint64(g)-params.L]
					var term, rowBase fr.Element
					term.Mul(&alpha4, &kj)
					rowBase.Add(&oj, &term)
					rows := make([]bls12381.G1Affine, sMax)
					for i := 0; i < sMax; i++ {
						var row fr.Element
						row.Mul(&lagrangeYAtSMax[i], &rowBase)
						row.Mul(&row, &etaInv)
						rows[i] = scalarMulG1(g1gen, row)
					}
					rs.Sigma1.EtaInvLiOInterAlpha4Kj[g] = rows
				case wirePrivate:
					rows := make([]bls12381.G1Affine, sMax)
					for i := 0; i < sMax; i++ {
						var row fr.Element
						row.Mul(&lagrangeYAtSMax[i], &oj)
						row.Mul(&row, &deltaInv)
						rows[i] = scalarMulG1(g1gen, row)
					}
					rs.Sigma1.DeltaInvLiOPrv[g] = rows
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	tn := vanishingEval(tau.X, uint64(n))
	tmI := vanishingEval(tau.X, uint64(mI))
	tsmax := vanishingEval(tau.Y, uint64(sMax))

	alphaPowers := [4]fr.Element{tau.Alpha, alpha2, alpha3, alpha4}
	for k := 0; k < 3; k++ {
		for h := 0; h < 3; h++ {
			var xh, term fr.Element
			xh.Exp(tau.X, new(big.Int).SetUint64(uint64(h)))
			term.Mul(&alphaPowers[k], &xh)
			term.Mul(&term, &tn)
			term.Mul(&term, &deltaInv)
			rs.Sigma1.DeltaInvAlphaKXhTx[k][h] = scalarMulG1(g1gen, term)
		}
	}
	for j := 0; j < 2; j++ {
		var xj, term fr.Element
		xj.Exp(tau.X, new(big.Int).SetUint64(uint64(j)))
		term.Mul(&alpha4, &xj)
		term.Mul(&term, &tmI)
		term.Mul(&term, &deltaInv)
		rs.Sigma1.DeltaInvAlpha4XjTx[j] = scalarMulG1(g1gen, term)
	}
	for k := 0; k < 4; k++ {
		for i := 0; i < 3; i++ {
			var yi, term fr.Element
			yi.Exp(tau.Y, new(big.Int).SetUint64(uint64(i)))
			term.Mul(&alphaPowers[k], &yi)
			term.Mul(&term, &tsmax)
			term.Mul(&term, &deltaInv)
			rs.Sigma1.DeltaInvAlphaKYiTy[k][i] = scalarMulG1(g1gen, term)
		}
	}

	return rs, nil
}

// lagrangeBasisEval returns (L_0(x),...,L_{k-1}(x)) for the k-point
// root-of-unity Lagrange basis.
func lagrangeBasisEval(x fr.Element, k int) ([]fr.Element, error) {
	k = vectorops.NextPowerOfTwo(k)
	out := make([]fr.Element, k)
	if err := vectorops.GenLagrangeEvalVec(x, k, out); err != nil {
		return nil, err
	}
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
