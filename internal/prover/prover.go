package prover

import (
	"fmt"
	"time"

	"github.com/tokamak-zk-evm/snark-core/internal/logx"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/transcript"
)

// Option configures a Prover.
type Option func(*Prover)

// WithSelfCheck makes Prove verify its own arithmetic/copy-constraint
// opening residues are zero before returning, surfacing a structural bug as
// an error instead of a proof a verifier would silently reject.
func WithSelfCheck(on bool) Option {
	return func(p *Prover) { p.selfCheck = on }
}

// Prover runs the five-round commit-challenge-open protocol over one
// placement instance against a fixed reference string. The rounds are
// strictly sequential - each round's challenges are derived from the
// previous round's committed message - so there is no independent work to
// fan out within Prove itself.
type Prover struct {
	inst      *Instance
	rs        *setup.ReferenceString
	selfCheck bool
}

// NewProver builds a Prover for one instance against rs.
func NewProver(inst *Instance, rs *setup.ReferenceString, opts ...Option) *Prover {
	p := &Prover{inst: inst, rs: rs}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Prove runs Round0 through Round4 and assembles the final Proof, along
// with the public Binding the verifier checks it against.
func (p *Prover) Prove() (*Proof, *Binding, error) {
	log := logx.Logger().With().
		Uint64("n", p.inst.Lib.Params.N).
		Uint64("sMax", p.inst.Lib.Params.SMax).
		Logger()
	start := time.Now()

	t := transcript.New()

	r0, err := runRound0(p.inst, p.rs)
	if err != nil {
		return nil, nil, fmt.Errorf("round0: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("round0 done")

	r1, err := runRound1(p.inst, p.rs, r0, r0.blind, t)
	if err != nil {
		return nil, nil, fmt.Errorf("round1: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("round1 done")

	r2, err := runRound2(p.inst, p.rs, r0, r1, t)
	if err != nil {
		return nil, nil, fmt.Errorf("round2: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("round2 done")

	r3, err := runRound3(p.inst, r0, r1, r2, t)
	if err != nil {
		return nil, nil, fmt.Errorf("round3: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("round3 done")

	r4, err := runRound4(p.inst, p.rs, r0, r1, r2, r3, t)
	if err != nil {
		return nil, nil, fmt.Errorf("round4: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("round4 done")

	if p.selfCheck && !r4.residue.IsZero() {
		return nil, nil, fmt.Errorf("prover: self-check failed, opening residue is nonzero")
	}

	proof := &Proof{
		P0: r0.proof0,
		P1: r1.proof1,
		P2: r2.proof2,
		P3: r3.proof3,
		P4: r4.proof4,
	}

	binding, err := ComputeBinding(p.inst, p.rs)
	if err != nil {
		return nil, nil, fmt.Errorf("binding: %w", err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("proof generated")
	return proof, binding, nil
}
