// Command protocol-script runs the prover over a placement trace against a
// previously generated reference string and emits a proof.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/logx"
	"github.com/tokamak-zk-evm/snark-core/internal/prover"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
	"github.com/tokamak-zk-evm/snark-core/internal/verifier"
)

func main() {
	qapPath := flag.String("qap-path", "", "subcircuit library root")
	synthPath := flag.String("synth-path", "", "placement root (placementVariables.json, permutation.json); also where proof.json is written")
	toStdout := flag.Bool("stdout", false, "emit the proof on stdout instead of writing proof.json")
	selfVerify := flag.Bool("verify", false, "run the verifier against the freshly generated proof before exiting")
	flag.Parse()

	log := logx.Logger()

	if *qapPath == "" || *synthPath == "" {
		log.Error().Msg("--qap-path and --synth-path are both required")
		os.Exit(1)
	}

	lib, err := setup.LoadCircuitLibrary(*qapPath)
	if err != nil {
		log.Error().Err(err).Msg("loading circuit library")
		os.Exit(1)
	}

	var rsJSON circuitio.ReferenceStringJSON
	sigmaPath := filepath.Join(*synthPath, "setup", "trusted-setup", "output", "combined_sigma.json")
	if err := circuitio.ReadJSON(sigmaPath, &rsJSON); err != nil {
		log.Error().Err(err).Msg("loading reference string")
		os.Exit(1)
	}
	rs := setup.ReferenceStringFromJSON(rsJSON)

	inst, err := prover.LoadInstance(lib, *synthPath)
	if err != nil {
		log.Error().Err(err).Msg("loading placement instance")
		os.Exit(1)
	}

	p := prover.NewProver(inst, rs, prover.WithSelfCheck(true))
	proof, binding, err := p.Prove()
	if err != nil {
		log.Error().Err(err).Msg("proving")
		os.Exit(1)
	}

	if *selfVerify {
		publicVals, err := inst.PublicBinding()
		if err != nil {
			log.Error().Err(err).Msg("reading public binding")
			os.Exit(1)
		}
		v, err := verifier.New(rs, lib.Params, inst.Permutation)
		if err != nil {
			log.Error().Err(err).Msg("building verifier")
			os.Exit(1)
		}
		ok, err := v.Verify(proof, binding, publicVals)
		if err != nil {
			log.Error().Err(err).Msg("verifying")
			os.Exit(1)
		}
		if !ok {
			log.Error().Msg("self-verification rejected the generated proof")
			os.Exit(1)
		}
		log.Info().Msg("self-verification accepted")
	}

	proofJSON := proof.ToJSON()
	if *toStdout {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(proofJSON); err != nil {
			log.Error().Err(err).Msg("encoding proof")
			os.Exit(1)
		}
		return
	}

	outPath := filepath.Join(*synthPath, "proof.json")
	if err := circuitio.WriteJSON(outPath, proofJSON); err != nil {
		log.Error().Err(err).Msg("writing proof")
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "wrote", outPath)
}
