// Command setup runs the trusted-setup ceremony over a subcircuit library
// and writes the resulting reference string.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/logx"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

func main() {
	qapPath := flag.String("qap-path", "", "subcircuit library root (setupParams.json, subcircuitInfo.json, globalWireList.json, json/subcircuit<i>.json)")
	synthPath := flag.String("synth-path", "", "placement output root; combined_sigma.json is written under <synth-path>/setup/trusted-setup/output")
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

	tau, err := setup.SampleTau()
	if err != nil {
		log.Error().Err(err).Msg("sampling trapdoor")
		os.Exit(1)
	}

	rs, err := setup.GenerateReferenceString(lib, tau)
	if err != nil {
		log.Error().Err(err).Msg("generating reference string")
		os.Exit(1)
	}

	outPath := filepath.Join(*synthPath, "setup", "trusted-setup", "output", "combined_sigma.json")
	if err := circuitio.WriteJSON(outPath, rs.ToJSON()); err != nil {
		log.Error().Err(err).Msg("writing reference string")
		os.Exit(1)
	}

	log.Info().Str("path", outPath).
		Uint64("n", lib.Params.N).Uint64("sMax", lib.Params.SMax).Uint64("mI", lib.Params.MI()).
		Msg("reference string generated")
}
