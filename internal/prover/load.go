package prover

import (
	"path/filepath"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
	"github.com/tokamak-zk-evm/snark-core/internal/setup"
)

// LoadInstance reads placementVariables.json and permutation.json from
// synthPath and pairs them with lib.
func LoadInstance(lib setup.CircuitLibrary, synthPath string) (*Instance, error) {
	var placements []circuitio.PlacementVariable
	if err := circuitio.ReadJSON(filepath.Join(synthPath, "placementVariables.json"), &placements); err != nil {
		return nil, err
	}
	var perm []circuitio.PermutationEntry
	if err := circuitio.ReadJSON(filepath.Join(synthPath, "permutation.json"), &perm); err != nil {
		return nil, err
	}
	return &Instance{Lib: lib, Placements: placements, Permutation: perm}, nil
}
