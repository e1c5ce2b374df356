package setup

import (
	"path/filepath"

	"github.com/tokamak-zk-evm/snark-core/internal/circuitio"
)

// LoadCircuitLibrary reads the subcircuit library rooted at qapRoot:
// setupParams.json, subcircuitInfo.json, globalWireList.json, and one
// json/subcircuit<i>.json per entry in subcircuitInfo.json.
func LoadCircuitLibrary(qapRoot string) (CircuitLibrary, error) {
	var params circuitio.SetupParams
	if err := circuitio.ReadJSON(filepath.Join(qapRoot, "setupParams.json"), &params); err != nil {
		return CircuitLibrary{}, err
	}

	var infos []circuitio.SubcircuitInfo
	if err := circuitio.ReadJSON(filepath.Join(qapRoot, "subcircuitInfo.json"), &infos); err != nil {
		return CircuitLibrary{}, err
	}

	var globalWires []circuitio.GlobalWireRef
	if err := circuitio.ReadJSON(filepath.Join(qapRoot, "globalWireList.json"), &globalWires); err != nil {
		return CircuitLibrary{}, err
	}

	subcircuits := make(map[uint64]circuitio.SubcircuitInfo, len(infos))
	r1cs := make(map[uint64]circuitio.SubcircuitR1CS, len(infos))
	for _, info := range infos {
		subcircuits[info.ID] = info
		var row circuitio.SubcircuitR1CS
		if err := circuitio.ReadJSON(circuitio.SubcircuitPath(qapRoot, info.ID), &row); err != nil {
			return CircuitLibrary{}, err
		}
		r1cs[info.ID] = row
	}

	return CircuitLibrary{
		Params:      params,
		Subcircuits: subcircuits,
		R1CS:        r1cs,
		GlobalWires: globalWires,
	}, nil
}
