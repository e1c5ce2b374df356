package circuitio

// SetupParams mirrors setupParams.json.
type SetupParams struct {
	L    uint64 `json:"l"`
	LD   uint64 `json:"l_D"`
	MD   uint64 `json:"m_D"`
	N    uint64 `json:"n"`
	SD   uint64 `json:"s_D"`
	SMax uint64 `json:"s_max"`
}

// MI returns the interface-wire count l_D - l.
func (p SetupParams) MI() uint64 { return p.LD - p.L }

// IndexRange is a [start, len) pair as used by subcircuitInfo.json, where it
// is encoded as the two-element array [start, len].
type IndexRange struct {
	Start uint64 `json:"start"`
	Len   uint64 `json:"len"`
}

func (r IndexRange) MarshalJSON() ([]byte, error) {
	return marshalPair(r.Start, r.Len)
}

func (r *IndexRange) UnmarshalJSON(data []byte) error {
	start, length, err := unmarshalPair(data)
	if err != nil {
		return err
	}
	r.Start, r.Len = start, length
	return nil
}

// SubcircuitInfo mirrors one entry of subcircuitInfo.json.
type SubcircuitInfo struct {
	ID         uint64     `json:"id"`
	NWires     uint64     `json:"Nwires"`
	InIdx      IndexRange `json:"In_idx"`
	OutIdx     IndexRange `json:"Out_idx"`
	FlattenMap []uint64   `json:"flattenMap"`
}

// GlobalWireRef mirrors one entry of globalWireList.json: the
// (subcircuit, local wire index) pair owning a given global wire id.
type GlobalWireRef struct {
	SubcircuitID uint64
	LocalWireIdx uint64
}

// MarshalJSON encodes a GlobalWireRef as the two-element array the schema
// specifies ([subcircuit_id, local_wire_idx]).
func (g GlobalWireRef) MarshalJSON() ([]byte, error) {
	return marshalPair(g.SubcircuitID, g.LocalWireIdx)
}

func (g *GlobalWireRef) UnmarshalJSON(data []byte) error {
	a, b, err := unmarshalPair(data)
	if err != nil {
		return err
	}
	g.SubcircuitID, g.LocalWireIdx = a, b
	return nil
}

// SubcircuitR1CS mirrors subcircuit<i>.json: column-compacted R1CS
// matrices plus their active-wire index sets.
type SubcircuitR1CS struct {
	ACompactColMat [][]FieldHex `json:"A_compact_col_mat"`
	BCompactColMat [][]FieldHex `json:"B_compact_col_mat"`
	CCompactColMat [][]FieldHex `json:"C_compact_col_mat"`
	AActiveWires   []uint64     `json:"A_active_wires"`
	BActiveWires   []uint64     `json:"B_active_wires"`
	CActiveWires   []uint64     `json:"C_active_wires"`
}

// PlacementVariable mirrors one entry of placementVariables.json.
type PlacementVariable struct {
	SubcircuitID uint64     `json:"subcircuitId"`
	Variables    []FieldHex `json:"variables"`
}

// PermutationEntry mirrors one entry of permutation.json: a copy
// constraint between (row,col) and (X,Y) in the m_I x s_max grid.
type PermutationEntry struct {
	Row uint64 `json:"row"`
	Col uint64 `json:"col"`
	X   uint64 `json:"X"`
	Y   uint64 `json:"Y"`
}
