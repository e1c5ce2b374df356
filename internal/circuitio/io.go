package circuitio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("circuitio: open %s: %w", path, err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("circuitio: decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to path, creating parent directories
// as needed.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("circuitio: mkdir for %s: %w", path, err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("circuitio: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("circuitio: write %s: %w", path, err)
	}
	return nil
}

// SubcircuitPath builds the conventional json/subcircuit<i>.json path under
// a QAP root.
func SubcircuitPath(qapRoot string, id uint64) string {
	return filepath.Join(qapRoot, "json", fmt.Sprintf("subcircuit%d.json", id))
}
