package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// writeJSONFile marshals v as indented JSON and writes it to path,
// creating any missing parent directories. Shared by SaveAppConfig and
// ExportAllData so the mkdir-marshal-write sequence lives in one place.
func writeJSONFile(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
