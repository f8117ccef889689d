package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// FilePath derives the stats file path from a bank file path by swapping
// the extension for ".stats.json".
func FilePath(bankPath string) string {
	ext := filepath.Ext(bankPath)
	return strings.TrimSuffix(bankPath, ext) + ".stats.json"
}

// LoadFile reads a persistent stats store from a JSON file. A missing or
// unparseable file yields an empty store, never an error: stats always
// start fresh rather than blocking a session.
func LoadFile(path string) Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return Store{}
	}
	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return Store{}
	}
	if store == nil {
		return Store{}
	}
	return store
}

// SaveFile writes the store to a JSON file with two-space indentation.
func SaveFile(store Store, path string) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
