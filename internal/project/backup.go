package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rafiqul27/RebarOpt/internal/catalog"
	"github.com/rafiqul27/RebarOpt/internal/model"
)

// backupVersion is bumped whenever BackupData's shape changes in a way
// that breaks older readers.
const backupVersion = "1.0.0"

// BackupData is the top-level structure for exporting/importing all
// application data: preferences, stock/lap presets, and saved run
// templates.
type BackupData struct {
	Version   string                `json:"version"`
	CreatedAt string                `json:"created_at"`
	Config    model.AppConfig       `json:"config"`
	Presets   catalog.PresetLibrary `json:"presets"`
	Templates catalog.TemplateStore `json:"templates"`
}

// ExportAllData bundles config, presets, and templates into a single
// JSON file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, presets catalog.PresetLibrary, templates catalog.TemplateStore) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   presets,
		Templates: templates,
	}
	if err := writeJSONFile(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file. The caller is responsible for
// applying the imported config/presets/templates.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	return backup, nil
}
