package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/catalog"
	"github.com/rafiqul27/RebarOpt/internal/model"
)

func TestExportAndImportAllDataRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	config := model.DefaultAppConfig()
	config.DefaultKerfMm = 3
	presets := catalog.DefaultPresetLibrary()
	templates := catalog.NewTemplateStore()
	templates.Add(catalog.NewRunTemplate("Tower A", "", nil, nil, model.DefaultProjectSettings()))

	if err := ExportAllData(path, config, presets, templates); err != nil {
		t.Fatalf("unexpected error exporting: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("unexpected error importing: %v", err)
	}
	if backup.Version != backupVersion {
		t.Errorf("expected version %q, got %q", backupVersion, backup.Version)
	}
	if backup.Config.DefaultKerfMm != 3 {
		t.Errorf("expected kerf 3, got %d", backup.Config.DefaultKerfMm)
	}
	if len(backup.Presets.StockCatalogs) != len(presets.StockCatalogs) {
		t.Errorf("expected presets to round-trip, got %d catalogs", len(backup.Presets.StockCatalogs))
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(backup.Templates.Templates))
	}
}

func TestImportAllDataRejectsMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := writeRawJSON(path, `{"config":{}}`); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version field")
	}
}

func writeRawJSON(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
