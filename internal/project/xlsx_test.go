package project

import (
	"path/filepath"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

func sampleProject() Project {
	settings := model.DefaultProjectSettings()
	settings.KerfMm = 6
	return Project{
		Name:     "Tower A",
		Settings: settings,
		Stock:    []model.StockCatalogItem{{Dia: 20, StockLengths: []int{12000, 9000}}},
		Inventory: []model.OffcutInventoryItem{
			{ID: "inv-1", Dia: 20, LengthMm: 6100, Quantity: 2},
		},
		Rules: []model.LapRule{
			{Dia: 20, LapCase: model.LapCaseColumn, LengthMm: 1000},
		},
		Runs: []model.BarRun{
			{ID: "run-1", BarMark: "C1", MemberType: model.MemberColumn, LapCase: model.LapCaseColumn, Dia: 20, QtyParallel: 4, TotalLengthMm: 7000},
		},
		Direct: []model.DirectPiece{
			{ID: "fp-1", BarMark: "FP1", Dia: 16, LengthMm: 3000, Qty: 10},
		},
	}
}

func TestSaveAndLoadProjectFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.xlsx")

	original := sampleProject()
	if err := SaveProjectFile(path, original); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	loaded, err := LoadProjectFile(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}

	if loaded.Name != "Tower A" {
		t.Errorf("expected project name Tower A, got %q", loaded.Name)
	}
	if loaded.Settings.KerfMm != 6 {
		t.Errorf("expected kerf 6, got %d", loaded.Settings.KerfMm)
	}
	if len(loaded.Stock) != 1 || loaded.Stock[0].Dia != 20 || len(loaded.Stock[0].StockLengths) != 2 {
		t.Fatalf("unexpected stock: %+v", loaded.Stock)
	}
	if len(loaded.Inventory) != 1 || loaded.Inventory[0].Quantity != 2 {
		t.Fatalf("unexpected inventory: %+v", loaded.Inventory)
	}
	if len(loaded.Rules) != 1 || loaded.Rules[0].LapCase != model.LapCaseColumn {
		t.Fatalf("unexpected rules: %+v", loaded.Rules)
	}
	if len(loaded.Runs) != 1 || loaded.Runs[0].BarMark != "C1" || loaded.Runs[0].LapCase != model.LapCaseColumn {
		t.Fatalf("unexpected runs: %+v", loaded.Runs)
	}
	if len(loaded.Direct) != 1 || loaded.Direct[0].Qty != 10 {
		t.Fatalf("unexpected fixed pieces: %+v", loaded.Direct)
	}
}

func TestLoadProjectFileRejectsInvalidFixedPiece(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.xlsx")

	p := sampleProject()
	p.Direct = []model.DirectPiece{{ID: "fp-1", BarMark: "FP1", Dia: 0, LengthMm: 3000, Qty: 10}}
	if err := SaveProjectFile(path, p); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	if _, err := LoadProjectFile(path); err == nil {
		t.Fatal("expected error for non-positive diameter")
	}
}

func TestSplitAndJoinIntsRoundTrip(t *testing.T) {
	lengths := []int{12000, 9000, 6000}
	joined := joinInts(lengths)
	if joined != "12000,9000,6000" {
		t.Fatalf("unexpected joined string: %q", joined)
	}
	split := splitInts(joined)
	for i, v := range lengths {
		if split[i] != v {
			t.Fatalf("expected %v, got %v", lengths, split)
		}
	}
}
