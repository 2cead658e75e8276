package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

func sampleResult() model.OptimizationResult {
	return model.OptimizationResult{
		SplicePlan: []model.SplicePlanItem{
			{
				RunID:   "r1",
				BarMark: "B1",
				Pieces: []model.SplicePiece{
					{LengthMm: 11500, StartMm: 0, EndMm: 11500},
					{LengthMm: 6500, StartMm: 10800, EndMm: 17300},
				},
			},
		},
		CuttingPlan: []model.CuttingPlanItem{
			{Dia: 20, SourceType: model.SourceNewStock, StockLength: 12000, Pattern: []int{11500}, Count: 1, Offcut: 500},
			{Dia: 20, SourceType: model.SourceExisting, StockLength: 8000, Pattern: []int{6500}, Count: 1, Waste: 1500},
		},
		Procurement: []model.ProcurementItem{
			{Dia: 20, StockLength: 12000, Quantity: 1, TotalLength: 12000},
		},
		Summary: model.Summary{
			TotalInputLengthMm: 18000,
			TotalPartsLengthMm: 18000,
			TotalWasteMm:       2000,
			WastePercent:       10.0,
			TotalWeightKg:      44.38,
			TotalStockBars:     2,
		},
		Warnings: []string{"STRUCTURAL WARNING [B1]: Forced splice at 11450 mm."},
	}
}

func TestExportPDFWritesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	if err := ExportPDF(path, sampleResult(), "Tower A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty PDF file")
	}
}

func TestExportPDFRejectsEmptyCuttingPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	err := ExportPDF(path, model.OptimizationResult{}, "Empty")
	if err == nil {
		t.Fatal("expected error for empty cutting plan")
	}
}

func TestPatternStringFormatsCommaSeparated(t *testing.T) {
	got := patternString([]int{11500, 6500})
	want := "11500, 6500"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
