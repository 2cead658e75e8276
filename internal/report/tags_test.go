package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

func TestCollectTagInfosFlattensPieces(t *testing.T) {
	plan := []model.SplicePlanItem{
		{
			BarMark: "B1",
			Pieces: []model.SplicePiece{
				{LengthMm: 11500, StartMm: 0, EndMm: 11500},
				{LengthMm: 6500, StartMm: 10800, EndMm: 17300},
			},
		},
		{
			BarMark: "B2",
			Pieces: []model.SplicePiece{
				{LengthMm: 9000, StartMm: 0, EndMm: 9000},
			},
		},
	}

	tags := CollectTagInfos(plan, 20)
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}
	if tags[0].BarMark != "B1" || tags[0].SeqInRun != 1 {
		t.Errorf("unexpected first tag: %+v", tags[0])
	}
	if tags[1].SeqInRun != 2 {
		t.Errorf("expected second piece of B1 to be seq 2, got %+v", tags[1])
	}
	if tags[2].BarMark != "B2" || tags[2].Dia != 20 {
		t.Errorf("unexpected third tag: %+v", tags[2])
	}
}

func TestExportTagSheetWritesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	tags := CollectTagInfos([]model.SplicePlanItem{
		{BarMark: "B1", Pieces: []model.SplicePiece{{LengthMm: 11500, StartMm: 0, EndMm: 11500}}},
	}, 20)

	if err := ExportTagSheet(path, tags); err != nil {
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

func TestExportTagSheetRejectsEmptyTags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")
	if err := ExportTagSheet(path, nil); err == nil {
		t.Fatal("expected error for empty tag list")
	}
}

func TestExportTagSheetPaginates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	var pieces []model.SplicePiece
	for i := 0; i < tagsPerPage+5; i++ {
		pieces = append(pieces, model.SplicePiece{LengthMm: 1000, StartMm: 0, EndMm: 1000})
	}
	tags := CollectTagInfos([]model.SplicePlanItem{{BarMark: "B1", Pieces: pieces}}, 20)
	if len(tags) != tagsPerPage+5 {
		t.Fatalf("expected %d tags, got %d", tagsPerPage+5, len(tags))
	}

	if err := ExportTagSheet(path, tags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
