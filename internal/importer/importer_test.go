package importer

import (
	"strings"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/catalog"
	"github.com/rafiqul27/RebarOpt/internal/model"
)

func TestDetectCSVDelimiterPrefersSemicolon(t *testing.T) {
	data := []byte("bar_mark;dia;length;qty\nB1;20;6000;4\nB2;16;4000;2\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Fatalf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectColumnsRecognizesHeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Mark", "Diameter", "Length (mm)", "Qty"})
	if !hasHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.BarMark != 0 || mapping.Dia != 1 || mapping.Length != 2 || mapping.Qty != 3 {
		t.Fatalf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumnsFallsBackToPositional(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"B1", "20", "6000", "4"})
	if hasHeader {
		t.Fatal("expected no header to be detected for numeric-looking row")
	}
	if mapping.BarMark != 0 || mapping.Dia != 1 || mapping.Length != 2 || mapping.Qty != 3 {
		t.Fatalf("unexpected positional mapping: %+v", mapping)
	}
}

func TestImportCSVFromReaderParsesPieces(t *testing.T) {
	csvData := "bar_mark,dia,length,qty\nB1,20,6000,4\nB2,16,4000,2\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(result.Pieces))
	}
	want := model.DirectPiece{BarMark: "B1", Dia: 20, LengthMm: 6000, Qty: 4}
	if result.Pieces[0] != want {
		t.Errorf("expected %+v, got %+v", want, result.Pieces[0])
	}
}

func TestImportCSVFromReaderSkipsEmptyRowsAndReportsErrors(t *testing.T) {
	csvData := "bar_mark,dia,length,qty\nB1,20,6000,4\n,,,\nB2,abc,4000,2\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')

	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 valid piece, got %d", len(result.Pieces))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error for invalid diameter, got %v", result.Errors)
	}
}

func TestImportCSVFromReaderDefaultsMissingBarMark(t *testing.T) {
	csvData := "dia,length,qty\n20,6000,4\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(result.Pieces))
	}
	if result.Pieces[0].BarMark != "FP-1" {
		t.Errorf("expected generated bar mark FP-1, got %q", result.Pieces[0].BarMark)
	}
}

func TestImportCSVFromReaderRejectsMissingRequiredColumns(t *testing.T) {
	csvData := "foo,bar\n1,2\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for missing required columns")
	}
}

func TestApplyLapRulePresetsFlagsUnresolvedDiameters(t *testing.T) {
	lib := catalog.DefaultPresetLibrary()
	pieces := []model.DirectPiece{
		{BarMark: "B1", Dia: 19, LengthMm: 6000, Qty: 1},
		{BarMark: "B2", Dia: 32, LengthMm: 6000, Qty: 1},
	}
	unresolved := ApplyLapRulePresets(pieces, lib)
	if len(unresolved) != 1 || unresolved[0] != 32 {
		t.Fatalf("expected dia 32 to be unresolved, got %v", unresolved)
	}
}
