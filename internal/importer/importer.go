// Package importer provides CSV and Excel bulk import for fixed
// (direct) rebar pieces. It supports automatic delimiter detection and
// case-insensitive, alias-tolerant column mapping, mirroring the
// teacher's part-list importer.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rafiqul27/RebarOpt/internal/catalog"
	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pieces   []model.DirectPiece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	BarMark int
	Dia     int
	Length  int
	Qty     int
}

var headerAliases = map[string][]string{
	"bar_mark": {"bar mark", "bar_mark", "barmark", "mark", "label", "name", "piece", "item"},
	"dia":      {"dia", "diameter", "bar dia", "size"},
	"length":   {"length", "len", "length_mm", "lengthmm", "length (mm)"},
	"qty":      {"qty", "quantity", "count", "num", "amount", "pcs", "pieces"},
}

// delimiterCandidates are tried in this order when no delimiter is given;
// comma stays the default on a tie since it leads the slice.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// scoreDelimiter parses data with delim and returns how well it splits the
// data into a consistent rectangular table: row-count-consistency weighted
// above raw column count, or 0 if delim doesn't look like a table at all.
func scoreDelimiter(data []byte, delim rune) int {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil || len(records) < 1 {
		return 0
	}

	firstCols := len(records[0])
	if firstCols < 2 {
		return 0
	}

	consistent := 0
	for _, row := range records {
		if len(row) == firstCols {
			consistent++
		}
	}
	return consistent*10 + firstCols
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter, trying comma, semicolon, tab, and pipe.
func DetectCSVDelimiter(data []byte) rune {
	best := delimiterCandidates[0]
	bestScore := 0
	for _, delim := range delimiterCandidates {
		if score := scoreDelimiter(data, delim); score > bestScore {
			bestScore = score
			best = delim
		}
	}
	return best
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected,
// or a default positional mapping (bar_mark, dia, length, qty) and
// false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{BarMark: -1, Dia: -1, Length: -1, Qty: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "bar_mark":
						if mapping.BarMark == -1 {
							mapping.BarMark = i
						}
					case "dia":
						if mapping.Dia == -1 {
							mapping.Dia = i
						}
					case "length":
						if mapping.Length == -1 {
							mapping.Length = i
						}
					case "qty":
						if mapping.Qty == -1 {
							mapping.Qty = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{BarMark: 0, Dia: 1, Length: 2, Qty: 3}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) (model.DirectPiece, string) {
	barMark := getCell(row, mapping.BarMark)
	if barMark == "" {
		barMark = fmt.Sprintf("FP-%d", pieceCount+1)
	}

	diaStr := getCell(row, mapping.Dia)
	if diaStr == "" {
		return model.DirectPiece{}, fmt.Sprintf("%s: Missing diameter value", rowLabel)
	}
	dia, err := strconv.Atoi(diaStr)
	if err != nil {
		return model.DirectPiece{}, fmt.Sprintf("%s: Invalid diameter %q", rowLabel, diaStr)
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.DirectPiece{}, fmt.Sprintf("%s: Missing length value", rowLabel)
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return model.DirectPiece{}, fmt.Sprintf("%s: Invalid length %q", rowLabel, lengthStr)
	}

	qtyStr := getCell(row, mapping.Qty)
	if qtyStr == "" {
		return model.DirectPiece{}, fmt.Sprintf("%s: Missing quantity value", rowLabel)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.DirectPiece{}, fmt.Sprintf("%s: Invalid quantity %q", rowLabel, qtyStr)
	}

	if dia <= 0 || length <= 0 || qty <= 0 {
		return model.DirectPiece{}, fmt.Sprintf("%s: Diameter, length, and quantity must be positive", rowLabel)
	}

	return model.DirectPiece{BarMark: barMark, Dia: dia, LengthMm: length, Qty: qty}, ""
}

// ImportCSV imports fixed pieces from a CSV file, auto-detecting the
// delimiter and mapping columns by header name.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports fixed pieces from a CSV reader with a
// known delimiter, useful for tests.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports fixed pieces from the FixedPieces sheet of an
// xlsx project file, falling back to the first sheet if that one is
// absent.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheetName := "FixedPieces"
	rows, err := f.GetRows(sheetName)
	if err != nil || len(rows) == 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			result.Errors = append(result.Errors, "Excel file has no sheets")
			return result
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
			return result
		}
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Dia == -1 {
			missing = append(missing, "Dia")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Qty == -1 {
			missing = append(missing, "Qty")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		piece, errMsg := parseRow(row, mapping, rowLabel, len(result.Pieces))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Pieces = append(result.Pieces, piece)
	}

	return result
}

// ApplyLapRulePresets resolves each imported piece's diameter against a
// preset library's lap rules, returning any diameters with no matching
// rule so the caller can prompt for a manual lap value.
func ApplyLapRulePresets(pieces []model.DirectPiece, lib catalog.PresetLibrary) []int {
	seen := map[int]bool{}
	var unresolved []int
	for _, p := range pieces {
		if seen[p.Dia] {
			continue
		}
		seen[p.Dia] = true
		found := false
		for _, lr := range lib.LapRules {
			if lr.Dia == p.Dia {
				found = true
				break
			}
		}
		if !found {
			unresolved = append(unresolved, p.Dia)
		}
	}
	return unresolved
}
