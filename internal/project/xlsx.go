package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/zonepolicy"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the tabular project file, one section per spec.
const (
	SheetSettings     = "Settings"
	SheetStock        = "Stock"
	SheetInventory    = "Inventory"
	SheetRules        = "Rules"
	SheetBarRuns      = "BarRuns"
	SheetFixedPieces  = "FixedPieces"
)

// Project is the full in-memory contents of a tabular project file.
type Project struct {
	Name      string
	Settings  model.ProjectSettings
	Stock     []model.StockCatalogItem
	Inventory []model.OffcutInventoryItem
	Rules     []model.LapRule
	Runs      []model.BarRun
	Direct    []model.DirectPiece
}

var memberToLapCase = map[model.MemberType]model.LapCase{
	model.MemberColumn:     model.LapCaseColumn,
	model.MemberBeamTop:    model.LapCaseBeamTop,
	model.MemberBeamBottom: model.LapCaseBeamBottom,
	model.MemberOther:      model.LapCaseGeneric,
}

// SaveProjectFile writes p as a 6-sheet xlsx workbook at path.
func SaveProjectFile(path string, p Project) error {
	f := excelize.NewFile()
	defer f.Close()

	writeSettingsSheet(f, p)
	writeStockSheet(f, p.Stock)
	writeInventorySheet(f, p.Inventory)
	writeRulesSheet(f, p.Rules)
	writeBarRunsSheet(f, p.Runs)
	writeFixedPiecesSheet(f, p.Direct)

	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSettingsSheet(f *excelize.File, p Project) {
	f.NewSheet(SheetSettings)
	headers := []string{"projectName", "units", "roundingStepMm", "kerfMm", "minLeftoverMm", "allowOffcuts", "beamDepthMm", "optimizationLevel", "inventoryStrategy"}
	setRow(f, SheetSettings, 1, toAny(headers))
	s := p.Settings
	setRow(f, SheetSettings, 2, []any{
		p.Name, "mm", s.RoundingStepMm, s.KerfMm, s.MinLeftoverMm, s.AllowOffcuts, s.BeamDepthMm, string(s.OptimizationLevel), string(s.InventoryStrategy),
	})
}

func writeStockSheet(f *excelize.File, items []model.StockCatalogItem) {
	f.NewSheet(SheetStock)
	setRow(f, SheetStock, 1, toAny([]string{"dia", "lengths"}))
	for i, item := range items {
		setRow(f, SheetStock, i+2, []any{item.Dia, joinInts(item.StockLengths)})
	}
}

func writeInventorySheet(f *excelize.File, items []model.OffcutInventoryItem) {
	f.NewSheet(SheetInventory)
	setRow(f, SheetInventory, 1, toAny([]string{"id", "dia", "lengthMm", "quantity"}))
	for i, item := range items {
		setRow(f, SheetInventory, i+2, []any{item.ID, item.Dia, item.LengthMm, item.Quantity})
	}
}

func writeRulesSheet(f *excelize.File, rules []model.LapRule) {
	f.NewSheet(SheetRules)
	setRow(f, SheetRules, 1, toAny([]string{"dia", "lapCase", "lengthMm"}))
	for i, r := range rules {
		setRow(f, SheetRules, i+2, []any{r.Dia, string(r.LapCase), r.LengthMm})
	}
}

func writeBarRunsSheet(f *excelize.File, runs []model.BarRun) {
	f.NewSheet(SheetBarRuns)
	setRow(f, SheetBarRuns, 1, toAny([]string{"id", "barMark", "memberType", "dia", "qty", "geometry"}))
	for i, r := range runs {
		setRow(f, SheetBarRuns, i+2, []any{r.ID, r.BarMark, string(r.MemberType), r.Dia, r.QtyParallel, geometryFromZones(r)})
	}
}

// geometryFromZones reconstructs a placeholder single-segment geometry
// string from a run's total length when the original per-segment
// breakdown is not retained; round-trips a run's headline quantities,
// not its original zone derivation.
func geometryFromZones(r model.BarRun) string {
	return strconv.Itoa(r.TotalLengthMm)
}

func writeFixedPiecesSheet(f *excelize.File, pieces []model.DirectPiece) {
	f.NewSheet(SheetFixedPieces)
	setRow(f, SheetFixedPieces, 1, toAny([]string{"id", "barMark", "dia", "lengthMm", "qty"}))
	for i, p := range pieces {
		setRow(f, SheetFixedPieces, i+2, []any{p.ID, p.BarMark, p.Dia, p.LengthMm, p.Qty})
	}
}

// LoadProjectFile reads a 6-sheet xlsx workbook from path. Each sheet's
// header row is matched positionally (spec.md §6's fixed column order).
// The BarRuns sheet stores no lapCase: each run's lapCase is derived from
// its memberType, and its totalLength and allowed zones from its geometry
// via zonepolicy.
func LoadProjectFile(path string) (Project, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("cannot open project file: %w", err)
	}
	defer f.Close()

	p := Project{}

	if rows, err := f.GetRows(SheetSettings); err == nil && len(rows) > 1 {
		p.Name, p.Settings = parseSettingsRow(rows[1])
	} else {
		p.Settings = model.DefaultProjectSettings()
	}

	if rows, err := f.GetRows(SheetStock); err == nil {
		p.Stock = parseStockRows(rows)
	}
	if rows, err := f.GetRows(SheetInventory); err == nil {
		p.Inventory = parseInventoryRows(rows)
	}
	if rows, err := f.GetRows(SheetRules); err == nil {
		p.Rules = parseRulesRows(rows)
	}
	if rows, err := f.GetRows(SheetBarRuns); err == nil {
		runs, err := parseBarRunsRows(rows, p.Settings.BeamDepthMm)
		if err != nil {
			return Project{}, err
		}
		p.Runs = runs
	}
	if rows, err := f.GetRows(SheetFixedPieces); err == nil {
		pieces, err := parseFixedPiecesRows(rows)
		if err != nil {
			return Project{}, err
		}
		p.Direct = pieces
	}

	return p, nil
}

func parseSettingsRow(row []string) (string, model.ProjectSettings) {
	s := model.DefaultProjectSettings()
	name := cell(row, 0)
	s.RoundingStepMm = atoiOr(cell(row, 2), s.RoundingStepMm)
	s.KerfMm = atoiOr(cell(row, 3), s.KerfMm)
	s.MinLeftoverMm = atoiOr(cell(row, 4), s.MinLeftoverMm)
	s.AllowOffcuts = atobOr(cell(row, 5), s.AllowOffcuts)
	s.BeamDepthMm = atoiOr(cell(row, 6), s.BeamDepthMm)
	if v := cell(row, 7); v != "" {
		s.OptimizationLevel = model.OptimizationLevel(v)
	}
	if v := cell(row, 8); v != "" {
		s.InventoryStrategy = model.InventoryStrategy(v)
	}
	return name, s
}

func parseStockRows(rows [][]string) []model.StockCatalogItem {
	var items []model.StockCatalogItem
	for _, row := range dataRows(rows) {
		dia := atoiOr(cell(row, 0), 0)
		if dia == 0 {
			continue
		}
		items = append(items, model.StockCatalogItem{Dia: dia, StockLengths: splitInts(cell(row, 1))})
	}
	return items
}

func parseInventoryRows(rows [][]string) []model.OffcutInventoryItem {
	var items []model.OffcutInventoryItem
	for _, row := range dataRows(rows) {
		dia := atoiOr(cell(row, 1), 0)
		if dia == 0 {
			continue
		}
		items = append(items, model.OffcutInventoryItem{
			ID: cell(row, 0), Dia: dia,
			LengthMm: atoiOr(cell(row, 2), 0),
			Quantity: atoiOr(cell(row, 3), 0),
		})
	}
	return items
}

func parseRulesRows(rows [][]string) []model.LapRule {
	var items []model.LapRule
	for _, row := range dataRows(rows) {
		dia := atoiOr(cell(row, 0), 0)
		if dia == 0 {
			continue
		}
		items = append(items, model.LapRule{
			Dia: dia, LapCase: model.LapCase(cell(row, 1)), LengthMm: atoiOr(cell(row, 2), 0),
		})
	}
	return items
}

func parseBarRunsRows(rows [][]string, beamDepthMm int) ([]model.BarRun, error) {
	var runs []model.BarRun
	for i, row := range dataRows(rows) {
		barMark := cell(row, 1)
		if barMark == "" {
			continue
		}
		memberType := model.MemberType(cell(row, 2))
		dia := atoiOr(cell(row, 3), 0)
		qty := atoiOr(cell(row, 4), 1)
		geometry := cell(row, 5)

		lapCase := memberToLapCase[memberType]
		if lapCase == "" {
			lapCase = model.LapCaseGeneric
		}
		id := cell(row, 0)
		if id == "" {
			id = fmt.Sprintf("run-%d", i+1)
		}
		run, err := zonepolicy.DeriveRun(id, barMark, memberType, lapCase, dia, qty, geometry, beamDepthMm)
		if err != nil {
			return nil, fmt.Errorf("BarRuns row %d: %w", i+2, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func parseFixedPiecesRows(rows [][]string) ([]model.DirectPiece, error) {
	var pieces []model.DirectPiece
	for i, row := range dataRows(rows) {
		barMark := cell(row, 1)
		if barMark == "" {
			continue
		}
		dia := atoiOr(cell(row, 2), 0)
		length := atoiOr(cell(row, 3), 0)
		qty := atoiOr(cell(row, 4), 0)
		if dia <= 0 || length <= 0 || qty <= 0 {
			return nil, fmt.Errorf("%w: FixedPieces row %d has a non-positive dia/length/qty", model.ErrInvalidRun, i+2)
		}
		id := cell(row, 0)
		if id == "" {
			id = fmt.Sprintf("fp-%d", i+1)
		}
		pieces = append(pieces, model.DirectPiece{ID: id, BarMark: barMark, Dia: dia, LengthMm: length, Qty: qty})
	}
	return pieces, nil
}

func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func atobOr(s string, fallback bool) bool {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func splitInts(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if v, err := strconv.Atoi(p); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func setRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cellName, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cellName, v)
	}
}
