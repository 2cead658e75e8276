// Package catalog holds reusable, user-curated presets: named stock
// catalog templates, named lap rule sets, and run templates that capture
// a reusable set of bar runs and settings without any solve results.
package catalog

import "github.com/rafiqul27/RebarOpt/internal/model"

// StockCatalogPreset is a reusable, named stock catalog entry for a
// single diameter, mirroring the teacher's StockPreset.
type StockCatalogPreset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dia          int    `json:"dia"`
	StockLengths []int  `json:"stock_lengths"`
}

// ToStockCatalogItem converts the preset into a model.StockCatalogItem.
func (p StockCatalogPreset) ToStockCatalogItem() model.StockCatalogItem {
	return model.StockCatalogItem{Dia: p.Dia, StockLengths: append([]int(nil), p.StockLengths...)}
}

// LapRulePreset is a reusable, named lap rule, mirroring the teacher's
// ToolProfile pattern of a saved parameter set applied on demand.
type LapRulePreset struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Dia     int           `json:"dia"`
	LapCase model.LapCase `json:"lap_case"`
	LapMm   int           `json:"lap_mm"`
}

// ToLapRule converts the preset into a model.LapRule.
func (p LapRulePreset) ToLapRule() model.LapRule {
	return model.LapRule{Dia: p.Dia, LapCase: p.LapCase, LengthMm: p.LapMm}
}

// PresetLibrary holds the user's saved stock and lap rule presets.
type PresetLibrary struct {
	StockCatalogs []StockCatalogPreset `json:"stock_catalogs"`
	LapRules      []LapRulePreset      `json:"lap_rules"`
}

// DefaultPresetLibrary returns a library populated with common Indonesian
// SNI rebar stock lengths and the default 50*dia lap rule for each
// documented member case, so a new install has something to start from.
func DefaultPresetLibrary() PresetLibrary {
	dias := []int{10, 13, 16, 19, 22, 25}
	lib := PresetLibrary{}
	for _, d := range dias {
		lib.StockCatalogs = append(lib.StockCatalogs, StockCatalogPreset{
			ID:           newID(),
			Name:         "Standard 12m Stock",
			Dia:          d,
			StockLengths: []int{12000},
		})
		for _, lc := range []model.LapCase{model.LapCaseColumn, model.LapCaseBeamTop, model.LapCaseBeamBottom, model.LapCaseGeneric} {
			lib.LapRules = append(lib.LapRules, LapRulePreset{
				ID:      newID(),
				Name:    "Default 50d",
				Dia:     d,
				LapCase: lc,
				LapMm:   50 * d,
			})
		}
	}
	return lib
}

// FindStockCatalogByID returns a pointer to the preset with the given ID, or nil.
func (lib *PresetLibrary) FindStockCatalogByID(id string) *StockCatalogPreset {
	for i := range lib.StockCatalogs {
		if lib.StockCatalogs[i].ID == id {
			return &lib.StockCatalogs[i]
		}
	}
	return nil
}

// FindLapRuleByID returns a pointer to the preset with the given ID, or nil.
func (lib *PresetLibrary) FindLapRuleByID(id string) *LapRulePreset {
	for i := range lib.LapRules {
		if lib.LapRules[i].ID == id {
			return &lib.LapRules[i]
		}
	}
	return nil
}
