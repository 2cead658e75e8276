package solver

import "github.com/rafiqul27/RebarOpt/internal/model"

// Scenario is a named settings variant to compare against a project's
// runs, pieces, stock, laps, and inventory.
type Scenario struct {
	Name     string
	Settings model.ProjectSettings
}

// ComparisonResult holds one scenario's solved result plus the headline
// numbers used to rank it against the others.
type ComparisonResult struct {
	Scenario     Scenario
	Result       model.OptimizationResult
	StockBars    int
	WastePercent float64
	WarningCount int
}

// CompareScenarios solves the same project under each scenario's settings
// and returns the results in scenario order, for side-by-side comparison
// of optimization level or inventory strategy choices.
func CompareScenarios(
	scenarios []Scenario,
	runs []model.BarRun,
	directPieces []model.DirectPiece,
	stock []model.StockCatalogItem,
	laps []model.LapRule,
	inv []model.OffcutInventoryItem,
	seed int64,
) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Solve(runs, directPieces, scenario.Settings, stock, laps, inv, seed)
		if err != nil {
			return nil, model.NewSolveError("scenario "+scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			StockBars:    result.Summary.TotalStockBars,
			WastePercent: result.Summary.WastePercent,
			WarningCount: len(result.Warnings),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if variants around a base
// settings: an alternative optimization level (FAST when the base is
// DEEP, otherwise DEEP), the other inventory strategy, and (when the
// kerf is above 1 mm) a halved kerf, mirroring the teacher's
// BuildDefaultScenarios what-if set.
func BuildDefaultScenarios(base model.ProjectSettings) []Scenario {
	scenarios := []Scenario{
		{Name: "Current Settings", Settings: base},
	}

	altLevel := base
	if base.OptimizationLevel == model.LevelDeep {
		altLevel.OptimizationLevel = model.LevelFast
		scenarios = append(scenarios, Scenario{Name: "Fast Optimization", Settings: altLevel})
	} else {
		altLevel.OptimizationLevel = model.LevelDeep
		scenarios = append(scenarios, Scenario{Name: "Deep Optimization", Settings: altLevel})
	}

	altStrategy := base
	if base.InventoryStrategy == model.StrategySequential {
		altStrategy.InventoryStrategy = model.StrategyMixed
		scenarios = append(scenarios, Scenario{Name: "Mixed Inventory", Settings: altStrategy})
	} else {
		altStrategy.InventoryStrategy = model.StrategySequential
		scenarios = append(scenarios, Scenario{Name: "Sequential Inventory", Settings: altStrategy})
	}

	if base.KerfMm > 1 {
		tightKerf := base
		tightKerf.KerfMm = base.KerfMm / 2
		scenarios = append(scenarios, Scenario{Name: "Half Kerf", Settings: tightKerf})
	}

	return scenarios
}
