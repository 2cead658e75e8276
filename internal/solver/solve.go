// Package solver wires the rule lookup, splice planner, request
// flattener, inventory strategy, packing engine, and aggregator into the
// single batch computation described by the pipeline: immutable inputs
// in, one OptimizationResult out, no persistent state in between.
package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/rafiqul27/RebarOpt/internal/aggregate"
	"github.com/rafiqul27/RebarOpt/internal/inventory"
	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/packing"
	"github.com/rafiqul27/RebarOpt/internal/request"
	"github.com/rafiqul27/RebarOpt/internal/rules"
	"github.com/rafiqul27/RebarOpt/internal/splice"
)

// Solve runs the full pipeline for one project: splice planning over
// every run, request flattening, supply shaping by the configured
// inventory strategy, best-fit packing under a Monte Carlo search, and
// final aggregation into display patterns and summary metrics.
//
// seed makes the Monte Carlo search reproducible; the same seed and
// inputs always produce byte-identical output.
func Solve(
	runs []model.BarRun,
	directPieces []model.DirectPiece,
	settings model.ProjectSettings,
	stock []model.StockCatalogItem,
	laps []model.LapRule,
	inv []model.OffcutInventoryItem,
	seed int64,
) (model.OptimizationResult, error) {
	catalog, err := rules.NewStockCatalog(stock)
	if err != nil {
		return model.OptimizationResult{}, model.NewSolveError("stock catalog", err)
	}
	ruleSet := rules.NewRuleSet(laps)

	var splicePlans []model.SplicePlanItem
	var warnings []string
	for _, run := range runs {
		plan, runWarnings, err := splice.Plan(run, ruleSet, catalog, settings)
		if err != nil {
			return model.OptimizationResult{}, model.NewSolveError("bar mark "+run.BarMark, err)
		}
		splicePlans = append(splicePlans, plan)
		warnings = append(warnings, runWarnings...)
	}

	reqsByDia := request.Flatten(runs, splicePlans, directPieces)

	var allBins []packing.Bin
	var diaByBin []int
	iterations := settings.OptimizationLevel.Iterations()

	dias := make([]int, 0, len(reqsByDia))
	for dia := range reqsByDia {
		dias = append(dias, dia)
	}
	sort.Ints(dias)

	for _, dia := range dias {
		reqs := reqsByDia[dia]
		stockLengths := catalog.Lengths(dia)

		var result packing.Result
		var err error
		switch settings.InventoryStrategy {
		case model.StrategyMixed:
			result, err = inventory.Mixed(dia, reqs, inv, stockLengths, settings.KerfMm, iterations, seed)
		default:
			result, err = inventory.Sequential(dia, reqs, inv, stockLengths, settings.KerfMm, iterations, seed)
		}
		if err != nil {
			return model.OptimizationResult{}, model.NewSolveError(fmt.Sprintf("dia %d", dia), err)
		}

		for _, b := range result.Bins {
			allBins = append(allBins, b)
			diaByBin = append(diaByBin, dia)
		}
	}

	var cuttingPlan []model.CuttingPlanItem
	var procurement []model.ProcurementItem
	for _, dia := range dias {
		var diaBins []packing.Bin
		for i, b := range allBins {
			if diaByBin[i] == dia {
				diaBins = append(diaBins, b)
			}
		}
		minLeftover := settings.MinLeftoverMm
		if !settings.AllowOffcuts {
			minLeftover = math.MaxInt32
		}
		items, proc := aggregate.Aggregate(dia, diaBins, minLeftover)
		cuttingPlan = append(cuttingPlan, items...)
		procurement = append(procurement, proc...)
	}

	summary := aggregate.Summarize(allBins, diaByBin)

	return model.OptimizationResult{
		SplicePlan:  splicePlans,
		CuttingPlan: cuttingPlan,
		Procurement: procurement,
		Summary:     summary,
		Warnings:    warnings,
	}, nil
}
