// Package aggregate groups packed bins into display-ready cutting plan
// patterns, classifies residuals as offcut or waste, emits a procurement
// list, and rolls everything up into the solve's summary metrics.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/packing"
)

// weightDivisor is the standard rebar unit-weight constant: kg per meter
// = dia^2 / 162, dia in millimeters.
const weightDivisor = 162.0

// patternKey groups bins that present identically on a cutting list: same
// supply source, same stock length, same multiset of cut lengths.
type patternKey struct {
	isInventory bool
	stockLength int
	pattern     string
}

func keyFor(b packing.Bin) patternKey {
	cuts := append([]int(nil), b.Cuts...)
	sort.Ints(cuts)
	return patternKey{isInventory: b.IsInventory, stockLength: b.StockLength, pattern: fmt.Sprint(cuts)}
}

// Aggregate groups a diameter's packed bins into CuttingPlanItem patterns
// and procurement entries, classifying each pattern's residual as offcut
// or waste per minLeftoverMm.
func Aggregate(dia int, bins []packing.Bin, minLeftoverMm int) ([]model.CuttingPlanItem, []model.ProcurementItem) {
	type agg struct {
		item  model.CuttingPlanItem
		count int
	}
	order := []patternKey{}
	byKey := map[patternKey]*agg{}

	for _, b := range bins {
		k := keyFor(b)
		a, ok := byKey[k]
		if !ok {
			cuts := append([]int(nil), b.Cuts...)
			sort.Ints(cuts)
			offcut, waste := classify(b.Remaining, minLeftoverMm)
			a = &agg{item: model.CuttingPlanItem{
				Dia:         dia,
				SourceType:  sourceType(b.IsInventory),
				StockLength: b.StockLength,
				Pattern:     cuts,
				Offcut:      offcut,
				Waste:       waste,
			}}
			byKey[k] = a
			order = append(order, k)
		}
		a.count++
	}

	items := make([]model.CuttingPlanItem, 0, len(order))
	procByKey := map[[2]int]*model.ProcurementItem{}
	var procOrder [][2]int
	for _, k := range order {
		a := byKey[k]
		a.item.Count = a.count
		items = append(items, a.item)

		if a.item.SourceType == model.SourceNewStock {
			pk := [2]int{dia, a.item.StockLength}
			p, ok := procByKey[pk]
			if !ok {
				p = &model.ProcurementItem{Dia: dia, StockLength: a.item.StockLength}
				procByKey[pk] = p
				procOrder = append(procOrder, pk)
			}
			p.Quantity += a.count
			p.TotalLength += a.count * a.item.StockLength
		}
	}

	procurement := make([]model.ProcurementItem, 0, len(procOrder))
	for _, pk := range procOrder {
		procurement = append(procurement, *procByKey[pk])
	}

	return items, procurement
}

// classify implements the offcut/waste dichotomy: remainders at or above
// minLeftoverMm are usable offcut, everything else is waste.
func classify(remaining, minLeftoverMm int) (offcut, waste int) {
	if remaining >= minLeftoverMm {
		return remaining, 0
	}
	return 0, remaining
}

func sourceType(isInventory bool) model.SourceType {
	if isInventory {
		return model.SourceExisting
	}
	return model.SourceNewStock
}

// Summarize computes the global metrics across every diameter's bins.
func Summarize(allBins []packing.Bin, diaByBin []int) model.Summary {
	var totalInput, totalParts int
	var totalWeight float64

	for i, b := range allBins {
		totalInput += b.StockLength
		for _, c := range b.Cuts {
			totalParts += c
		}
		dia := diaByBin[i]
		totalWeight += (float64(dia*dia) / weightDivisor) * (float64(b.StockLength) / 1000.0)
	}

	totalWaste := totalInput - totalParts
	var wastePercent float64
	if totalInput > 0 {
		wastePercent = round2(float64(totalWaste) / float64(totalInput) * 100)
	}

	return model.Summary{
		TotalInputLengthMm: totalInput,
		TotalPartsLengthMm: totalParts,
		TotalWasteMm:       totalWaste,
		WastePercent:       wastePercent,
		TotalWeightKg:      round2(totalWeight),
		TotalStockBars:     len(allBins),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
