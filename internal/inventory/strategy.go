// Package inventory shapes the supply side of a diameter's pack: either
// SEQUENTIAL (consume yard offcuts first, defer the rest to new stock)
// or MIXED (one combined pool of new stock and unique inventory units,
// solved in a single Monte Carlo pass).
package inventory

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/packing"
	"github.com/rafiqul27/RebarOpt/internal/request"
)

// seedOffsetMultiplier derives a per-diameter Monte Carlo seed from the
// project's top-level seed, so diameters packed under SEQUENTIAL's
// deferred phase do not all replay the exact same shuffle sequence.
const seedOffsetMultiplier = 31

// diameterSeed derives a PRNG seed for dia from the project-level seed.
func diameterSeed(seed int64, dia int) int64 {
	return seed*seedOffsetMultiplier + int64(dia)
}

// expandInventory turns the finite-quantity inventory items for dia into
// one SupplyOption per physical unit, each with a unique ID.
func expandInventory(dia int, items []model.OffcutInventoryItem) []packing.SupplyOption {
	var out []packing.SupplyOption
	for _, item := range items {
		if item.Dia != dia {
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			out = append(out, packing.SupplyOption{
				LengthMm:    item.LengthMm,
				IsInventory: true,
				ID:          item.ID + "#" + strconv.Itoa(i),
			})
		}
	}
	return out
}

func newStockSupply(stockLengths []int) []packing.SupplyOption {
	out := make([]packing.SupplyOption, len(stockLengths))
	for i, l := range stockLengths {
		out[i] = packing.SupplyOption{LengthMm: l}
	}
	return out
}

// Sequential implements §4.6 SEQUENTIAL: inventory units (ascending by
// length) are consumed first via best-fit, remaining requests are deferred
// to a Monte Carlo pass over new stock only.
func Sequential(dia int, reqs []request.CutReq, invItems []model.OffcutInventoryItem, stockLengths []int, kerf int, iterations int, seed int64) (packing.Result, error) {
	invSupply := expandInventory(dia, invItems)
	sort.Slice(invSupply, func(i, j int) bool { return invSupply[i].LengthMm < invSupply[j].LengthMm })

	descending := append([]request.CutReq(nil), reqs...)
	sort.SliceStable(descending, func(i, j int) bool { return descending[i].LengthMm > descending[j].LengthMm })

	var invBins []packing.Bin
	consumed := make(map[string]bool)
	var deferred []request.CutReq
	for _, r := range descending {
		var placed bool
		invBins, placed = packing.TryPlace(invBins, invSupply, consumed, r, kerf, packing.PreferInventoryOnTie)
		if !placed {
			deferred = append(deferred, r)
		}
	}

	rng := rand.New(rand.NewSource(diameterSeed(seed, dia)))
	result, err := packing.MonteCarlo(deferred, newStockSupply(stockLengths), kerf, packing.PreferInventoryOnTie, iterations, rng)
	if err != nil {
		return packing.Result{}, err
	}

	combined := append(append([]packing.Bin(nil), invBins...), result.Bins...)
	return packing.Result{
		Bins:     combined,
		Consumed: consumed,
		Quality:  packing.Quality(combined),
	}, nil
}

// Mixed implements §4.6 MIXED: new stock (infinite templates) and
// inventory (unique finite units) form one combined pool, solved by a
// single Monte Carlo pass with new stock preferred on exact ties.
func Mixed(dia int, reqs []request.CutReq, invItems []model.OffcutInventoryItem, stockLengths []int, kerf int, iterations int, seed int64) (packing.Result, error) {
	supply := append(newStockSupply(stockLengths), expandInventory(dia, invItems)...)
	rng := rand.New(rand.NewSource(diameterSeed(seed, dia)))
	return packing.MonteCarlo(reqs, supply, kerf, packing.PreferNewStockOnTie, iterations, rng)
}
