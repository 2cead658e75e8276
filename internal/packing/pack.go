// Package packing implements the one-pass Best-Fit Decreasing bin packer
// and the Monte Carlo driver that repeatedly reorders requests looking
// for a lower-waste bin set, for a single diameter's requests at a time.
package packing

import (
	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/request"
)

// SupplyOption is one candidate stock bar a bin can be opened from.
// New-stock options are infinite-supply templates (empty ID); inventory
// options carry a unique ID and are consumed at most once across a pass.
type SupplyOption struct {
	LengthMm    int
	IsInventory bool
	ID          string
}

// Bin is one opened stock bar with its accumulated cuts.
type Bin struct {
	StockLength int
	Remaining   int
	Cuts        []int
	IsInventory bool
	ID          string
}

// TieBreakPolicy resolves equal-slack ties when opening a new bin.
type TieBreakPolicy int

const (
	// PreferInventoryOnTie favors consuming yard inventory over buying
	// new stock when both fit equally well. This is the default policy,
	// used by SEQUENTIAL (where it is moot, since each of its phases only
	// ever sees one supply type).
	PreferInventoryOnTie TieBreakPolicy = iota
	// PreferNewStockOnTie favors new stock on an exact tie, reserving
	// unique inventory units for fits where they are not interchangeable
	// with stock. Used by MIXED per the spec's documented tie-break.
	PreferNewStockOnTie
)

// Quality is the Monte Carlo driver's quality metric: the sum of
// remaining headroom across all bins. Lower is better.
func Quality(bins []Bin) int {
	total := 0
	for _, b := range bins {
		total += b.Remaining
	}
	return total
}

// PackOnePass runs a single Best-Fit Decreasing pass over reqs, in the
// order given (the caller controls ordering for the Monte Carlo driver).
// It returns the resulting bins and the set of inventory IDs consumed.
func PackOnePass(reqs []request.CutReq, supply []SupplyOption, kerf int, policy TieBreakPolicy) ([]Bin, map[string]bool, error) {
	consumed := make(map[string]bool)
	var bins []Bin

	for _, r := range reqs {
		var placed bool
		bins, placed = TryPlace(bins, supply, consumed, r, kerf, policy)
		if placed {
			continue
		}

		optIdx := largestNewStockOption(supply)
		if optIdx == -1 {
			return nil, nil, model.ErrUnservedRequest
		}
		opt := supply[optIdx]
		bins = append(bins, Bin{
			StockLength: opt.LengthMm,
			Remaining:   opt.LengthMm - (r.LengthMm + kerf),
			Cuts:        []int{r.LengthMm},
		})
	}

	return bins, consumed, nil
}

// TryPlace attempts to place a single request into an already-open bin or
// a fresh one opened from supply, without the force-oversize fallback.
// It reports whether the request was placed, letting callers (such as the
// SEQUENTIAL inventory phase) defer unplaceable requests instead of
// erroring. consumed is mutated in place when a fresh inventory bin opens.
func TryPlace(bins []Bin, supply []SupplyOption, consumed map[string]bool, r request.CutReq, kerf int, policy TieBreakPolicy) ([]Bin, bool) {
	needed := r.LengthMm + kerf

	if idx := bestOpenBin(bins, needed); idx != -1 {
		bins[idx].Remaining -= needed
		bins[idx].Cuts = append(bins[idx].Cuts, r.LengthMm)
		return bins, true
	}

	optIdx := bestSupplyOption(supply, consumed, needed, policy)
	if optIdx == -1 {
		return bins, false
	}

	opt := supply[optIdx]
	if opt.IsInventory {
		consumed[opt.ID] = true
	}
	bins = append(bins, Bin{
		StockLength: opt.LengthMm,
		Remaining:   opt.LengthMm - needed,
		Cuts:        []int{r.LengthMm},
		IsInventory: opt.IsInventory,
		ID:          opt.ID,
	})
	return bins, true
}

// bestOpenBin returns the index of the currently open bin with the
// tightest sufficient remaining capacity, or -1 if none fits.
func bestOpenBin(bins []Bin, needed int) int {
	best := -1
	bestSlack := 0
	for i := range bins {
		if bins[i].Remaining < needed {
			continue
		}
		slack := bins[i].Remaining - needed
		if best == -1 || slack < bestSlack {
			best = i
			bestSlack = slack
		}
	}
	return best
}

// bestSupplyOption returns the index of the unconsumed supply option
// that fits needed with the least slack, applying policy on exact ties.
func bestSupplyOption(supply []SupplyOption, consumed map[string]bool, needed int, policy TieBreakPolicy) int {
	best := -1
	bestSlack := 0
	for i, opt := range supply {
		if opt.IsInventory && consumed[opt.ID] {
			continue
		}
		if opt.LengthMm < needed {
			continue
		}
		slack := opt.LengthMm - needed
		switch {
		case best == -1:
			best, bestSlack = i, slack
		case slack < bestSlack:
			best, bestSlack = i, slack
		case slack == bestSlack:
			cur := supply[best]
			switch policy {
			case PreferInventoryOnTie:
				if opt.IsInventory && !cur.IsInventory {
					best = i
				}
			case PreferNewStockOnTie:
				if !opt.IsInventory && cur.IsInventory {
					best = i
				}
			}
		}
	}
	return best
}

// largestNewStockOption returns the index of the longest new-stock
// supply option, regardless of whether it actually satisfies the
// request. This is the spec's documented force-oversize fallback, used
// only when no option (of either supply type) meets the request.
func largestNewStockOption(supply []SupplyOption) int {
	best := -1
	for i, opt := range supply {
		if opt.IsInventory {
			continue
		}
		if best == -1 || opt.LengthMm > supply[best].LengthMm {
			best = i
		}
	}
	return best
}
