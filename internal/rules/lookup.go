// Package rules implements the pure lookups feeding the splice planner
// and cutting optimizer: lap-length rules by (dia, lapCase), and stock
// catalog lengths by dia. Both fall back to a documented default when
// the diameter is missing.
package rules

import (
	"sort"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

// defaultLapMultiplier is the fallback lap length multiplier (× dia) used
// when no explicit rule exists for a (dia, lapCase) pair.
const defaultLapMultiplier = 50

// defaultStockLengthMm is the fallback stock length used when a diameter
// has no catalog entry.
const defaultStockLengthMm = 12000

type lapKey struct {
	dia     int
	lapCase model.LapCase
}

// RuleSet is a pure map over (dia, lapCase) -> lap length, with fallback
// 50 × dia when absent.
type RuleSet struct {
	rules map[lapKey]int
}

// NewRuleSet builds a RuleSet from a flat list of LapRule entries.
// Later entries for the same (dia, lapCase) pair overwrite earlier ones.
func NewRuleSet(rules []model.LapRule) *RuleSet {
	rs := &RuleSet{rules: make(map[lapKey]int, len(rules))}
	for _, r := range rules {
		rs.rules[lapKey{r.Dia, r.LapCase}] = r.LengthMm
	}
	return rs
}

// Lap returns the lap length for (dia, lapCase), falling back to
// 50 × dia when no explicit rule matches.
func (rs *RuleSet) Lap(dia int, lapCase model.LapCase) int {
	if rs != nil {
		if v, ok := rs.rules[lapKey{dia, lapCase}]; ok {
			return v
		}
	}
	return defaultLapMultiplier * dia
}

// StockCatalog is a pure map over dia -> ordered (descending) stock
// lengths, with fallback [12000] when absent.
type StockCatalog struct {
	byDia map[int][]int
}

// NewStockCatalog builds a StockCatalog from the catalog items, sorting
// each diameter's lengths descending. Fails loudly if the catalog has no
// diameters at all: downstream code cannot plan anything from it.
func NewStockCatalog(items []model.StockCatalogItem) (*StockCatalog, error) {
	if len(items) == 0 {
		return nil, model.ErrEmptyCatalog
	}
	sc := &StockCatalog{byDia: make(map[int][]int, len(items))}
	for _, item := range items {
		lengths := append([]int(nil), item.StockLengths...)
		sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
		sc.byDia[item.Dia] = lengths
	}
	return sc, nil
}

// Lengths returns the descending stock lengths for dia, falling back to
// [12000] when the diameter has no catalog entry.
func (sc *StockCatalog) Lengths(dia int) []int {
	if sc != nil {
		if lengths, ok := sc.byDia[dia]; ok && len(lengths) > 0 {
			return lengths
		}
	}
	return []int{defaultStockLengthMm}
}

// MaxLength returns the largest stock length available for dia.
func (sc *StockCatalog) MaxLength(dia int) int {
	lengths := sc.Lengths(dia)
	return lengths[0] // Lengths() is always descending
}
