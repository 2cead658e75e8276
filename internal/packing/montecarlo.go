package packing

import (
	"math/rand"
	"sort"

	"github.com/rafiqul27/RebarOpt/internal/request"
)

// Result is one packing attempt's outcome, retained so the caller can
// recover which inventory units the winning pass consumed.
type Result struct {
	Bins     []Bin
	Consumed map[string]bool
	Quality  int
}

// MonteCarlo runs the seeded improvement loop described in the spec: a
// first deterministic pass over requests sorted descending, then
// further passes over uniformly shuffled orderings, keeping whichever
// pass minimizes Quality. rng must be supplied by the caller; no
// ambient randomness is read here.
func MonteCarlo(reqs []request.CutReq, supply []SupplyOption, kerf int, policy TieBreakPolicy, iterations int, rng *rand.Rand) (Result, error) {
	if iterations < 1 {
		iterations = 1
	}

	seeded := append([]request.CutReq(nil), reqs...)
	sort.SliceStable(seeded, func(i, j int) bool { return seeded[i].LengthMm > seeded[j].LengthMm })

	bins, consumed, err := PackOnePass(seeded, supply, kerf, policy)
	if err != nil {
		return Result{}, err
	}
	best := Result{Bins: bins, Consumed: consumed, Quality: Quality(bins)}

	attempt := append([]request.CutReq(nil), reqs...)
	for i := 1; i < iterations; i++ {
		rng.Shuffle(len(attempt), func(a, b int) { attempt[a], attempt[b] = attempt[b], attempt[a] })

		bins, consumed, err := PackOnePass(attempt, supply, kerf, policy)
		if err != nil {
			return Result{}, err
		}
		quality := Quality(bins)
		if quality < best.Quality {
			best = Result{Bins: bins, Consumed: consumed, Quality: quality}
		}
	}

	return best, nil
}
