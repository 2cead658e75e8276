package packing

import (
	"math/rand"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/request"
)

func buildRequests() []request.CutReq {
	return []request.CutReq{
		{Dia: 20, LengthMm: 4000},
		{Dia: 20, LengthMm: 3000},
		{Dia: 20, LengthMm: 5000},
		{Dia: 20, LengthMm: 6000},
		{Dia: 20, LengthMm: 2000},
	}
}

func TestMonteCarloDeterministicUnderSameSeed(t *testing.T) {
	supply := []SupplyOption{{LengthMm: 12000}}

	r1, err := MonteCarlo(buildRequests(), supply, 5, PreferInventoryOnTie, 50, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := MonteCarlo(buildRequests(), supply, 5, PreferInventoryOnTie, 50, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.Quality != r2.Quality {
		t.Fatalf("expected identical quality under identical seed, got %d vs %d", r1.Quality, r2.Quality)
	}
	if len(r1.Bins) != len(r2.Bins) {
		t.Fatalf("expected identical bin counts, got %d vs %d", len(r1.Bins), len(r2.Bins))
	}
	for i := range r1.Bins {
		if r1.Bins[i].Remaining != r2.Bins[i].Remaining {
			t.Errorf("bin %d remaining differs: %d vs %d", i, r1.Bins[i].Remaining, r2.Bins[i].Remaining)
		}
	}
}

func TestMonteCarloNeverWorseThanSeedPass(t *testing.T) {
	supply := []SupplyOption{{LengthMm: 12000}}
	reqs := buildRequests()

	seedOnly, err := MonteCarlo(reqs, supply, 5, PreferInventoryOnTie, 1, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	improved, err := MonteCarlo(reqs, supply, 5, PreferInventoryOnTie, 50, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if improved.Quality > seedOnly.Quality {
		t.Errorf("expected more iterations to never regress quality: seed=%d, improved=%d", seedOnly.Quality, improved.Quality)
	}
}

func TestMonteCarloIterationFloor(t *testing.T) {
	supply := []SupplyOption{{LengthMm: 12000}}
	result, err := MonteCarlo(buildRequests(), supply, 5, PreferInventoryOnTie, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Bins) == 0 {
		t.Fatal("expected at least one bin even with a zero iteration count")
	}
}
