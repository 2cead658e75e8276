package packing

import (
	"errors"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/request"
)

func TestPackOnePassReusesOpenBinTightestFit(t *testing.T) {
	reqs := []request.CutReq{{Dia: 20, LengthMm: 7000}, {Dia: 20, LengthMm: 4000}}
	supply := []SupplyOption{{LengthMm: 12000}}

	bins, consumed, err := PackOnePass(reqs, supply, 5, PreferInventoryOnTie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 1 {
		t.Fatalf("expected both cuts to share one bin, got %d bins", len(bins))
	}
	if len(consumed) != 0 {
		t.Errorf("expected no inventory consumed, got %v", consumed)
	}
	// 12000 - (7000+5) - (4000+5) = 990
	if bins[0].Remaining != 990 {
		t.Errorf("expected remaining 990, got %d", bins[0].Remaining)
	}
	if len(bins[0].Cuts) != 2 {
		t.Errorf("expected 2 cuts in the shared bin, got %v", bins[0].Cuts)
	}
}

func TestPackOnePassPrefersInventoryOnTie(t *testing.T) {
	reqs := []request.CutReq{{Dia: 20, LengthMm: 11995}}
	supply := []SupplyOption{
		{LengthMm: 12000, IsInventory: false},
		{LengthMm: 12000, IsInventory: true, ID: "inv-1"},
	}

	bins, consumed, err := PackOnePass(reqs, supply, 0, PreferInventoryOnTie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bins[0].IsInventory {
		t.Errorf("expected inventory bin to be preferred on exact tie")
	}
	if !consumed["inv-1"] {
		t.Errorf("expected inv-1 marked consumed")
	}
}

func TestPackOnePassPrefersNewStockOnTieInMixedMode(t *testing.T) {
	reqs := []request.CutReq{{Dia: 20, LengthMm: 11995}}
	supply := []SupplyOption{
		{LengthMm: 12000, IsInventory: false},
		{LengthMm: 12000, IsInventory: true, ID: "inv-1"},
	}

	bins, consumed, err := PackOnePass(reqs, supply, 0, PreferNewStockOnTie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bins[0].IsInventory {
		t.Errorf("expected new stock to be preferred on exact tie under MIXED policy")
	}
	if len(consumed) != 0 {
		t.Errorf("expected inventory left untouched, got %v", consumed)
	}
}

func TestPackOnePassInventoryNotReusedOnceConsumed(t *testing.T) {
	reqs := []request.CutReq{{Dia: 16, LengthMm: 6000}, {Dia: 16, LengthMm: 6000}}
	supply := []SupplyOption{{LengthMm: 6100, IsInventory: true, ID: "inv-a"}}

	_, _, err := PackOnePass(reqs, supply, 5, PreferInventoryOnTie)
	if !errors.Is(err, model.ErrUnservedRequest) {
		t.Fatalf("expected ErrUnservedRequest once inventory is exhausted with no new stock, got %v", err)
	}
}

func TestPackOnePassFallsBackToLargestNewStock(t *testing.T) {
	reqs := []request.CutReq{{Dia: 20, LengthMm: 15000}}
	supply := []SupplyOption{{LengthMm: 12000, IsInventory: false}, {LengthMm: 9000, IsInventory: false}}

	bins, _, err := PackOnePass(reqs, supply, 0, PreferInventoryOnTie)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bins[0].StockLength != 12000 {
		t.Errorf("expected fallback to the largest new-stock option (12000), got %d", bins[0].StockLength)
	}
}

func TestPackOnePassNoSupplyIsUnserved(t *testing.T) {
	reqs := []request.CutReq{{Dia: 20, LengthMm: 5000}}
	_, _, err := PackOnePass(reqs, nil, 0, PreferInventoryOnTie)
	if !errors.Is(err, model.ErrUnservedRequest) {
		t.Fatalf("expected ErrUnservedRequest, got %v", err)
	}
}
