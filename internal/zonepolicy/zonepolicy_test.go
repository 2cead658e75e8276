package zonepolicy

import (
	"errors"
	"testing"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

func TestParseGeometrySplitsAndTrims(t *testing.T) {
	segments, err := ParseGeometry("4000, 3000 ,5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{4000, 3000, 5000}
	for i, v := range want {
		if segments[i] != v {
			t.Fatalf("expected %v, got %v", want, segments)
		}
	}
}

func TestParseGeometryRejectsInvalid(t *testing.T) {
	if _, err := ParseGeometry("4000,abc"); !errors.Is(err, model.ErrInvalidRun) {
		t.Fatalf("expected ErrInvalidRun for non-numeric segment, got %v", err)
	}
	if _, err := ParseGeometry("4000,-100"); !errors.Is(err, model.ErrInvalidRun) {
		t.Fatalf("expected ErrInvalidRun for non-positive segment, got %v", err)
	}
	if _, err := ParseGeometry(""); !errors.Is(err, model.ErrInvalidRun) {
		t.Fatalf("expected ErrInvalidRun for empty geometry, got %v", err)
	}
}

func TestDeriveZonesColumnMiddleHalf(t *testing.T) {
	zones := DeriveZones(model.MemberColumn, model.LapCaseColumn, []int{4000}, 0)
	if len(zones) != 1 || zones[0].StartMm != 1000 || zones[0].EndMm != 3000 {
		t.Fatalf("expected middle-half zone [1000,3000), got %+v", zones)
	}
}

func TestDeriveZonesBeamTopMiddleThird(t *testing.T) {
	zones := DeriveZones(model.MemberBeamTop, model.LapCaseBeamTop, []int{6000}, 0)
	if len(zones) != 1 || zones[0].StartMm != 2000 || zones[0].EndMm != 4000 {
		t.Fatalf("expected middle-third zone [2000,4000), got %+v", zones)
	}
}

func TestDeriveZonesBeamBottomTwoZones(t *testing.T) {
	zones := DeriveZones(model.MemberBeamBottom, model.LapCaseBeamBottom, []int{9000}, 500)
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %+v", zones)
	}
	if zones[0].StartMm != 1000 || zones[0].EndMm != 3000 {
		t.Errorf("expected first zone [1000,3000), got %+v", zones[0])
	}
	if zones[1].StartMm != 6000 || zones[1].EndMm != 8000 {
		t.Errorf("expected second zone [6000,8000), got %+v", zones[1])
	}
}

func TestDeriveZonesBeamBottomOmitsDegenerateZone(t *testing.T) {
	zones := DeriveZones(model.MemberBeamBottom, model.LapCaseBeamBottom, []int{1000}, 500)
	for _, z := range zones {
		if z.StartMm >= z.EndMm {
			t.Errorf("expected degenerate zones to be omitted, got %+v", z)
		}
	}
}

func TestDeriveZonesFallbackBand(t *testing.T) {
	zones := DeriveZones(model.MemberOther, model.LapCaseGeneric, []int{4000}, 0)
	if len(zones) != 1 || zones[0].Width() != fallbackBandWidthMm {
		t.Fatalf("expected a %dmm fallback band, got %+v", fallbackBandWidthMm, zones)
	}
}

func TestDeriveZonesAccumulatesAcrossSegments(t *testing.T) {
	zones := DeriveZones(model.MemberColumn, model.LapCaseColumn, []int{4000, 4000}, 0)
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones (one per segment), got %d", len(zones))
	}
	if zones[1].StartMm != 5000 || zones[1].EndMm != 7000 {
		t.Errorf("expected second segment's zone offset by first segment's length, got %+v", zones[1])
	}
}

func TestDeriveRunComputesTotalLength(t *testing.T) {
	run, err := DeriveRun("r1", "B1", model.MemberColumn, model.LapCaseColumn, 20, 4, "4000,3000", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.TotalLengthMm != 7000 {
		t.Errorf("expected total length 7000, got %d", run.TotalLengthMm)
	}
	if len(run.AllowedZones) != 2 {
		t.Errorf("expected 2 zones, got %d", len(run.AllowedZones))
	}
}
