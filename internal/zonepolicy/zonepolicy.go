// Package zonepolicy documents, for completeness, the external
// collaborator's geometry-to-zone derivation: turning a run's segment
// lengths plus its member type, lap case, and beam depth into the
// totalLengthMm and allowedZones the core splice planner consumes. It is
// deliberately NOT called by internal/solver — the core treats
// totalLengthMm/allowedZones as opaque input, per the out-of-scope
// boundary around free-form geometry parsing.
package zonepolicy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rafiqul27/RebarOpt/internal/model"
)

// fallbackBandWidthMm is the narrow band width used when no member-type
// rule applies to a segment.
const fallbackBandWidthMm = 400

// ParseGeometry splits a comma-separated list of segment lengths (as
// stored in the BarRuns sheet's geometry column) into millimeter ints.
func ParseGeometry(geometry string) ([]int, error) {
	parts := strings.Split(geometry, ",")
	segments := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid segment length %q", model.ErrInvalidRun, p)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: segment length must be positive, got %d", model.ErrInvalidRun, v)
		}
		segments = append(segments, v)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: geometry has no segments", model.ErrInvalidRun)
	}
	return segments, nil
}

// DeriveZones computes allowedZones for a run from its segment lengths,
// member type, lap case, and beam depth, per the documented policy:
//
//   - Column: middle half of each segment, [L/4, 3L/4].
//   - Beam top: middle third of each segment, [L/3, 2L/3].
//   - Beam bottom: two zones per segment, [2h, L/3] and [2L/3, L-2h];
//     a zone is omitted if its start would be at or past its end.
//   - Fallback: a narrow band centered on the segment midpoint.
//
// Zone offsets accumulate across segments so they land on the run's
// single absolute axis, matching totalLengthMm = sum(segments).
func DeriveZones(memberType model.MemberType, lapCase model.LapCase, segments []int, beamDepthMm int) []model.SpliceZone {
	var zones []model.SpliceZone
	offset := 0
	for _, l := range segments {
		zones = append(zones, segmentZones(memberType, lapCase, l, beamDepthMm, offset)...)
		offset += l
	}
	return zones
}

func segmentZones(memberType model.MemberType, lapCase model.LapCase, l, beamDepthMm, offset int) []model.SpliceZone {
	switch {
	case memberType == model.MemberColumn || lapCase == model.LapCaseColumn:
		return []model.SpliceZone{{StartMm: offset + l/4, EndMm: offset + 3*l/4}}
	case memberType == model.MemberBeamTop || lapCase == model.LapCaseBeamTop:
		return []model.SpliceZone{{StartMm: offset + l/3, EndMm: offset + 2*l/3}}
	case memberType == model.MemberBeamBottom || lapCase == model.LapCaseBeamBottom:
		var zones []model.SpliceZone
		h2 := 2 * beamDepthMm
		if h2 < l/3 {
			zones = append(zones, model.SpliceZone{StartMm: offset + h2, EndMm: offset + l/3})
		}
		start2, end2 := 2*l/3, l-h2
		if start2 < end2 {
			zones = append(zones, model.SpliceZone{StartMm: offset + start2, EndMm: offset + end2})
		}
		return zones
	default:
		mid := l / 2
		return []model.SpliceZone{{
			StartMm: offset + mid - fallbackBandWidthMm/2,
			EndMm:   offset + mid + fallbackBandWidthMm/2,
		}}
	}
}

// DeriveRun builds a full BarRun from its identity, member parameters,
// and raw geometry, computing totalLengthMm and allowedZones.
func DeriveRun(id, barMark string, memberType model.MemberType, lapCase model.LapCase, dia, qtyParallel int, geometry string, beamDepthMm int) (model.BarRun, error) {
	segments, err := ParseGeometry(geometry)
	if err != nil {
		return model.BarRun{}, err
	}

	total := 0
	for _, l := range segments {
		total += l
	}

	return model.BarRun{
		ID:            id,
		BarMark:       barMark,
		MemberType:    memberType,
		LapCase:       lapCase,
		Dia:           dia,
		QtyParallel:   qtyParallel,
		TotalLengthMm: total,
		AllowedZones:  DeriveZones(memberType, lapCase, segments, beamDepthMm),
	}, nil
}
