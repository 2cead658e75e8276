// Package splice implements the length-sweeping placement algorithm that
// turns a single continuous bar run into a sequence of overlapping pieces,
// each short enough to be cut from available stock and long enough to
// carry a code-compliant lap splice.
package splice

import (
	"fmt"

	"github.com/rafiqul27/RebarOpt/internal/model"
	"github.com/rafiqul27/RebarOpt/internal/rules"
)

// minPieceLenMm is the safety-minimum piece length applied to every
// non-final piece after rounding. The final piece takes whatever length
// remains and is not raised to this minimum.
const minPieceLenMm = 1000

// longZoneWidthMm is the width above which a zone is treated as "long"
// enough to push the splice toward its forward edge rather than centering.
const longZoneWidthMm = 1000

// forwardBufferMm is the safety buffer subtracted from a long zone's end
// when pushing the splice forward.
const forwardBufferMm = 100

// Plan runs the length-sweeping algorithm over a single bar run, returning
// its splice plan item plus any non-fatal structural warnings.
//
// Fatal errors (wrapped in model.SolveError by the caller):
//   - model.ErrLapGeMaxStock if the lap length meets or exceeds the
//     largest available stock length for the run's diameter.
//   - model.ErrDegenerateCut if a proposed piece would not progress past
//     the lap length (a liveness guard, never expected to fire on sane
//     rule sets).
func Plan(run model.BarRun, ruleSet *rules.RuleSet, catalog *rules.StockCatalog, settings model.ProjectSettings) (model.SplicePlanItem, []string, error) {
	stockMax := catalog.MaxLength(run.Dia)
	lap := ruleSet.Lap(run.Dia, run.LapCase)
	if lap >= stockMax {
		return model.SplicePlanItem{}, nil, model.ErrLapGeMaxStock
	}

	step := settings.RoundingStepMm
	if step < 1 {
		step = 1
	}

	var pieces []model.SplicePiece
	var warnings []string

	cursor := 0
	remaining := run.TotalLengthMm

	for {
		if remaining <= stockMax {
			pieces = append(pieces, model.SplicePiece{
				LengthMm: remaining,
				StartMm:  cursor,
				EndMm:    cursor + remaining,
			})
			break
		}

		centerTarget := cursor + stockMax - lap/2
		zone, violated := selectZone(run.AllowedZones, centerTarget, cursor, stockMax)

		var pieceLen int
		if violated {
			pieceLen = stockMax
		} else {
			center := zoneCenter(zone, lap)
			if center+lap/2-cursor > stockMax {
				center = cursor + stockMax - lap/2
			}
			pieceLen = (center + lap/2) - cursor
		}

		pieceLen = roundDownToStep(pieceLen, step)
		if pieceLen < minPieceLenMm {
			pieceLen = minPieceLenMm
		}

		if violated {
			splicePos := cursor + pieceLen - lap/2
			warnings = append(warnings, fmt.Sprintf(
				"STRUCTURAL WARNING [%s]: Forced splice at %d mm. No allowed zone reachable with stock %d mm.",
				run.BarMark, splicePos, stockMax))
		}

		pieces = append(pieces, model.SplicePiece{
			LengthMm: pieceLen,
			StartMm:  cursor,
			EndMm:    cursor + pieceLen,
		})

		if pieceLen <= lap {
			return model.SplicePlanItem{}, warnings, model.ErrDegenerateCut
		}

		advance := pieceLen - lap
		cursor += advance
		remaining -= advance
	}

	return model.SplicePlanItem{
		RunID:   run.ID,
		BarMark: run.BarMark,
		GroupID: 0,
		Pieces:  pieces,
	}, warnings, nil
}

// selectZone implements steps 3a-3c: prefer a zone containing the ideal
// splice center, else the reachable zone pushed furthest forward, else
// report a violation (no zone reachable before the stock runs out).
func selectZone(zones []model.SpliceZone, centerTarget, cursor, stockMax int) (model.SpliceZone, bool) {
	for _, z := range zones {
		if z.Contains(centerTarget) {
			return z, false
		}
	}

	var best model.SpliceZone
	found := false
	limit := cursor + stockMax
	for _, z := range zones {
		if z.EndMm >= limit {
			continue
		}
		if !found || z.EndMm > best.EndMm || (z.EndMm == best.EndMm && z.StartMm > best.StartMm) {
			best = z
			found = true
		}
	}
	if found {
		return best, false
	}
	return model.SpliceZone{}, true
}

// zoneCenter picks the splice center within an already-chosen zone: the
// midpoint by default, or pushed toward the forward edge (minus a safety
// buffer) when the zone is wide enough to afford it.
func zoneCenter(zone model.SpliceZone, lap int) int {
	if zone.Width() > longZoneWidthMm {
		return zone.EndMm - lap/2 - forwardBufferMm
	}
	return (zone.StartMm + zone.EndMm) / 2
}

// roundDownToStep floors x to the nearest multiple of step.
func roundDownToStep(x, step int) int {
	if step <= 1 {
		return x
	}
	return (x / step) * step
}
