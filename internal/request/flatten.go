// Package request expands the splice plan and the fixed-length pieces of
// a project into a flat list of individual cut requests, partitioned by
// diameter so each diameter can be packed independently.
package request

import "github.com/rafiqul27/RebarOpt/internal/model"

// CutReq is a single length to be cut from some stock bar, independent of
// which run or piece it originated from.
type CutReq struct {
	Dia      int
	LengthMm int
}

// Flatten expands each SplicePlanItem across its run's qtyParallel
// (identical pieces repeated once per parallel bar) and each DirectPiece
// across its qty, grouping the results by diameter.
func Flatten(runs []model.BarRun, plans []model.SplicePlanItem, direct []model.DirectPiece) map[int][]CutReq {
	qtyByRun := make(map[string]int, len(runs))
	diaByRun := make(map[string]int, len(runs))
	for _, r := range runs {
		qtyByRun[r.ID] = r.QtyParallel
		diaByRun[r.ID] = r.Dia
	}

	out := make(map[int][]CutReq)
	for _, plan := range plans {
		dia := diaByRun[plan.RunID]
		qty := qtyByRun[plan.RunID]
		for i := 0; i < qty; i++ {
			for _, piece := range plan.Pieces {
				out[dia] = append(out[dia], CutReq{Dia: dia, LengthMm: piece.LengthMm})
			}
		}
	}

	for _, dp := range direct {
		for i := 0; i < dp.Qty; i++ {
			out[dp.Dia] = append(out[dp.Dia], CutReq{Dia: dp.Dia, LengthMm: dp.LengthMm})
		}
	}

	return out
}
