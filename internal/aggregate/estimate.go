package aggregate

import "math"

// BarEstimate is a cheap pre-solve sanity estimate of how many stock bars
// a given total requested length will need, without running the packer.
type BarEstimate struct {
	TotalRequestedLengthMm int     `json:"total_requested_length_mm"`
	StockLengthMm          int     `json:"stock_length_mm"`
	BarsNeededExact        float64 `json:"bars_needed_exact"`
	BarsNeededMin          int     `json:"bars_needed_min"`
	BarsWithWaste          int     `json:"bars_with_waste"`
	WastePercent           float64 `json:"waste_percent"`
}

// QuickEstimate computes a ceiling-based bar count from total requested
// length alone, applying an additional waste-percent margin on top of the
// exact division. It is a rough sanity check, not a substitute for the
// packing engine: it ignores kerf, piece-length distribution, and
// inventory entirely.
func QuickEstimate(totalRequestedLengthMm, stockLengthMm int, wastePercent float64) BarEstimate {
	if stockLengthMm <= 0 {
		return BarEstimate{
			TotalRequestedLengthMm: totalRequestedLengthMm,
			WastePercent:           wastePercent,
		}
	}

	exact := float64(totalRequestedLengthMm) / float64(stockLengthMm)
	minBars := int(math.Ceil(exact))

	wasteFactor := 1.0 + wastePercent/100.0
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minBars {
		withWaste = minBars
	}

	return BarEstimate{
		TotalRequestedLengthMm: totalRequestedLengthMm,
		StockLengthMm:          stockLengthMm,
		BarsNeededExact:        exact,
		BarsNeededMin:          minBars,
		BarsWithWaste:          withWaste,
		WastePercent:           wastePercent,
	}
}
