package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rafiqul27/RebarOpt/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// Avery-5160-style label sheet layout, matching the teacher's
// export/labels.go constants (US Letter in mm).
const (
	tagPageWidth  = 215.9
	tagPageHeight = 279.4
	tagCols       = 3
	tagRows       = 10
	tagsPerPage   = tagCols * tagRows
	tagWidth      = 66.675
	tagHeight     = 25.4
	tagMarginX    = 4.75
	tagMarginY    = 12.7
	qrSize        = 18.0
)

// TagInfo is the JSON payload embedded in each piece's QR code.
//
// It deliberately carries no stock-length field: by the time a run's
// pieces reach the cutting plan, the aggregator has grouped them into
// patterns by length multiset, discarding which specific piece came from
// which bin — so there is no bin to attribute a tag to without inventing
// one.
type TagInfo struct {
	BarMark  string `json:"bar_mark"`
	Dia      int    `json:"dia"`
	SeqInRun int    `json:"seq_in_run"`
	LengthMm int    `json:"length_mm"`
	StartMm  int    `json:"start_mm"`
	EndMm    int    `json:"end_mm"`
}

// CollectTagInfos flattens every splice-plan piece into one TagInfo,
// stamping each with dia. Parallel bars are not expanded: a run's
// QtyParallel does not multiply its tags, so each piece position yields
// one tag.
func CollectTagInfos(plan []model.SplicePlanItem, dia int) []TagInfo {
	var tags []TagInfo
	for _, item := range plan {
		for i, piece := range item.Pieces {
			tags = append(tags, TagInfo{
				BarMark:  item.BarMark,
				Dia:      dia,
				SeqInRun: i + 1,
				LengthMm: piece.LengthMm,
				StartMm:  piece.StartMm,
				EndMm:    piece.EndMm,
			})
		}
	}
	return tags
}

// ExportTagSheet renders tags as a sheet of Avery-5160-style QR labels,
// paginating at tagsPerPage per page.
func ExportTagSheet(path string, tags []TagInfo) error {
	if len(tags) == 0 {
		return fmt.Errorf("no tags to export")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}
		idx := i % tagsPerPage
		col := idx % tagCols
		row := idx / tagCols
		x := tagMarginX + float64(col)*tagWidth
		y := tagMarginY + float64(row)*tagHeight
		if err := renderTag(pdf, tag, x, y, i); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderTag(pdf *fpdf.Fpdf, tag TagInfo, x, y float64, imgIdx int) error {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	payload, err := json.Marshal(tag)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return err
	}

	imageName := fmt.Sprintf("tag-qr-%d", imgIdx)
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))
	qrX := x + tagWidth - qrSize - 2
	qrY := y + (tagHeight-qrSize)/2
	pdf.ImageOptions(imageName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textWidth := tagWidth - qrSize - 6
	pdf.SetXY(x+2, y+2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(textWidth, 5, truncateToWidth(pdf, tag.BarMark, textWidth), "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetX(x + 2)
	pdf.CellFormat(textWidth, 4, fmt.Sprintf("D%d  piece %d", tag.Dia, tag.SeqInRun), "", 2, "L", false, 0, "")
	pdf.SetX(x + 2)
	pdf.CellFormat(textWidth, 4, fmt.Sprintf("%d mm", tag.LengthMm), "", 2, "L", false, 0, "")
	pdf.SetX(x + 2)
	pdf.CellFormat(textWidth, 4, fmt.Sprintf("@ %d-%d", tag.StartMm, tag.EndMm), "", 2, "L", false, 0, "")

	return nil
}

func truncateToWidth(pdf *fpdf.Fpdf, s string, maxWidth float64) string {
	if pdf.GetStringWidth(s) <= maxWidth {
		return s
	}
	for i := len(s) - 1; i > 0; i-- {
		candidate := s[:i] + "…"
		if pdf.GetStringWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return s
}
