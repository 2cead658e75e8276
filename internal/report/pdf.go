// Package report renders a solved project as a printable PDF (summary,
// procurement, cutting plan, install schedule) and as a sheet of
// QR-coded per-piece tags, following the teacher's fpdf table-rendering
// idiom.
package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rafiqul27/RebarOpt/internal/model"
)

// Page layout constants (A4 portrait in mm), matching the teacher's
// margin/line-height conventions.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	lineHeight   = 6.0
)

// ExportPDF renders result as a multi-section PDF: an overall summary, a
// procurement table, a cutting plan table, and an install schedule
// derived from the splice plan.
func ExportPDF(path string, result model.OptimizationResult, projectName string) error {
	if len(result.CuttingPlan) == 0 {
		return fmt.Errorf("no cutting plan to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	pdf.AddPage()
	y := renderSummarySection(pdf, projectName, result)

	pdf.AddPage()
	renderProcurementTable(pdf, result.Procurement)

	pdf.AddPage()
	renderCuttingPlanTable(pdf, result.CuttingPlan)

	pdf.AddPage()
	renderInstallSchedule(pdf, result.SplicePlan)

	_ = y
	return pdf.OutputFileAndClose(path)
}

func renderSummarySection(pdf *fpdf.Fpdf, projectName string, result model.OptimizationResult) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := "Rebar Optimization Summary"
	if projectName != "" {
		title = projectName + " — " + title
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 11)

	s := result.Summary
	rows := []struct{ label, value string }{
		{"Total Stock Bars", fmt.Sprintf("%d", s.TotalStockBars)},
		{"Total Input Length", fmt.Sprintf("%.2f m", float64(s.TotalInputLengthMm)/1000)},
		{"Total Parts Length", fmt.Sprintf("%.2f m", float64(s.TotalPartsLengthMm)/1000)},
		{"Total Waste", fmt.Sprintf("%.2f m (%.2f%%)", float64(s.TotalWasteMm)/1000, s.WastePercent)},
		{"Total Steel Weight", fmt.Sprintf("%.2f kg (%.3f t)", s.TotalWeightKg, s.TotalWeightKg/1000)},
	}
	for _, r := range rows {
		pdf.SetXY(marginLeft+5, y)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(60, lineHeight, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, lineHeight, r.value, "", 1, "L", false, 0, "")
		y += lineHeight
	}

	if len(result.Warnings) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(180, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Structural Warnings (%d)", len(result.Warnings)), "", 1, "L", false, 0, "")
		y += lineHeight
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range result.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 4.5, w, "", "L", false)
			y = pdf.GetY()
		}
	}

	return y
}

func tableHeader(pdf *fpdf.Fpdf, headers []string, widths []float64, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + lineHeight
}

func renderProcurementTable(pdf *fpdf.Fpdf, items []model.ProcurementItem) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(0, 8, "Procurement List", "", 1, "L", false, 0, "")

	widths := []float64{30, 45, 35, 45}
	y := tableHeader(pdf, []string{"Dia (mm)", "Stock Length (mm)", "Quantity", "Total Length (mm)"}, widths, marginTop+12)

	pdf.SetFont("Helvetica", "", 9)
	for i, it := range items {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		row := []string{
			fmt.Sprintf("%d", it.Dia),
			fmt.Sprintf("%d", it.StockLength),
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%d", it.TotalLength),
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[j], lineHeight, cell, "1", 0, "C", true, 0, "")
			x += widths[j]
		}
		y += lineHeight
	}
}

func renderCuttingPlanTable(pdf *fpdf.Fpdf, items []model.CuttingPlanItem) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(0, 8, "Cutting Plan", "", 1, "L", false, 0, "")

	widths := []float64{18, 28, 28, 18, 60, 22}
	y := tableHeader(pdf, []string{"Dia", "Source", "Stock", "Count", "Pattern (mm)", "Offcut/Waste"}, widths, marginTop+12)

	pdf.SetFont("Helvetica", "", 8)
	for i, it := range items {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		source := "New"
		if it.SourceType == model.SourceExisting {
			source = "Inventory"
		}
		residual := fmt.Sprintf("offcut %d", it.Offcut)
		if it.Waste > 0 {
			residual = fmt.Sprintf("waste %d", it.Waste)
		}
		x := marginLeft
		row := []string{
			fmt.Sprintf("%d", it.Dia),
			source,
			fmt.Sprintf("%d", it.StockLength),
			fmt.Sprintf("%d", it.Count),
			patternString(it.Pattern),
			residual,
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[j], lineHeight, cell, "1", 0, "C", true, 0, "")
			x += widths[j]
		}
		y += lineHeight
	}
}

func renderInstallSchedule(pdf *fpdf.Fpdf, plan []model.SplicePlanItem) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(0, 8, "Install Schedule", "", 1, "L", false, 0, "")

	widths := []float64{35, 20, 30, 35, 35}
	y := tableHeader(pdf, []string{"Bar Mark", "Order", "Length (mm)", "Start (mm)", "End (mm)"}, widths, marginTop+12)

	pdf.SetFont("Helvetica", "", 9)
	rowIdx := 0
	for _, item := range plan {
		for order, piece := range item.Pieces {
			if rowIdx%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			x := marginLeft
			row := []string{
				item.BarMark,
				fmt.Sprintf("%d", order+1),
				fmt.Sprintf("%d", piece.LengthMm),
				fmt.Sprintf("%d", piece.StartMm),
				fmt.Sprintf("%d", piece.EndMm),
			}
			for j, cell := range row {
				pdf.SetXY(x, y)
				pdf.CellFormat(widths[j], lineHeight, cell, "1", 0, "C", true, 0, "")
				x += widths[j]
			}
			y += lineHeight
			rowIdx++
		}
	}
}

func patternString(pattern []int) string {
	s := ""
	for i, p := range pattern {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", p)
	}
	return s
}
