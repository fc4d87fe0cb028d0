package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer produces one heading and one table per employee. Project and
// Task cells wrap across lines instead of overflowing their column.
type PDFRenderer struct{}

// Column widths in millimeters, letter page with 10mm margins.
var pdfColumnWidths = [4]float64{50, 85, 40, 20}

const (
	pdfLineHeight   = 5.5
	pdfLeftMargin   = 10.0
	pdfBottomMargin = 15.0
)

func (r *PDFRenderer) Render(rep Report) (Rendered, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")

	// Fixed metadata dates keep rendering deterministic.
	pinned := time.Date(rep.Date.Year(), rep.Date.Month(), rep.Date.Day(), 0, 0, 0, 0, time.UTC)
	pdf.SetCreationDate(pinned)
	pdf.SetModificationDate(pinned)
	pdf.SetCatalogSort(true)

	pdf.SetMargins(pdfLeftMargin, 10, 10)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	table := pdfTable{pdf: pdf}
	for _, group := range rep.Groups {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Employee: "+group.Name, "", 1, "L", false, 0, "")

		table.headerRow()
		for _, entry := range group.Entries {
			table.dataRow([4]string{
				entry.Project,
				entry.Task,
				formatDate(entry.Date),
				formatHours(entry.Hours),
			})
		}
		table.totalRow(formatHours(group.TotalHours()))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Rendered{}, fmt.Errorf("write pdf: %w", err)
	}

	return Rendered{
		Format:   FormatPDF,
		Payload:  buf.Bytes(),
		Filename: filename(FormatPDF),
	}, nil
}

// pdfTable draws the per-employee entry table. Rows never straddle a page
// boundary: a row that would cross the bottom margin starts a new page with
// the header row repeated. Page breaks are handled here, not by fpdf's auto
// break, because a wrapped row positions its cells with explicit SetXY
// calls that must all land on the same page.
type pdfTable struct {
	pdf *fpdf.Fpdf
}

func (t pdfTable) headerRow() {
	t.pdf.SetFont("Helvetica", "B", 9)
	t.pdf.SetFillColor(0xDC, 0xE6, 0xF1)
	t.pdf.SetTextColor(0, 0, 0)
	if t.breakNeeded(pdfLineHeight) {
		t.pdf.AddPage()
	}
	t.drawRow([4]string{"Project", "Task", "Date", "Hours"}, true)
}

func (t pdfTable) dataRow(cells [4]string) {
	t.pdf.SetFont("Helvetica", "", 9)
	if t.breakNeeded(t.rowHeight(cells)) {
		t.pdf.AddPage()
		t.headerRow()
		t.pdf.SetFont("Helvetica", "", 9)
	}
	t.drawRow(cells, false)
}

func (t pdfTable) totalRow(total string) {
	cells := [4]string{"Total Hours", "", "", total}
	t.pdf.SetFont("Helvetica", "B", 9)
	if t.breakNeeded(t.rowHeight(cells)) {
		t.pdf.AddPage()
		t.headerRow()
	}
	t.pdf.SetFont("Helvetica", "B", 9)
	t.pdf.SetTextColor(0, 0, 255)
	t.drawRow(cells, false)
	t.pdf.SetTextColor(0, 0, 0)
}

func (t pdfTable) breakNeeded(height float64) bool {
	_, y := t.pdf.GetXY()
	_, pageHeight := t.pdf.GetPageSize()
	return y+height > pageHeight-pdfBottomMargin
}

// rowHeight measures the tallest cell after wrapping; depends on the
// current font.
func (t pdfTable) rowHeight(cells [4]string) float64 {
	height := pdfLineHeight
	for i, text := range cells {
		if h := float64(len(t.splitCell(text, i))) * pdfLineHeight; h > height {
			height = h
		}
	}
	return height
}

func (t pdfTable) splitCell(text string, col int) []string {
	lines := t.pdf.SplitText(text, pdfColumnWidths[col]-2)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// drawRow renders one bordered row whose fit on the current page the caller
// has already ensured. Auto page break is suspended while the row's cells
// are positioned.
func (t pdfTable) drawRow(cells [4]string, fill bool) {
	t.pdf.SetAutoPageBreak(false, pdfBottomMargin)
	defer t.pdf.SetAutoPageBreak(true, pdfBottomMargin)

	height := t.rowHeight(cells)
	x, y := t.pdf.GetXY()
	x = pdfLeftMargin
	for i, text := range cells {
		width := pdfColumnWidths[i]
		if fill {
			t.pdf.Rect(x, y, width, height, "FD")
		} else {
			t.pdf.Rect(x, y, width, height, "D")
		}
		for j, line := range t.splitCell(text, i) {
			t.pdf.SetXY(x+1, y+float64(j)*pdfLineHeight)
			t.pdf.CellFormat(width-2, pdfLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += width
	}
	t.pdf.SetXY(pdfLeftMargin, y+height)
}
