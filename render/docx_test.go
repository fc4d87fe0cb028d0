package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/unidoc/unioffice/document"
)

func TestDocxRenderer_WritesHeadingAndTablePerEmployee(t *testing.T) {
	t.Parallel()

	rendered, err := (&DocxRenderer{}).Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}

	doc, err := document.Read(bytes.NewReader(rendered.Payload), int64(len(rendered.Payload)))
	if err != nil {
		t.Fatalf("reopen document: %v", err)
	}

	if got := len(doc.Tables()); got != 2 {
		t.Fatalf("expected one table per employee (2), got %d", got)
	}

	text := strings.Builder{}
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			text.WriteString(run.Text())
		}
		text.WriteString("\n")
	}
	body := text.String()

	for _, want := range []string{"Daily Timesheet Report", "A", "B"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in document text", want)
		}
	}
}

func TestDocxRenderer_TotalRowCarriesTwoDecimalValue(t *testing.T) {
	t.Parallel()

	rendered, err := (&DocxRenderer{}).Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render docx: %v", err)
	}

	doc, err := document.Read(bytes.NewReader(rendered.Payload), int64(len(rendered.Payload)))
	if err != nil {
		t.Fatalf("reopen document: %v", err)
	}

	cellText := make([]string, 0, 64)
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, para := range cell.Paragraphs() {
					for _, run := range para.Runs() {
						cellText = append(cellText, run.Text())
					}
				}
			}
		}
	}

	joined := strings.Join(cellText, "|")
	for _, want := range []string{"Total Hours", "3.75", "4.00"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in table cells", want)
		}
	}
}
