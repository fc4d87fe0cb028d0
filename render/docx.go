package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// DocxRenderer produces one heading and one table per employee. The total
// row merges the first three columns and shows the value bold and blue.
type DocxRenderer struct{}

var docxTotalColor = color.RGB(0, 0, 255)

func (r *DocxRenderer) Render(rep Report) (Rendered, error) {
	doc := document.New()

	// Pin document metadata to the report date so identical input renders
	// identically.
	created := time.Date(rep.Date.Year(), rep.Date.Month(), rep.Date.Day(), 0, 0, 0, 0, time.UTC)
	doc.CoreProperties.SetCreated(created)
	doc.CoreProperties.SetModified(created)

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.AddRun().AddText(reportTitle)

	for _, group := range rep.Groups {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(group.Name)

		table := doc.AddTable()
		table.Properties().SetWidthPercent(100)
		borders := table.Properties().Borders()
		borders.SetAll(wml.ST_BorderSingle, color.Auto, measurement.Zero)

		headerRow := table.AddRow()
		for _, label := range []string{"Project", "Task", "Date", "Hours"} {
			run := headerRow.AddCell().AddParagraph().AddRun()
			run.Properties().SetBold(true)
			run.AddText(label)
		}

		for _, entry := range group.Entries {
			row := table.AddRow()
			values := []string{entry.Project, entry.Task, formatDate(entry.Date), formatHours(entry.Hours)}
			for _, value := range values {
				row.AddCell().AddParagraph().AddRun().AddText(value)
			}
		}

		totalRow := table.AddRow()
		label := totalRow.AddCell()
		label.Properties().SetColumnSpan(3)
		labelRun := label.AddParagraph().AddRun()
		labelRun.Properties().SetBold(true)
		labelRun.Properties().SetColor(docxTotalColor)
		labelRun.AddText("Total Hours")

		valueRun := totalRow.AddCell().AddParagraph().AddRun()
		valueRun.Properties().SetBold(true)
		valueRun.Properties().SetColor(docxTotalColor)
		valueRun.AddText(formatHours(group.TotalHours()))
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return Rendered{}, fmt.Errorf("save word document: %w", err)
	}

	return Rendered{
		Format:   FormatDOCX,
		Payload:  buf.Bytes(),
		Filename: filename(FormatDOCX),
	}, nil
}
