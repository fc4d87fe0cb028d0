package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/email.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/email.html"))

// HTMLRenderer produces the email body variant: a summary table of total
// hours per employee followed by per-employee detail tables. All
// user-controlled text is escaped by html/template.
type HTMLRenderer struct{}

type htmlEntryView struct {
	Project     string
	Task        string
	Description string
	Hours       string
}

type htmlGroupView struct {
	Employee   string
	TotalHours string
	Entries    []htmlEntryView
}

type htmlReportView struct {
	Title    string
	DateLong string
	Groups   []htmlGroupView
}

func (r *HTMLRenderer) Render(rep Report) (Rendered, error) {
	view := htmlReportView{
		Title:    reportTitle,
		DateLong: rep.Date.Format("January 02, 2006"),
		Groups:   make([]htmlGroupView, 0, len(rep.Groups)),
	}

	for _, group := range rep.Groups {
		groupView := htmlGroupView{
			Employee:   group.Name,
			TotalHours: formatHours(group.TotalHours()),
			Entries:    make([]htmlEntryView, 0, len(group.Entries)),
		}
		for _, entry := range group.Entries {
			groupView.Entries = append(groupView.Entries, htmlEntryView{
				Project:     entry.Project,
				Task:        entry.Task,
				Description: entry.Description,
				Hours:       formatHours(entry.Hours),
			})
		}
		view.Groups = append(view.Groups, groupView)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return Rendered{}, fmt.Errorf("execute email template: %w", err)
	}

	return Rendered{
		Format:   FormatHTML,
		Payload:  buf.Bytes(),
		Filename: filename(FormatHTML),
	}, nil
}
