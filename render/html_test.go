package render

import (
	"strings"
	"testing"
	"time"

	"timesheet/timelog"
)

func TestHTMLRenderer_EscapesUserControlledText(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	rep := Report{
		Date: day,
		Groups: timelog.GroupByEmployee([]timelog.Entry{
			{
				EmployeeName: `Eve <img src=x>`,
				Project:      `<b>P</b>`,
				Task:         `T & Co`,
				Description:  `<script>alert(1)</script>`,
				Date:         day,
				Hours:        1,
			},
		}),
	}

	rendered, err := (&HTMLRenderer{}).Render(rep)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	body := string(rendered.Payload)
	if strings.Contains(body, "<script>") {
		t.Fatal("script tag leaked into markup unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatal("expected escaped script in description cell")
	}
	if !strings.Contains(body, "Eve &lt;img src=x&gt;") {
		t.Fatal("expected escaped employee name")
	}
	if !strings.Contains(body, "T &amp; Co") {
		t.Fatal("expected escaped ampersand in task name")
	}
}

func TestHTMLRenderer_IncludesSummaryBeforeDetails(t *testing.T) {
	t.Parallel()

	rep := sampleReport(t)

	rendered, err := (&HTMLRenderer{}).Render(rep)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	body := string(rendered.Payload)
	summaryAt := strings.Index(body, "Summary of Employee Hours")
	detailAt := strings.Index(body, "Description")
	if summaryAt < 0 {
		t.Fatal("missing summary table heading")
	}
	if detailAt < 0 {
		t.Fatal("missing detail table header")
	}
	if summaryAt > detailAt {
		t.Fatal("summary table must precede detail sections")
	}
}

func TestHTMLRenderer_FormatsReportDateLongForm(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)
	rendered, err := (&HTMLRenderer{}).Render(Report{Date: day})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	if !strings.Contains(string(rendered.Payload), "January 05, 2025") {
		t.Fatal("expected long-form report date in body")
	}
}
