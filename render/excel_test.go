package render

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelRenderer_WritesGroupsHeadersAndTotals(t *testing.T) {
	t.Parallel()

	rendered, err := (&ExcelRenderer{}).Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render excel: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(rendered.Payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Timesheet")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	flat := make([]string, 0, len(rows)*4)
	for _, row := range rows {
		flat = append(flat, row...)
	}

	assertContains := func(want string) {
		t.Helper()
		for _, value := range flat {
			if value == want {
				return
			}
		}
		t.Fatalf("expected cell value %q in sheet", want)
	}

	assertContains("Daily Timesheet Report")
	assertContains("A")
	assertContains("B")
	assertContains("Project")
	assertContains("Date")
	assertContains("2025-06-10")
	assertContains("Total Hours")
	assertContains("3.75")
	assertContains("4.00")
}

func TestExcelRenderer_SectionsAppearInGroupOrder(t *testing.T) {
	t.Parallel()

	rendered, err := (&ExcelRenderer{}).Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render excel: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(rendered.Payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Timesheet")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	rowOf := func(want string) int {
		for i, row := range rows {
			if len(row) > 0 && row[0] == want {
				return i
			}
		}
		t.Fatalf("row %q not found", want)
		return -1
	}

	if rowOf("A") > rowOf("B") {
		t.Fatal("expected group A section before group B")
	}
}
