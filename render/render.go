// Package render turns a grouped timesheet dataset into one of four output
// representations. Rendering is a pure function of its input: the same
// report yields byte-identical output for every format.
package render

import (
	"fmt"
	"strings"
	"time"

	"timesheet/timelog"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

const reportTitle = "Daily Timesheet Report"

// Report is the renderer input: the report date plus grouped entries.
type Report struct {
	Date   time.Time
	Groups []timelog.EmployeeGroup
}

// Rendered is the produced artifact. Payload is markup for HTML and an
// opaque document for the binary formats.
type Rendered struct {
	Format   Format
	Payload  []byte
	Filename string
}

type Renderer interface {
	Render(rep Report) (Rendered, error)
}

func ForFormat(format Format) (Renderer, error) {
	switch format {
	case FormatHTML:
		return &HTMLRenderer{}, nil
	case FormatXLSX:
		return &ExcelRenderer{}, nil
	case FormatDOCX:
		return &DocxRenderer{}, nil
	case FormatPDF:
		return &PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "html":
		return FormatHTML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "docx", "word":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", value)
	}
}

// ExportFormats lists the downloadable formats, excluding the email body.
func ExportFormats() []Format {
	return []Format{FormatXLSX, FormatDOCX, FormatPDF}
}

func ContentType(format Format) string {
	switch format {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func filename(format Format) string {
	return "daily_timesheet_report." + string(format)
}

// formatHours renders an hour value with exactly two decimals, the shared
// numeric format of every variant.
func formatHours(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(value time.Time) string {
	return value.Format("2006-01-02")
}
