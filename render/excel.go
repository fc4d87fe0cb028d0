package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelRenderer produces one "Timesheet" sheet: per employee a bold name
// row, a shaded header row, data rows, and a bold blue total row.
type ExcelRenderer struct{}

const sheetName = "Timesheet"

func (r *ExcelRenderer) Render(rep Report) (Rendered, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return Rendered{}, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Rendered{}, fmt.Errorf("create bold style: %w", err)
	}
	header, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("create header style: %w", err)
	}
	wrap, err := file.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return Rendered{}, fmt.Errorf("create wrap style: %w", err)
	}
	total, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "0000FF"}})
	if err != nil {
		return Rendered{}, fmt.Errorf("create total style: %w", err)
	}

	row := 1
	if err := setRow(file, row, []any{reportTitle}); err != nil {
		return Rendered{}, err
	}
	if err := styleRow(file, row, 1, bold); err != nil {
		return Rendered{}, err
	}
	row += 2

	for _, group := range rep.Groups {
		if err := setRow(file, row, []any{group.Name}); err != nil {
			return Rendered{}, err
		}
		if err := styleRow(file, row, 1, bold); err != nil {
			return Rendered{}, err
		}
		row++

		if err := setRow(file, row, []any{"Project", "Task", "Date", "Hours"}); err != nil {
			return Rendered{}, err
		}
		if err := styleRow(file, row, 4, header); err != nil {
			return Rendered{}, err
		}
		row++

		for _, entry := range group.Entries {
			values := []any{entry.Project, entry.Task, formatDate(entry.Date), formatHours(entry.Hours)}
			if err := setRow(file, row, values); err != nil {
				return Rendered{}, err
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := file.SetCellStyle(sheetName, cell, cell, wrap); err != nil {
				return Rendered{}, fmt.Errorf("style cell %s: %w", cell, err)
			}
			row++
		}

		if err := setRow(file, row, []any{"Total Hours", "", "", formatHours(group.TotalHours())}); err != nil {
			return Rendered{}, err
		}
		if err := styleRow(file, row, 4, total); err != nil {
			return Rendered{}, err
		}
		row += 2
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return Rendered{}, fmt.Errorf("write workbook: %w", err)
	}

	return Rendered{
		Format:   FormatXLSX,
		Payload:  buf.Bytes(),
		Filename: filename(FormatXLSX),
	}, nil
}

func setRow(file *excelize.File, row int, values []any) error {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := file.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleRow(file *excelize.File, row, cols, styleID int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := file.SetCellStyle(sheetName, first, last, styleID); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}
