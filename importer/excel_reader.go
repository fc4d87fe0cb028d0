package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads timesheet rows from the first sheet of a workbook. Like
// the CSV path, the first row is the header row and columns are matched by
// normalized name.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	return recordsFromRows(rows[0], rows[1:]), nil
}
