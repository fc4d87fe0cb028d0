package importer

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVReader reads comma-separated timesheet exports. The first row must be
// the header row; columns are matched by normalized name, not position.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file %s has no header row", path)
	}

	return recordsFromRows(rows[0], rows[1:]), nil
}
