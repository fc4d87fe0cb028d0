package importer

import (
	"fmt"
	"time"
)

// Row is one staged time entry with the employee still identified by login.
// The store resolves the login to an employee ID during the write phase.
type Row struct {
	EmployeeLogin string
	Project       string
	Task          string
	Description   string
	Date          time.Time
	Hours         float64
}

// MapRecord converts one input record into a staged row. Rows without an
// employee login are skipped, not errors: exported sheets routinely carry
// trailing summary lines.
func MapRecord(record Record) (*Row, bool, error) {
	login := record.Login()
	if login == "" {
		return nil, false, nil
	}

	project := record.Project()
	if project == "" {
		return nil, false, fmt.Errorf("row %d: missing project", record.RowNumber)
	}

	date, err := parseEntryDate(record.Date())
	if err != nil {
		return nil, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	hours, err := parseHours(record.Hours())
	if err != nil {
		return nil, false, fmt.Errorf("row %d: %w", record.RowNumber, err)
	}

	return &Row{
		EmployeeLogin: login,
		Project:       project,
		Task:          record.Task(),
		Description:   record.Description(),
		Date:          date,
		Hours:         hours,
	}, true, nil
}
