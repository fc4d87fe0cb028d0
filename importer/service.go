package importer

import (
	"errors"
	"fmt"
	"sort"

	"timesheet/storage"
	"timesheet/timelog"
)

// Store is the subset of the storage layer the import pipeline writes to.
type Store interface {
	GetEmployeeByLogin(login string) (timelog.Employee, error)
	EnsureProject(name string) (int64, error)
	EnsureTask(projectID int64, name string) (int64, error)
	AssignTask(taskID, employeeID int64) error
	InsertEntries(entries []timelog.Entry) (int, error)
}

type Result struct {
	FilesProcessed    int
	RowsRead          int
	RowsMapped        int
	RowsSkipped       int
	EntriesInserted   int
	DuplicatesSkipped int
	UnknownLogins     []string
}

// Run reads the given files, maps their rows to time entries and writes them
// through the store. Rows referencing unknown employee logins are skipped and
// reported, not fatal. Tasks named in the input are registered and assigned
// so project-scoped report filters see the imported employees.
func Run(paths []string, format string, store Store) (*Result, error) {
	result := &Result{}
	unknown := make(map[string]struct{})
	entries := make([]timelog.Entry, 0, 256)

	for _, path := range paths {
		sourceFormat, err := InferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			row, ok, mapErr := MapRecord(record)
			if mapErr != nil {
				return nil, fmt.Errorf("file %s: %w", path, mapErr)
			}
			if !ok {
				result.RowsSkipped++
				continue
			}

			employee, err := store.GetEmployeeByLogin(row.EmployeeLogin)
			if err != nil {
				if errors.Is(err, storage.ErrEmployeeNotFound) {
					unknown[row.EmployeeLogin] = struct{}{}
					result.RowsSkipped++
					continue
				}
				return nil, fmt.Errorf("resolve employee %q: %w", row.EmployeeLogin, err)
			}

			projectID, err := store.EnsureProject(row.Project)
			if err != nil {
				return nil, fmt.Errorf("ensure project %q: %w", row.Project, err)
			}
			if row.Task != "" {
				taskID, err := store.EnsureTask(projectID, row.Task)
				if err != nil {
					return nil, fmt.Errorf("ensure task %q: %w", row.Task, err)
				}
				if err := store.AssignTask(taskID, employee.ID); err != nil {
					return nil, fmt.Errorf("assign task %q to %q: %w", row.Task, row.EmployeeLogin, err)
				}
			}

			result.RowsMapped++
			entries = append(entries, timelog.Entry{
				EmployeeID:   employee.ID,
				EmployeeName: employee.Name,
				Project:      row.Project,
				Task:         row.Task,
				Description:  row.Description,
				Date:         row.Date,
				Hours:        row.Hours,
			})
		}
	}

	inserted, err := store.InsertEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("insert entries: %w", err)
	}
	result.EntriesInserted = inserted
	result.DuplicatesSkipped = len(entries) - inserted

	for login := range unknown {
		result.UnknownLogins = append(result.UnknownLogins, login)
	}
	sort.Strings(result.UnknownLogins)

	return result, nil
}
