package importer

import (
	"strings"
)

// Record is one data row keyed by normalized header name. RowNumber is
// 1-based and counts the header row, matching what users see in their
// sheet.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Column aliases accepted for each timesheet field. Exports from the HR
// tools in the wild carry English or German headers.
var (
	loginColumns       = []string{"employee", "login", "user", "mitarbeiter"}
	projectColumns     = []string{"project", "projekt"}
	taskColumns        = []string{"task", "aufgabe"}
	descriptionColumns = []string{"description", "beschreibung"}
	dateColumns        = []string{"date", "entrydate", "datum"}
	hoursColumns       = []string{"hours", "duration", "stunden"}
)

func (r Record) Login() string       { return r.get(loginColumns) }
func (r Record) Project() string     { return r.get(projectColumns) }
func (r Record) Task() string        { return r.get(taskColumns) }
func (r Record) Description() string { return r.get(descriptionColumns) }
func (r Record) Date() string        { return r.get(dateColumns) }
func (r Record) Hours() string       { return r.get(hoursColumns) }

func (r Record) get(keys []string) string {
	for _, key := range keys {
		if value, ok := r.Values[key]; ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// recordsFromRows pairs data rows with normalized header keys. Short rows
// are padded with empty values so Record lookups stay total.
func recordsFromRows(headers []string, rows [][]string) []Record {
	keys := make([]string, len(headers))
	for i, header := range headers {
		keys[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		values := make(map[string]string, len(keys))
		for col, key := range keys {
			if col < len(row) {
				values[key] = row[col]
			} else {
				values[key] = ""
			}
		}
		records = append(records, Record{RowNumber: i + 2, Values: values})
	}
	return records
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
