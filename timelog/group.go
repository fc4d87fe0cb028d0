package timelog

import "math"

// EmployeeGroup aggregates the entries of one employee display name. The
// total is computed, never stored.
type EmployeeGroup struct {
	Name    string
	Entries []Entry
}

func (g EmployeeGroup) TotalHours() float64 {
	total := 0.0
	for _, entry := range g.Entries {
		total += entry.Hours
	}
	return total
}

// GroupByEmployee partitions entries by employee display name, preserving
// first-seen group order and source entry order within each group.
//
// Entries without a resolved employee name are dropped. Distinct employees
// sharing a display name merge into one group; presentation keys on the
// name, so this mirrors the upstream report behavior (see DESIGN.md).
// Non-finite hour values are sanitized to zero so a single corrupt row
// cannot poison a group total.
func GroupByEmployee(entries []Entry) []EmployeeGroup {
	index := make(map[string]int, len(entries))
	groups := make([]EmployeeGroup, 0, 8)

	for _, entry := range entries {
		if entry.EmployeeName == "" {
			continue
		}
		if math.IsNaN(entry.Hours) || math.IsInf(entry.Hours, 0) {
			entry.Hours = 0
		}

		i, ok := index[entry.EmployeeName]
		if !ok {
			i = len(groups)
			index[entry.EmployeeName] = i
			groups = append(groups, EmployeeGroup{Name: entry.EmployeeName})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}

	return groups
}
