package report

import (
	"fmt"
	"time"

	"timesheet/storage"
)

// EmployeeResolver resolves the employees assigned to tasks under a project.
type EmployeeResolver interface {
	ResolveProjectEmployees(projectID int64) ([]int64, error)
}

// BuildFilter translates criteria into a store query specification.
//
// A start date after the end date passes through unchanged; the query then
// legitimately selects nothing. An explicit employee selection that
// intersects to the empty set stays an (empty) restriction rather than
// falling back to "no filter".
func BuildFilter(criteria Criteria, resolver EmployeeResolver, today time.Time) (storage.EntryFilter, error) {
	var filter storage.EntryFilter

	switch criteria.DateMode {
	case DateToday, "":
		day := today
		filter.DateFrom = &day
		filter.DateTo = &day
	case DateCustomRange:
		filter.DateFrom = criteria.Start
		filter.DateTo = criteria.End
	default:
		return storage.EntryFilter{}, fmt.Errorf("unsupported date mode: %s", criteria.DateMode)
	}

	switch {
	case criteria.ProjectID > 0:
		assigned, err := resolver.ResolveProjectEmployees(criteria.ProjectID)
		if err != nil {
			return storage.EntryFilter{}, fmt.Errorf("resolve project employees: %w", err)
		}
		filter.RestrictEmployees = true
		if criteria.EmployeeMode == EmployeesCustom {
			filter.EmployeeIDs = intersect(assigned, criteria.EmployeeIDs)
		} else {
			filter.EmployeeIDs = assigned
		}
	case criteria.EmployeeMode == EmployeesCustom && len(criteria.EmployeeIDs) > 0:
		filter.RestrictEmployees = true
		filter.EmployeeIDs = criteria.EmployeeIDs
	}

	return filter, nil
}

func intersect(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}

	out := make([]int64, 0, len(a))
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
