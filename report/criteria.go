package report

import "time"

type DateMode string

const (
	DateToday       DateMode = "today"
	DateCustomRange DateMode = "custom"
)

type EmployeeMode string

const (
	EmployeesAll    EmployeeMode = "all"
	EmployeesCustom EmployeeMode = "custom"
)

// Criteria is the user-supplied selection driving a report run.
//
// Start and End matter only for DateCustomRange and either may be nil
// (open-ended). ProjectID zero means no project restriction. EmployeeIDs
// matter only for EmployeesCustom.
type Criteria struct {
	DateMode     DateMode
	Start        *time.Time
	End          *time.Time
	ProjectID    int64
	EmployeeMode EmployeeMode
	EmployeeIDs  []int64
}
