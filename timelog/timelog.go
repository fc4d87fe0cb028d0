package timelog

import "time"

// Entry is one recorded unit of work, projected read-only from the store.
type Entry struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	Project      string
	Task         string
	Description  string
	Date         time.Time
	Hours        float64
}

// Employee is a person (or automation identity) that can log time.
type Employee struct {
	ID     int64
	Name   string
	Login  string
	Email  string
	System bool
}

type Project struct {
	ID   int64
	Name string
}

// Task belongs to a project; employees are linked to projects through
// task assignments.
type Task struct {
	ID        int64
	ProjectID int64
	Name      string
}
