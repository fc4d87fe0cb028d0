package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"timesheet/internal/timeutil"
	"timesheet/timelog"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrEmployeeNotFound = errors.New("employee not found")

// EntryFilter is the query specification produced by the report filter
// builder. Nil date bounds are open-ended. When RestrictEmployees is true the
// query matches only EmployeeIDs, even if that list is empty (which matches
// nothing).
type EntryFilter struct {
	DateFrom          *time.Time
	DateTo            *time.Time
	EmployeeIDs       []int64
	RestrictEmployees bool
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL DEFAULT '',
	system INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id),
	name TEXT NOT NULL,
	UNIQUE(project_id, name)
);

CREATE TABLE IF NOT EXISTS task_assignments (
	task_id INTEGER NOT NULL REFERENCES tasks(id),
	employee_id INTEGER NOT NULL REFERENCES employees(id),
	UNIQUE(task_id, employee_id)
);

CREATE TABLE IF NOT EXISTS time_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id INTEGER REFERENCES employees(id),
	project TEXT NOT NULL DEFAULT '',
	task TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	entry_date TEXT NOT NULL,
	hours REAL NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(employee_id, entry_date, project, task, description, hours)
);

CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(entry_date);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// QueryEntries returns entries matching the filter in stable row order.
// Employee names are resolved by join; entries whose employee row is gone
// come back with an empty name and are dropped later by grouping.
func (s *SQLiteStore) QueryEntries(filter EntryFilter) ([]timelog.Entry, error) {
	query := strings.Builder{}
	query.WriteString(`
SELECT
	t.id,
	COALESCE(t.employee_id, 0),
	COALESCE(e.name, ''),
	t.project,
	t.task,
	t.description,
	t.entry_date,
	t.hours
FROM time_entries t
LEFT JOIN employees e ON e.id = t.employee_id
`)

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if filter.DateFrom != nil {
		conditions = append(conditions, "t.entry_date >= ?")
		args = append(args, timeutil.FormatISODate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "t.entry_date <= ?")
		args = append(args, timeutil.FormatISODate(*filter.DateTo))
	}
	if filter.RestrictEmployees {
		if len(filter.EmployeeIDs) == 0 {
			// Restriction to an empty employee set matches nothing.
			conditions = append(conditions, "1 = 0")
		} else {
			placeholders := make([]string, len(filter.EmployeeIDs))
			for i, id := range filter.EmployeeIDs {
				placeholders[i] = "?"
				args = append(args, id)
			}
			conditions = append(conditions, fmt.Sprintf("t.employee_id IN (%s)", strings.Join(placeholders, ", ")))
		}
	}

	if len(conditions) > 0 {
		query.WriteString("WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
		query.WriteString("\n")
	}
	query.WriteString("ORDER BY t.entry_date, t.id;")

	rows, err := s.db.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timelog.Entry, 0, 64)
	for rows.Next() {
		var (
			entry   timelog.Entry
			dateRaw string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.EmployeeID,
			&entry.EmployeeName,
			&entry.Project,
			&entry.Task,
			&entry.Description,
			&dateRaw,
			&entry.Hours,
		); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}

		entry.Date, err = timeutil.ParseISODate(dateRaw)
		if err != nil {
			return nil, fmt.Errorf("parse entry date %q: %w", dateRaw, err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}

	return entries, nil
}

// ResolveProjectEmployees returns the IDs of employees assigned to any task
// under the given project.
func (s *SQLiteStore) ResolveProjectEmployees(projectID int64) ([]int64, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("project id must be > 0")
	}

	const query = `
SELECT DISTINCT a.employee_id
FROM task_assignments a
JOIN tasks t ON t.id = a.task_id
WHERE t.project_id = ?
ORDER BY a.employee_id;
`
	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project employees: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project employees: %w", err)
	}

	return ids, nil
}

func (s *SQLiteStore) ListEmployees() ([]timelog.Employee, error) {
	const query = `SELECT id, name, login, email, system FROM employees ORDER BY name, id;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]timelog.Employee, 0, 32)
	for rows.Next() {
		var employee timelog.Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Login, &employee.Email, &employee.System); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

func (s *SQLiteStore) ListProjects() ([]timelog.Project, error) {
	const query = `SELECT id, name FROM projects ORDER BY name, id;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]timelog.Project, 0, 16)
	for rows.Next() {
		var project timelog.Project
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// GetEmployeeByLogin resolves one employee identity by login name.
func (s *SQLiteStore) GetEmployeeByLogin(login string) (timelog.Employee, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return timelog.Employee{}, fmt.Errorf("employee login must not be empty")
	}

	const query = `SELECT id, name, login, email, system FROM employees WHERE login = ?;`

	var employee timelog.Employee
	err := s.db.QueryRow(query, login).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Login,
		&employee.Email,
		&employee.System,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timelog.Employee{}, fmt.Errorf("employee %q: %w", login, ErrEmployeeNotFound)
		}
		return timelog.Employee{}, fmt.Errorf("query employee %q: %w", login, err)
	}

	return employee, nil
}

// UpsertEmployee inserts an employee or updates name/email/system for an
// existing login. Returns the row ID either way.
func (s *SQLiteStore) UpsertEmployee(employee timelog.Employee) (int64, error) {
	const stmt = `
INSERT INTO employees (name, login, email, system)
VALUES (?, ?, ?, ?)
ON CONFLICT(login) DO UPDATE SET
	name = excluded.name,
	email = excluded.email,
	system = excluded.system;
`
	if _, err := s.db.Exec(stmt, employee.Name, employee.Login, employee.Email, employee.System); err != nil {
		return 0, fmt.Errorf("upsert employee %q: %w", employee.Login, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM employees WHERE login = ?;`, employee.Login).Scan(&id); err != nil {
		return 0, fmt.Errorf("read employee id for %q: %w", employee.Login, err)
	}
	return id, nil
}

// EnsureProject returns the ID for a project name, creating it when absent.
func (s *SQLiteStore) EnsureProject(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("project name must not be empty")
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO projects (name) VALUES (?);`, name); err != nil {
		return 0, fmt.Errorf("insert project %q: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM projects WHERE name = ?;`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("read project id for %q: %w", name, err)
	}
	return id, nil
}

// EnsureTask returns the ID for a task name under a project, creating it
// when absent.
func (s *SQLiteStore) EnsureTask(projectID int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if projectID <= 0 {
		return 0, fmt.Errorf("project id must be > 0")
	}
	if name == "" {
		return 0, fmt.Errorf("task name must not be empty")
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO tasks (project_id, name) VALUES (?, ?);`, projectID, name); err != nil {
		return 0, fmt.Errorf("insert task %q: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM tasks WHERE project_id = ? AND name = ?;`, projectID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("read task id for %q: %w", name, err)
	}
	return id, nil
}

// AssignTask links an employee to a task. Duplicate assignments are ignored.
func (s *SQLiteStore) AssignTask(taskID, employeeID int64) error {
	if taskID <= 0 || employeeID <= 0 {
		return fmt.Errorf("task id and employee id must be > 0")
	}
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO task_assignments (task_id, employee_id) VALUES (?, ?);`,
		taskID, employeeID,
	); err != nil {
		return fmt.Errorf("assign task %d to employee %d: %w", taskID, employeeID, err)
	}
	return nil
}

// InsertEntries persists time entries, skipping exact duplicates via the
// UNIQUE constraint. Returns the number of rows actually inserted.
func (s *SQLiteStore) InsertEntries(entries []timelog.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO time_entries (
	employee_id,
	project,
	task,
	description,
	entry_date,
	hours
) VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, entry := range entries {
		var employeeID any
		if entry.EmployeeID > 0 {
			employeeID = entry.EmployeeID
		}
		res, err := stmt.Exec(
			employeeID,
			entry.Project,
			entry.Task,
			entry.Description,
			timeutil.FormatISODate(entry.Date),
			entry.Hours,
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert time entry: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}
