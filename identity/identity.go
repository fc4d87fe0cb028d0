// Package identity resolves who is invoking a report run and which
// organizational email address to use for them. The invoking identity is
// always passed in explicitly; there is no ambient current-user state.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"timesheet/timelog"
)

var ErrNoEmail = errors.New("no email address resolvable")

type Resolver interface {
	// ByLogin resolves one identity by login name.
	ByLogin(login string) (timelog.Employee, error)
	// Administrative resolves the configured fallback identity used when
	// the invoking identity is a system/automation account.
	Administrative() (timelog.Employee, error)
}

type employeeStore interface {
	GetEmployeeByLogin(login string) (timelog.Employee, error)
}

// StoreResolver resolves identities from the employee table.
type StoreResolver struct {
	store      employeeStore
	adminLogin string
}

func NewStoreResolver(store employeeStore, adminLogin string) *StoreResolver {
	return &StoreResolver{store: store, adminLogin: adminLogin}
}

func (r *StoreResolver) ByLogin(login string) (timelog.Employee, error) {
	return r.store.GetEmployeeByLogin(login)
}

func (r *StoreResolver) Administrative() (timelog.Employee, error) {
	employee, err := r.store.GetEmployeeByLogin(r.adminLogin)
	if err != nil {
		return timelog.Employee{}, fmt.Errorf("resolve administrative identity: %w", err)
	}
	return employee, nil
}

// OrganizationalEmail picks the address a report is sent from and to: the
// company-wide address when configured, the identity's own address
// otherwise.
func OrganizationalEmail(employee timelog.Employee, companyEmail string) (string, error) {
	if email := strings.TrimSpace(companyEmail); email != "" {
		return email, nil
	}
	if email := strings.TrimSpace(employee.Email); email != "" {
		return email, nil
	}
	return "", fmt.Errorf("identity %q: %w", employee.Login, ErrNoEmail)
}

// ReportAddress resolves the effective identity for a report run: the
// invoking identity itself, or the administrative identity when the invoker
// is a system account.
func ReportAddress(resolver Resolver, invokingLogin, companyEmail string) (string, error) {
	employee, err := resolver.ByLogin(invokingLogin)
	if err != nil {
		return "", fmt.Errorf("resolve invoking identity: %w", err)
	}

	if employee.System {
		employee, err = resolver.Administrative()
		if err != nil {
			return "", err
		}
	}

	return OrganizationalEmail(employee, companyEmail)
}
