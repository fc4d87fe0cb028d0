package report

import (
	"context"
	"fmt"
	"time"

	"timesheet/identity"
	"timesheet/internal/timeutil"
	"timesheet/mailer"
	"timesheet/render"
	"timesheet/storage"
	"timesheet/timelog"
)

// Store is the record source consumed by report runs.
type Store interface {
	QueryEntries(filter storage.EntryFilter) ([]timelog.Entry, error)
	ResolveProjectEmployees(projectID int64) ([]int64, error)
}

// Service wires the pipeline: criteria become a filter, matching entries are
// grouped per employee, and the grouped dataset is rendered and delivered.
// Each invocation materializes its own structures; the service itself holds
// no mutable state.
type Service struct {
	store        Store
	sender       mailer.Sender
	resolver     identity.Resolver
	companyEmail string
	location     *time.Location
}

func NewService(store Store, sender mailer.Sender, resolver identity.Resolver, companyEmail string, location *time.Location) *Service {
	return &Service{
		store:        store,
		sender:       sender,
		resolver:     resolver,
		companyEmail: companyEmail,
		location:     location,
	}
}

// GenerateDailyEmail builds today's report across all employees and sends it
// as an HTML email. With zero matching entries nothing is rendered or sent.
// The sender and recipient both resolve from the invoking identity, falling
// back to the administrative identity for system accounts.
func (s *Service) GenerateDailyEmail(ctx context.Context, invokingLogin string) error {
	today := timeutil.BusinessDate(s.location)

	criteria := Criteria{DateMode: DateToday, EmployeeMode: EmployeesAll}
	filter, err := BuildFilter(criteria, s.store, today)
	if err != nil {
		return err
	}

	entries, err := s.store.QueryEntries(filter)
	if err != nil {
		return fmt.Errorf("query today's entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	groups := timelog.GroupByEmployee(entries)
	if len(groups) == 0 {
		return nil
	}

	rendered, err := (&render.HTMLRenderer{}).Render(render.Report{Date: today, Groups: groups})
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	address, err := identity.ReportAddress(s.resolver, invokingLogin, s.companyEmail)
	if err != nil {
		return err
	}

	msg := mailer.Message{
		Subject:  fmt.Sprintf("Daily Timesheet Report – %s", today.Format("02 Jan 2006")),
		BodyHTML: string(rendered.Payload),
		From:     address,
		To:       address,
	}
	return s.sender.Send(ctx, msg)
}

// GenerateExport renders the dataset selected by criteria into one of the
// downloadable formats. An empty selection still yields a valid header-only
// document for the interactive path.
func (s *Service) GenerateExport(criteria Criteria, format render.Format) (render.Rendered, error) {
	if format == render.FormatHTML {
		return render.Rendered{}, fmt.Errorf("format html is not exportable; use the email report")
	}

	renderer, err := render.ForFormat(format)
	if err != nil {
		return render.Rendered{}, err
	}

	today := timeutil.BusinessDate(s.location)
	filter, err := BuildFilter(criteria, s.store, today)
	if err != nil {
		return render.Rendered{}, err
	}

	entries, err := s.store.QueryEntries(filter)
	if err != nil {
		return render.Rendered{}, fmt.Errorf("query entries: %w", err)
	}

	return renderer.Render(render.Report{
		Date:   today,
		Groups: timelog.GroupByEmployee(entries),
	})
}
