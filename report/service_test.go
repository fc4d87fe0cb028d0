package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet/mailer"
	"timesheet/render"
	"timesheet/storage"
	"timesheet/timelog"
)

type fakeStore struct {
	entries    []timelog.Entry
	assigned   map[int64][]int64
	lastFilter storage.EntryFilter
}

func (s *fakeStore) QueryEntries(filter storage.EntryFilter) ([]timelog.Entry, error) {
	s.lastFilter = filter
	return s.entries, nil
}

func (s *fakeStore) ResolveProjectEmployees(projectID int64) ([]int64, error) {
	return s.assigned[projectID], nil
}

type fakeSender struct {
	sent []mailer.Message
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

type fakeIdentities struct {
	byLogin map[string]timelog.Employee
	admin   timelog.Employee
}

func (r *fakeIdentities) ByLogin(login string) (timelog.Employee, error) {
	return r.byLogin[login], nil
}

func (r *fakeIdentities) Administrative() (timelog.Employee, error) {
	return r.admin, nil
}

func newTestService(store *fakeStore, sender *fakeSender) *Service {
	identities := &fakeIdentities{
		byLogin: map[string]timelog.Employee{
			"alice": {ID: 1, Name: "Alice", Login: "alice", Email: "alice@example.com"},
		},
		admin: timelog.Employee{ID: 9, Name: "Admin", Login: "admin", Email: "admin@example.com"},
	}
	return NewService(store, sender, identities, "", time.UTC)
}

func TestService_GenerateDailyEmail_SendsTodayReport(t *testing.T) {
	today := time.Now().UTC()
	store := &fakeStore{entries: []timelog.Entry{
		{EmployeeID: 1, EmployeeName: "Alice", Project: "Apollo", Task: "Design", Date: today, Hours: 2.5},
		{EmployeeID: 1, EmployeeName: "Alice", Project: "Apollo", Task: "Review", Date: today, Hours: 1.25},
	}}
	sender := &fakeSender{}
	svc := newTestService(store, sender)

	require.NoError(t, svc.GenerateDailyEmail(context.Background(), "alice"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "alice@example.com", msg.From)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Daily Timesheet Report – "+today.Format("02 Jan 2006"), msg.Subject)
	assert.Contains(t, msg.BodyHTML, "Alice")
	assert.Contains(t, msg.BodyHTML, "3.75")

	require.NotNil(t, store.lastFilter.DateFrom)
	require.NotNil(t, store.lastFilter.DateTo)
	assert.Equal(t, *store.lastFilter.DateFrom, *store.lastFilter.DateTo)
	assert.False(t, store.lastFilter.RestrictEmployees)
}

func TestService_GenerateDailyEmail_NoEntriesNoDispatch(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	svc := newTestService(store, sender)

	require.NoError(t, svc.GenerateDailyEmail(context.Background(), "alice"))
	assert.Empty(t, sender.sent)
}

func TestService_GenerateDailyEmail_SystemIdentityFallsBackToAdmin(t *testing.T) {
	today := time.Now().UTC()
	store := &fakeStore{entries: []timelog.Entry{
		{EmployeeID: 1, EmployeeName: "Alice", Project: "Apollo", Task: "Design", Date: today, Hours: 1},
	}}
	sender := &fakeSender{}
	svc := newTestService(store, sender)
	svc.resolver.(*fakeIdentities).byLogin["cron"] = timelog.Employee{ID: 2, Name: "Cron", Login: "cron", System: true}

	require.NoError(t, svc.GenerateDailyEmail(context.Background(), "cron"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "admin@example.com", sender.sent[0].From)
}

func TestService_GenerateExport_RendersSelectedFormat(t *testing.T) {
	today := time.Now().UTC()
	store := &fakeStore{entries: []timelog.Entry{
		{EmployeeID: 1, EmployeeName: "Alice", Project: "Apollo", Task: "Design", Date: today, Hours: 2},
	}}
	svc := newTestService(store, &fakeSender{})

	rendered, err := svc.GenerateExport(Criteria{DateMode: DateToday, EmployeeMode: EmployeesAll}, render.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, render.FormatXLSX, rendered.Format)
	assert.Equal(t, "daily_timesheet_report.xlsx", rendered.Filename)
	assert.NotEmpty(t, rendered.Payload)
}

func TestService_GenerateExport_EmptySelectionStillRenders(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeSender{})

	rendered, err := svc.GenerateExport(Criteria{DateMode: DateToday, EmployeeMode: EmployeesAll}, render.FormatPDF)
	require.NoError(t, err)
	assert.NotEmpty(t, rendered.Payload)
}

func TestService_GenerateExport_RejectsHTML(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeSender{})

	_, err := svc.GenerateExport(Criteria{DateMode: DateToday, EmployeeMode: EmployeesAll}, render.FormatHTML)
	require.Error(t, err)
}
