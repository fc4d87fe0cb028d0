// Package web serves the report wizard: an intranet-only single-page form
// that drives exports and the daily email; it intentionally has no auth in
// this mode.
package web

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"timesheet/importer"
	"timesheet/internal/timeutil"
	"timesheet/render"
	"timesheet/report"
	"timesheet/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store        *storage.SQLiteStore
	service      *report.Service
	downloadsDir string
	mux          *http.ServeMux
}

type projectView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type employeeView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type exportRequest struct {
	DateRange   string  `json:"dateRange"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	ProjectID   int64   `json:"projectId"`
	Employees   string  `json:"employees"`
	EmployeeIDs []int64 `json:"employeeIds"`
	Format      string  `json:"format"`
}

type exportResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type dailyEmailRequest struct {
	Login string `json:"login"`
}

type importResponse struct {
	FilesProcessed    int      `json:"filesProcessed"`
	RowsRead          int      `json:"rowsRead"`
	RowsMapped        int      `json:"rowsMapped"`
	RowsSkipped       int      `json:"rowsSkipped"`
	EntriesInserted   int      `json:"entriesInserted"`
	DuplicatesSkipped int      `json:"duplicatesSkipped"`
	UnknownLogins     []string `json:"unknownLogins"`
}

func NewServer(store *storage.SQLiteStore, service *report.Service, downloadsDir string) http.Handler {
	server := &Server{
		store:        store,
		service:      service,
		downloadsDir: downloadsDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /api/projects", server.handleAPIProjects)
	mux.HandleFunc("GET /api/employees", server.handleAPIEmployees)
	mux.HandleFunc("POST /api/export", server.handleAPIExport)
	mux.HandleFunc("GET /downloads/{token}/{name}", server.handleDownload)
	mux.HandleFunc("POST /api/report/daily-email", server.handleAPIDailyEmail)
	mux.HandleFunc("POST /api/import", server.handleAPIImport)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, 3)
	for _, format := range render.ExportFormats() {
		formats = append(formats, string(format))
	}
	view := struct {
		Title   string
		Formats []string
	}{
		Title:   "Daily Timesheet Report",
		Formats: formats,
	}
	if err := renderTemplate(w, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIProjects(w http.ResponseWriter, _ *http.Request) {
	projects, err := s.store.ListProjects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]projectView, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, projectView{ID: project.ID, Name: project.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAPIEmployees lists selectable employees. With a project query
// parameter the list narrows to employees assigned to that project's tasks,
// mirroring how the export itself scopes a project selection.
func (s *Server) handleAPIEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var assigned map[int64]bool
	if raw := strings.TrimSpace(r.URL.Query().Get("project")); raw != "" {
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || projectID <= 0 {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}
		ids, err := s.store.ResolveProjectEmployees(projectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		assigned = make(map[int64]bool, len(ids))
		for _, id := range ids {
			assigned[id] = true
		}
	}

	resp := make([]employeeView, 0, len(employees))
	for _, employee := range employees {
		if employee.System {
			continue
		}
		if assigned != nil && !assigned[employee.ID] {
			continue
		}
		resp = append(resp, employeeView{ID: employee.ID, Name: employee.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	criteria, err := buildCriteria(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format, err := render.ParseFormat(body.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rendered, err := s.service.GenerateExport(criteria, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := newDownloadToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dir := filepath.Join(s.downloadsDir, token)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		http.Error(w, fmt.Sprintf("create download dir: %v", err), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(filepath.Join(dir, rendered.Filename), rendered.Payload, 0o644); err != nil {
		http.Error(w, fmt.Sprintf("write download file: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{
		URL:      "/downloads/" + token + "/" + rendered.Filename,
		Filename: rendered.Filename,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	name := strings.TrimSpace(r.PathValue("name"))
	if !validToken(token) || name != filepath.Base(name) {
		http.Error(w, "invalid download path", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.downloadsDir, token, name)
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "download not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(name), ".")); err == nil {
		w.Header().Set("Content-Type", render.ContentType(format))
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(payload)
}

func (s *Server) handleAPIDailyEmail(w http.ResponseWriter, r *http.Request) {
	var body dailyEmailRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Login) == "" {
		http.Error(w, "login is required", http.StatusBadRequest)
		return
	}

	if err := s.service.GenerateDailyEmail(r.Context(), strings.TrimSpace(body.Login)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	result, err := importer.Run([]string{tmpPath}, strings.TrimSpace(r.FormValue("format")), s.store)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		FilesProcessed:    result.FilesProcessed,
		RowsRead:          result.RowsRead,
		RowsMapped:        result.RowsMapped,
		RowsSkipped:       result.RowsSkipped,
		EntriesInserted:   result.EntriesInserted,
		DuplicatesSkipped: result.DuplicatesSkipped,
		UnknownLogins:     result.UnknownLogins,
	})
}

func buildCriteria(body exportRequest) (report.Criteria, error) {
	criteria := report.Criteria{ProjectID: body.ProjectID}

	switch strings.TrimSpace(body.DateRange) {
	case "", string(report.DateToday):
		criteria.DateMode = report.DateToday
	case string(report.DateCustomRange):
		criteria.DateMode = report.DateCustomRange
		if raw := strings.TrimSpace(body.StartDate); raw != "" {
			start, err := timeutil.ParseISODate(raw)
			if err != nil {
				return report.Criteria{}, fmt.Errorf("invalid start date (expected YYYY-MM-DD)")
			}
			criteria.Start = &start
		}
		if raw := strings.TrimSpace(body.EndDate); raw != "" {
			end, err := timeutil.ParseISODate(raw)
			if err != nil {
				return report.Criteria{}, fmt.Errorf("invalid end date (expected YYYY-MM-DD)")
			}
			criteria.End = &end
		}
	default:
		return report.Criteria{}, fmt.Errorf("unknown date range %q", body.DateRange)
	}

	switch strings.TrimSpace(body.Employees) {
	case "", string(report.EmployeesAll):
		criteria.EmployeeMode = report.EmployeesAll
	case string(report.EmployeesCustom):
		criteria.EmployeeMode = report.EmployeesCustom
		criteria.EmployeeIDs = body.EmployeeIDs
	default:
		return report.Criteria{}, fmt.Errorf("unknown employee selection %q", body.Employees)
	}

	return criteria, nil
}

func newDownloadToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate download token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func validToken(token string) bool {
	if len(token) != 32 {
		return false
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New(pageTemplate).Funcs(template.FuncMap{
		"fmtDate": func(value time.Time) string {
			return timeutil.FormatISODate(value)
		},
	}).ParseFS(templateFS, "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, pageTemplate, data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
