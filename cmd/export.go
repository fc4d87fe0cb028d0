package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"timesheet/internal/timeutil"
	"timesheet/render"
	"timesheet/report"
	"timesheet/storage"

	"github.com/spf13/cobra"
)

var (
	exportFormat      string
	exportOutput      string
	exportDBPath      string
	exportFrom        string
	exportTo          string
	exportProjectID   int64
	exportEmployeeIDs []int64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a timesheet report from SQLite to Excel/Word/PDF",
	Long: `Render grouped time entries into a downloadable report document.

Without --from/--to the report covers today. With either bound set, the report
covers the given custom range; an omitted bound leaves that side open.
A project selection narrows the report to employees assigned to that project's
tasks; explicit --employee flags narrow it further.`,
	Example: `
  # Export today's report across all employees
  timesheet export --format xlsx --output ./daily_timesheet_report.xlsx

  # Export a month as PDF
  timesheet export --format pdf --from 2026-08-01 --to 2026-08-31 --output ./august.pdf

  # Export one project's report as Word document
  timesheet export --format docx --project 3 --output ./project.docx

  # Restrict to selected employees
  timesheet export --format xlsx --employee 4 --employee 7 --output ./team.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		criteria, err := buildExportCriteria()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		service := report.NewService(store, nil, nil, "", time.Local)
		rendered, err := service.GenerateExport(criteria, format)
		if err != nil {
			return err
		}

		output := strings.TrimSpace(exportOutput)
		if output == "" {
			output = rendered.Filename
		}
		if err := os.WriteFile(output, rendered.Payload, 0o644); err != nil {
			return fmt.Errorf("write report file: %w", err)
		}

		fmt.Printf("Export completed. Format: %s, File: %s\n", format, output)
		return nil
	},
}

func buildExportCriteria() (report.Criteria, error) {
	criteria := report.Criteria{
		DateMode:     report.DateToday,
		ProjectID:    exportProjectID,
		EmployeeMode: report.EmployeesAll,
	}

	if strings.TrimSpace(exportFrom) != "" || strings.TrimSpace(exportTo) != "" {
		criteria.DateMode = report.DateCustomRange
		if raw := strings.TrimSpace(exportFrom); raw != "" {
			from, err := timeutil.ParseISODate(raw)
			if err != nil {
				return report.Criteria{}, fmt.Errorf("invalid --from value %q (expected YYYY-MM-DD)", raw)
			}
			criteria.Start = &from
		}
		if raw := strings.TrimSpace(exportTo); raw != "" {
			to, err := timeutil.ParseISODate(raw)
			if err != nil {
				return report.Criteria{}, fmt.Errorf("invalid --to value %q (expected YYYY-MM-DD)", raw)
			}
			criteria.End = &to
		}
	}

	if len(exportEmployeeIDs) > 0 {
		criteria.EmployeeMode = report.EmployeesCustom
		criteria.EmployeeIDs = exportEmployeeIDs
	}

	return criteria, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "Report format: xlsx|docx|pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: fixed report filename in current directory)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./timesheet.db", "Path to local SQLite database")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start date, format YYYY-MM-DD (omit both bounds for today)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end date, format YYYY-MM-DD")
	exportCmd.Flags().Int64Var(&exportProjectID, "project", 0, "Restrict report to employees assigned to this project ID")
	exportCmd.Flags().Int64SliceVar(&exportEmployeeIDs, "employee", nil, "Restrict report to this employee ID (repeatable)")
}
