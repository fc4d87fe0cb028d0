package cmd

import (
	"fmt"
	"strings"

	"timesheet/importer"
	"timesheet/storage"

	"github.com/spf13/cobra"
)

var (
	importInputs []string
	importFormat string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV/Excel time entries into a local SQLite database",
	Long: `Read source files, map each row to a time entry, and persist results in SQLite.

Rows reference employees by login; logins unknown to the database are skipped
and reported. Exact duplicate entries are skipped on re-import.
When --format is omitted, format is inferred from each input file extension.`,
	Example: `
  # Import one CSV file
  timesheet import -i entries.csv

  # Import multiple Excel files
  timesheet import -i sheet1.xlsx -i sheet2.xlsx

  # Force CSV parsing independent of extension
  timesheet import -i entries.dat --format csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := importer.Run(importInputs, importFormat, store)
		if err != nil {
			return err
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Rows persisted: %d, Duplicates: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			result.EntriesInserted,
			result.DuplicatesSkipped,
		)
		if len(result.UnknownLogins) > 0 {
			fmt.Printf("Unknown logins skipped: %s\n", strings.Join(result.UnknownLogins, ", "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", "./timesheet.db", "Path to local SQLite database")

	_ = importCmd.MarkFlagRequired("input")
}
