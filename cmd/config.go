package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage timesheet configuration file values.",
	Long: `Create and display the timesheet configuration file.

The configuration stores application-wide values:
- database.path
- report.timezone / report.admin_login / report.company_email
- smtp.host / smtp.port / smtp.username / smtp.password
- web.listen_addr / web.downloads_dir`,
	Example: `
  # Create default config in $HOME/.timesheet.yaml
  timesheet config create

  # Show active config and source file
  timesheet config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
