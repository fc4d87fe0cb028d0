package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"timesheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
The SMTP password is never printed.`,
	Example: `
  # Show active configuration
  timesheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("database.path: %s\n", cfg.Database.Path)
			fmt.Printf("report.timezone: %s\n", cfg.Report.Timezone)
			fmt.Printf("report.admin_login: %s\n", cfg.Report.AdminLogin)
			fmt.Printf("report.company_email: %s\n", cfg.Report.CompanyEmail)
			fmt.Printf("smtp.host: %s\n", cfg.SMTP.Host)
			fmt.Printf("smtp.port: %d\n", cfg.SMTP.Port)
			fmt.Printf("smtp.username: %s\n", cfg.SMTP.Username)
			fmt.Printf("smtp.password: %s\n", maskSecret(cfg.SMTP.Password))
			fmt.Printf("web.listen_addr: %s\n", cfg.Web.ListenAddr)
			fmt.Printf("web.downloads_dir: %s\n", cfg.Web.DownloadsDir)
		}
	},
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	return "********"
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
