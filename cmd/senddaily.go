package cmd

import (
	"fmt"
	"strings"

	"timesheet/config"
	"timesheet/identity"
	"timesheet/mailer"
	"timesheet/report"
	"timesheet/storage"

	"github.com/spf13/cobra"
)

var sendDailyLogin string

var sendDailyCmd = &cobra.Command{
	Use:   "send-daily",
	Short: "Email today's timesheet report as HTML",
	Long: `Build today's report across all employees and send it as an HTML email.

The report is sent from and to the organizational address of the invoking
login. System accounts (cron, automation) fall back to the configured
administrative login. When no entries exist for today, nothing is sent.

This command is intended for a daily cron job:
  0 18 * * 1-5 timesheet send-daily --login cron`,
	Example: `
  # Send today's report as alice
  timesheet send-daily --login alice

  # Send via the administrative fallback
  timesheet send-daily
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		location, err := cfg.Location()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		login := strings.TrimSpace(sendDailyLogin)
		if login == "" {
			login = cfg.Report.AdminLogin
		}

		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
		resolver := identity.NewStoreResolver(store, cfg.Report.AdminLogin)
		service := report.NewService(store, sender, resolver, cfg.Report.CompanyEmail, location)

		if err := service.GenerateDailyEmail(cmd.Context(), login); err != nil {
			return err
		}

		fmt.Println("Daily report processed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendDailyCmd)

	sendDailyCmd.Flags().StringVar(&sendDailyLogin, "login", "", "Login of the invoking identity (default: configured admin login)")
}
