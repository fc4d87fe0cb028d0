package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"timesheet/config"
	"timesheet/identity"
	"timesheet/mailer"
	"timesheet/report"
	"timesheet/storage"
	"timesheet/web"

	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local report wizard web UI",
	Long: `Start a local HTTP server with the report wizard.

The wizard selects date range, project, employees, and output format, then
offers the rendered report as a download. It can also trigger the daily
email and accept CSV/Excel uploads for import.`,
	Example: `
  # Start on the configured listen address
  timesheet serve

  # Start with explicit address and database
  timesheet serve --addr :9090 --db ./timesheet.db
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

		dbPath := cfg.Database.Path
		if strings.TrimSpace(serveDBPath) != "" {
			dbPath = serveDBPath
		}
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
		resolver := identity.NewStoreResolver(store, cfg.Report.AdminLogin)
		service := report.NewService(store, sender, resolver, cfg.Report.CompanyEmail, location)

		addr := cfg.Web.ListenAddr
		if strings.TrimSpace(serveAddr) != "" {
			addr = serveAddr
		}
		server := &http.Server{
			Addr:    addr,
			Handler: web.NewServer(store, service, cfg.Web.DownloadsDir),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on %s\n", addr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default: configured web.listen_addr)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Path to local SQLite database (default: configured database.path)")
}
