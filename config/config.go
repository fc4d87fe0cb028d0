package config

import (
	"bytes"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"time"
)

const (
	KeyDatabasePath       = "database.path"
	KeyReportTimezone     = "report.timezone"
	KeyReportAdminLogin   = "report.admin_login"
	KeyReportCompanyEmail = "report.company_email"
	KeySMTPHost           = "smtp.host"
	KeySMTPPort           = "smtp.port"
	KeySMTPUsername       = "smtp.username"
	KeySMTPPassword       = "smtp.password"
	KeyWebListenAddr      = "web.listen_addr"
	KeyWebDownloadsDir    = "web.downloads_dir"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Web      WebConfig      `mapstructure:"web"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ReportConfig struct {
	Timezone     string `mapstructure:"timezone" validate:"required"`
	AdminLogin   string `mapstructure:"admin_login" validate:"required"`
	CompanyEmail string `mapstructure:"company_email" validate:"omitempty,email"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type WebConfig struct {
	ListenAddr   string `mapstructure:"listen_addr" validate:"required"`
	DownloadsDir string `mapstructure:"downloads_dir" validate:"required"`
}

// Location resolves the configured report timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load report timezone %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# timesheet configuration
database:
  path: "timesheet.db"

report:
  timezone: "UTC"
  admin_login: "admin"
  # company_email: "timesheets@example.com"

smtp:
  host: ""
  port: 587
  username: ""
  password: ""

web:
  listen_addr: ":8080"
  downloads_dir: "downloads"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("validation failed: report.timezone %q is not a valid IANA zone", cfg.Report.Timezone)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "timesheet.db")
	v.SetDefault(KeyReportTimezone, "UTC")
	v.SetDefault(KeyReportAdminLogin, "admin")
	v.SetDefault(KeySMTPPort, 587)
	v.SetDefault(KeyWebListenAddr, ":8080")
	v.SetDefault(KeyWebDownloadsDir, "downloads")
}
