package config

import (
	"fmt"
	"time"

	config_pkg "github.com/kumarabd/gokit/config"
	"github.com/nekrut/error-reports/internal/metrics"
	"github.com/nekrut/error-reports/pkg/report"
	"github.com/nekrut/error-reports/pkg/sanitize"
	"github.com/nekrut/error-reports/pkg/server"
	"github.com/nekrut/error-reports/pkg/validate"
)

var (
	ApplicationName    = "error-reports"
	ApplicationVersion = "dev"
)

type Config struct {
	Sanitize *sanitize.Config `json:"sanitize" yaml:"sanitize"`
	Validate *validate.Config `json:"validate" yaml:"validate"`
	Report   *report.Config   `json:"report" yaml:"report"`
	Server   *server.Config   `json:"server,omitempty" yaml:"server,omitempty"`
	Metrics  *metrics.Options `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// New creates a new config instance
func New() (*Config, error) {
	// Create default config object
	configObject := &Config{
		Sanitize: &sanitize.Config{
			DefaultOutputPath: "data/error-jobs-sanitized.json.gz",
			ProgressEvery:     25000,
			Fields:            sanitize.DefaultFields(),
		},
		Validate: &validate.Config{
			SampleSize: 1000,
			MaxErrors:  100,
		},
		Report: &report.Config{
			OutDir:   "dashboard",
			TopTools: 20,
		},
		Server: &server.Config{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			DashboardDir: "dashboard",
		},
		Metrics: &metrics.Options{},
	}

	// Load config using gokit config package
	finalConfig, err := config_pkg.New(configObject)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Safe type assertion
	if finalConfig == nil {
		return nil, fmt.Errorf("config is nil")
	}

	cfg, ok := finalConfig.(*Config)
	if !ok {
		return nil, fmt.Errorf("config type assertion failed: expected *Config, got %T", finalConfig)
	}

	return cfg, nil
}
