package main

import (
	"fmt"
	"net"
	"os"

	"github.com/kumarabd/gokit/logger"
	"github.com/nekrut/error-reports/internal/config"
	"github.com/nekrut/error-reports/internal/metrics"
	"github.com/nekrut/error-reports/pkg/records"
	"github.com/nekrut/error-reports/pkg/report"
	"github.com/nekrut/error-reports/pkg/sanitize"
	"github.com/nekrut/error-reports/pkg/server"
	"github.com/nekrut/error-reports/pkg/validate"
	"github.com/spf13/cobra"
)

// main is the entry point of the application
func main() {
	// Initialize a new logger with the application name and syslog format
	log, err := logger.New(config.ApplicationName, logger.Options{
		Format: logger.SyslogLogFormat,
	})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Initialize a new configuration handler
	configHandler, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}

	// Initialize a new metrics handler with the application name
	metricsHandler, err := metrics.New(config.ApplicationName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "error-reports",
		Short: "Sanitize, validate, and report on job-execution error records",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(
		newSanitizeCmd(configHandler, log, metricsHandler),
		newValidateCmd(configHandler, log, metricsHandler),
		newDashboardCmd(configHandler, log),
		newServeCmd(configHandler, log),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("✗ Error: %v\n", err)
		os.Exit(1)
	}
}

func newSanitizeCmd(cfg *config.Config, log *logger.Handler, metric *metrics.Handler) *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <input> [output]",
		Short: "Remove PII from an error-record container",
		Long: `Sanitizes a job-error container for public sharing:
  - user_id: replaced by a SHA-256 derived pseudonym
  - session_id, history_id: removed
  - Emails in text fields: replaced with [EMAIL]
  - /home/<name> paths: replaced with /home/[USER]`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) > 1 {
				outputPath = args[1]
			}

			handler, err := sanitize.NewHandler(cfg.Sanitize, log, metric)
			if err != nil {
				return err
			}

			actualPath, err := handler.SanitizeFile(args[0], outputPath)
			if err != nil {
				return err
			}

			if info, err := os.Stat(actualPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("Done. Output: %s (%.1f MB)\n", actualPath, sizeMB)
			} else {
				fmt.Printf("Done. Output: %s\n", actualPath)
			}
			fmt.Println("✓ Sanitization complete")
			return nil
		},
	}
}

func newValidateCmd(cfg *config.Config, log *logger.Handler, metric *metrics.Handler) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:           "validate <input>",
		Short:         "Check an error-record container against the expected schema",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := validate.NewHandler(cfg.Validate, log, metric)
			if err != nil {
				return err
			}

			sampleSize := cfg.Validate.SampleSize
			if full {
				sampleSize = 0
			}

			isValid, rep, errs := handler.ValidateFile(args[0], sampleSize)
			printValidationReport(args[0], rep, errs)

			if !isValid {
				fmt.Println("✗ INVALID - Please fix errors before processing")
				os.Exit(1)
			}
			fmt.Println("✓ VALID - File is ready for processing")
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Validate all records (default: first 1000)")
	return cmd
}

func printValidationReport(path string, rep *validate.Report, errs []string) {
	fmt.Println()
	fmt.Println("==================================================")
	fmt.Println("VALIDATION RESULTS")
	fmt.Println("==================================================")
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Total records: %d\n", rep.TotalRecords)
	fmt.Printf("Records validated: %d\n", rep.RecordsValidated)
	fmt.Printf("Required fields present: %v\n", rep.RequiredFieldsPresent)
	fmt.Printf("States found: %s\n", joinComma(rep.StatesFound))
	fmt.Println()
	fmt.Printf("Fields found: %s\n", joinComma(rep.FieldsFound))
	fmt.Println()

	if len(errs) > 0 {
		fmt.Println("ERRORS:")
		shown := errs
		if len(shown) > 20 {
			shown = shown[:20]
		}
		for _, e := range shown {
			fmt.Printf("  - %s\n", e)
		}
		if len(errs) > 20 {
			fmt.Printf("  ... and %d more errors\n", len(errs)-20)
		}
		fmt.Println()
	}
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func newDashboardCmd(cfg *config.Config, log *logger.Handler) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:           "dashboard <input>",
		Short:         "Generate the HTML error dashboard from a sanitized container",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := report.NewHandler(cfg.Report, log)
			if err != nil {
				return err
			}

			collection, err := records.Load(args[0])
			if err != nil {
				return err
			}

			indexPath, err := handler.Generate(collection, outDir)
			if err != nil {
				return err
			}

			fmt.Printf("Dashboard saved to %s\n", indexPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: dashboard)")
	return cmd
}

func newServeCmd(cfg *config.Config, log *logger.Handler) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the generated dashboard with health and metrics endpoints",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return fmt.Errorf("invalid --addr %q: %w", addr, err)
				}
				cfg.Server.Host = host
				cfg.Server.Port = port
			}
			srv := server.NewHTTP(cfg.Server, log)
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address as host:port (default: from config)")
	return cmd
}
