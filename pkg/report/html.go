package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/kumarabd/gokit/logger"
	"github.com/nekrut/error-reports/pkg/records"
)

// Config contains configuration for dashboard generation
type Config struct {
	OutDir   string `json:"out_dir" yaml:"out_dir" default:"dashboard"` // Output directory for HTML files
	TopTools int    `json:"top_tools" yaml:"top_tools" default:"20"`    // Tools to break down individually
}

// Handler renders the error dashboard from a sanitized collection.
type Handler struct {
	config *Config
	log    *logger.Handler
	index  *template.Template
	tool   *template.Template
}

// NewHandler creates a new report handler with configuration
func NewHandler(config *Config, log *logger.Handler) (*Handler, error) {
	if config.OutDir == "" {
		config.OutDir = "dashboard"
	}
	if config.TopTools <= 0 {
		config.TopTools = 20
	}

	funcs := template.FuncMap{
		"safeName":  SafeFileName,
		"topErrors": topErrors,
	}
	index, err := template.New("index").Funcs(funcs).Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	tool, err := template.New("tool").Funcs(funcs).Parse(toolTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tool template: %w", err)
	}

	return &Handler{
		config: config,
		log:    log,
		index:  index,
		tool:   tool,
	}, nil
}

type indexData struct {
	*Stats
	GeneratedAt string
}

type toolData struct {
	*ToolStats
	GeneratedAt string
}

// Generate aggregates the collection and writes index.html plus one page
// per top failing tool under tools/. Returns the path of the index page.
func (h *Handler) Generate(collection records.Collection, outDir string) (string, error) {
	if outDir == "" {
		outDir = h.config.OutDir
	}

	stats := Aggregate(collection, h.config.TopTools)

	if h.log != nil {
		h.log.Info().
			Int("records", stats.TotalRecords).
			Int("tools", stats.UniqueTools).
			Str("out_dir", outDir).
			Msg("generating dashboard")
	}

	toolsDir := filepath.Join(outDir, "tools")
	if err := os.MkdirAll(toolsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", toolsDir, err)
	}

	now := time.Now().Format("2006-01-02 15:04:05")

	for _, ts := range stats.Tools {
		path := filepath.Join(toolsDir, ts.SafeName+".html")
		if err := h.renderTo(path, h.tool, toolData{ToolStats: ts, GeneratedAt: now}); err != nil {
			return "", err
		}
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := h.renderTo(indexPath, h.index, indexData{Stats: stats, GeneratedAt: now}); err != nil {
		return "", err
	}

	return indexPath, nil
}

func topErrors(errs []ErrorGroup, n int) []ErrorGroup {
	if len(errs) > n {
		return errs[:n]
	}
	return errs
}

func (h *Handler) renderTo(path string, tmpl *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
