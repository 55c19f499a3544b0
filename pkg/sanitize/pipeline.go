package sanitize

import (
	"time"

	"github.com/google/uuid"
	"github.com/kumarabd/gokit/logger"
	"github.com/nekrut/error-reports/internal/metrics"
	"github.com/nekrut/error-reports/pkg/records"
)

// Config contains configuration for the sanitization pipeline
type Config struct {
	DefaultOutputPath string  `json:"default_output_path" yaml:"default_output_path" default:"data/error-jobs-sanitized.json.gz"` // Output when none requested
	ProgressEvery     int     `json:"progress_every" yaml:"progress_every" default:"25000"`                                       // Progress log cadence in records
	Fields            *Fields `json:"fields" yaml:"fields"`                                                                       // Field classification
}

// Handler runs the sanitization pipeline over container files.
type Handler struct {
	config    *Config
	sanitizer *Sanitizer
	log       *logger.Handler
	metric    *metrics.Handler
}

// NewHandler creates a new pipeline handler with configuration
func NewHandler(config *Config, log *logger.Handler, metric *metrics.Handler) (*Handler, error) {
	if config.Fields == nil {
		config.Fields = DefaultFields()
	}
	if config.DefaultOutputPath == "" {
		config.DefaultOutputPath = "data/error-jobs-sanitized.json.gz"
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = 25000
	}

	return &Handler{
		config:    config,
		sanitizer: NewSanitizer(config.Fields),
		log:       log,
		metric:    metric,
	}, nil
}

// SanitizeFile loads a container, sanitizes every record in order, and
// persists the result compressed. Returns the actual output path, which may
// differ from the requested one by the compression suffix. Load and save
// errors propagate unmodified; the save is not atomic.
func (h *Handler) SanitizeFile(inputPath, outputPath string) (string, error) {
	start := time.Now()
	runID := uuid.NewString()

	if outputPath == "" {
		outputPath = h.config.DefaultOutputPath
	}

	if h.log != nil {
		h.log.Info().
			Str("run_id", runID).
			Str("input", inputPath).
			Msg("loading records")
	}

	collection, err := records.Load(inputPath)
	if err != nil {
		if h.metric != nil {
			h.metric.ObservePipelineLatency(time.Since(start), "sanitize", false)
		}
		return "", err
	}

	if h.log != nil {
		h.log.Info().
			Str("run_id", runID).
			Int("records", len(collection)).
			Msg("sanitizing records")
	}

	for i, entry := range collection {
		rec, ok := records.AsRecord(entry)
		if !ok {
			if h.metric != nil {
				h.metric.IncRecordsSanitized("skipped")
			}
			continue
		}

		if h.metric != nil {
			for _, field := range h.config.Fields.Removed {
				if rec.Has(field) {
					h.metric.IncFieldsRemoved(field)
				}
			}
		}

		sanitized, report := h.sanitizer.SanitizeRecord(rec)
		collection[i] = sanitized

		if h.metric != nil {
			h.metric.IncRecordsSanitized("sanitized")
			if report.Applied {
				for _, rule := range report.Rules {
					h.metric.AddRedactions(rule, 1)
				}
			}
		}

		if h.log != nil && (i+1)%h.config.ProgressEvery == 0 {
			h.log.Info().
				Str("run_id", runID).
				Int("processed", i+1).
				Int("total", len(collection)).
				Msg("sanitization progress")
		}
	}

	if h.log != nil {
		h.log.Info().
			Str("run_id", runID).
			Str("output", outputPath).
			Msg("saving records")
	}

	actualPath, err := records.Save(collection, outputPath, true)
	if err != nil {
		if h.metric != nil {
			h.metric.ObservePipelineLatency(time.Since(start), "sanitize", false)
		}
		return "", err
	}

	if h.metric != nil {
		h.metric.ObservePipelineLatency(time.Since(start), "sanitize", true)
	}

	return actualPath, nil
}
