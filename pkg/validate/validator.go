package validate

import (
	"fmt"
	"sort"

	"github.com/kumarabd/gokit/logger"
	"github.com/nekrut/error-reports/internal/metrics"
	"github.com/nekrut/error-reports/pkg/records"
)

// Config contains configuration for schema validation
type Config struct {
	SampleSize int     `json:"sample_size" yaml:"sample_size" default:"1000"` // Records to fully validate, 0 = all
	MaxErrors  int     `json:"max_errors" yaml:"max_errors" default:"100"`    // Error accumulation cap
	Schema     *Schema `json:"-" yaml:"-"`
}

// Report summarizes a validated collection. TotalRecords always reflects the
// true collection size, regardless of the error cap.
type Report struct {
	TotalRecords          int      `json:"total_records"`
	RecordsValidated      int      `json:"records_validated"`
	FieldsFound           []string `json:"fields_found"`
	StatesFound           []string `json:"states_found"`
	RequiredFieldsPresent bool     `json:"required_fields_present"`
}

// Handler checks record collections against the declared schema. It never
// mutates its input.
type Handler struct {
	config *Config
	schema *Schema
	log    *logger.Handler
	metric *metrics.Handler
}

// NewHandler creates a new validation handler with configuration
func NewHandler(config *Config, log *logger.Handler, metric *metrics.Handler) (*Handler, error) {
	if config.Schema == nil {
		config.Schema = DefaultSchema()
	}
	if config.SampleSize < 0 {
		config.SampleSize = 0
	}
	if config.MaxErrors <= 0 {
		config.MaxErrors = 100
	}

	return &Handler{
		config: config,
		schema: config.Schema,
		log:    log,
		metric: metric,
	}, nil
}

// ValidateRecord checks a single collection entry and returns its error
// messages. A non-object entry yields a single error.
func (h *Handler) ValidateRecord(entry any, index int) []string {
	rec, ok := records.AsRecord(entry)
	if !ok {
		return []string{fmt.Sprintf("Record %d: not an object", index)}
	}

	var errs []string

	// Required fields: presence and kind
	for _, spec := range h.schema.Required {
		value, present := rec[spec.Name]
		if !present {
			errs = append(errs, fmt.Sprintf("Record %d: missing required field '%s'", index, spec.Name))
			continue
		}
		if !spec.Matches(value) {
			errs = append(errs, fmt.Sprintf("Record %d: field '%s' has wrong type (got %s, expected %s)",
				index, spec.Name, KindOf(value), spec.Expected()))
		}
	}

	// Optional fields: kind only, when present and non-null
	for _, spec := range h.schema.Optional {
		value, present := rec[spec.Name]
		if !present || value == nil {
			continue
		}
		if !spec.Matches(value) {
			errs = append(errs, fmt.Sprintf("Record %d: field '%s' has wrong type (got %s)",
				index, spec.Name, KindOf(value)))
		}
	}

	// Timestamp shape: a cheap structural check, not calendar validation
	if ts, ok := rec[h.schema.TimestampField].(string); ok && ts != "" {
		if !timestampShapeOK(ts) {
			errs = append(errs, fmt.Sprintf("Record %d: %s not in ISO8601 format: %s",
				index, h.schema.TimestampField, truncate(ts, 30)))
		}
	}

	return errs
}

// timestampShapeOK checks the minimal structure of a combined date/time
// string: hyphen-separated date, a literal T separator, and enough length
// for date, separator, and time.
func timestampShapeOK(ts string) bool {
	return len(ts) >= 19 && ts[4] == '-' && ts[7] == '-' && ts[10] == 'T'
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ValidateFile loads a container and validates its records. A sampleSize of
// 0 validates every record; otherwise the first sampleSize records are fully
// checked and the remainder only structurally. Error accumulation stops at
// the configured cap with a trailing truncation marker, while record
// counting and field/state discovery continue for the records scanned.
func (h *Handler) ValidateFile(path string, sampleSize int) (bool, *Report, []string) {
	collection, err := records.Load(path)
	if err != nil {
		return false, &Report{}, []string{err.Error()}
	}

	total := len(collection)
	checkCount := total
	if sampleSize > 0 && sampleSize < total {
		checkCount = sampleSize
	}

	if h.log != nil {
		h.log.Info().
			Str("path", path).
			Int("records", total).
			Int("full_checks", checkCount).
			Msg("validating records")
	}

	var errs []string
	fieldsFound := map[string]struct{}{}
	statesFound := map[string]struct{}{}
	capped := false

	for i := 0; i < checkCount; i++ {
		recordErrs := h.ValidateRecord(collection[i], i)
		errs = append(errs, recordErrs...)

		if h.metric != nil {
			for range recordErrs {
				h.metric.IncValidationErrors("field")
			}
		}

		if rec, ok := records.AsRecord(collection[i]); ok {
			for field := range rec {
				fieldsFound[field] = struct{}{}
			}
			if state, ok := rec[h.schema.StateField]; ok && state != nil {
				statesFound[fmt.Sprintf("%v", state)] = struct{}{}
			}
		}

		if len(errs) >= h.config.MaxErrors {
			errs = append(errs, fmt.Sprintf("... (stopped after %d errors)", h.config.MaxErrors))
			capped = true
			break
		}
	}

	// Remaining records only get a structural check
	if !capped && sampleSize > 0 && total > sampleSize {
		for i := sampleSize; i < total; i++ {
			if _, ok := records.AsRecord(collection[i]); !ok {
				errs = append(errs, fmt.Sprintf("Record %d: not an object", i))
				if h.metric != nil {
					h.metric.IncValidationErrors("structure")
				}
				if len(errs) >= h.config.MaxErrors {
					errs = append(errs, fmt.Sprintf("... (stopped after %d errors)", h.config.MaxErrors))
					break
				}
			}
		}
	}

	requiredPresent := true
	for _, spec := range h.schema.Required {
		if _, ok := fieldsFound[spec.Name]; !ok {
			requiredPresent = false
			break
		}
	}

	report := &Report{
		TotalRecords:          total,
		RecordsValidated:      checkCount,
		FieldsFound:           sortedKeys(fieldsFound),
		StatesFound:           sortedKeys(statesFound),
		RequiredFieldsPresent: requiredPresent,
	}

	if h.metric != nil {
		h.metric.AddRecordsValidated("full", checkCount)
		h.metric.AddRecordsValidated("structural", total-checkCount)
	}

	isValid := len(errs) == 0 && requiredPresent
	return isValid, report, errs
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
