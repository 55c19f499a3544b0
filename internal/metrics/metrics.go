package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Handler struct {
	RecordsSanitized      *prometheus.CounterVec
	RedactionsTotal       *prometheus.CounterVec
	FieldsRemovedTotal    *prometheus.CounterVec
	ValidationErrorsTotal *prometheus.CounterVec
	RecordsValidated      *prometheus.CounterVec
	PipelineLatency       *prometheus.HistogramVec
}

type Options struct {
	// Additional labels necessary
}

func New(name string) (*Handler, error) {
	return &Handler{
		RecordsSanitized: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sanitize_records_total",
			Help: "The total number of records sanitized",
		}, []string{"status"}),
		RedactionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pii_redactions_total",
			Help: "The total number of PII redactions applied, by rule",
		}, []string{"rule"}),
		FieldsRemovedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sensitive_fields_removed_total",
			Help: "The total number of sensitive identifier fields dropped",
		}, []string{"field"}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_errors_total",
			Help: "The total number of validation errors accumulated",
		}, []string{"kind"}),
		RecordsValidated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_records_total",
			Help: "The total number of records checked by the validator",
		}, []string{"mode"}),
		PipelineLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_latency_seconds",
			Help:    "The latency of full pipeline runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"pipeline", "success"}),
	}, nil
}

// IncRecordsSanitized increments the sanitized records counter
func (h *Handler) IncRecordsSanitized(status string) {
	h.RecordsSanitized.WithLabelValues(status).Inc()
}

// AddRedactions adds to the redaction counter for a rule
func (h *Handler) AddRedactions(rule string, n int) {
	h.RedactionsTotal.WithLabelValues(rule).Add(float64(n))
}

// IncFieldsRemoved increments the removed fields counter
func (h *Handler) IncFieldsRemoved(field string) {
	h.FieldsRemovedTotal.WithLabelValues(field).Inc()
}

// IncValidationErrors increments the validation errors counter
func (h *Handler) IncValidationErrors(kind string) {
	h.ValidationErrorsTotal.WithLabelValues(kind).Inc()
}

// AddRecordsValidated adds to the validated records counter
func (h *Handler) AddRecordsValidated(mode string, n int) {
	h.RecordsValidated.WithLabelValues(mode).Add(float64(n))
}

// ObservePipelineLatency records the latency of a pipeline run
func (h *Handler) ObservePipelineLatency(duration time.Duration, pipeline string, success bool) {
	successStr := "true"
	if !success {
		successStr = "false"
	}
	h.PipelineLatency.WithLabelValues(pipeline, successStr).Observe(duration.Seconds())
}
