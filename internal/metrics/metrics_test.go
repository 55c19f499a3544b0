package metrics

import (
	"testing"
	"time"
)

func TestMetricsHandler(t *testing.T) {
	handler, err := New("test")
	if err != nil {
		t.Fatalf("Failed to create metrics handler: %v", err)
	}

	// Test redaction counters
	handler.AddRedactions("email", 2)
	handler.AddRedactions("home_path", 1)
	handler.AddRedactions("email", 1) // Should accumulate

	// Test sanitization counters
	handler.IncRecordsSanitized("sanitized")
	handler.IncRecordsSanitized("skipped")
	handler.IncFieldsRemoved("session_id")

	// Test validation counters
	handler.IncValidationErrors("field")
	handler.IncValidationErrors("structure")
	handler.AddRecordsValidated("full", 100)
	handler.AddRecordsValidated("structural", 900)

	// Test latency histogram
	handler.ObservePipelineLatency(100*time.Millisecond, "sanitize", true)
	handler.ObservePipelineLatency(200*time.Millisecond, "validate", false)

	// If we get here without panicking, the metrics are working
	t.Log("All metrics operations completed successfully")
}
