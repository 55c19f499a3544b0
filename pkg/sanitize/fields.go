package sanitize

// Fields is the static classification of sensitive fields. It is built once
// at startup and read-only afterwards.
type Fields struct {
	// UserID is the acting-user identifier field, replaced by a
	// deterministic hash-derived integer.
	UserID string `json:"user_id" yaml:"user_id"`

	// Removed fields are identifiers too sensitive to retain in any form.
	Removed []string `json:"removed" yaml:"removed"`

	// RedactedText fields are free-text fields scanned for PII patterns.
	RedactedText []string `json:"redacted_text" yaml:"redacted_text"`
}

// DefaultFields returns the standard classification for job-execution error
// records.
func DefaultFields() *Fields {
	return &Fields{
		UserID: "user_id",
		Removed: []string{
			"session_id",
			"history_id",
		},
		RedactedText: []string{
			"command_line",
			"tool_stderr",
			"tool_stdout",
			"job_stderr",
			"job_stdout",
			"traceback",
			"info",
		},
	}
}
