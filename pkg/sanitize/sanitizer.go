package sanitize

import (
	"fmt"

	"github.com/nekrut/error-reports/pkg/records"
)

// Sanitizer applies the full redaction pipeline to individual records:
// pseudonymize the user identifier, drop removed fields, redact text fields.
type Sanitizer struct {
	fields   *Fields
	redactor *Redactor
	pseud    *Pseudonymizer
}

// NewSanitizer creates a sanitizer for the given field classification.
func NewSanitizer(fields *Fields) *Sanitizer {
	if fields == nil {
		fields = DefaultFields()
	}
	return &Sanitizer{
		fields:   fields,
		redactor: NewRedactor(),
		pseud:    NewPseudonymizer(),
	}
}

// SanitizeRecord sanitizes a single record in place and returns it along
// with a report of the redactions applied. Absent fields are a no-op;
// non-string text values are stringified before scanning. Never errors and
// performs no I/O.
func (s *Sanitizer) SanitizeRecord(rec records.Record) (records.Record, RedactionReport) {
	report := RedactionReport{Rules: []string{}}

	// Pseudonymize the user identifier
	if rec.Has(s.fields.UserID) {
		rec[s.fields.UserID] = s.pseud.HashID(rec[s.fields.UserID])
	}

	// Drop sensitive identifier fields
	for _, field := range s.fields.Removed {
		delete(rec, field)
	}

	// Redact text fields
	for _, field := range s.fields.RedactedText {
		value, ok := rec[field]
		if !ok || value == nil {
			continue
		}

		text, isString := value.(string)
		if isString && text == "" {
			continue
		}
		if !isString {
			text = fmt.Sprintf("%v", value)
		}

		redacted, fieldReport := s.redactor.RedactText(text)
		rec[field] = redacted

		if fieldReport.Applied {
			report.Applied = true
			report.Count += fieldReport.Count
			report.Rules = mergeRules(report.Rules, fieldReport.Rules)
		}
	}

	return rec, report
}

func mergeRules(into, from []string) []string {
	for _, rule := range from {
		found := false
		for _, existing := range into {
			if existing == rule {
				found = true
				break
			}
		}
		if !found {
			into = append(into, rule)
		}
	}
	return into
}
