package records

// Record represents a single job-execution error event. The schema is open:
// fields beyond the known classification pass through untouched.
type Record map[string]any

// Collection is the decoded container payload, one entry per array element.
// Entries are normally Record objects, but a malformed container may carry
// non-object elements; the validator reports those per index instead of
// failing the whole load.
type Collection []any

// AsRecord returns the entry as a Record if it is a JSON object.
func AsRecord(v any) (Record, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(m), true
}

// Has reports whether the field is present, regardless of its value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}
