package validate

import (
	"math"
	"strings"
)

// Kind classifies a decoded JSON value for type checking. Integer and Float
// are distinguished even though encoding/json decodes both to float64: some
// identifier fields only admit integral values.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of a decoded JSON value.
func KindOf(value any) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return KindInt
		}
		return KindFloat
	case bool:
		return KindBool
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindObject
	}
}

// FieldSpec declares the acceptable kinds for one field.
type FieldSpec struct {
	Name  string
	Kinds []Kind
}

// Matches reports whether the value's kind is acceptable. An int value
// satisfies a float expectation, mirroring numeric widening in the source
// data.
func (f FieldSpec) Matches(value any) bool {
	kind := KindOf(value)
	for _, accepted := range f.Kinds {
		if kind == accepted {
			return true
		}
		if accepted == KindFloat && kind == KindInt {
			return true
		}
	}
	return false
}

// Expected renders the acceptable kinds for error messages.
func (f FieldSpec) Expected() string {
	names := make([]string, 0, len(f.Kinds))
	for _, k := range f.Kinds {
		names = append(names, k.String())
	}
	return strings.Join(names, " or ")
}

// Schema is the static field classification checked by the validator.
// Required fields must be present with an acceptable kind; optional fields
// are only checked when present and non-null. Immutable after construction.
type Schema struct {
	Required       []FieldSpec
	Optional       []FieldSpec
	TimestampField string
	StateField     string
}

// DefaultSchema returns the declared schema for job-execution error records.
func DefaultSchema() *Schema {
	return &Schema{
		Required: []FieldSpec{
			{Name: "id", Kinds: []Kind{KindInt, KindNull}},
			{Name: "create_time", Kinds: []Kind{KindString}},
			{Name: "tool_id", Kinds: []Kind{KindString, KindNull}},
			{Name: "state", Kinds: []Kind{KindString}},
		},
		Optional: []FieldSpec{
			{Name: "exit_code", Kinds: []Kind{KindInt, KindFloat, KindNull}},
			{Name: "tool_stderr", Kinds: []Kind{KindString, KindNull}},
			{Name: "tool_stdout", Kinds: []Kind{KindString, KindNull}},
			{Name: "tool_version", Kinds: []Kind{KindString, KindNull}},
			{Name: "destination_id", Kinds: []Kind{KindString, KindNull}},
			{Name: "user_id", Kinds: []Kind{KindInt, KindFloat, KindNull}},
			{Name: "job_stderr", Kinds: []Kind{KindString, KindNull}},
			{Name: "job_stdout", Kinds: []Kind{KindString, KindNull}},
			{Name: "handler", Kinds: []Kind{KindString, KindNull}},
			{Name: "update_time", Kinds: []Kind{KindString, KindNull}},
			{Name: "session_id", Kinds: []Kind{KindInt, KindNull}},
			{Name: "history_id", Kinds: []Kind{KindInt, KindNull}},
		},
		TimestampField: "create_time",
		StateField:     "state",
	}
}
