package sanitize

import (
	"regexp"
)

// RedactionReport records which rules fired while redacting a record.
type RedactionReport struct {
	Applied bool     `json:"applied"`
	Rules   []string `json:"rules"`
	Count   int      `json:"count"`
}

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Redactor rewrites PII patterns inside free text using compiled regexes.
type Redactor struct {
	rules map[string]redactionRule
}

// NewRedactor creates a new redactor with compiled regexes
func NewRedactor() *Redactor {
	return &Redactor{
		rules: map[string]redactionRule{
			// Email-like tokens. Deliberately broad: any non-whitespace run
			// with an @ and a later dot. Over-redacting version-like tokens
			// is preferred to under-redacting real addresses.
			"email": {
				pattern:     regexp.MustCompile(`\S+@\S+\.\S+`),
				replacement: "[EMAIL]",
			},

			// Home directory paths
			"home_path": {
				pattern:     regexp.MustCompile(`/home/[a-zA-Z0-9_.-]+`),
				replacement: "/home/[USER]",
			},

			// Generic /user/<name> or /users/<name> paths
			"user_path": {
				pattern:     regexp.MustCompile(`(?i)/users?/[a-zA-Z0-9_.-]+`),
				replacement: "/user/[USER]",
			},
		},
	}
}

// ruleOrder fixes the order rules are applied in. Emails go first so a path
// embedded in an address token is swallowed by the email placeholder.
var ruleOrder = []string{"email", "home_path", "user_path"}

// RedactText replaces every match of every rule, left to right, and returns
// the redacted text with a report of the rules that fired. Placeholders do
// not re-match any rule, so redaction is idempotent.
func (r *Redactor) RedactText(text string) (string, RedactionReport) {
	report := RedactionReport{
		Applied: false,
		Rules:   []string{},
		Count:   0,
	}

	redacted := text

	for _, ruleName := range ruleOrder {
		rule := r.rules[ruleName]
		matches := rule.pattern.FindAllStringIndex(redacted, -1)

		if len(matches) > 0 {
			report.Applied = true
			report.Rules = append(report.Rules, ruleName)
			report.Count += len(matches)

			redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
		}
	}

	return redacted, report
}
