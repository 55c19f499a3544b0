package sanitize

import (
	"testing"
)

func TestRedactor(t *testing.T) {
	redactor := NewRedactor()

	tests := []struct {
		name     string
		input    string
		expected string
		applied  bool
		rules    []string
	}{
		{
			name:     "Email address",
			input:    "contact me at a.b@example.com",
			expected: "contact me at [EMAIL]",
			applied:  true,
			rules:    []string{"email"},
		},
		{
			name:     "Home path",
			input:    "wrote /home/alice/output.txt",
			expected: "wrote /home/[USER]/output.txt",
			applied:  true,
			rules:    []string{"home_path"},
		},
		{
			name:     "User path",
			input:    "reading /users/bob/data.csv",
			expected: "reading /user/[USER]/data.csv",
			applied:  true,
			rules:    []string{"user_path"},
		},
		{
			name:     "User path case insensitive",
			input:    "reading /Users/Bob/data.csv",
			expected: "reading /user/[USER]/data.csv",
			applied:  true,
			rules:    []string{"user_path"},
		},
		{
			name:     "Multiple matches of one rule",
			input:    "a@b.com and c@d.org failed",
			expected: "[EMAIL] and [EMAIL] failed",
			applied:  true,
			rules:    []string{"email"},
		},
		{
			name:     "Multiple rules",
			input:    "user x@y.z in /home/carol reported an issue",
			expected: "user [EMAIL] in /home/[USER] reported an issue",
			applied:  true,
			rules:    []string{"email", "home_path"},
		},
		{
			name:     "No PII",
			input:    "tool exited with code 1",
			expected: "tool exited with code 1",
			applied:  false,
			rules:    []string{},
		},
		{
			name:     "Version-like token over-redacts by design",
			input:    "requires pkg@1.2.3 or newer",
			expected: "requires [EMAIL] or newer",
			applied:  true,
			rules:    []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, report := redactor.RedactText(tt.input)

			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}

			if report.Applied != tt.applied {
				t.Errorf("Expected Applied=%v, got %v", tt.applied, report.Applied)
			}

			if len(report.Rules) != len(tt.rules) {
				t.Errorf("Expected %d rules, got %d", len(tt.rules), len(report.Rules))
			}
		})
	}
}

func TestRedactorIdempotent(t *testing.T) {
	redactor := NewRedactor()

	inputs := []string{
		"contact me at a.b@example.com",
		"wrote /home/alice/output.txt and /users/bob/in.txt",
		"mixed x@y.z in /home/carol",
	}

	for _, input := range inputs {
		once, _ := redactor.RedactText(input)
		twice, _ := redactor.RedactText(once)

		if once != twice {
			t.Errorf("Redaction not idempotent: %q became %q", once, twice)
		}
	}
}

func TestRedactorPlaceholdersDoNotMatch(t *testing.T) {
	redactor := NewRedactor()

	placeholders := []string{"[EMAIL]", "/home/[USER]", "/user/[USER]"}
	for _, p := range placeholders {
		result, report := redactor.RedactText(p)
		if result != p {
			t.Errorf("Placeholder %q rewritten to %q", p, result)
		}
		if report.Applied {
			t.Errorf("Placeholder %q triggered rules %v", p, report.Rules)
		}
	}
}
