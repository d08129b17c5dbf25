package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxStrengthScore is the best possible ValidatePasswordStrength score.
const MaxStrengthScore = 5

// Strength is an additive 0..5 password score plus the unmet checks.
type Strength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// ValidatePasswordStrength awards one point per satisfied check. Feedback
// lists the failed checks in a fixed order.
func ValidatePasswordStrength(password string) Strength {
	checks := []struct {
		pass     bool
		feedback string
	}{
		{utf8.RuneCountInString(password) >= strongMinLength, FeedbackLength},
		{lowerRegex.MatchString(password), FeedbackLower},
		{upperRegex.MatchString(password), FeedbackUpper},
		{digitRegex.MatchString(password), FeedbackDigit},
		{specialRegex.MatchString(password), FeedbackSpecial},
	}

	s := Strength{Feedback: []string{}}
	for _, c := range checks {
		if c.pass {
			s.Score++
			continue
		}
		s.Feedback = append(s.Feedback, c.feedback)
	}
	return s
}

// StrengthLabel buckets a score for display.
func StrengthLabel(score int) string {
	switch {
	case score <= 2:
		return "Weak"
	case score == 3:
		return "Fair"
	case score == 4:
		return "Good"
	default:
		return "Strong"
	}
}

// ValidateForm fails on the first blank field, by field name order.
func ValidateForm(fields map[string]string) Result {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.TrimSpace(fields[name]) == "" {
			return fail(fmt.Sprintf("%s is required", name))
		}
	}
	return ok()
}
