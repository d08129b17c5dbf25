package validation

import (
	"reflect"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		score    int
		feedback []string
	}{
		{"", 0, []string{FeedbackLength, FeedbackLower, FeedbackUpper, FeedbackDigit, FeedbackSpecial}},
		{"Password123!", 5, []string{}},
		{"password", 2, []string{FeedbackUpper, FeedbackDigit, FeedbackSpecial}},
		{"PASSWORD", 2, []string{FeedbackLower, FeedbackDigit, FeedbackSpecial}},
		{"Pass1!", 4, []string{FeedbackLength}},
		{"12345678", 2, []string{FeedbackLower, FeedbackUpper, FeedbackSpecial}},
		{"@@@", 1, []string{FeedbackLength, FeedbackLower, FeedbackUpper, FeedbackDigit}},
	}

	for _, tc := range cases {
		got := ValidatePasswordStrength(tc.password)
		if got.Score != tc.score {
			t.Errorf("score(%q) = %d, want %d", tc.password, got.Score, tc.score)
		}
		if !reflect.DeepEqual(got.Feedback, tc.feedback) {
			t.Errorf("feedback(%q) = %v, want %v", tc.password, got.Feedback, tc.feedback)
		}
		if got.Score+len(got.Feedback) != MaxStrengthScore {
			t.Errorf("score and feedback of %q do not add up: %+v", tc.password, got)
		}
	}
}

func TestStrengthLabel(t *testing.T) {
	want := map[int]string{0: "Weak", 1: "Weak", 2: "Weak", 3: "Fair", 4: "Good", 5: "Strong"}
	for score, label := range want {
		if got := StrengthLabel(score); got != label {
			t.Errorf("StrengthLabel(%d) = %q, want %q", score, got, label)
		}
	}
}

func TestValidateForm(t *testing.T) {
	if got := ValidateForm(map[string]string{}); !got.Valid {
		t.Fatalf("expected empty form to pass, got %+v", got)
	}
	if got := ValidateForm(map[string]string{"name": "Jane", "email": "jane@example.com"}); !got.Valid {
		t.Fatalf("expected filled form to pass, got %+v", got)
	}

	got := ValidateForm(map[string]string{"name": "", "email": "  ", "password": "x"})
	if got.Valid || got.Message != "email is required" {
		t.Fatalf("expected first blank field by name, got %+v", got)
	}
}
