package validate

import (
	"fmt"
	"regexp"
	"strings"

	"eduaid-backend/internal/services"
)

const (
	MaxTextLength = 50000
	MinQuestions  = 1
	MaxQuestions  = 50
	MaxBatchItems = 100
)

// YouTube video IDs are canonically 11 chars; accept 6-20 to cover shorts
// and legacy IDs while rejecting anything that could smuggle path segments.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

var questionTypes = map[string]bool{
	"get_shortq": true,
	"get_mcq":    true,
	"get_boolq":  true,
	"":           true,
}

// Text trims s and bounds-checks it against maxLen. Pass 0 for the default cap.
func Text(s string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = MaxTextLength
	}
	if len(s) > maxLen {
		return "", &services.ValidationError{Message: fmt.Sprintf("Input exceeds maximum length of %d characters", maxLen)}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &services.ValidationError{Message: "Input text cannot be empty"}
	}
	return trimmed, nil
}

// Count checks n against [min, max].
func Count(n, min, max int) (int, error) {
	if n < min || n > max {
		return 0, &services.ValidationError{Message: fmt.Sprintf("max_questions must be between %d and %d", min, max)}
	}
	return n, nil
}

// ListPair checks two parallel lists for equal length and the batch cap.
func ListPair(a, b int) error {
	if a != b {
		return &services.ValidationError{Message: "Questions and options length mismatch"}
	}
	if a > MaxBatchItems {
		return &services.ValidationError{Message: fmt.Sprintf("Too many questions (max %d)", MaxBatchItems)}
	}
	return nil
}

// BatchSize checks a single list against the batch cap.
func BatchSize(n int) error {
	if n > MaxBatchItems {
		return &services.ValidationError{Message: fmt.Sprintf("Too many questions (max %d)", MaxBatchItems)}
	}
	return nil
}

// VideoID checks the YouTube video ID shape.
func VideoID(s string) error {
	if !videoIDPattern.MatchString(s) {
		return &services.ValidationError{Message: "Invalid video ID format"}
	}
	return nil
}

// QuestionType checks membership in the form question-type enum.
func QuestionType(s string) error {
	if !questionTypes[s] {
		return &services.ValidationError{Message: "Invalid question type"}
	}
	return nil
}
