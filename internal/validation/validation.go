package validation

import (
	"fmt"
	"unicode/utf8"
)

// MaxCommentLength is the longest comment accepted, in characters
const MaxCommentLength = 1000

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCommentText checks an already trimmed, non-blank comment body
func ValidateCommentText(text string) error {
	if !utf8.ValidString(text) {
		return ValidationError{Field: "text", Message: "text must be valid UTF-8"}
	}
	if n := utf8.RuneCountInString(text); n > MaxCommentLength {
		return ValidationError{Field: "text", Message: fmt.Sprintf("text must be at most %d characters, got %d", MaxCommentLength, n)}
	}
	return nil
}
