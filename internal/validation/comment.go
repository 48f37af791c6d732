package validation

import "strings"

// ValidateComment returns the trimmed comment content
func ValidateComment(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", newError("content", "Comment content is required")
	}
	return trimmed, nil
}
