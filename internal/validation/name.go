package validation

import (
	"strings"
	"unicode/utf8"
)

const maxDisplayNameLength = 100

// ValidateDisplayName validates a profile display name when one is supplied
func ValidateDisplayName(name *string) error {
	if name == nil {
		return nil
	}

	if utf8.RuneCountInString(strings.TrimSpace(*name)) > maxDisplayNameLength {
		return newError("display_name", "Display name is too long (max 100 characters)")
	}

	return nil
}
