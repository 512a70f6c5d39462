package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength          = 128
	MaxNameLength        = 256
	MaxDescriptionLength = 2048
	MaxURLLength         = 2048
	MaxVersionLength     = 64
)

var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores and dots
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	// VersionPattern is a loose semantic version
	VersionPattern = regexp.MustCompile(`^v?[0-9]+(\.[0-9]+){0,2}([-+][0-9A-Za-z.-]+)?$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an identifier such as an application name
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateName validates a display name
func ValidateName(name, fieldName string, required bool) error {
	return ValidateString(name, fieldName, 1, MaxNameLength, required)
}

// ValidateDescription validates a description field
func ValidateDescription(description, fieldName string, required bool) error {
	return ValidateString(description, fieldName, 0, MaxDescriptionLength, required)
}

// ValidateURL validates a resource URL or path
func ValidateURL(url, fieldName string, required bool) error {
	if err := ValidateString(url, fieldName, 1, MaxURLLength, required); err != nil {
		return err
	}
	if strings.ContainsAny(url, " \t\r\n") {
		return fmt.Errorf("%s must not contain whitespace", fieldName)
	}
	return nil
}

// ValidateVersion validates an optional version string
func ValidateVersion(version string) error {
	if err := ValidateString(version, "version", 1, MaxVersionLength, false); err != nil {
		return err
	}
	if version != "" && !VersionPattern.MatchString(version) {
		return fmt.Errorf("version %q is not a valid version", version)
	}
	return nil
}
