package playground

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"
)

// MaxCodeLength is the largest program, in characters, accepted for running
// or sharing.
const MaxCodeLength = 100000

var (
	ErrCodeTooLong      = errors.New("code exceeds maximum length")
	ErrSuspiciousCode   = errors.New("code contains a disallowed pattern")
	ErrInvalidParameter = errors.New("invalid code parameter")
)

var suspiciousPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"<script", regexp.MustCompile(`(?i)<script`)},
	{"javascript:", regexp.MustCompile(`(?i)javascript:`)},
	{"data:text/html", regexp.MustCompile(`(?i)data:text/html`)},
	{"vbscript:", regexp.MustCompile(`(?i)vbscript:`)},
}

// ValidateCode rejects oversized code and code carrying markup-injection
// patterns.
func ValidateCode(code string) error {
	if utf8.RuneCountInString(code) > MaxCodeLength {
		return fmt.Errorf("%w (%d characters)", ErrCodeTooLong, MaxCodeLength)
	}
	for _, p := range suspiciousPatterns {
		if p.re.MatchString(code) {
			return fmt.Errorf("%w: %s", ErrSuspiciousCode, p.name)
		}
	}
	return nil
}

// SanitizeURLParameter unescapes a percent-encoded code parameter and
// validates the result.
func SanitizeURLParameter(param string) (string, error) {
	if param == "" {
		return "", ErrInvalidParameter
	}
	decoded, err := url.PathUnescape(param)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if err := ValidateCode(decoded); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return decoded, nil
}

// CodeFromQuery extracts and sanitizes the code parameter of a raw query
// string. ok is false when the query carries no code.
func CodeFromQuery(rawQuery string) (code string, ok bool, err error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	param := values.Get("code")
	if param == "" {
		return "", false, nil
	}
	// ParseQuery already unescaped the value once; validate it as is.
	if err := ValidateCode(param); err != nil {
		return "", true, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return param, true, nil
}
