// Package validate holds the field-level checks shared by the record
// managers. Every check is a pure function returning a typed validation
// error whose message names the offending field; handlers surface the
// message verbatim.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/castkeep/publisher-api/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Required fails when value is empty or whitespace-only.
func Required(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errors.MissingFieldError(field)
	}
	return nil
}

// Email fails when value is not a plausible email address.
func Email(value string) error {
	if !emailPattern.MatchString(value) {
		return errors.ValidationError("email", fmt.Sprintf("'%s' is not a valid email address", value))
	}
	return nil
}

// Length fails when value is shorter than min or longer than max runes.
// A max of 0 means unbounded.
func Length(value, field string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return errors.ValidationError(field, fmt.Sprintf("must be at least %d characters", min))
	}
	if max > 0 && n > max {
		return errors.ValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}

// OneOf fails when value is not among the allowed set. Comparison is
// case-insensitive; callers normalize before storing.
func OneOf(value, field string, allowed ...string) error {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if lower == a {
			return nil
		}
	}
	return errors.ValidationError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}
