package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
)

// DateLayout is the calendar date format accepted alongside RFC3339.
const DateLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps or YYYY-MM-DD dates (midnight UTC).
// endOfDay moves a bare date to its last instant so it can close an inclusive range.
func ParseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid date '%s', expected RFC3339 or YYYY-MM-DD", s))
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// ParseOptionalDate is ParseDate for optional values; empty input yields nil.
func ParseOptionalDate(s string, endOfDay bool) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s, endOfDay)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
