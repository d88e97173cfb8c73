package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/itlightning/dateparse"
)

const (
	isoDateLayout  = "2006-01-02"
	wireDateLayout = "02-01-2006"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// NormalizeDate turns a day-first "DD-MM-YYYY" string into midnight UTC of that day.
func NormalizeDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, newValidationError(InvalidDate, FieldDate, "date must be DD-MM-YYYY")
	}

	day, month, year := parts[0], parts[1], parts[2]
	t, err := time.ParseInLocation(isoDateLayout, year+"-"+month+"-"+day, time.UTC)
	if err != nil {
		return time.Time{}, newValidationError(InvalidDate, FieldDate, "date is not a valid calendar day")
	}

	return t, nil
}

// FormatDate renders t in the wire format accepted by NormalizeDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(wireDateLayout)
}

func ValidTime(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseBoundDate parses a date-range bound. ISO dates, the day-first wire
// format and anything else dateparse recognises are accepted, read as UTC.
func ParseBoundDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(isoDateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := NormalizeDate(s); err == nil {
		return t, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
