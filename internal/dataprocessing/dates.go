package dataprocessing

import (
	"fmt"
	"strings"
	"time"
)

// DateFixups maps malformed date strings known to exist in the source data
// to their corrected form.
var DateFixups = map[string]string{
	"05/072018":   "05/07/2018",
	"01/07/015":   "01/07/2015",
	"22/01//2015": "22/01/2015",
}

// dateLayouts are tried in order. Numeric dates are day-first.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// ParseDate applies the fix-up table and parses the value with the first
// matching layout. The result is truncated to a UTC calendar date.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if fixed, ok := DateFixups[value]; ok {
		value = fixed
	}
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}
