// Package biztime normalizes the date and time strings found on tickets
// into the display forms the shop uses: MM/DD/YYYY for dates and
// "3:04 PM" for due times. Values are kept as display strings; no
// timezone conversion is applied.
package biztime

import (
	"strings"
	"time"
)

const (
	// DateLayout is the canonical stored form of ticket dates.
	DateLayout = "01/02/2006"
	// TimeLayout is the canonical stored form of due times.
	TimeLayout = "3:04 PM"

	dateFallbackLen = 10
)

// dateLayouts are tried in order after the canonical forms.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"01-02-06",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
}

var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04:05PM",
	"3 PM",
	"3PM",
	"15:04",
	"15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
}

// NormalizeDate renders raw as MM/DD/YYYY. Empty input yields "". Input
// no layout accepts is returned as its first ten characters.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if t, ok := parseDate(s); ok {
		return t.Format(DateLayout)
	}

	return truncate(s, dateFallbackLen)
}

// NormalizeDateValue is NormalizeDate for cell values that may already be
// structured.
func NormalizeDateValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case string:
		return NormalizeDate(val)
	case interface{ String() string }:
		return NormalizeDate(val.String())
	default:
		return ""
	}
}

// NormalizeTime renders raw as "H:MM AM/PM" without a leading zero. It
// returns "" for empty input, input it cannot parse and midnight, which
// spreadsheets emit for date-only cells.
func NormalizeTime(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatTime(t)
		}
	}
	return ""
}

// NormalizeTimeValue is NormalizeTime for cell values that may already be
// structured.
func NormalizeTimeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return formatTime(val)
	case *time.Time:
		if val == nil {
			return ""
		}
		return formatTime(*val)
	case string:
		return NormalizeTime(val)
	case interface{ String() string }:
		return NormalizeTime(val.String())
	default:
		return ""
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Month names are matched case-sensitively by time.Parse.
	if titled := titleMonth(s); titled != s {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, titled); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return ""
	}
	return t.Format(TimeLayout)
}

// titleMonth upper-cases the first letter of each alphabetic run so that
// "jan 5, 2024" and "05-JAN-2024" match the month-name layouts.
func titleMonth(s string) string {
	b := []byte(strings.ToLower(s))
	start := true
	for i, c := range b {
		isLetter := c >= 'a' && c <= 'z'
		if isLetter && start {
			b[i] = c - 'a' + 'A'
		}
		start = !isLetter
	}
	return string(b)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
