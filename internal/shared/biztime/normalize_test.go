package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"canonical", "03/04/2024", "03/04/2024"},
		{"unpadded", "3/4/2024", "03/04/2024"},
		{"iso", "2024-03-04", "03/04/2024"},
		{"iso with time", "2024-03-04 10:30:00", "03/04/2024"},
		{"rfc3339", "2024-03-04T10:30:00Z", "03/04/2024"},
		{"two digit year", "03/04/24", "03/04/2024"},
		{"spreadsheet default", "03-04-24", "03/04/2024"},
		{"month name", "Mar 4, 2024", "03/04/2024"},
		{"lower month name", "march 4, 2024", "03/04/2024"},
		{"upper month abbreviation", "04-MAR-2024", "03/04/2024"},
		{"surrounding whitespace", "  2024-03-04  ", "03/04/2024"},
		{"unparseable truncated", "sometime next week", "sometime n"},
		{"unparseable short", "asap", "asap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestNormalizeDateValue(t *testing.T) {
	ts := time.Date(2024, time.December, 25, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "12/25/2024", NormalizeDateValue(ts))
	assert.Equal(t, "12/25/2024", NormalizeDateValue(&ts))
	assert.Equal(t, "12/25/2024", NormalizeDateValue("2024-12-25"))
	assert.Equal(t, "", NormalizeDateValue(nil))
	assert.Equal(t, "", NormalizeDateValue(time.Time{}))
	assert.Equal(t, "", NormalizeDateValue((*time.Time)(nil)))
	assert.Equal(t, "", NormalizeDateValue(42))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"canonical", "3:30 PM", "3:30 PM"},
		{"leading zero removed", "09:15 AM", "9:15 AM"},
		{"lower case meridiem", "9:15 am", "9:15 AM"},
		{"no space", "4:00PM", "4:00 PM"},
		{"hour only", "5 PM", "5:00 PM"},
		{"24 hour", "17:45", "5:45 PM"},
		{"24 hour with seconds", "08:05:00", "8:05 AM"},
		{"noon", "12:00", "12:00 PM"},
		{"datetime", "2024-03-04 14:00:00", "2:00 PM"},
		{"midnight", "00:00", ""},
		{"midnight datetime", "2024-03-04 00:00:00", ""},
		{"garbage", "after lunch", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.raw))
		})
	}
}

func TestNormalizeTimeValue(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 13, 5, 0, 0, time.UTC)

	assert.Equal(t, "1:05 PM", NormalizeTimeValue(ts))
	assert.Equal(t, "1:05 PM", NormalizeTimeValue(&ts))
	assert.Equal(t, "", NormalizeTimeValue(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", NormalizeTimeValue(nil))
	assert.Equal(t, "1:05 PM", NormalizeTimeValue("13:05"))
}
