package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_Fixups(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{input: "05/072018", expected: date(2018, time.July, 5)},
		{input: "01/07/015", expected: date(2015, time.July, 1)},
		{input: "22/01//2015", expected: date(2015, time.January, 22)},
		{input: " 05/072018 ", expected: date(2018, time.July, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_Layouts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "day first slashes", input: "13/05/2019", expected: date(2019, time.May, 13)},
		{name: "unpadded", input: "5/3/2017", expected: date(2017, time.March, 5)},
		{name: "dashes", input: "09-10-2016", expected: date(2016, time.October, 9)},
		{name: "dots", input: "09.10.2016", expected: date(2016, time.October, 9)},
		{name: "iso", input: "2019-05-13", expected: date(2019, time.May, 13)},
		{name: "rfc3339", input: "2019-05-13T10:30:00Z", expected: date(2019, time.May, 13)},
		{name: "month name", input: "Jan 2, 2016", expected: date(2016, time.January, 2)},
		{name: "day month name", input: "2 January 2016", expected: date(2016, time.January, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "32/13/2019", "yesterday", "12/2019"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "1000000", expected: "1000000"},
		{input: "1,50,000", expected: "150000"},
		{input: "$2,500.75", expected: "2500.75"},
		{input: "", expected: "0"},
		{input: "0", expected: "0"},
		{input: "-5", wantErr: true},
		{input: "unknown", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}
