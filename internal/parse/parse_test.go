package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"maintenance-backend/internal/model"
)

func TestFrequency(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  model.Frequency
		expectErr bool
	}{
		{name: "Canonical", raw: "Monthly", expected: model.FrequencyMonthly},
		{name: "Lower case", raw: "daily", expected: model.FrequencyDaily},
		{name: "Dashed", raw: "Half-Yearly", expected: model.FrequencyHalfYearly},
		{name: "Spaced", raw: "half yearly", expected: model.FrequencyHalfYearly},
		{name: "Underscored upper case", raw: "HALF_YEARLY", expected: model.FrequencyHalfYearly},
		{name: "Padded", raw: "  Yearly ", expected: model.FrequencyYearly},
		{name: "Empty", raw: "", expectErr: true},
		{name: "Unknown", raw: "Fortnightly", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Frequency(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)

	testCases := []struct {
		name      string
		raw       string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "Plain date in location",
			raw:      "2025-01-15",
			expected: time.Date(2025, 1, 14, 17, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 keeps its own zone",
			raw:      "2025-01-15T00:00:00Z",
			expected: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Local timestamp",
			raw:      "2025-01-15 08:30:00",
			expected: time.Date(2025, 1, 15, 1, 30, 0, 0, time.UTC),
		},
		{name: "Empty", raw: " ", expectErr: true},
		{name: "Garbage", raw: "15/01/2025", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw, loc)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestPagination(t *testing.T) {
	p := Pagination("", "", "")
	assert.Equal(t, Page{Index: 1, Size: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = Pagination("3", "25", "false")
	assert.Equal(t, Page{Index: 3, Size: 25}, p)
	assert.Equal(t, 50, p.Offset())

	p = Pagination("-1", "100000", "true")
	assert.Equal(t, Page{Index: 1, Size: 200, All: true}, p)
}

func TestYear(t *testing.T) {
	y, err := Year("", 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2025, y)

	y, err = Year("2030", 2025)
	assert.NoError(t, err)
	assert.Equal(t, 2030, y)

	_, err = Year("twenty", 2025)
	assert.Error(t, err)
}
