package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"maintenance-backend/internal/model"
)

var separatorRe = regexp.MustCompile(`[\s_-]+`)

// Frequency parses a frequency name leniently: case, spaces, dashes and
// underscores are ignored, so "half yearly" and "HALF_YEARLY" both match.
func Frequency(raw string) (model.Frequency, error) {
	key := normalize(raw)
	if key == "" {
		return "", fmt.Errorf("frequency is required")
	}
	for _, f := range model.Frequencies {
		if normalize(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q", raw)
}

func normalize(s string) string {
	return strings.ToLower(separatorRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date parses a calendar date or timestamp. Values without a zone are read in
// loc. The result is returned in UTC.
func Date(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range dateLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", raw)
}

// Page holds 1-based pagination parameters.
type Page struct {
	Index int
	Size  int
	All   bool
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Index - 1) * p.Size
}

const (
	defaultPageSize = 10
	maxPageSize     = 200
)

// Pagination reads pageIndex, pageSize and getAll values. Missing or invalid
// numbers fall back to the first page of the default size.
func Pagination(pageIndex, pageSize, getAll string) Page {
	p := Page{Index: 1, Size: defaultPageSize}
	if n, err := strconv.Atoi(pageIndex); err == nil && n > 0 {
		p.Index = n
	}
	if n, err := strconv.Atoi(pageSize); err == nil && n > 0 {
		p.Size = n
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if b, err := strconv.ParseBool(getAll); err == nil {
		p.All = b
	}
	return p
}

// Year parses a calendar year, returning fallback when raw is empty.
func Year(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || y < 1970 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return y, nil
}
