package attention

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate marks a date token that is not a valid ROC calendar date.
var ErrMalformedDate = errors.New("malformed ROC date")

// rocYearOffset converts a ROC (民國) year to the common era.
const rocYearOffset = 1911

// ParseROCDate parses a ROC-calendar date token into a canonical UTC date.
// Both separators the venues emit are accepted: "114/01/21" and "114.01.21".
func ParseROCDate(token string) (time.Time, error) {
	text := strings.ReplaceAll(CleanText(token), ".", "/")

	var parts []string
	for _, p := range strings.Split(text, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, token)
	}

	numbers := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, token)
		}
		numbers[i] = n
	}

	year := numbers[0] + rocYearOffset
	month, day := numbers[1], numbers[2]

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. month 13), so round-trip to reject
	// tokens that do not denote a real calendar date.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, token)
	}
	return date, nil
}

// DistinctDates returns the distinct dates present in rows, newest first.
func DistinctDates(rows []Row) []time.Time {
	seen := make(map[time.Time]struct{}, len(rows))
	var dates []time.Time
	for _, row := range rows {
		if _, ok := seen[row.Date]; ok {
			continue
		}
		seen[row.Date] = struct{}{}
		dates = append(dates, row.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}

// LatestDates returns at most n of the most recent distinct dates in rows,
// newest first.
func LatestDates(rows []Row, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	dates := DistinctDates(rows)
	if len(dates) > n {
		dates = dates[:n]
	}
	return dates
}

// FilterByLatestDates restricts rows to those dated within the latest n
// distinct dates, returning the surviving rows and the dates themselves.
func FilterByLatestDates(rows []Row, n int) ([]Row, []time.Time) {
	latest := LatestDates(rows, n)
	if len(latest) == 0 {
		return nil, nil
	}
	keep := make(map[time.Time]struct{}, len(latest))
	for _, d := range latest {
		keep[d] = struct{}{}
	}
	var filtered []Row
	for _, row := range rows {
		if _, ok := keep[row.Date]; ok {
			filtered = append(filtered, row)
		}
	}
	return filtered, latest
}
