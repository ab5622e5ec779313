package langreport

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var popColumnPattern = regexp.MustCompile(`^pop([0-9]+)_([0-9]{4})$`)

// ParseColumn extracts (slot, year) from a pop<slot>_<year> column name.
// The second return value is false for anything else, including slot 0 and years outside
// FirstYear..LastYear.
func ParseColumn(name string) (ColumnSpec, bool) {
	m := popColumnPattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return ColumnSpec{}, false
	}
	slot, err := strconv.Atoi(m[1])
	if err != nil || slot < 1 {
		return ColumnSpec{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil || !InRange(year) {
		return ColumnSpec{}, false
	}
	return ColumnSpec{Slot: slot, Year: year}, true
}

// InRange reports whether year is a report year.
func InRange(year int) bool {
	return year >= FirstYear && year <= LastYear
}

// Years returns FirstYear..LastYear in order.
func Years() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// SlotLabel formats a slot the way the source columns name it.
func SlotLabel(slot int) string {
	return fmt.Sprintf("pop%d", slot)
}

// MatchedColumn is a data column that will be reshaped.
type MatchedColumn struct {
	Index int
	Name  string
	Spec  ColumnSpec
}

// ColumnMap is the result of classifying a header row.
type ColumnMap struct {
	Matched   []MatchedColumn
	Unmatched []string
}

// Slots returns the distinct slots seen in matched columns, ascending.
func (m ColumnMap) Slots() []int {
	seen := make(map[int]bool)
	var slots []int
	for _, c := range m.Matched {
		if !seen[c.Spec.Slot] {
			seen[c.Spec.Slot] = true
			slots = append(slots, c.Spec.Slot)
		}
	}
	sort.Ints(slots)
	return slots
}

// ClassifyColumns walks headers once and splits them into reshaped and pass-through columns.
// The country column (index 0) is always pass-through.
func ClassifyColumns(headers []string) ColumnMap {
	var m ColumnMap
	for i, h := range headers {
		if i == 0 {
			m.Unmatched = append(m.Unmatched, h)
			continue
		}
		spec, ok := ParseColumn(h)
		if !ok {
			m.Unmatched = append(m.Unmatched, h)
			continue
		}
		m.Matched = append(m.Matched, MatchedColumn{Index: i, Name: strings.TrimSpace(h), Spec: spec})
	}
	return m
}

var (
	snakeSeparators = regexp.MustCompile(`[ /\\\-]`)
	snakeInvalid    = regexp.MustCompile(`[^a-z0-9_]`)
	snakeRepeats    = regexp.MustCompile(`_+`)
)

// SnakeCase turns a title into a file-name friendly identifier.
func SnakeCase(s string) string {
	s = strings.ToLower(s)
	s = snakeSeparators.ReplaceAllString(s, "_")
	s = snakeInvalid.ReplaceAllString(s, "")
	s = snakeRepeats.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
