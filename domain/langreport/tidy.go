package langreport

import (
	"sort"
	"strings"
)

// Reshape melts the wide table into tidy records, row-major in column order.
// Blank cells and rows without a country are skipped.
func Reshape(t *RawTable, cols ColumnMap) ([]TidyRecord, Stats) {
	st := Stats{
		RawRows:          len(t.Rows),
		MatchedColumns:   len(cols.Matched),
		UnmatchedColumns: len(cols.Unmatched),
	}
	tidy := make([]TidyRecord, 0, len(t.Rows)*len(cols.Matched))
	for r := range t.Rows {
		country := strings.TrimSpace(t.Cell(r, 0))
		if country == "" {
			st.BlankCountries++
			continue
		}
		for _, c := range cols.Matched {
			lang := strings.TrimSpace(t.Cell(r, c.Index))
			if lang == "" {
				st.BlankCells++
				continue
			}
			tidy = append(tidy, TidyRecord{
				Country:  country,
				Year:     c.Spec.Year,
				Slot:     c.Spec.Slot,
				Language: lang,
			})
		}
	}
	st.TidyRows = len(tidy)
	return tidy, st
}

// Transform runs the whole pipeline on a raw table. The input is not modified.
func Transform(t *RawTable) *Report {
	cols := ClassifyColumns(t.Headers)
	tidy, st := Reshape(t, cols)
	return &Report{
		Columns: cols,
		Tidy:    tidy,
		ByYear:  AggregateByYear(tidy),
		Overall: AggregateOverall(tidy),
		ByRank:  AggregateByRank(tidy),
		Stats:   st,
	}
}

// SortTidy returns a copy of records in (year, country, slot, language) order.
func SortTidy(records []TidyRecord) []TidyRecord {
	out := make([]TidyRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		return a.Language < b.Language
	})
	return out
}
