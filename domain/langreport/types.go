package langreport

// Report years covered by the source data. Columns outside this range are not reshaped.
const (
	FirstYear = 2020
	LastYear  = 2025
)

// CountryColumn is the name given to the first (identifier) column of the data sheet.
const CountryColumn = "country"

// RawTable is the wide-format data sheet: one row per country, cells addressed by header index.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at row r, column c, or "" when the row is short.
func (t *RawTable) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Overview holds the free-form overview sheet. It is carried through to the summary only.
type Overview struct {
	Headers []string
	Rows    [][]string
}

// Workbook is everything loaded from one source file.
type Workbook struct {
	SourcePath string
	Data       RawTable
	Overview   *Overview
}

// ColumnSpec is what a pop<slot>_<year> column name encodes.
type ColumnSpec struct {
	Slot int
	Year int
}

// Label returns the rank label used in charts, e.g. "pop1".
func (c ColumnSpec) Label() string {
	return SlotLabel(c.Slot)
}

// TidyRecord is one observation: the language reported by a country at a rank in a year.
type TidyRecord struct {
	Country  string `json:"country" db:"country"`
	Year     int    `json:"year" db:"year"`
	Slot     int    `json:"slot" db:"slot"`
	Language string `json:"language" db:"language"`
}

// LanguageYear keys the per-year aggregate.
type LanguageYear struct {
	Language string
	Year     int
}

// LanguageYearSlot keys the per-rank aggregate.
type LanguageYearSlot struct {
	Language string
	Year     int
	Slot     int
}

// Aggregate maps.
type (
	ByYear  map[LanguageYear]int
	Overall map[string]int
	ByRank  map[LanguageYearSlot]int
)

// LanguageCount is one entry of a ranked language list.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Stats counts what the reshape absorbed instead of failing on.
type Stats struct {
	RawRows          int `json:"raw_rows"`
	MatchedColumns   int `json:"matched_columns"`
	UnmatchedColumns int `json:"unmatched_columns"`
	BlankCells       int `json:"blank_cells"`
	BlankCountries   int `json:"blank_countries"`
	TidyRows         int `json:"tidy_rows"`
}

// Report is the full derived output of one transform.
type Report struct {
	Columns ColumnMap
	Tidy    []TidyRecord
	ByYear  ByYear
	Overall Overall
	ByRank  ByRank
	Stats   Stats
}

// Direction of a language's per-year series
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
	Flat    Direction = "flat"
)

// Trend summarizes one language's per-year counts over the report years.
type Trend struct {
	Language  string    `json:"language"`
	Counts    []int     `json:"counts"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Change    int       `json:"change"`
	Direction Direction `json:"direction"`
}
