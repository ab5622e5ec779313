package excel

import "langtrends/domain/langreport"

// ExcelData represents one sheet read in row order
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows, cells trimmed
}

// RawTable converts the sheet to the domain table
func (d *ExcelData) RawTable() langreport.RawTable {
	return langreport.RawTable{Headers: d.Headers, Rows: d.Rows}
}

// Overview converts the sheet to the domain overview
func (d *ExcelData) Overview() *langreport.Overview {
	return &langreport.Overview{Headers: d.Headers, Rows: d.Rows}
}
