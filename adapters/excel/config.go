package excel

import "langtrends/domain/langreport"

// WorkbookTitle names the export workbook; its file name is derived from it.
const WorkbookTitle = "Language Report Tidy"

// ExcelConfig holds configuration for the report workbook
type ExcelConfig struct {
	FilePath      string `json:"file_path"`
	DataSheet     string `json:"data_sheet"`
	OverviewSheet string `json:"overview_sheet"`
	// HeaderOffset is the number of rows above the header row on the data sheet.
	HeaderOffset int `json:"header_offset"`
}

// DefaultExcelConfig returns the layout of the published language report
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		DataSheet:     "Data by country",
		OverviewSheet: "Overview",
		HeaderOffset:  1,
	}
}

// WriterConfig holds configuration for the tidy workbook export
type WriterConfig struct {
	OutputDir string `json:"output_dir"`
	FileName  string `json:"file_name"`
	// ChartLanguages caps how many languages get a series on the trend chart.
	ChartLanguages int `json:"chart_languages"`
}

// DefaultWriterConfig returns sensible defaults for the export workbook
func DefaultWriterConfig(outputDir string) WriterConfig {
	return WriterConfig{
		OutputDir:      outputDir,
		FileName:       langreport.SnakeCase(WorkbookTitle) + ".xlsx",
		ChartLanguages: 5,
	}
}
