package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading the report from Excel or CSV files
type DataReader struct {
	cfg      ExcelConfig
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(cfg ExcelConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	fileType := strings.TrimPrefix(ext, ".")
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{cfg: cfg, fileType: fileType, log: logger.With("excel")}
}

// Load reads the data sheet and, when present, the overview sheet.
// Every failure is fatal for the run and matches core.ErrSourceUnavailable.
func (r *DataReader) Load(ctx context.Context) (*langreport.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.log.Info("Reading %s file: %s", r.fileType, r.cfg.FilePath)

	if _, err := os.Stat(r.cfg.FilePath); err != nil {
		return nil, r.sourceErr(err)
	}

	switch r.fileType {
	case "csv":
		data, err := r.readCSVData()
		if err != nil {
			return nil, r.sourceErr(err)
		}
		return &langreport.Workbook{SourcePath: r.cfg.FilePath, Data: data.RawTable()}, nil
	case "xlsx", "xlsm":
		return r.readWorkbook()
	default:
		return nil, r.sourceErr(fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, r.fileType))
	}
}

func (r *DataReader) sourceErr(cause error) error {
	if !core.IsSourceUnavailable(cause) {
		cause = core.NewSourceError(cause)
	}
	return errors.SourceUnavailable(r.cfg.FilePath, cause)
}

// readWorkbook reads the data sheet and the optional overview sheet
func (r *DataReader) readWorkbook() (*langreport.Workbook, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.cfg.FilePath)
	if err != nil {
		return nil, r.sourceErr(fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()
	r.log.Debug("Excel file opened in %s", time.Since(startTime).Round(time.Millisecond))

	data, err := r.readSheet(f, r.cfg.DataSheet, r.cfg.HeaderOffset, true)
	if err != nil {
		return nil, r.sourceErr(err)
	}

	wb := &langreport.Workbook{SourcePath: r.cfg.FilePath, Data: data.RawTable()}

	if r.cfg.OverviewSheet != "" {
		overview, err := r.readSheet(f, r.cfg.OverviewSheet, 0, false)
		if err != nil {
			r.log.Warn("Overview sheet not loaded: %v", err)
		} else {
			wb.Overview = overview.Overview()
		}
	}

	return wb, nil
}

// readSheet reads a named sheet whose header sits offset rows down
func (r *DataReader) readSheet(f *excelize.File, sheet string, offset int, countryFirst bool) (*ExcelData, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q (have %v)", core.ErrSheetNotFound, sheet, f.GetSheetList())
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.log.Debug("Sheet %q read in %s (%d rows)", sheet, time.Since(readStart).Round(time.Millisecond), len(rows))

	return r.processRows(rows, offset, countryFirst)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.log.Debug("CSV file read (%d rows)", len(rows))

	return r.processRows(rows, r.cfg.HeaderOffset, true)
}

// processRows picks the header row at offset and trims every cell below it.
// Fully blank rows are dropped. With countryFirst the first header is renamed to the
// country column, whatever the sheet calls it.
func (r *DataReader) processRows(rows [][]string, offset int, countryFirst bool) (*ExcelData, error) {
	if offset < 0 || len(rows) <= offset {
		return nil, fmt.Errorf("%w: %d rows, header expected at row %d", core.ErrNoHeader, len(rows), offset+1)
	}

	headerRow := rows[offset]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = header
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: header row %d is empty", core.ErrNoHeader, offset+1)
	}
	if countryFirst {
		headers[0] = langreport.CountryColumn
	}

	dataRows := make([][]string, 0, len(rows)-offset-1)
	blank := 0
	for _, row := range rows[offset+1:] {
		cells := make([]string, len(row))
		empty := true
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
			if cells[j] != "" {
				empty = false
			}
		}
		if empty {
			blank++
			continue
		}
		dataRows = append(dataRows, cells)
	}

	r.log.Debug("Processed %d columns, %d rows (%d blank rows dropped)", len(headers), len(dataRows), blank)

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
