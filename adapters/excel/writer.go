package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/ports"

	"github.com/xuri/excelize/v2"
)

const (
	trendTitle = "Observations per Language Over Time"
	countsAxis = "Observations (one per country and popularity slot)"
)

const (
	sheetTidy    = "tidy"
	sheetByYear  = "by_year"
	sheetOverall = "overall"
)

// Writer exports the tidy table and aggregates to a workbook with a native trend chart
type Writer struct {
	cfg WriterConfig
	log *internal.Logger
}

// NewWriter creates a workbook exporter
func NewWriter(cfg WriterConfig, logger *internal.Logger) *Writer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Writer{cfg: cfg, log: logger.With("xlsx")}
}

// Name implements ports.Exporter
func (w *Writer) Name() string { return "xlsx" }

// Export implements ports.Exporter
func (w *Writer) Export(ctx context.Context, bundle *ports.ReportBundle) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTidy); err != nil {
		return nil, err
	}
	if err := writeTidy(f, bundle.Report.Tidy); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", sheetTidy, err)
	}

	ranked := bundle.Report.Overall.Ranked()
	if _, err := f.NewSheet(sheetByYear); err != nil {
		return nil, err
	}
	if err := writeByYear(f, bundle.Report.ByYear, ranked); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", sheetByYear, err)
	}
	if err := w.addTrendChart(f, len(ranked)); err != nil {
		return nil, fmt.Errorf("add trend chart: %w", err)
	}

	if _, err := f.NewSheet(sheetOverall); err != nil {
		return nil, err
	}
	if err := writeOverall(f, ranked); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", sheetOverall, err)
	}

	path := filepath.Join(w.cfg.OutputDir, w.cfg.FileName)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	w.log.Info("Wrote %s (%d tidy rows, %d languages)", path, len(bundle.Report.Tidy), len(ranked))
	return []string{path}, nil
}

func writeTidy(f *excelize.File, tidy []langreport.TidyRecord) error {
	if err := f.SetSheetRow(sheetTidy, "A1", &[]interface{}{"country", "year", "slot", "rank", "language"}); err != nil {
		return err
	}
	for i, r := range langreport.SortTidy(tidy) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Country, r.Year, r.Slot, langreport.SlotLabel(r.Slot), r.Language}
		if err := f.SetSheetRow(sheetTidy, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeByYear writes one row per language (ranked order) and one column per report year
func writeByYear(f *excelize.File, by langreport.ByYear, ranked []langreport.LanguageCount) error {
	header := []interface{}{"language"}
	for _, y := range langreport.Years() {
		header = append(header, y)
	}
	if err := f.SetSheetRow(sheetByYear, "A1", &header); err != nil {
		return err
	}
	for i, lc := range ranked {
		row := []interface{}{lc.Language}
		for _, n := range by.Series(lc.Language) {
			row = append(row, n)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetByYear, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeOverall(f *excelize.File, ranked []langreport.LanguageCount) error {
	if err := f.SetSheetRow(sheetOverall, "A1", &[]interface{}{"rank", "language", "count"}); err != nil {
		return err
	}
	for i, lc := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetOverall, cell, &[]interface{}{i + 1, lc.Language, lc.Count}); err != nil {
			return err
		}
	}
	return nil
}

// addTrendChart draws the first ChartLanguages rows of by_year as a line chart
func (w *Writer) addTrendChart(f *excelize.File, languages int) error {
	n := languages
	if w.cfg.ChartLanguages > 0 && n > w.cfg.ChartLanguages {
		n = w.cfg.ChartLanguages
	}
	if n == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(langreport.Years()) + 1)
	if err != nil {
		return err
	}
	categories := fmt.Sprintf("%s!$B$1:$%s$1", sheetByYear, lastCol)

	series := make([]excelize.ChartSeries, 0, n)
	for row := 2; row < n+2; row++ {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$A$%d", sheetByYear, row),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$B$%d:$%s$%d", sheetByYear, row, lastCol, row),
		})
	}

	anchor, err := excelize.CoordinatesToCellName(len(langreport.Years())+3, 2)
	if err != nil {
		return err
	}
	return f.AddChart(sheetByYear, anchor, &excelize.Chart{
		Type:      excelize.Line,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: trendTitle}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Year"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: countsAxis}}},
		Dimension: excelize.ChartDimension{Width: 720, Height: 400},
	})
}
