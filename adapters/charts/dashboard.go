// Package charts renders the language report as a standalone HTML dashboard.
package charts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/ports"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Observations are counted per country and popularity slot, so a country naming one
// language in two slots of a year contributes 2 to that year.
const (
	pageTitle    = "Language Learning Dashboard"
	lineTitle    = "Observations per Language Over Time"
	barTitle     = "Top %d Languages by Popularity Rank in %d"
	policyNote   = "One observation per country and popularity slot"
	countsAxis   = "Observations"
	languageAxis = "Language"
)

// Config for the dashboard renderer
type Config struct {
	OutputDir string
	FileName  string
	Width     string
	Height    string
	// ChartFiles also writes every chart to its own page, named after its title.
	ChartFiles bool
}

// DefaultConfig writes language_learning_dashboard.html plus one page per chart under outputDir
func DefaultConfig(outputDir string) Config {
	return Config{
		OutputDir:  outputDir,
		FileName:   htmlName(pageTitle),
		Width:      "1100px",
		Height:     "520px",
		ChartFiles: true,
	}
}

// htmlName derives a file name from a chart or page title
func htmlName(title string) string {
	return langreport.SnakeCase(title) + ".html"
}

// Dashboard renders the trend line chart and one stacked rank chart per year
type Dashboard struct {
	cfg Config
	log *internal.Logger
}

// NewDashboard creates a dashboard exporter
func NewDashboard(cfg Config, logger *internal.Logger) *Dashboard {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Dashboard{cfg: cfg, log: logger.With("charts")}
}

// Name implements ports.Exporter
func (d *Dashboard) Name() string { return "charts" }

// Export implements ports.Exporter
func (d *Dashboard) Export(ctx context.Context, bundle *ports.ReportBundle) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(d.LineChart(bundle.Report.ByYear))
	for _, bar := range d.RankCharts(bundle.Report, bundle.Top) {
		page.AddCharts(bar)
	}

	path := filepath.Join(d.cfg.OutputDir, d.cfg.FileName)
	if err := writePage(path, page); err != nil {
		return nil, err
	}
	written := []string{path}

	if d.cfg.ChartFiles {
		// a chart value is rendered once, so standalone pages get their own
		type chartPage struct {
			title string
			chart renderer
		}
		pages := []chartPage{{lineTitle, d.LineChart(bundle.Report.ByYear)}}
		years := langreport.Years()
		for i, bar := range d.RankCharts(bundle.Report, bundle.Top) {
			pages = append(pages, chartPage{fmt.Sprintf(barTitle, len(bundle.Top), years[i]), bar})
		}
		for _, cp := range pages {
			p := filepath.Join(d.cfg.OutputDir, htmlName(cp.title))
			if err := writePage(p, cp.chart); err != nil {
				return nil, err
			}
			written = append(written, p)
		}
	}

	d.log.Info("Wrote %s (%d pages)", path, len(written))
	return written, nil
}

type renderer interface {
	Render(w io.Writer) error
}

func writePage(path string, r renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}


// LineChart plots countries per language for every report year, one series per language
func (d *Dashboard) LineChart(by langreport.ByYear) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: d.cfg.Width, Height: d.cfg.Height}),
		charts.WithTitleOpts(opts.Title{Title: lineTitle, Subtitle: policyNote}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom", Type: "scroll"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: countsAxis}),
	)

	line.SetXAxis(yearLabels())
	for _, lang := range by.Languages() {
		series := by.Series(lang)
		data := make([]opts.LineData, len(series))
		for i, n := range series {
			data[i] = opts.LineData{Value: n}
		}
		line.AddSeries(lang, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line
}

// RankCharts builds one horizontal stacked bar chart per year: the top languages on the
// category axis, one stacked series per popularity rank.
func (d *Dashboard) RankCharts(rep *langreport.Report, top []string) []*charts.Bar {
	byRank := rep.ByRank.Filter(top)
	slots := rep.Columns.Slots()

	out := make([]*charts.Bar, 0, len(langreport.Years()))
	for _, year := range langreport.Years() {
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: d.cfg.Width, Height: "360px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    fmt.Sprintf(barTitle, len(top), year),
				Subtitle: policyNote,
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
			charts.WithXAxisOpts(opts.XAxis{Name: languageAxis}),
			charts.WithYAxisOpts(opts.YAxis{Name: countsAxis}),
		)
		bar.SetXAxis(top)
		for _, slot := range slots {
			data := make([]opts.BarData, len(top))
			for i, lang := range top {
				data[i] = opts.BarData{Value: byRank[langreport.LanguageYearSlot{Language: lang, Year: year, Slot: slot}]}
			}
			bar.AddSeries(langreport.SlotLabel(slot), data, charts.WithBarChartOpts(opts.BarChart{Stack: "rank"}))
		}
		bar.XYReversal()
		out = append(out, bar)
	}
	return out
}

func yearLabels() []string {
	years := langreport.Years()
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
