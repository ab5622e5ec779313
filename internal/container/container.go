package container

import (
	"context"
	"fmt"
	"os"

	"langtrends/adapters/charts"
	"langtrends/adapters/excel"
	"langtrends/adapters/report"
	"langtrends/adapters/sqlstore"
	"langtrends/app"
	"langtrends/internal"
	"langtrends/internal/config"
	"langtrends/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	Source    ports.ReportSource
	Exporters []ports.Exporter

	ReportService *app.ReportService
}

// New creates a new dependency injection container. The export database is only
// opened when EXPORT_DB_DSN is set.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := newBase(cfg)
	logger := c.Logger

	if cfg.Output.RenderCharts {
		c.Exporters = append(c.Exporters, charts.NewDashboard(charts.DefaultConfig(cfg.Output.Dir), logger))
	}
	if cfg.Output.ExportXLSX {
		wcfg := excel.DefaultWriterConfig(cfg.Output.Dir)
		if cfg.Output.TopN > 0 {
			wcfg.ChartLanguages = cfg.Output.TopN
		}
		c.Exporters = append(c.Exporters, excel.NewWriter(wcfg, logger))
	}
	if cfg.Output.Summary {
		c.Exporters = append(c.Exporters, report.NewSummary(cfg.Output.Dir, logger))
	}
	if cfg.Export.Enabled() {
		db, err := sqlstore.Open(ctx, cfg.Export.DBDriver, cfg.Export.DBDSN)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Exporters = append(c.Exporters, sqlstore.NewExporter(db, logger))
	}

	c.ReportService = app.NewReportService(c.Source, c.Exporters, app.ReportOptions{
		TopN:        cfg.Output.TopN,
		ManifestDir: cfg.Output.Dir,
		Logger:      logger,
	})

	logger.Debug("Container ready: source %s, %d exporters", cfg.Source.File, len(c.Exporters))
	return c, nil
}

// NewReadOnly builds only the source and a service without exporters. Nothing is written
// and no database is opened, whatever the export settings say.
func NewReadOnly(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	c := newBase(cfg)
	c.ReportService = app.NewReportService(c.Source, nil, app.ReportOptions{
		TopN:   cfg.Output.TopN,
		Logger: c.Logger,
	})
	return c, nil
}

func newBase(cfg *config.Config) *Container {
	logger := internal.NewLogger(os.Stderr, internal.ParseLogLevel(cfg.Log.Level))
	return &Container{
		Config: cfg,
		Logger: logger,
		Source: excel.NewDataReader(excel.ExcelConfig{
			FilePath:      cfg.Source.File,
			DataSheet:     cfg.Source.DataSheet,
			OverviewSheet: cfg.Source.OverviewSheet,
			HeaderOffset:  cfg.Source.HeaderOffset,
		}, logger),
	}
}

// Close releases resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
