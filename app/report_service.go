package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
	"langtrends/domain/run"
	"langtrends/internal"
	"langtrends/internal/errors"
	"langtrends/internal/trend"
	"langtrends/ports"
)

// CodeVersion is stamped into run fingerprints
var CodeVersion = "dev"

// ReportService runs the batch pipeline: load, reshape, aggregate, export
type ReportService struct {
	source      ports.ReportSource
	exporters   []ports.Exporter
	analyzer    *trend.Analyzer
	topN        int
	manifestDir string
	log         *internal.Logger
}

// ReportOptions configures a ReportService
type ReportOptions struct {
	TopN int
	// ManifestDir, when set, receives manifest.json after every run.
	ManifestDir string
	Logger      *internal.Logger
}

// RunResult contains the complete output of a run
type RunResult struct {
	Manifest *run.Manifest
	Bundle   *ports.ReportBundle
}

// NewReportService creates a report service
func NewReportService(source ports.ReportSource, exporters []ports.Exporter, opts ReportOptions) *ReportService {
	logger := opts.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		source:      source,
		exporters:   exporters,
		analyzer:    trend.NewAnalyzer(),
		topN:        opts.TopN,
		manifestDir: opts.ManifestDir,
		log:         logger,
	}
}

// Transform loads the source and derives the report without exporting anything
func (s *ReportService) Transform(ctx context.Context) (*langreport.Workbook, *langreport.Report, error) {
	wb, err := s.source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	rep := langreport.Transform(&wb.Data)
	if s.log.GetLevel() >= internal.LogLevelTrace {
		for _, name := range rep.Columns.Unmatched {
			s.log.Trace("Column %q is not a rank column, passed through", name)
		}
	}
	s.log.Debug("Reshaped %d rows x %d rank columns into %d observations (%d blank cells, %d rows without country)",
		rep.Stats.RawRows, rep.Stats.MatchedColumns, rep.Stats.TidyRows, rep.Stats.BlankCells, rep.Stats.BlankCountries)
	return wb, rep, nil
}

// Run executes the whole pipeline once. A source failure aborts before anything is written;
// once the source is loaded, manifest.json is written whether the run completes or fails.
func (s *ReportService) Run(ctx context.Context) (*RunResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()

	wb, rep, err := s.Transform(ctx)
	if err != nil {
		return nil, err
	}
	manifest := run.NewManifest(runID, wb.SourcePath)
	defer s.writeManifest(manifest)

	bundle, err := s.bundle(ctx, runID, wb, rep)
	if err != nil {
		manifest.Fail(err)
		return &RunResult{Manifest: manifest}, err
	}

	manifest.Stats = rep.Stats
	manifest.Fingerprint = run.NewFingerprint(bundle.SourceHash, langreport.Fingerprint(rep.Tidy), CodeVersion)
	manifest.TopLanguages = topCounts(rep.Overall, s.topN)

	for _, exp := range s.exporters {
		locations, err := exp.Export(ctx, bundle)
		if err != nil {
			err = errors.ExportFailed(exp.Name(), fmt.Errorf("%w: %w", core.ErrExportFailed, err))
			manifest.Fail(err)
			return &RunResult{Manifest: manifest, Bundle: bundle}, err
		}
		for _, loc := range locations {
			manifest.AddOutput(exp.Name(), loc)
		}
	}

	manifest.Complete()

	s.log.Info("Run %s completed in %s: %d observations, top %v",
		runID, time.Since(startTime).Round(time.Millisecond), rep.Stats.TidyRows, bundle.Top)
	return &RunResult{Manifest: manifest, Bundle: bundle}, nil
}

func (s *ReportService) bundle(ctx context.Context, runID core.RunID, wb *langreport.Workbook, rep *langreport.Report) (*ports.ReportBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "run cancelled before export")
	}

	top := langreport.TopLanguages(rep.Overall, s.topN)
	trends, err := s.analyzer.Analyze(rep.ByYear, top)
	if err != nil {
		return nil, errors.Wrapf(err, "trend analysis of %d languages failed", len(top))
	}

	sourceHash, err := core.HashFile(wb.SourcePath)
	if err != nil {
		s.log.Warn("Source hash unavailable: %v", err)
	}

	return &ports.ReportBundle{
		RunID:      runID,
		Source:     wb.SourcePath,
		SourceHash: sourceHash,
		Report:     rep,
		Top:        top,
		Trends:     trends,
		Overview:   wb.Overview,
	}, nil
}

func (s *ReportService) writeManifest(m *run.Manifest) {
	if s.manifestDir == "" {
		return
	}
	if err := os.MkdirAll(s.manifestDir, 0o755); err != nil {
		s.log.Warn("Manifest not written: %v", err)
		return
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		s.log.Warn("Manifest not written: %v", err)
		return
	}
	path := filepath.Join(s.manifestDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Warn("Manifest not written: %v", err)
		return
	}
	s.log.Debug("Wrote %s", path)
}

func topCounts(o langreport.Overall, n int) []langreport.LanguageCount {
	ranked := o.Ranked()
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// String renders a one-line run summary for CLI output
func (r *RunResult) String() string {
	m := r.Manifest
	return fmt.Sprintf("run %s %s: %d observations, %d outputs, fingerprint %s",
		m.RunID, m.Status, m.Stats.TidyRows, len(m.Outputs), m.Fingerprint.Fingerprint.Short())
}
