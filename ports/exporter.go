package ports

import (
	"context"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
)

// ReportBundle is everything an exporter may render or store for one run
type ReportBundle struct {
	RunID      core.RunID
	Source     string
	SourceHash core.Hash
	Report     *langreport.Report
	Top        []string
	Trends     []langreport.Trend
	Overview   *langreport.Overview
}

// Exporter writes derived tables or charts somewhere. It must not modify the bundle.
type Exporter interface {
	Name() string
	// Export returns the locations it wrote (file paths, table names).
	Export(ctx context.Context, bundle *ReportBundle) ([]string, error)
}
