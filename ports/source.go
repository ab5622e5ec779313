package ports

import (
	"context"

	"langtrends/domain/langreport"
)

// ReportSource loads the raw report workbook.
// Implementations return an error matching core.ErrSourceUnavailable when the file cannot be read.
type ReportSource interface {
	Load(ctx context.Context) (*langreport.Workbook, error)
}
