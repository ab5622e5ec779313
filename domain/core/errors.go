package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrSourceUnavailable means the report file could not be read at all. Fatal for a run.
	ErrSourceUnavailable = errors.New("report source unavailable")
	ErrSheetNotFound     = fmt.Errorf("%w: sheet not found", ErrSourceUnavailable)
	ErrNoHeader          = fmt.Errorf("%w: no header row", ErrSourceUnavailable)

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExportFailed      = errors.New("export failed")
)

// NewSourceError marks err as the reason a source could not be loaded
func NewSourceError(err error) error {
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// IsSourceUnavailable reports whether err came from loading the report source
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
