package ingestion

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrMissingColumn = errors.New("csv header missing required column")
)
