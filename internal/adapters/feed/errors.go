package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrNoCandidate = errors.New("feed pick has no candidate id")
	ErrNoTeam      = errors.New("feed pick has no team")
)
