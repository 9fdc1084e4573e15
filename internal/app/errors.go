package service

import "errors"

// Sentinel kinds for draft service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrEmptyPool        = errors.New("candidate pool is empty")
	ErrUnknownCandidate = errors.New("unknown candidate")
	ErrAlreadyDrafted   = errors.New("candidate already drafted")
	ErrNotDrafted       = errors.New("candidate not drafted")
	ErrBadTeam          = errors.New("team out of range")
	ErrPickInPast       = errors.New("overall pick not after the latest recorded pick")
	ErrBadUndoCount     = errors.New("undo count must be positive")
)
