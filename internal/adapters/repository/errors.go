package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrBadSnapshot = errors.New("snapshot payload does not decode")
	ErrNilMutator  = errors.New("nil snapshot mutator")
)
