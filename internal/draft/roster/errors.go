package roster

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrTeamCount         = errors.New("team count must be at least 2")
	ErrNegativeSlots     = errors.New("slot counts must not be negative")
	ErrNegativeBonus     = errors.New("flex bonus must not be negative")
	ErrNegativeWeight    = errors.New("composite weights must not be negative")
	ErrPhaseBounds       = errors.New("phase boundaries must be ordered fractions in [0,1]")
	ErrNegativeThreshold = errors.New("vona threshold must not be negative")
)
