package recommend

import (
	"errors"
)

// Sentinel kinds for recommendation errors.
var (
	ErrNoSimilarUsers = errors.New("no similar users found")
	ErrNoCandidates   = errors.New("no candidate books found")
	ErrInvalidLimit   = errors.New("invalid limit")
)
