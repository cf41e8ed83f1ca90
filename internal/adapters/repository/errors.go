package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound = errors.New("book not found")
)
