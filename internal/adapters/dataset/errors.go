package dataset

import "errors"

// Sentinel kinds for dataset load errors.
var (
	ErrOpenFile = errors.New("dataset file open failed")
	ErrParse    = errors.New("dataset parse failed")
)
