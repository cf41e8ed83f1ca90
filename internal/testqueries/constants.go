package testqueries

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusNotFound = 404
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
)

// likeThreshold matches the service default when ranking candidate ISBNs
// from the raw ratings table.
const likeThreshold = 8
