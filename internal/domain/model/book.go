// Package model contains domain models passed between layers.
package model

// Book represents one catalog entry after cleaning.
// Fields mirror the retained columns of the books table.
type Book struct {
	ISBN      string // unique catalog identifier
	Title     string
	Author    string
	Year      string // kept verbatim; the source data contains non-numeric values
	Publisher string
}

// Rating represents a single rating row. Duplicate (UserID, ISBN) pairs
// are legitimate and must be preserved.
type Rating struct {
	UserID int    // reader identifier
	ISBN   string // rated book
	Score  int    // implicit 0 or explicit 1..10
}

// User represents a reader after cleaning.
type User struct {
	ID       int
	Location string
}
