package model

// BookRow mirrors one record of the raw books table.
// Cleaning projects the image columns away.
type BookRow struct {
	ISBN      string
	Title     string
	Author    string
	Year      string
	Publisher string
	ImageURLS string
	ImageURLM string
	ImageURLL string
}

// RatingRow mirrors one record of the raw ratings table.
type RatingRow struct {
	UserID int
	ISBN   string
	Score  int
}

// UserRow mirrors one record of the raw users table.
// Cleaning projects the age column away.
type UserRow struct {
	ID       int
	Location string
	Age      string
}
