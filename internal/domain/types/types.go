// Package types contains common types used across the application
package types

// Recommendation is the answer to a similarity query
type Recommendation struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

// PopularBook is one row of the popular-books listing
type PopularBook struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Likers int    `json:"likers"`
}

// BookDetail is the full catalog record served for a single book
type BookDetail struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      string `json:"year"`
	Publisher string `json:"publisher"`
}
