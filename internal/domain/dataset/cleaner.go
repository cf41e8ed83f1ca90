// Package dataset holds the cleaning step that turns raw source-table rows
// into catalog-ready records.
package dataset

import (
	"github.com/shezad-m/book-recommender/internal/domain/model"
)

// Clean normalizes the three raw tables into their downstream forms:
// books lose their image columns and every row with an empty author or
// publisher, users lose their age column, and ratings lose every row whose
// ISBN no longer appears in the surviving book set. Row order is preserved
// in all three outputs and the inputs are never mutated. Re-cleaning
// already-clean data yields an identical result.
func Clean(books []model.BookRow, ratings []model.RatingRow, users []model.UserRow) ([]model.Book, []model.Rating, []model.User) {
	cleanBooks := make([]model.Book, 0, len(books))
	kept := make(map[string]struct{}, len(books))
	for _, b := range books {
		if b.Author == "" || b.Publisher == "" {
			continue
		}
		cleanBooks = append(cleanBooks, model.Book{
			ISBN:      b.ISBN,
			Title:     b.Title,
			Author:    b.Author,
			Year:      b.Year,
			Publisher: b.Publisher,
		})
		kept[b.ISBN] = struct{}{}
	}

	// Rating cleanup runs after book filtering so that ratings for dropped
	// books disappear with them.
	cleanRatings := make([]model.Rating, 0, len(ratings))
	for _, r := range ratings {
		if _, ok := kept[r.ISBN]; !ok {
			continue
		}
		cleanRatings = append(cleanRatings, model.Rating{
			UserID: r.UserID,
			ISBN:   r.ISBN,
			Score:  r.Score,
		})
	}

	cleanUsers := make([]model.User, 0, len(users))
	for _, u := range users {
		cleanUsers = append(cleanUsers, model.User{
			ID:       u.ID,
			Location: u.Location,
		})
	}

	return cleanBooks, cleanRatings, cleanUsers
}
