package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/shezad-m/book-recommender/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommendation(t *testing.T) {
	Convey("Given a Recommendation struct", t, func() {
		Convey("When creating a new recommendation", func() {
			rec := types.Recommendation{
				ISBN:  "0971880107",
				Title: "Wild Animus",
			}

			Convey("Then it should have the correct values", func() {
				So(rec.ISBN, ShouldEqual, "0971880107")
				So(rec.Title, ShouldEqual, "Wild Animus")
			})
		})

		Convey("When creating a recommendation with zero values", func() {
			rec := types.Recommendation{}

			Convey("Then it should have default values", func() {
				So(rec.ISBN, ShouldEqual, "")
				So(rec.Title, ShouldEqual, "")
			})
		})

		Convey("When marshalling to JSON", func() {
			rec := types.Recommendation{
				ISBN:  "0439136369",
				Title: `Harry Potter and the Prisoner of Azkaban (Book 3)`,
			}

			data, err := json.Marshal(rec)

			Convey("Then the wire shape uses snake-free lowercase keys", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"isbn":"0439136369"`)
				So(string(data), ShouldContainSubstring, `"title":"Harry Potter`)
			})
		})

		Convey("When the title contains quotes and unicode", func() {
			rec := types.Recommendation{
				ISBN:  "3442410665",
				Title: `Die "unendliche" Geschichte: Märchen`,
			}

			data, err := json.Marshal(rec)

			Convey("Then marshalling round-trips cleanly", func() {
				So(err, ShouldBeNil)

				var back types.Recommendation
				So(json.Unmarshal(data, &back), ShouldBeNil)
				So(back, ShouldResemble, rec)
			})
		})
	})
}

func TestPopularBook(t *testing.T) {
	Convey("Given a PopularBook struct", t, func() {
		Convey("When creating a new popular book", func() {
			book := types.PopularBook{
				ISBN:   "0316666343",
				Title:  "The Lovely Bones: A Novel",
				Likers: 707,
			}

			Convey("Then it should have the correct values", func() {
				So(book.ISBN, ShouldEqual, "0316666343")
				So(book.Title, ShouldEqual, "The Lovely Bones: A Novel")
				So(book.Likers, ShouldEqual, 707)
			})
		})

		Convey("When creating a popular book with zero values", func() {
			book := types.PopularBook{}

			Convey("Then it should have default values", func() {
				So(book.ISBN, ShouldEqual, "")
				So(book.Title, ShouldEqual, "")
				So(book.Likers, ShouldEqual, 0)
			})
		})

		Convey("When building a listing", func() {
			listing := []types.PopularBook{
				{ISBN: "A", Title: "First", Likers: 30},
				{ISBN: "B", Title: "Second", Likers: 20},
				{ISBN: "C", Title: "Third", Likers: 20},
				{ISBN: "D", Title: "Fourth", Likers: 1},
			}

			Convey("Then liker counts should be non-increasing", func() {
				for i := 0; i < len(listing)-1; i++ {
					So(listing[i].Likers, ShouldBeGreaterThanOrEqualTo, listing[i+1].Likers)
				}
			})

			Convey("And equal counts should order by ISBN", func() {
				So(listing[1].Likers, ShouldEqual, listing[2].Likers)
				So(listing[1].ISBN, ShouldBeLessThan, listing[2].ISBN)
			})
		})
	})
}

func TestBookDetail(t *testing.T) {
	Convey("Given a BookDetail struct", t, func() {
		Convey("When marshalling a full record", func() {
			detail := types.BookDetail{
				ISBN:      "0195153448",
				Title:     "Classical Mythology",
				Author:    "Mark P. O. Morford",
				Year:      "2002",
				Publisher: "Oxford University Press",
			}

			data, err := json.Marshal(detail)

			Convey("Then every column appears under its lowercase key", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"isbn":"0195153448"`)
				So(string(data), ShouldContainSubstring, `"author":"Mark P. O. Morford"`)
				So(string(data), ShouldContainSubstring, `"year":"2002"`)
				So(string(data), ShouldContainSubstring, `"publisher":"Oxford University Press"`)
			})
		})

		Convey("When the year column carries non-numeric source data", func() {
			detail := types.BookDetail{
				ISBN:  "078946697X",
				Title: "DK Readers: Creating the X-Men",
				Year:  "DK Publishing Inc",
			}

			data, err := json.Marshal(detail)

			Convey("Then it is served verbatim as a string", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"year":"DK Publishing Inc"`)
			})
		})
	})
}
