package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	service "github.com/shezad-m/book-recommender/internal/app"
	"github.com/shezad-m/book-recommender/internal/domain/recommend"
	"github.com/shezad-m/book-recommender/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// Series fixture: thirty readers like Dune; twenty-four of them also like
// Dune Messiah, which picks up eight further likers elsewhere; Children of
// Dune is liked by nine Dune readers and exactly one outsider; God Emperor
// has a single lone liker. A few dislikes and a score of exactly eight are
// mixed in and must not influence anything.
const (
	isbnDune     = "0441172717"
	isbnMessiah  = "0441172725"
	isbnChildren = "0441172733"
	isbnEmperor  = "0441172741"
)

func writeSeriesDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	books := `ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher
0441172717,Dune,Frank Herbert,1990,Ace Books
0441172725,Dune Messiah,Frank Herbert,1987,Ace Books
0441172733,Children of Dune,Frank Herbert,1987,Ace Books
0441172741,God Emperor of Dune,Frank Herbert,1987,Ace Books
`

	var ratings strings.Builder
	ratings.WriteString("User-ID,ISBN,Book-Rating\n")
	for u := 1; u <= 30; u++ {
		fmt.Fprintf(&ratings, "%d,%s,10\n", u, isbnDune)
		if u <= 24 {
			fmt.Fprintf(&ratings, "%d,%s,9\n", u, isbnMessiah)
		}
		if u <= 9 {
			fmt.Fprintf(&ratings, "%d,%s,10\n", u, isbnChildren)
		}
		if u <= 5 {
			fmt.Fprintf(&ratings, "%d,%s,3\n", u, isbnEmperor) // dislike
		}
	}
	for u := 31; u <= 38; u++ {
		fmt.Fprintf(&ratings, "%d,%s,9\n", u, isbnMessiah)
	}
	fmt.Fprintf(&ratings, "39,%s,9\n", isbnChildren)
	fmt.Fprintf(&ratings, "40,%s,10\n", isbnEmperor)
	fmt.Fprintf(&ratings, "25,%s,8\n", isbnChildren) // exactly at threshold, not a like

	var users strings.Builder
	users.WriteString("User-ID,Location,Age\n")
	for u := 1; u <= 40; u++ {
		fmt.Fprintf(&users, "%d,\"reading town %d, bookland\",%d\n", u, u, 18+u)
	}

	for name, content := range map[string]string{
		"Books.csv":   books,
		"Ratings.csv": ratings.String(),
		"Users.csv":   users.String(),
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service over the series dataset", t, func() {
		svc := service.New(service.WithDataDir(writeSeriesDataset(t)))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then the dataset lands fully cleaned", func() {
			stats := svc.GetStats()
			So(stats["catalogBooks"], ShouldEqual, 4)
			So(stats["users"], ShouldEqual, 40)
			So(stats["likeRows"], ShouldEqual, 73)
			So(stats["likedBooks"], ShouldEqual, 4)
			So(stats["droppedBooks"], ShouldEqual, 0)
			So(stats["droppedRatings"], ShouldEqual, 0)
		})

		Convey("When recommending for the anchor of the series", func() {
			rec, err := svc.Recommend(ctx, isbnDune)

			Convey("Then the book liked almost only by its readers beats the broadly popular one", func() {
				So(err, ShouldBeNil)
				So(rec.ISBN, ShouldEqual, isbnChildren)
				So(rec.Title, ShouldEqual, "Children of Dune")
			})

			Convey("And repeated queries return the same answer", func() {
				for i := 0; i < 20; i++ {
					again, err := svc.Recommend(ctx, isbnDune)
					So(err, ShouldBeNil)
					So(again.ISBN, ShouldEqual, rec.ISBN)
				}
			})
		})

		Convey("When recommending for the broadly liked sequel", func() {
			rec, err := svc.Recommend(ctx, isbnMessiah)

			Convey("Then the tightly co-liked book still wins", func() {
				So(err, ShouldBeNil)
				So(rec.ISBN, ShouldEqual, isbnChildren)
			})
		})

		Convey("When recommending for the book with a single liker", func() {
			_, err := svc.Recommend(ctx, isbnEmperor)

			Convey("Then there is no candidate, but the title still resolves", func() {
				So(errors.Is(err, recommend.ErrNoCandidates), ShouldBeTrue)

				title, terr := svc.TitleOf(ctx, isbnEmperor)
				So(terr, ShouldBeNil)
				So(title, ShouldEqual, "God Emperor of Dune")
			})
		})

		Convey("When listing the most liked books", func() {
			books, err := svc.TopBooks(ctx, 3)

			Convey("Then the listing follows liker counts", func() {
				So(err, ShouldBeNil)
				So(len(books), ShouldEqual, 3)
				So(books[0].ISBN, ShouldEqual, isbnMessiah)
				So(books[0].Likers, ShouldEqual, 32)
				So(books[1].ISBN, ShouldEqual, isbnDune)
				So(books[1].Likers, ShouldEqual, 30)
				So(books[2].ISBN, ShouldEqual, isbnChildren)
				So(books[2].Likers, ShouldEqual, 10)
			})
		})

		Convey("When querying concurrently", func() {
			const goroutines = 25
			errCh := make(chan error, goroutines*3)
			var wg sync.WaitGroup

			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					if rec, err := svc.Recommend(ctx, isbnDune); err != nil {
						errCh <- err
					} else if rec.ISBN != isbnChildren {
						errCh <- fmt.Errorf("unexpected winner %s", rec.ISBN)
					}

					if _, err := svc.TopBooks(ctx, 2); err != nil {
						errCh <- err
					}

					if _, err := svc.TitleOf(ctx, isbnMessiah); err != nil {
						errCh <- err
					}
				}()
			}
			wg.Wait()
			close(errCh)

			Convey("Then no query fails or disagrees", func() {
				for err := range errCh {
					So(err, ShouldBeNil)
				}
			})
		})

		Convey("When restarting the service", func() {
			svc.Stop()
			So(svc.Start(ctx), ShouldBeNil)

			rec, err := svc.Recommend(ctx, isbnDune)

			Convey("Then the reloaded dataset answers identically", func() {
				So(err, ShouldBeNil)
				So(rec.ISBN, ShouldEqual, isbnChildren)
			})
		})
	})
}
