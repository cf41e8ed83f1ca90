package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shezad-m/book-recommender/internal/adapters/repository"
	"github.com/shezad-m/book-recommender/internal/console"
	"github.com/shezad-m/book-recommender/internal/domain/recommend"
	"github.com/shezad-m/book-recommender/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeService struct {
	titles map[string]string
	recs   map[string]types.Recommendation
	recErr map[string]error
}

func (f *fakeService) TitleOf(ctx context.Context, isbn string) (string, error) {
	if t, ok := f.titles[isbn]; ok {
		return t, nil
	}
	return "", repository.ErrNotFound
}

func (f *fakeService) Recommend(ctx context.Context, isbn string) (types.Recommendation, error) {
	if err := f.recErr[isbn]; err != nil {
		return types.Recommendation{}, err
	}
	if r, ok := f.recs[isbn]; ok {
		return r, nil
	}
	return types.Recommendation{}, recommend.ErrNoCandidates
}

func newFakeService() *fakeService {
	return &fakeService{
		titles: map[string]string{
			"0316666343": "The Lovely Bones: A Novel",
			"0312195516": "The Red Tent",
			"0060539828": "Mirror Mirror",
		},
		recs: map[string]types.Recommendation{
			"0316666343": {ISBN: "0316601950", Title: "Lucky"},
			"0312195516": {ISBN: "0142001740", Title: "The Secret Life of Bees"},
		},
		recErr: map[string]error{
			"0060539828": recommend.ErrNoSimilarUsers,
		},
	}
}

func TestConsole_Run(t *testing.T) {
	Convey("Given a console bound to a canned service", t, func() {
		svc := newFakeService()
		var out bytes.Buffer

		Convey("When the user asks for a well-rated book", func() {
			in := strings.NewReader("0316666343\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then it should print the recommendation in the classic shape", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Enter a book's ISBN: ")
				So(out.String(), ShouldContainSubstring, `If you like "The Lovely Bones: A Novel", then you'll like "Lucky"`)
			})
		})

		Convey("When the user asks for an unknown ISBN and then a known one", func() {
			in := strings.NewReader("9999999999\n0312195516\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then the bad query should not end the loop", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "That book does not exist in the dataset.")
				So(out.String(), ShouldContainSubstring, `If you like "The Red Tent", then you'll like "The Secret Life of Bees"`)
			})
		})

		Convey("When no recommendation can be made for a known book", func() {
			in := strings.NewReader("0060539828\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then it should print the friendly line and keep going", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, `Couldn't find a good match for "Mirror Mirror"`)
			})
		})

		Convey("When the user types quit", func() {
			in := strings.NewReader("quit\n0316666343\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then the loop should end before the next query", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldNotContainSubstring, "If you like")
			})
		})

		Convey("When the user types exit", func() {
			in := strings.NewReader("exit\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then the loop should end cleanly", func() {
				So(err, ShouldBeNil)
				So(strings.Count(out.String(), "Enter a book's ISBN: "), ShouldEqual, 1)
			})
		})

		Convey("When the input contains blank lines", func() {
			in := strings.NewReader("\n\n0316666343\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then blank lines should only re-prompt", func() {
				So(err, ShouldBeNil)
				So(strings.Count(out.String(), "Enter a book's ISBN: "), ShouldEqual, 4)
				So(strings.Count(out.String(), "If you like"), ShouldEqual, 1)
			})
		})

		Convey("When the input ends without a quit word", func() {
			in := strings.NewReader("")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(context.Background())

			Convey("Then EOF should end the loop cleanly", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			in := strings.NewReader("0316666343\n")
			c := console.New(svc, console.WithInput(in), console.WithOutput(&out))
			err := c.Run(ctx)

			Convey("Then the loop should report the interruption", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "console interrupted")
			})
		})
	})
}
