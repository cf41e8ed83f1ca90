// Package dataset reads the three Book-Crossing source tables from CSV files.
//
// Columns are resolved by header name rather than position, so the files
// may carry their columns in any order and may include columns the loader
// does not consume. Malformed rows are skipped and counted by default; the
// strict option turns them into load failures.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shezad-m/book-recommender/internal/domain/model"
)

// Default file layout of the published Book-Crossing dataset.
const (
	defaultBooksFile   = "Books.csv"
	defaultRatingsFile = "Ratings.csv"
	defaultUsersFile   = "Users.csv"
	defaultDelimiter   = ','
)

// Column names of the Book-Crossing CSV layout.
const (
	colISBN      = "ISBN"
	colTitle     = "Book-Title"
	colAuthor    = "Book-Author"
	colYear      = "Year-Of-Publication"
	colPublisher = "Publisher"
	colImageS    = "Image-URL-S"
	colImageM    = "Image-URL-M"
	colImageL    = "Image-URL-L"
	colUserID    = "User-ID"
	colLocation  = "Location"
	colAge       = "Age"
	colScore     = "Book-Rating"
)

// Loader reads the raw book, rating, and user tables from a directory of
// CSV files.
type Loader struct {
	dir         string
	booksFile   string
	ratingsFile string
	usersFile   string
	delimiter   rune
	strict      bool
}

// Tables bundles the three raw tables together with per-table counts of
// rows that were skipped as malformed.
type Tables struct {
	Books   []model.BookRow
	Ratings []model.RatingRow
	Users   []model.UserRow

	SkippedBooks   int
	SkippedRatings int
	SkippedUsers   int
}

// New creates a Loader reading from dir.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:         dir,
		booksFile:   defaultBooksFile,
		ratingsFile: defaultRatingsFile,
		usersFile:   defaultUsersFile,
		delimiter:   defaultDelimiter,
	}

	// Apply all options
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadAll reads the three tables concurrently and fails on the first error.
// Row order within each table matches file order exactly.
func (l *Loader) LoadAll(ctx context.Context) (*Tables, error) {
	var t Tables

	// Each goroutine fills a distinct field of t.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, skipped, err := l.LoadBooks(ctx)
		if err != nil {
			return err
		}
		t.Books, t.SkippedBooks = rows, skipped
		return nil
	})
	g.Go(func() error {
		rows, skipped, err := l.LoadRatings(ctx)
		if err != nil {
			return err
		}
		t.Ratings, t.SkippedRatings = rows, skipped
		return nil
	})
	g.Go(func() error {
		rows, skipped, err := l.LoadUsers(ctx)
		if err != nil {
			return err
		}
		t.Users, t.SkippedUsers = rows, skipped
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadBooks reads the books table. It returns the rows in file order and
// the number of rows skipped as malformed.
func (l *Loader) LoadBooks(ctx context.Context) ([]model.BookRow, int, error) {
	r, closer, cols, err := l.openTable(l.booksFile)
	if err != nil {
		return nil, 0, err
	}
	defer closer.Close()

	if err := requireColumns(cols, l.booksFile, colISBN, colTitle, colAuthor, colYear, colPublisher); err != nil {
		return nil, 0, err
	}

	var rows []model.BookRow
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("load %s cancelled: %w", l.booksFile, err)
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: %v", ErrParse, l.booksFile, err)
			}
			skipped++
			continue
		}

		isbn := field(row, cols[colISBN])
		if isbn == "" {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: row without ISBN", ErrParse, l.booksFile)
			}
			skipped++
			continue
		}

		rows = append(rows, model.BookRow{
			ISBN:      isbn,
			Title:     field(row, cols[colTitle]),
			Author:    field(row, cols[colAuthor]),
			Year:      field(row, cols[colYear]),
			Publisher: field(row, cols[colPublisher]),
			ImageURLS: optionalField(row, cols, colImageS),
			ImageURLM: optionalField(row, cols, colImageM),
			ImageURLL: optionalField(row, cols, colImageL),
		})
	}
	return rows, skipped, nil
}

// LoadRatings reads the ratings table. It returns the rows in file order
// and the number of rows skipped as malformed.
func (l *Loader) LoadRatings(ctx context.Context) ([]model.RatingRow, int, error) {
	r, closer, cols, err := l.openTable(l.ratingsFile)
	if err != nil {
		return nil, 0, err
	}
	defer closer.Close()

	if err := requireColumns(cols, l.ratingsFile, colUserID, colISBN, colScore); err != nil {
		return nil, 0, err
	}

	var rows []model.RatingRow
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("load %s cancelled: %w", l.ratingsFile, err)
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: %v", ErrParse, l.ratingsFile, err)
			}
			skipped++
			continue
		}

		userID, uerr := strconv.Atoi(field(row, cols[colUserID]))
		score, serr := strconv.Atoi(field(row, cols[colScore]))
		isbn := field(row, cols[colISBN])
		if uerr != nil || serr != nil || isbn == "" {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: malformed row %v", ErrParse, l.ratingsFile, row)
			}
			skipped++
			continue
		}

		rows = append(rows, model.RatingRow{UserID: userID, ISBN: isbn, Score: score})
	}
	return rows, skipped, nil
}

// LoadUsers reads the users table. It returns the rows in file order and
// the number of rows skipped as malformed.
func (l *Loader) LoadUsers(ctx context.Context) ([]model.UserRow, int, error) {
	r, closer, cols, err := l.openTable(l.usersFile)
	if err != nil {
		return nil, 0, err
	}
	defer closer.Close()

	if err := requireColumns(cols, l.usersFile, colUserID); err != nil {
		return nil, 0, err
	}

	var rows []model.UserRow
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("load %s cancelled: %w", l.usersFile, err)
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: %v", ErrParse, l.usersFile, err)
			}
			skipped++
			continue
		}

		id, err := strconv.Atoi(field(row, cols[colUserID]))
		if err != nil {
			if l.strict {
				return nil, 0, fmt.Errorf("%w: %s: malformed row %v", ErrParse, l.usersFile, row)
			}
			skipped++
			continue
		}

		rows = append(rows, model.UserRow{
			ID:       id,
			Location: optionalField(row, cols, colLocation),
			Age:      optionalField(row, cols, colAge),
		})
	}
	return rows, skipped, nil
}

// openTable opens one CSV file and consumes its header row, returning the
// reader positioned at the first data row and the header name index.
func (l *Loader) openTable(name string) (*csv.Reader, io.Closer, map[string]int, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrOpenFile, err)
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = l.delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // column counts are validated per row

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("%w: %s: missing header: %v", ErrParse, name, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return r, f, cols, nil
}

// requireColumns verifies that every named column appears in the header.
func requireColumns(cols map[string]int, name string, required ...string) error {
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return fmt.Errorf("%w: %s: missing column %q", ErrParse, name, c)
		}
	}
	return nil
}

// field returns the column at idx, or the empty string when the row is too
// short to carry it.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// optionalField resolves a column that may be absent from the header.
func optionalField(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}
	return field(row, idx)
}
