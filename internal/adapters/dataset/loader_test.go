package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const booksFixture = `ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher,Image-URL-S,Image-URL-M,Image-URL-L
0195153448,Classical Mythology,Mark P. O. Morford,2002,Oxford University Press,http://images.amazon.com/images/P/0195153448.01.THUMBZZZ.jpg,http://images.amazon.com/images/P/0195153448.01.MZZZZZZZ.jpg,http://images.amazon.com/images/P/0195153448.01.LZZZZZZZ.jpg
0002005018,Clara Callan,Richard Bruce Wright,2001,HarperFlamingo Canada,http://images.amazon.com/images/P/0002005018.01.THUMBZZZ.jpg,http://images.amazon.com/images/P/0002005018.01.MZZZZZZZ.jpg,http://images.amazon.com/images/P/0002005018.01.LZZZZZZZ.jpg
0553575384,"To Say Nothing of the Dog, or How We Found the Bishop's Bird Stump at Last",Connie Willis,1998,Bantam Books,http://images.amazon.com/images/P/0553575384.01.THUMBZZZ.jpg,http://images.amazon.com/images/P/0553575384.01.MZZZZZZZ.jpg,http://images.amazon.com/images/P/0553575384.01.LZZZZZZZ.jpg
`

const ratingsFixture = `User-ID,ISBN,Book-Rating
276725,034545104X,0
276726,0155061224,5
276727,0446520802,0
276729,052165615X,3
`

const usersFixture = `User-ID,Location,Age
1,"nyc, new york, usa",NULL
2,"stockton, california, usa",18
3,"moscow, yukon territory, russia",NULL
`

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func TestLoader_LoadBooks(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Books.csv", booksFixture)

	rows, skipped, err := New(dir).LoadBooks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ISBN != "0195153448" {
		t.Errorf("expected ISBN 0195153448, got %q", first.ISBN)
	}
	if first.Title != "Classical Mythology" {
		t.Errorf("expected title Classical Mythology, got %q", first.Title)
	}
	if first.Author != "Mark P. O. Morford" {
		t.Errorf("expected author Mark P. O. Morford, got %q", first.Author)
	}
	if first.Year != "2002" {
		t.Errorf("expected year 2002, got %q", first.Year)
	}
	if first.Publisher != "Oxford University Press" {
		t.Errorf("expected publisher Oxford University Press, got %q", first.Publisher)
	}
	if first.ImageURLL == "" {
		t.Error("expected large image URL to be carried")
	}

	// Quoted title with an embedded comma stays one field.
	if rows[2].Title != "To Say Nothing of the Dog, or How We Found the Bishop's Bird Stump at Last" {
		t.Errorf("quoted title parsed wrong: %q", rows[2].Title)
	}
	if rows[2].Author != "Connie Willis" {
		t.Errorf("expected author Connie Willis, got %q", rows[2].Author)
	}
}

func TestLoader_LoadRatings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Ratings.csv", ratingsFixture)

	rows, skipped, err := New(dir).LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].UserID != 276725 || rows[0].ISBN != "034545104X" || rows[0].Score != 0 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[3].UserID != 276729 || rows[3].Score != 3 {
		t.Errorf("unexpected last row: %+v", rows[3])
	}
}

func TestLoader_LoadUsers(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Users.csv", usersFixture)

	rows, skipped, err := New(dir).LoadUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != 1 || rows[0].Location != "nyc, new york, usa" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[0].Age != "NULL" {
		t.Errorf("expected NULL age carried verbatim, got %q", rows[0].Age)
	}
	if rows[1].Age != "18" {
		t.Errorf("expected age 18, got %q", rows[1].Age)
	}
}

func TestLoader_HeaderOrderIndependence(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Ratings.csv", `Book-Rating,ISBN,User-ID
8,0971880107,11676
10,0316666343,11676
`)

	rows, _, err := New(dir).LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].UserID != 11676 || rows[0].ISBN != "0971880107" || rows[0].Score != 8 {
		t.Errorf("columns resolved wrong: %+v", rows[0])
	}
}

func TestLoader_MalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Ratings.csv", `User-ID,ISBN,Book-Rating
276725,034545104X,0
notanumber,0155061224,5
276727,,4
276729,052165615X,three
276730,0446520802,7
`)

	rows, skipped, err := New(dir).LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 3 {
		t.Errorf("expected 3 skipped rows, got %d", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", len(rows))
	}
	if rows[0].UserID != 276725 || rows[1].UserID != 276730 {
		t.Errorf("wrong rows survived: %+v", rows)
	}

	writeFixture(t, dir, "Books.csv", `ISBN,Book-Title,Book-Author,Year-Of-Publication,Publisher
,Missing Key,Nobody,2000,Ghost Press
0002005018,Clara Callan,Richard Bruce Wright,2001,HarperFlamingo Canada
`)

	books, skippedBooks, err := New(dir).LoadBooks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skippedBooks != 1 {
		t.Errorf("expected 1 skipped book row, got %d", skippedBooks)
	}
	if len(books) != 1 || books[0].ISBN != "0002005018" {
		t.Errorf("wrong book rows survived: %+v", books)
	}
	if books[0].ImageURLS != "" {
		t.Errorf("expected empty image URL when column absent, got %q", books[0].ImageURLS)
	}
}

func TestLoader_StrictMode(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Ratings.csv", `User-ID,ISBN,Book-Rating
notanumber,0155061224,5
`)

	_, _, err := New(dir, WithStrict(true)).LoadRatings(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := New(dir).LoadBooks(context.Background())
	if !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
}

func TestLoader_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Ratings.csv", `User-ID,ISBN
276725,034545104X
`)

	_, _, err := New(dir).LoadRatings(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}

	writeFixture(t, dir, "Users.csv", "")
	_, _, err = New(dir).LoadUsers(context.Background())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for empty file, got %v", err)
	}
}

func TestLoader_CustomLayout(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "BX-Book-Ratings.csv", `User-ID;ISBN;Book-Rating
276725;034545104X;0
276726;0155061224;5
`)

	rows, _, err := New(dir,
		WithRatingsFile("BX-Book-Ratings.csv"),
		WithDelimiter(';'),
	).LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].UserID != 276726 || rows[1].Score != 5 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Books.csv", booksFixture)
	writeFixture(t, dir, "Ratings.csv", ratingsFixture)
	writeFixture(t, dir, "Users.csv", usersFixture)

	tables, err := New(dir).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables.Books) != 3 {
		t.Errorf("expected 3 books, got %d", len(tables.Books))
	}
	if len(tables.Ratings) != 4 {
		t.Errorf("expected 4 ratings, got %d", len(tables.Ratings))
	}
	if len(tables.Users) != 3 {
		t.Errorf("expected 3 users, got %d", len(tables.Users))
	}
	if tables.SkippedBooks != 0 || tables.SkippedRatings != 0 || tables.SkippedUsers != 0 {
		t.Errorf("expected no skipped rows, got %d/%d/%d",
			tables.SkippedBooks, tables.SkippedRatings, tables.SkippedUsers)
	}

	// File order must survive the concurrent load.
	if tables.Books[0].ISBN != "0195153448" || tables.Books[2].ISBN != "0553575384" {
		t.Errorf("book order not preserved: %+v", tables.Books)
	}
	if tables.Ratings[0].UserID != 276725 || tables.Ratings[3].UserID != 276729 {
		t.Errorf("rating order not preserved: %+v", tables.Ratings)
	}
}

func TestLoader_LoadAllMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Books.csv", booksFixture)
	writeFixture(t, dir, "Ratings.csv", ratingsFixture)

	_, err := New(dir).LoadAll(context.Background())
	if !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
}

func TestLoader_LoadAllCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Books.csv", booksFixture)
	writeFixture(t, dir, "Ratings.csv", ratingsFixture)
	writeFixture(t, dir, "Users.csv", usersFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(dir).LoadAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
