// Package console implements the interactive recommendation prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shezad-m/book-recommender/internal/adapters/repository"
	"github.com/shezad-m/book-recommender/internal/domain/recommend"
	"github.com/shezad-m/book-recommender/internal/domain/types"
)

// Recommender is the slice of the application service the console needs.
type Recommender interface {
	TitleOf(ctx context.Context, isbn string) (string, error)
	Recommend(ctx context.Context, isbn string) (types.Recommendation, error)
}

// Console runs the interactive query loop over a started service.
type Console struct {
	svc Recommender
	in  io.Reader
	out io.Writer
}

// New creates a console bound to svc. It reads stdin and writes stdout
// unless overridden by options.
func New(svc Recommender, opts ...Option) *Console {
	c := &Console{
		svc: svc,
		in:  os.Stdin,
		out: os.Stdout,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run prompts for ISBNs until the input ends or the user types a quit
// word. A failed query prints its message and re-prompts; only input
// exhaustion or cancellation ends the loop.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("console interrupted: %w", err)
		}
		fmt.Fprint(c.out, "Enter a book's ISBN: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		c.answer(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// answer resolves one query and prints exactly one line for it.
func (c *Console) answer(ctx context.Context, isbn string) {
	title, err := c.svc.TitleOf(ctx, isbn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Fprintln(c.out, "That book does not exist in the dataset.")
			return
		}
		fmt.Fprintf(c.out, "Something went wrong: %v\n", err)
		return
	}

	rec, err := c.svc.Recommend(ctx, isbn)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrNoSimilarUsers), errors.Is(err, recommend.ErrNoCandidates):
			fmt.Fprintf(c.out, "Couldn't find a good match for \"%s\". Try a more widely rated book.\n", title)
		case errors.Is(err, repository.ErrNotFound):
			fmt.Fprintln(c.out, "That book does not exist in the dataset.")
		default:
			fmt.Fprintf(c.out, "Something went wrong: %v\n", err)
		}
		return
	}

	fmt.Fprintf(c.out, "If you like \"%s\", then you'll like \"%s\"\n", title, rec.Title)
}
