// Package dataset reads the three Book-Crossing source tables from CSV files.
package dataset

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithBooksFile overrides the books table file name.
func WithBooksFile(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.booksFile = name
		}
	}
}

// WithRatingsFile overrides the ratings table file name.
func WithRatingsFile(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.ratingsFile = name
		}
	}
}

// WithUsersFile overrides the users table file name.
func WithUsersFile(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.usersFile = name
		}
	}
}

// WithDelimiter sets the field delimiter shared by all three files.
// The classic BX dump uses ';' instead of ','.
func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		if d != 0 {
			l.delimiter = d
		}
	}
}

// WithStrict makes malformed rows fail the load instead of being
// skipped and counted.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}
