// Package console implements the interactive recommendation prompt.
package console

import "io"

// Option configures a Console.
type Option func(*Console)

// WithInput overrides the reader queries are read from.
func WithInput(r io.Reader) Option {
	return func(c *Console) {
		if r != nil {
			c.in = r
		}
	}
}

// WithOutput overrides the writer answers are printed to.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}
