// Package input reads and validates the user's coordinate pair.
//
// Parse turns one line into a coordinate or a sentinel error (ErrTokenCount, ErrNotNumber,
// ErrOutOfRange). Provider wraps Parse in the interactive prompt loop, re-prompting after
// every rejected line.
package input
