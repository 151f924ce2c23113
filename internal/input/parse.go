package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/observability"
)

var (
	ErrTokenCount = errors.New("expected exactly two comma-separated values")
	ErrNotNumber  = errors.New("value is not a number")
	ErrOutOfRange = errors.New("coordinate out of range")
	ErrNoInput    = errors.New("input ended before valid coordinates were entered")
)

// User-facing messages, one per rejection reason
const (
	Prompt            = "Please enter a pair of co-ordinates separated by a comma: "
	MsgTokenCount     = "The co-ordinates you entered do not exist. Please try again"
	MsgNotNumber      = "You have entered an invalid pair of co-ordinates. Please try again"
	MsgOutOfRange     = "Each co-ordinate should be between -10 and 10. Please try again"
	MsgSuccess        = "Success!!! You have entered valid co-ordinates"
	closestHeaderText = "Closest events to "
)

// Parse converts one line of user input into a coordinate.
//
// All whitespace is removed before splitting on commas, and trailing empty tokens are
// dropped, so "3,4," is accepted and "," has no tokens at all. Tokens are checked in
// order, so for "11,abc" the range error on the first token is reported.
func Parse(line string) (event.Coordinate, error) {
	tokens := splitTokens(Clean(line))
	if len(tokens) != 2 {
		return event.Coordinate{}, fmt.Errorf("%w: got %d", ErrTokenCount, len(tokens))
	}

	var values [2]float64
	for i, tok := range tokens {
		v, err := parseToken(tok)
		if err != nil {
			return event.Coordinate{}, err
		}
		values[i] = v
	}

	return event.Coordinate{X: values[0], Y: values[1]}, nil
}

// Clean removes all whitespace from a line of input
func Clean(line string) string {
	return strings.Join(strings.Fields(line), "")
}

func splitTokens(cleaned string) []string {
	tokens := strings.Split(cleaned, ",")
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func parseToken(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		// Overflowing literals parse to ±Inf, which is a number, just not a usable one
		if errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", ErrOutOfRange, tok)
		}
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, tok)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, tok)
	}
	if !event.CoordinateBounds.Contains(v) {
		return 0, fmt.Errorf("%w: %v must be between %v and %v", ErrOutOfRange, v, event.CoordinateLow, event.CoordinateHigh)
	}
	return v, nil
}

// Message returns the text shown to the user for a Parse error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTokenCount):
		return MsgTokenCount
	case errors.Is(err, ErrOutOfRange):
		return MsgOutOfRange
	default:
		return MsgNotNumber
	}
}

// attemptResult maps a Parse outcome to its metrics label.
func attemptResult(err error) string {
	switch {
	case err == nil:
		return observability.AttemptAccepted
	case errors.Is(err, ErrTokenCount):
		return observability.AttemptTokenCount
	case errors.Is(err, ErrOutOfRange):
		return observability.AttemptOutOfRange
	default:
		return observability.AttemptNotNumber
	}
}
