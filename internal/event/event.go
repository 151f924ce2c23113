package event

import (
	"errors"
	"fmt"
	"strconv"
)

// Compiled-in simulation parameters
const (
	CoordinateLow  = -10.0
	CoordinateHigh = 10.0

	EventCount      = 20
	TicketsPerEvent = 50

	LowestTicketPrice  = 0.001
	HighestTicketPrice = 998.999

	ResultCount = 5
)

// ErrOutOfBounds is returned when a value falls outside its configured range
var ErrOutOfBounds = errors.New("value out of bounds")

// Bounds is an inclusive [Min, Max] range
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var (
	// CoordinateBounds limits both axes of every coordinate
	CoordinateBounds = Bounds{Min: CoordinateLow, Max: CoordinateHigh}
	// PriceBounds limits every generated ticket price
	PriceBounds = Bounds{Min: LowestTicketPrice, Max: HighestTicketPrice}
)

// Contains reports whether v lies inside the range. NaN is never contained.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Coordinate is a point on the simulation grid
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String renders the coordinate as "(x,y)" using the shortest exact decimal form
func (c Coordinate) String() string {
	return "(" + strconv.FormatFloat(c.X, 'f', -1, 64) + "," + strconv.FormatFloat(c.Y, 'f', -1, 64) + ")"
}

// ValidateCoordinate checks both axes against CoordinateBounds
func ValidateCoordinate(c Coordinate) error {
	if !CoordinateBounds.Contains(c.X) {
		return fmt.Errorf("%w: x=%v must be between %v and %v", ErrOutOfBounds, c.X, CoordinateLow, CoordinateHigh)
	}
	if !CoordinateBounds.Contains(c.Y) {
		return fmt.Errorf("%w: y=%v must be between %v and %v", ErrOutOfBounds, c.Y, CoordinateLow, CoordinateHigh)
	}
	return nil
}

// Event represents a simulated venue
type Event struct {
	Index    int        `json:"index"`
	ID       string     `json:"id"`
	Location Coordinate `json:"location"`
}

// FormatID returns the user-facing identifier for an event index.
// Identifiers are one-based and zero-padded to three digits.
func FormatID(index int) string {
	return fmt.Sprintf("%03d", index+1)
}

// NewEvent creates a new Event with its ID populated
func NewEvent(index int, location Coordinate) *Event {
	return &Event{
		Index:    index,
		ID:       FormatID(index),
		Location: location,
	}
}
