package locator

import (
	"math"

	"github.com/pfrederiksen/event-locator/internal/event"
)

// ManhattanDistance returns |a.X-b.X| + |a.Y-b.Y|
func ManhattanDistance(a, b event.Coordinate) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Distances computes the distance from user to every event, indexed like events
func Distances(user event.Coordinate, events []*event.Event) []float64 {
	distances := make([]float64, len(events))
	for i, evt := range events {
		distances[i] = ManhattanDistance(evt.Location, user)
	}
	return distances
}
