// Package random provides the injectable randomness used to generate events and tickets.
package random

import (
	"math"
	"math/rand/v2"

	"github.com/pfrederiksen/event-locator/internal/event"
)

// Source yields uniform values in [0, 1].
type Source interface {
	Float64() float64
}

type systemSource struct{}

// NewSystem returns a source backed by the global math/rand/v2 generator.
func NewSystem() Source {
	return systemSource{}
}

func (systemSource) Float64() float64 {
	return rand.Float64()
}

type sequenceSource struct {
	values []float64
	next   int
}

// NewSequence returns a source that replays values in order and wraps around
// (useful for tests). Values are clamped into [0, 1]; an empty sequence always yields 0.
func NewSequence(values ...float64) Source {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return math.Min(math.Max(v, 0), 1)
}

// Between draws a value from b with both ends inclusive. The draw range is widened by
// one ulp past Max and the result clamped, so Max is reachable from a [0, 1) source.
func Between(src Source, b event.Bounds) float64 {
	span := math.Nextafter(b.Max, math.Inf(1)) - b.Min
	v := b.Min + src.Float64()*span
	if v > b.Max {
		return b.Max
	}
	return v
}
