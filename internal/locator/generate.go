package locator

import (
	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/random"
)

// GenerateLocations creates n events at random coordinates inside event.CoordinateBounds.
// Each event draws x then y.
func GenerateLocations(src random.Source, n int) []*event.Event {
	events := make([]*event.Event, 0, n)
	for i := 0; i < n; i++ {
		x := random.Between(src, event.CoordinateBounds)
		y := random.Between(src, event.CoordinateBounds)
		events = append(events, event.NewEvent(i, event.Coordinate{X: x, Y: y}))
	}
	return events
}

// GenerateTickets draws events*perEvent prices from event.PriceBounds as one flat slice.
// The tickets of event i occupy [i*perEvent, (i+1)*perEvent).
func GenerateTickets(src random.Source, events, perEvent int) []float64 {
	tickets := make([]float64, events*perEvent)
	for i := range tickets {
		tickets[i] = random.Between(src, event.PriceBounds)
	}
	return tickets
}
