package locator

import (
	"fmt"
	"slices"
)

// CheapestPrices returns the minimum of each perEvent-sized block of tickets
func CheapestPrices(tickets []float64, perEvent int) ([]float64, error) {
	if perEvent <= 0 {
		return nil, fmt.Errorf("tickets per event must be positive, got %d", perEvent)
	}
	if len(tickets)%perEvent != 0 {
		return nil, fmt.Errorf("ticket count %d is not a multiple of %d", len(tickets), perEvent)
	}

	cheapest := make([]float64, 0, len(tickets)/perEvent)
	for start := 0; start < len(tickets); start += perEvent {
		cheapest = append(cheapest, slices.Min(tickets[start:start+perEvent]))
	}
	return cheapest, nil
}
