// Package event provides the types shared by every stage of the event locator.
//
// The event package holds the compiled-in simulation parameters (grid bounds, event and
// ticket counts, price range), the Coordinate and Event types, and the inclusive Bounds
// range used to validate user input and generated data.
package event
