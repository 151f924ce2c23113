// Package locator finds the simulated events nearest to a user coordinate.
//
// A Locator generates event locations and ticket pools from an injectable random source,
// measures the Manhattan distance from the user to every event, reduces each ticket pool to
// its cheapest price and ranks the events by distance. All of it is captured in a Run value.
//
// The ranking is stored farthest first; Nearest reads it from the end. Events at equal
// distance are presented lowest index first. Any order among ties is valid; this one is
// chosen so results are deterministic, and other implementations may present ties the
// other way round.
package locator
