// Package cli implements the command-line interface for event-locator.
//
// The cli package provides the Cobra-based root command that prompts for a coordinate,
// runs the locator pipeline and renders the nearest events as text or JSON. It also wires
// the ambient stack: configuration, structured logging, tracing and the metrics textfile.
package cli
