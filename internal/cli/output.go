package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/locator"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// priceIntegerDigits is the minimum number of integer digits in a formatted price
const priceIntegerDigits = 3

// OutputResult contains data to be output
type OutputResult struct {
	User    event.Coordinate `json:"user"`
	Results []ResultRow      `json:"results"`
}

// ResultRow is one presented event with both its raw and its display values
type ResultRow struct {
	ID            string           `json:"id"`
	Location      event.Coordinate `json:"location"`
	CheapestPrice float64          `json:"cheapest_price"`
	Price         string           `json:"price"`
	Distance      float64          `json:"distance"`
	RoundDistance int64            `json:"rounded_distance"`
}

// NewOutputResult builds the rows for the given results, nearest first
func NewOutputResult(user event.Coordinate, results []locator.Result) *OutputResult {
	rows := make([]ResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, ResultRow{
			ID:            r.Event.ID,
			Location:      r.Event.Location,
			CheapestPrice: r.CheapestPrice,
			Price:         FormatPrice(r.CheapestPrice),
			Distance:      r.Distance,
			RoundDistance: RoundDistance(r.Distance),
		})
	}
	return &OutputResult{User: user, Results: rows}
}

// FormatPrice rounds p up to whole cents and pads the integer part to three digits,
// so 12.341 becomes "012.35".
func FormatPrice(p float64) string {
	s := decimal.NewFromFloat(p).RoundCeil(2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if pad := priceIntegerDigits - len(intPart); pad > 0 {
		intPart = strings.Repeat("0", pad) + intPart
	}
	return sign + intPart + "." + frac
}

// RoundDistance rounds d to the nearest integer, halves away from zero
func RoundDistance(d float64) int64 {
	return int64(math.Round(d))
}

// FormatRow renders one result line, e.g. "Event 001 - $012.35, Distance 3"
func FormatRow(row ResultRow) string {
	return fmt.Sprintf("Event %s - $%s, Distance %d", row.ID, row.Price, row.RoundDistance)
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs one line per result followed by a blank line
func writeText(w io.Writer, result *OutputResult) error {
	for _, row := range result.Results {
		if _, err := fmt.Fprintln(w, FormatRow(row)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
