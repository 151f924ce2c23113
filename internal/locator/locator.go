package locator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/logger"
	"github.com/pfrederiksen/event-locator/internal/random"
)

const tracerName = "github.com/pfrederiksen/event-locator/internal/locator"

// Pipeline stage names, used for span names and metric labels
const (
	StageLocations = "generate_locations"
	StageDistances = "distances"
	StageTickets   = "generate_tickets"
	StageCheapest  = "cheapest_prices"
	StageRank      = "rank"
)

// StageRecorder receives the duration of every completed stage
type StageRecorder interface {
	ObserveStage(stage string, d time.Duration)
}

// Options configures optional collaborators of a Locator. The zero value is usable.
type Options struct {
	Logger   *logger.Logger
	Recorder StageRecorder
	Tracer   trace.Tracer
}

// Locator runs the generate, measure, reduce and rank pipeline for one user coordinate
type Locator struct {
	src      random.Source
	log      *logger.Logger
	recorder StageRecorder
	tracer   trace.Tracer

	eventCount      int
	ticketsPerEvent int
}

// New creates a Locator drawing all random data from src
func New(src random.Source, opts Options) *Locator {
	l := &Locator{
		src:             src,
		log:             opts.Logger,
		recorder:        opts.Recorder,
		tracer:          opts.Tracer,
		eventCount:      event.EventCount,
		ticketsPerEvent: event.TicketsPerEvent,
	}
	if l.log == nil {
		l.log = logger.Discard()
	}
	if l.tracer == nil {
		l.tracer = otel.Tracer(tracerName)
	}
	return l
}

// Run owns every collection generated or derived for one user coordinate.
// Nothing in a Run is modified after Locate returns it.
type Run struct {
	User            event.Coordinate `json:"user"`
	Events          []*event.Event   `json:"events"`
	Tickets         []float64        `json:"-"`
	TicketsPerEvent int              `json:"tickets_per_event"`
	Distances       []float64        `json:"distances"`
	Cheapest        []float64        `json:"cheapest"`
	Ranked          []int            `json:"ranked"`
}

// Pool returns the ticket prices of event i
func (r *Run) Pool(i int) []float64 {
	start := i * r.TicketsPerEvent
	end := start + r.TicketsPerEvent
	return r.Tickets[start:end:end]
}

// Result is one presented row
type Result struct {
	Event         *event.Event `json:"event"`
	CheapestPrice float64      `json:"cheapest_price"`
	Distance      float64      `json:"distance"`
}

// Nearest returns up to k results, nearest first
func (r *Run) Nearest(k int) []Result {
	indices := Nearest(r.Ranked, k)
	results := make([]Result, 0, len(indices))
	for _, i := range indices {
		results = append(results, Result{
			Event:         r.Events[i],
			CheapestPrice: r.Cheapest[i],
			Distance:      r.Distances[i],
		})
	}
	return results
}

// Locate generates events and tickets, then ranks the events by distance from user.
func (l *Locator) Locate(ctx context.Context, user event.Coordinate) (*Run, error) {
	if err := event.ValidateCoordinate(user); err != nil {
		return nil, fmt.Errorf("validating user coordinate: %w", err)
	}

	ctx, span := l.tracer.Start(ctx, "locator.Locate", trace.WithAttributes(
		attribute.Float64("user.x", user.X),
		attribute.Float64("user.y", user.Y),
		attribute.Int("events", l.eventCount),
		attribute.Int("tickets_per_event", l.ticketsPerEvent),
	))
	defer span.End()

	run := &Run{User: user, TicketsPerEvent: l.ticketsPerEvent}

	l.stage(ctx, StageLocations, func() {
		run.Events = GenerateLocations(l.src, l.eventCount)
	})
	l.stage(ctx, StageDistances, func() {
		run.Distances = Distances(user, run.Events)
	})
	l.stage(ctx, StageTickets, func() {
		run.Tickets = GenerateTickets(l.src, l.eventCount, l.ticketsPerEvent)
	})

	var err error
	l.stage(ctx, StageCheapest, func() {
		run.Cheapest, err = CheapestPrices(run.Tickets, l.ticketsPerEvent)
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reducing ticket prices: %w", err)
	}

	l.stage(ctx, StageRank, func() {
		run.Ranked = RankByDistance(run.Distances)
	})

	l.log.Debug("Events ranked", logger.Fields{
		"events":  len(run.Events),
		"tickets": len(run.Tickets),
	})

	return run, nil
}

// stage runs fn inside a child span and reports its duration
func (l *Locator) stage(ctx context.Context, name string, fn func()) {
	_, span := l.tracer.Start(ctx, "locator."+name)
	start := time.Now()

	fn()

	elapsed := time.Since(start)
	span.End()
	if l.recorder != nil {
		l.recorder.ObserveStage(name, elapsed)
	}
}
