package locator

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/random"
)

type fakeStageRecorder struct {
	stages []string
}

func (f *fakeStageRecorder) ObserveStage(stage string, d time.Duration) {
	f.stages = append(f.stages, stage)
}

func TestLocateInvariants(t *testing.T) {
	l := New(random.NewSystem(), Options{})

	user := event.Coordinate{X: 3, Y: -4}
	run, err := l.Locate(context.Background(), user)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	if len(run.Events) != event.EventCount {
		t.Fatalf("expected %d events, got %d", event.EventCount, len(run.Events))
	}
	if len(run.Tickets) != event.EventCount*event.TicketsPerEvent {
		t.Fatalf("expected %d tickets, got %d", event.EventCount*event.TicketsPerEvent, len(run.Tickets))
	}

	for i, evt := range run.Events {
		if evt.Index != i {
			t.Errorf("event %d has index %d", i, evt.Index)
		}
		if got, want := run.Distances[i], ManhattanDistance(evt.Location, user); got != want || got < 0 {
			t.Errorf("distance[%d] = %v, want %v", i, got, want)
		}

		pool := run.Pool(i)
		if len(pool) != event.TicketsPerEvent {
			t.Errorf("pool %d has %d tickets", i, len(pool))
		}
		if run.Cheapest[i] != slices.Min(pool) {
			t.Errorf("cheapest[%d] = %v, want %v", i, run.Cheapest[i], slices.Min(pool))
		}
	}

	sorted := slices.Clone(run.Ranked)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("ranked %v is not a permutation", run.Ranked)
		}
	}

	results := run.Nearest(event.ResultCount)
	if len(results) != event.ResultCount {
		t.Fatalf("expected %d results, got %d", event.ResultCount, len(results))
	}
	smallest := slices.Clone(run.Distances)
	slices.Sort(smallest)
	for i, r := range results {
		if r.Distance != smallest[i] {
			t.Errorf("result %d distance = %v, want %v", i, r.Distance, smallest[i])
		}
	}
}

func TestLocateDeterministicWithSequence(t *testing.T) {
	// Locations: event 0 at (10,10), event 1 at (-10,-10), event 2 at (0,0) (approximately).
	// Tickets then cycle through the same values.
	src := random.NewSequence(1, 1, 0, 0, 0.5, 0.5)
	l := New(src, Options{})
	l.eventCount = 3
	l.ticketsPerEvent = 2

	run, err := l.Locate(context.Background(), event.Coordinate{X: 9, Y: 9})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	results := run.Nearest(3)
	ids := []string{results[0].Event.ID, results[1].Event.ID, results[2].Event.ID}
	if !slices.Equal(ids, []string{"001", "003", "002"}) {
		t.Errorf("nearest IDs = %v, want [001 003 002]", ids)
	}
	if results[0].Distance != 2 {
		t.Errorf("nearest distance = %v, want 2", results[0].Distance)
	}
	if run.Cheapest[1] != event.LowestTicketPrice {
		t.Errorf("cheapest[1] = %v, want %v", run.Cheapest[1], event.LowestTicketPrice)
	}
}

func TestLocateRejectsInvalidUser(t *testing.T) {
	l := New(random.NewSystem(), Options{})

	_, err := l.Locate(context.Background(), event.Coordinate{X: 20, Y: 0})
	if !errors.Is(err, event.ErrOutOfBounds) {
		t.Fatalf("Locate() error = %v, want ErrOutOfBounds", err)
	}
}

func TestLocateRecordsStagesAndSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background()) // nolint:errcheck

	rec := &fakeStageRecorder{}
	l := New(random.NewSystem(), Options{
		Recorder: rec,
		Tracer:   tp.Tracer("test"),
	})

	if _, err := l.Locate(context.Background(), event.Coordinate{}); err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	wantStages := []string{StageLocations, StageDistances, StageTickets, StageCheapest, StageRank}
	if !slices.Equal(rec.stages, wantStages) {
		t.Errorf("stages = %v, want %v", rec.stages, wantStages)
	}

	names := make([]string, 0)
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	for _, stage := range wantStages {
		if !slices.Contains(names, "locator."+stage) {
			t.Errorf("missing span locator.%s in %v", stage, names)
		}
	}
	if !slices.Contains(names, "locator.Locate") {
		t.Errorf("missing root span in %v", names)
	}
}

func TestRunPoolIsIsolated(t *testing.T) {
	run := &Run{Tickets: []float64{1, 2, 3, 4}, TicketsPerEvent: 2}

	pool := run.Pool(0)
	pool = append(pool, 99)

	if run.Tickets[2] != 3 {
		t.Errorf("appending to a pool must not overwrite the next pool, got %v", run.Tickets)
	}
	if !slices.Equal(run.Pool(1), []float64{3, 4}) {
		t.Errorf("Pool(1) = %v, want [3 4]", run.Pool(1))
	}
}
