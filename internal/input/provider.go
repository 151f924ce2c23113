package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/logger"
)

// Recorder receives one call per input attempt
type Recorder interface {
	RecordAttempt(result string)
}

// Provider prompts for coordinates until a valid pair is entered
type Provider struct {
	reader   *bufio.Reader
	out      io.Writer
	log      *logger.Logger
	recorder Recorder
}

// NewProvider creates a Provider reading lines from in and writing prompts to out.
// log and recorder may be nil.
func NewProvider(in io.Reader, out io.Writer, log *logger.Logger, recorder Recorder) *Provider {
	if log == nil {
		log = logger.Discard()
	}
	return &Provider{
		reader:   bufio.NewReader(in),
		out:      out,
		log:      log,
		recorder: recorder,
	}
}

// Next prompts repeatedly until a valid coordinate is read. There is no retry limit;
// it returns early only when input is exhausted (ErrNoInput), reading fails, or ctx is done.
func (p *Provider) Next(ctx context.Context) (event.Coordinate, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return event.Coordinate{}, err
		}

		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, Prompt)
		fmt.Fprintln(p.out)

		line, err := p.readLine()
		if err != nil {
			return event.Coordinate{}, err
		}
		fmt.Fprintln(p.out)

		coord, err := Parse(line)
		p.record(err)
		if err != nil {
			p.log.Debug("Rejected coordinates", logger.Fields{
				"attempt": attempt,
				"input":   line,
				"reason":  err.Error(),
			})
			fmt.Fprintln(p.out, Message(err))
			fmt.Fprintln(p.out)
			continue
		}

		p.log.Info("Coordinates accepted", logger.Fields{
			"attempts": attempt,
			"x":        coord.X,
			"y":        coord.Y,
		})

		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, MsgSuccess)
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, closestHeaderText+"("+Clean(line)+")")
		fmt.Fprintln(p.out)
		return coord, nil
	}
}

// readLine returns the next line without its terminator. Lines have no length limit;
// a final line without a newline still counts.
func (p *Provider) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Provider) record(err error) {
	if p.recorder == nil {
		return
	}
	p.recorder.RecordAttempt(attemptResult(err))
}
