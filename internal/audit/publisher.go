package audit

import (
	"context"
	"log/slog"
	"time"

	"prequal/pkg/requestcontext"
)

// Sink persists events. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

const (
	defaultBufferSize  = 256
	defaultAppendGrace = 5 * time.Second
)

// Publisher decouples the evaluation hot path from sink latency. Emit is
// non-blocking; a background worker drains the buffer into the sink.
// A nil Publisher silently discards events.
type Publisher struct {
	sink   Sink
	logger *slog.Logger
	inbox  chan Event
	done   chan struct{}
}

func NewPublisher(sink Sink, logger *slog.Logger) *Publisher {
	if sink == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		sink:   sink,
		logger: logger,
		inbox:  make(chan Event, defaultBufferSize),
		done:   make(chan struct{}),
	}
}

// Emit stamps and enqueues the event. Events are dropped, with a warning,
// when the buffer is full rather than stalling an evaluation.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event", "lender_id", event.LenderID)
	}
}

// Run drains the buffer until ctx is cancelled, then flushes what remains.
func (p *Publisher) Run(ctx context.Context) {
	if p == nil {
		return
	}
	defer close(p.done)
	for {
		select {
		case event := <-p.inbox:
			p.append(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-p.inbox:
					p.append(event)
				default:
					return
				}
			}
		}
	}
}

// Wait blocks until Run has returned.
func (p *Publisher) Wait() {
	if p == nil {
		return
	}
	<-p.done
}

func (p *Publisher) append(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultAppendGrace)
	defer cancel()
	if err := p.sink.Append(ctx, event); err != nil {
		p.logger.Error("audit append failed", "lender_id", event.LenderID, "error", err)
	}
}
