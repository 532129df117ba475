package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"pinboard/pkg/requestcontext"
)

// Publisher stamps events with client metadata and request-scoped time before
// handing them to the sink. Sink failures are logged, never propagated: the
// audit trail must not fail user requests.
type Publisher struct {
	sink   Sink
	logger *slog.Logger
}

func NewPublisher(sink Sink, logger *slog.Logger) *Publisher {
	return &Publisher{sink: sink, logger: logger}
}

// Record emits one event for the given action.
func (p *Publisher) Record(ctx context.Context, action Action, username string) {
	event := Event{
		ID:        uuid.NewString(),
		Action:    action,
		Username:  username,
		ClientIP:  requestcontext.ClientIP(ctx),
		RequestID: requestcontext.RequestID(ctx),
		At:        requestcontext.Now(ctx),
	}
	if err := p.sink.Write(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit event dropped",
			"action", string(action),
			"request_id", event.RequestID,
			"error", err,
		)
	}
}

// Close releases the underlying sink.
func (p *Publisher) Close() error {
	return p.sink.Close()
}
