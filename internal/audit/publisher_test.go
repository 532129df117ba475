package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/pkg/requestcontext"
)

type failingSink struct{}

func (failingSink) Write(context.Context, Event) error { return errors.New("broker unavailable") }
func (failingSink) Close() error                       { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecordStampsRequestScopedFields(t *testing.T) {
	sink := NewMemorySink()
	publisher := NewPublisher(sink, testLogger())

	fixedTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixedTime)
	ctx = requestcontext.WithRequestID(ctx, "req-123")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "curl/8.4.0")

	publisher.Record(ctx, ActionLogin, "alice")

	events := sink.Events()
	require.Len(t, events, 1)
	e := events[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, ActionLogin, e.Action)
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, "203.0.113.7", e.ClientIP)
	assert.Equal(t, "req-123", e.RequestID)
	assert.Equal(t, fixedTime, e.At)
}

func TestRecordEventIDsAreUnique(t *testing.T) {
	sink := NewMemorySink()
	publisher := NewPublisher(sink, testLogger())
	ctx := context.Background()

	publisher.Record(ctx, ActionLogin, "alice")
	publisher.Record(ctx, ActionLogout, "alice")

	events := sink.Events()
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

// A sink failure is an observability gap, not a request failure.
func TestRecordSwallowsSinkErrors(t *testing.T) {
	publisher := NewPublisher(failingSink{}, testLogger())

	assert.NotPanics(t, func() {
		publisher.Record(context.Background(), ActionLogin, "alice")
	})
}

func TestMemorySinkReturnsCopies(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.Write(context.Background(), Event{ID: "one", Action: ActionLogin}))

	events := sink.Events()
	events[0].ID = "mutated"

	assert.Equal(t, "one", sink.Events()[0].ID)
}
