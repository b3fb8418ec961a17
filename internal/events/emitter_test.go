package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	HandledCount int
	LastEvent    *Event
	HandlerError error
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(TypeSagaStepFailed, StepFailedPayload{Saga: "order.create", Step: "increment_counter"})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID.String())
	assert.Equal(t, TypeSagaStepFailed, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var p StepFailedPayload
	require.NoError(t, event.UnmarshalPayload(&p))
	assert.Equal(t, "increment_counter", p.Step)

	_, err = NewEvent("bad", make(chan int))
	assert.Error(t, err)
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent("test-event", map[string]string{"key": "value"})
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEvent("test-event", map[string]string{"key": "value"})
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		event, err := NewEvent("test-event", nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")

		// Later handlers still run
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})

	t.Run("handler func adapter", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		var got string
		emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, e *Event) error {
			got = e.Type
			return nil
		}))

		event, err := NewEvent("ping", nil)
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, "ping", got)
	})
}

func TestLoggingHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLoggingHandler(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	event, err := NewEvent(TypeSagaStepFailed, StepFailedPayload{
		Saga:      "order.delete",
		Step:      "decrement_counter",
		Committed: []string{"delete_order"},
		Error:     "entity not found: product",
		Tolerated: true,
	})
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"failed_step":"decrement_counter"`)
	assert.Contains(t, out, `"saga":"order.delete"`)

	bad := &Event{Type: TypeSagaStepFailed, Payload: []byte("{")}
	assert.Error(t, h.HandleEvent(context.Background(), bad))
}
