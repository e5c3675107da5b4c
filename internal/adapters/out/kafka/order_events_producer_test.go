package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusChanged() order.Event {
	return order.Event{
		Type:        order.EventStatusChanged,
		OrderID:     kernel.NewUUID(),
		OrderNumber: "ORD-20260610-ABC123",
		BranchID:    kernel.NewUUID(),
		OrderType:   order.Service,
		From:        order.InProgress,
		To:          order.Completed,
		Actor:       "frontdesk",
		OccurredAt:  time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderEventsProducer_PublishWritesKeyedMessage(t *testing.T) {
	writer := new(MockKafkaWriter)
	event := statusChanged()
	written := make(chan kafkago.Message, 1)

	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			msgs := args.Get(1).([]kafkago.Message)
			written <- msgs[0]
		}).
		Return(nil).Once()
	writer.On("Close").Return(nil).Once()

	producer := NewOrderEventsProducerWithWriter(writer, 10, discardLogger())
	producer.Publish(context.Background(), event)

	var msg kafkago.Message
	select {
	case msg = <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not written")
	}

	assert.Equal(t, event.OrderID.String(), string(msg.Key))

	var payload OrderEventMessage
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "order.status_changed", payload.EventType)
	assert.Equal(t, "in_progress", payload.FromStatus)
	assert.Equal(t, "completed", payload.ToStatus)
	assert.Equal(t, "service", payload.OrderType)
	assert.Equal(t, "frontdesk", payload.Actor)
	assert.True(t, event.OccurredAt.Equal(payload.OccurredAt))

	require.NoError(t, producer.Close())
	writer.AssertExpectations(t)
}

func TestOrderEventsProducer_DropsWhenQueueIsFull(t *testing.T) {
	var logs bytes.Buffer
	producer := &OrderEventsProducer{
		events:    make(chan order.Event, 1),
		closeChan: make(chan struct{}),
		logger:    slog.New(slog.NewTextHandler(&logs, nil)),
	}

	producer.Publish(context.Background(), statusChanged(), statusChanged())

	assert.Len(t, producer.events, 1)
	assert.Contains(t, logs.String(), "Order event queue is full, dropping event")
}

func TestOrderEventsProducer_CloseFlushesQueue(t *testing.T) {
	writer := new(MockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).Times(3)
	writer.On("Close").Return(nil).Once()

	producer := &OrderEventsProducer{
		writer:    writer,
		events:    make(chan order.Event, 3),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
		logger:    discardLogger(),
	}
	producer.Publish(context.Background(), statusChanged(), statusChanged(), statusChanged())

	go producer.eventLoop()
	require.NoError(t, producer.Close())

	writer.AssertNumberOfCalls(t, "WriteMessages", 3)
	writer.AssertExpectations(t)
}

func TestOrderEventsProducer_WriteErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	writer := new(MockKafkaWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()

	producer := &OrderEventsProducer{
		writer: writer,
		logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}
	producer.sendEvent(statusChanged())

	assert.Contains(t, logs.String(), "Failed to write order event")
	assert.Contains(t, logs.String(), "broker unavailable")
	writer.AssertExpectations(t)
}

func TestOrderEventsProducer_PublishAfterCloseIsDropped(t *testing.T) {
	writer := new(MockKafkaWriter)
	writer.On("Close").Return(nil).Once()

	producer := NewOrderEventsProducerWithWriter(writer, 1, discardLogger())
	require.NoError(t, producer.Close())

	producer.Publish(context.Background(), statusChanged())

	assert.Empty(t, producer.events)
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestToMessage_CreatedEventHasNoFromStatus(t *testing.T) {
	event := statusChanged()
	event.Type = order.EventCreated
	event.From = order.Unknown
	event.To = order.Created

	msg := toMessage(event)

	assert.Empty(t, msg.FromStatus)
	assert.Equal(t, "created", msg.ToStatus)
	assert.Equal(t, event.BranchID.String(), msg.BranchID)
}
