// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tracker/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	defaultQueueSize = 1000
	writeTimeout     = 10 * time.Second
)

// Writer is the part of kafka-go's Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderEventMessage is the JSON payload written for every order event.
type OrderEventMessage struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	BranchID    string    `json:"branch_id"`
	OrderType   string    `json:"order_type"`
	FromStatus  string    `json:"from_status,omitempty"`
	ToStatus    string    `json:"to_status"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderEventsProducer implements ports.EventPublisher. Publish only queues the
// events; a background loop writes them to Kafka keyed by order id, so every
// order's events land on one partition in commit order.
type OrderEventsProducer struct {
	writer    Writer
	events    chan order.Event
	closeChan chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewOrderEventsProducer connects to brokers lazily; nothing is dialled until
// the first event is written.
func NewOrderEventsProducer(brokers []string, topic string, logger *slog.Logger) *OrderEventsProducer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewOrderEventsProducerWithWriter(writer, defaultQueueSize, logger)
}

// NewOrderEventsProducerWithWriter starts the event loop over any Writer.
func NewOrderEventsProducerWithWriter(writer Writer, queueSize int, logger *slog.Logger) *OrderEventsProducer {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	p := &OrderEventsProducer{
		writer:    writer,
		events:    make(chan order.Event, queueSize),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.With("component", "OrderEventsProducer"),
	}

	go p.eventLoop()

	return p
}

// Publish queues events without blocking. When the queue is full the event is
// dropped and a warning is logged.
func (p *OrderEventsProducer) Publish(ctx context.Context, events ...order.Event) {
	for _, event := range events {
		select {
		case <-p.closeChan:
			p.logger.WarnContext(ctx, "Producer closed, dropping order event",
				"event_type", event.Type, "order_id", event.OrderID.String())
			return
		default:
		}

		select {
		case p.events <- event:
		default:
			p.logger.WarnContext(ctx, "Order event queue is full, dropping event",
				"event_type", event.Type, "order_id", event.OrderID.String())
		}
	}
}

// Close flushes queued events and closes the writer.
func (p *OrderEventsProducer) Close() error {
	p.closeOnce.Do(func() {
		close(p.closeChan)
	})
	<-p.done
	return p.writer.Close()
}

func (p *OrderEventsProducer) eventLoop() {
	defer close(p.done)

	for {
		select {
		case event := <-p.events:
			p.sendEvent(event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

func (p *OrderEventsProducer) drain() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(event)
		default:
			return
		}
	}
}

func (p *OrderEventsProducer) sendEvent(event order.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	value, err := json.Marshal(toMessage(event))
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal order event", "error", err, "order_id", event.OrderID.String())
		return
	}

	msg := kafkago.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to write order event",
			"error", err, "event_type", event.Type, "order_id", event.OrderID.String())
		return
	}

	p.logger.DebugContext(ctx, "Order event published", "event_type", event.Type, "order_id", event.OrderID.String())
}

func toMessage(event order.Event) OrderEventMessage {
	msg := OrderEventMessage{
		EventType:   string(event.Type),
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		BranchID:    event.BranchID.String(),
		OrderType:   string(event.OrderType),
		ToStatus:    event.To.String(),
		Actor:       event.Actor,
		OccurredAt:  event.OccurredAt.UTC(),
	}
	if event.From != order.Unknown {
		msg.FromStatus = event.From.String()
	}
	return msg
}
