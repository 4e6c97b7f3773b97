package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/safsequence/Avance-Fragrance/internal/logging"
)

const (
	TopicProducts  = "product_events"
	TopicOrders    = "order_events"
	TopicCustomers = "customer_events"
	TopicContact   = "contact_events"
)

var Topics = []string{TopicProducts, TopicOrders, TopicCustomers, TopicContact}

const (
	ProductCreated         = "product_created"
	ProductUpdated         = "product_updated"
	ProductDeleted         = "product_deleted"
	OrderCreated           = "order_created"
	OrderStatusUpdated     = "order_status_updated"
	CustomerRegistered     = "customer_registered"
	ContactMessageReceived = "contact_message_received"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Envelope struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	EventVersion int       `json:"event_version"`
	OccurredAt   time.Time `json:"occurred_at"`
	Producer     string    `json:"producer"`
	Payload      any       `json:"payload"`
}

// Emitter wraps a Publisher so that callers never fail on publish errors.
type Emitter struct {
	Pub      Publisher
	Producer string
}

func (e *Emitter) Emit(ctx context.Context, topic string, key uint, eventType string, payload any) {
	if e == nil || e.Pub == nil {
		return
	}
	l := logging.FromContext(ctx).With("svc", "events.emit", "topic", topic, "event_type", eventType)

	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     e.Producer,
		Payload:      payload,
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.Pub.PublishEvent(pubCtx, topic, strconv.FormatUint(uint64(key), 10), env); err != nil {
		l.Error("publish_event_error", "error", err)
		return
	}
	l.Debug("publish_event_success", "event_id", env.EventID)
}
