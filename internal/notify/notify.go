// Package notify announces accepted trade-in requests to the sales team's
// pipeline. Delivery is best effort: a failed publish never fails the
// customer's submission.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"

	"avtovybor/internal/domain"
)

const EventTradeInSubmitted = "tradein.submitted"

// Event is the JSON schema written to the trade-in topic.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	RequestID  int64     `json:"requestId"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	Mileage    int       `json:"mileage"`
	Phone      string    `json:"phone"`
	UserEmail  string    `json:"userEmail"`
	Estimate   int64     `json:"estimate"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent builds a submitted event for a stored request.
func NewEvent(req domain.TradeInRequest) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventTradeInSubmitted,
		RequestID:  req.ID,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Mileage:    req.Mileage,
		Phone:      req.Phone,
		UserEmail:  req.UserEmail,
		Estimate:   req.EstimatedPrice,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Kafka writes events keyed by requester so one customer's requests stay in
// partition order.
type Kafka struct {
	w *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}}
}

func (k *Kafka) Publish(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := k.w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.UserEmail), Value: b}); err != nil {
		return fmt.Errorf("write %s: %w", ev.Type, err)
	}
	return nil
}

func (k *Kafka) Close() error { return k.w.Close() }

// New returns a Kafka publisher when brokers are set, Nop otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafka(brokers, topic)
}
