package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Envelope is the wire form events travel in on the bus.
type Envelope struct {
	Type       string                 `json:"type"`
	OccurredAt string                 `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

// WatermillPublisher sends events to a single topic on a watermill publisher
// (the in-process gochannel bus in this service).
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

func NewWatermillPublisher(publisher message.Publisher, topic string) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp().Format("2006-01-02T15:04:05.000Z07:00"),
		Data:       event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.publisher.Publish(p.topic, msg)
}
