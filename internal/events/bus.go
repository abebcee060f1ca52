package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	bookmodel "library-server/internal/domains/book/model"
)

// TopicBookAdded carries one message per successfully persisted book.
const TopicBookAdded = "book.added"

// Bus is the in-process publish/subscribe bridge between mutations and
// live subscribers. Non-persistent: a subscriber only sees publishes
// made after its subscription, delivered in publish order per topic.
// Single-process fan-out without backpressure is an accepted limit.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus. Constructed once and injected; never a
// package-level singleton.
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			newLoggerAdapter(),
		),
	}
}

// Publish delivers payload to every open subscription on topic.
func (b *Bus) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns a stream of future payloads on topic. The stream
// closes when ctx is cancelled or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

// PublishBookAdded implements the book service's EventPublisher.
func (b *Bus) PublishBookAdded(_ context.Context, book *bookmodel.BookResponse) error {
	return b.Publish(TopicBookAdded, book)
}

// SubscribeBookAdded opens a bookAdded subscription.
func (b *Bus) SubscribeBookAdded(ctx context.Context) (<-chan *message.Message, error) {
	return b.Subscribe(ctx, TopicBookAdded)
}

// DecodeBookAdded unmarshals a bookAdded message payload.
func DecodeBookAdded(msg *message.Message) (*bookmodel.BookResponse, error) {
	var book bookmodel.BookResponse
	if err := json.Unmarshal(msg.Payload, &book); err != nil {
		return nil, fmt.Errorf("failed to decode bookAdded payload: %w", err)
	}
	return &book, nil
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
