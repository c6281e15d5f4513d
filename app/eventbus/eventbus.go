// Package eventbus publishes golf events on NATS through watermill, or on an
// in-process channel when no NATS server is configured.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/golf-stats/app/shared/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes to topics.
type EventBus interface {
	// PublishJSON marshals payload into a message on topic.
	PublishJSON(ctx context.Context, topic string, payload any) error
	// Subscribe streams messages published on topic until ctx is done.
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	// Close releases the underlying connections.
	Close() error
}

// Bus implements EventBus on watermill publishers and subscribers.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

var _ EventBus = (*Bus)(nil)

// New connects to natsURL. An empty URL selects an in-process gochannel bus,
// which only reaches subscribers in the same process.
func New(ctx context.Context, natsURL string, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	wmLogger := watermill.NewSlogLogger(logger)

	if natsURL == "" {
		logger.InfoContext(ctx, "No NATS URL configured, using in-process event bus")
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		return &Bus{publisher: ch, subscriber: ch, logger: logger}, nil
	}

	marshaler := &nats.NATSMarshaler{}
	natsOptions := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
		nc.Name("golf-stats"),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create NATS publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:            natsURL,
			Unmarshaler:    marshaler,
			NatsOptions:    natsOptions,
			AckWaitTimeout: 30 * time.Second,
			CloseTimeout:   10 * time.Second,
			JetStream:      nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		logger.ErrorContext(ctx, "Failed to create NATS subscriber", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected event bus to NATS", attr.String("url", natsURL))
	return &Bus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// PublishJSON marshals payload into a message on topic. The request
// correlation id, when present, travels in the message metadata.
func (b *Bus) PublishJSON(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if id := attr.CorrelationID(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish message",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.logger.DebugContext(ctx, "Message published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

// Subscribe streams messages published on topic until ctx is done.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

// Close closes the publisher and subscriber.
func (b *Bus) Close() error {
	pubErr := b.publisher.Close()
	subErr := b.subscriber.Close()
	if pubErr != nil {
		return fmt.Errorf("failed to close publisher: %w", pubErr)
	}
	if subErr != nil {
		return fmt.Errorf("failed to close subscriber: %w", subErr)
	}
	return nil
}
