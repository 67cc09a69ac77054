package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher publishes analytics events
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event *AnalyticsEvent) error
	Close() error
}

// WatermillEventPublisher publishes events through any Watermill publisher
type WatermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a Kafka-backed publisher
func NewKafkaEventPublisher(config PublisherConfig) (*WatermillEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return NewWatermillEventPublisher(publisher, config.TopicName, config.Logger), nil
}

// NewChannelPubSub creates an in-process pub/sub. The same value can be used to subscribe.
func NewChannelPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// NewWatermillEventPublisher wraps an existing Watermill publisher
func NewWatermillEventPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillEventPublisher {
	return &WatermillEventPublisher{
		publisher: publisher,
		logger:    logger,
		topicName: topic,
	}
}

// PublishAnalyticsEvent publishes an event to the configured topic
func (p *WatermillEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *AnalyticsEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.SetContext(ctx)

	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish analytics event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish analytics event: %w", err)
	}

	p.logger.Info("Published analytics event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the underlying publisher
func (p *WatermillEventPublisher) Close() error {
	return p.publisher.Close()
}

// NoopEventPublisher discards events; used when publishing is disabled
type NoopEventPublisher struct {
	logger *slog.Logger
}

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger}
}

func (n *NoopEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *AnalyticsEvent) error {
	n.logger.Debug("Event publishing disabled, dropping event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (n *NoopEventPublisher) Close() error {
	return nil
}
