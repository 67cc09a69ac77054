package config

import (
	"log/slog"

	"github.com/SAP-F-2025/driver-quiz-service/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled        bool
	Publisher      string // kafka or channel
	KafkaBrokers   string
	AnalyticsTopic string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled")
		return events.NewNoopEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.AnalyticsTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.AnalyticsTopic,
			Logger:       logger,
		})
	case "channel":
		logger.Info("Using in-process event publisher", "topic", c.AnalyticsTopic)
		return events.NewWatermillEventPublisher(events.NewChannelPubSub(logger), c.AnalyticsTopic, logger), nil
	default:
		logger.Warn("Unknown event publisher type, disabling events", "publisher", c.Publisher)
		return events.NewNoopEventPublisher(logger), nil
	}
}
