package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/driver-quiz-service/internal/events"
)

// A downstream consumer reads analysis.completed events from the same topic.
func ExampleWatermillEventPublisher() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	pubSub := events.NewChannelPubSub(logger)
	messages, err := pubSub.Subscribe(ctx, "analytics")
	if err != nil {
		panic(err)
	}

	publisher := events.NewWatermillEventPublisher(pubSub, "analytics", logger)
	defer publisher.Close()

	event := events.NewAnalysisCompletedEvent(&events.AnalysisCompletedData{
		TotalSessions:   40,
		OverallAccuracy: 81.25,
		TrendDirection:  "improving",
	}, "")
	if err := publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		panic(err)
	}

	msg := <-messages
	msg.Ack()

	var received events.AnalyticsEvent
	if err := json.Unmarshal(msg.Payload, &received); err != nil {
		panic(err)
	}
	fmt.Println(received.Type, received.Data.TotalSessions, received.Data.TrendDirection)
	// Output: analysis.completed 40 improving
}
