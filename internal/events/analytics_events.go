package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents the type of a domain event
type EventType string

const (
	EventAnalysisCompleted EventType = "analysis.completed"
)

const (
	eventSource  = "driver-quiz-service"
	eventVersion = "1.0"
)

// AnalyticsEvent is the envelope for every event published by the service
type AnalyticsEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      *AnalysisCompletedData `json:"data"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// AnalysisCompletedData carries the headline figures of a finished analysis
type AnalysisCompletedData struct {
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	DriverID        *uint   `json:"driver_id,omitempty"`
	Language        string  `json:"language,omitempty"`
	TotalSessions   int     `json:"total_sessions"`
	TotalDrivers    int     `json:"total_drivers"`
	CompletionRate  float64 `json:"completion_rate"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	TrendDirection  string  `json:"trend_direction"`
	InsightCount    int     `json:"insight_count"`
}

// NewAnalysisCompletedEvent wraps data in a fresh envelope
func NewAnalysisCompletedEvent(data *AnalysisCompletedData, requestID string) *AnalyticsEvent {
	event := &AnalyticsEvent{
		ID:        watermill.NewUUID(),
		Type:      EventAnalysisCompleted,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	if requestID != "" {
		event.Metadata = map[string]string{"request_id": requestID}
	}
	return event
}
