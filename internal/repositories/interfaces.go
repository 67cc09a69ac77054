package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// AnalyticsFilter narrows the sessions fed into an analysis. Dates are inclusive
// and compared against the session's quiz date.
type AnalyticsFilter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	DriverID  *uint      `json:"driver_id,omitempty"`
	Language  string     `json:"language,omitempty"` // question-level only
}

// IsEmpty reports whether no field of the filter is set
func (f AnalyticsFilter) IsEmpty() bool {
	return f.StartDate == nil && f.EndDate == nil && f.DriverID == nil && f.Language == ""
}

// ===== REPOSITORIES =====

type DriverRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Driver, error)
}

type QuizSessionRepository interface {
	// LoadSessions returns matching sessions ordered by quiz date then id, with Driver preloaded
	LoadSessions(ctx context.Context, filter AnalyticsFilter) ([]*models.QuizSession, error)
}

type QuizResponseRepository interface {
	// LoadResponses returns responses for the given sessions with Question preloaded
	LoadResponses(ctx context.Context, sessionIDs []uint) ([]*models.QuizResponse, error)
}

// Repository groups the repositories used by the analytics service
type Repository interface {
	Driver() DriverRepository
	QuizSession() QuizSessionRepository
	QuizResponse() QuizResponseRepository
}
