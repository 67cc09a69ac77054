package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type QuizSessionPostgreSQL struct {
	db *gorm.DB
}

func NewQuizSessionPostgreSQL(db *gorm.DB) repositories.QuizSessionRepository {
	return &QuizSessionPostgreSQL{db: db}
}

func (q QuizSessionPostgreSQL) LoadSessions(ctx context.Context, filter repositories.AnalyticsFilter) ([]*models.QuizSession, error) {
	var sessions []*models.QuizSession

	query := q.db.WithContext(ctx).Model(&models.QuizSession{})
	query = q.applyFilter(query, filter)

	if err := query.
		Preload("Driver").
		Order("quiz_date ASC").
		Order("id ASC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to load quiz sessions: %w", err)
	}

	return sessions, nil
}

// applyFilter applies the date range and driver filters
func (q QuizSessionPostgreSQL) applyFilter(query *gorm.DB, filter repositories.AnalyticsFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("quiz_date >= ?", filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		query = query.Where("quiz_date <= ?", filter.EndDate.Format(dateLayout))
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	return query
}
