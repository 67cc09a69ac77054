package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

// responseBatchSize caps the number of ids in a single IN clause
const responseBatchSize = 500

type QuizResponsePostgreSQL struct {
	db *gorm.DB
}

func NewQuizResponsePostgreSQL(db *gorm.DB) repositories.QuizResponseRepository {
	return &QuizResponsePostgreSQL{db: db}
}

func (q QuizResponsePostgreSQL) LoadResponses(ctx context.Context, sessionIDs []uint) ([]*models.QuizResponse, error) {
	responses := make([]*models.QuizResponse, 0)

	for _, batch := range chunkIDs(sessionIDs, responseBatchSize) {
		var page []*models.QuizResponse
		if err := q.db.WithContext(ctx).
			Where("session_id IN ?", batch).
			Preload("Question").
			Order("session_id ASC").
			Order("id ASC").
			Find(&page).Error; err != nil {
			return nil, fmt.Errorf("failed to load quiz responses: %w", err)
		}
		responses = append(responses, page...)
	}

	return responses, nil
}

// chunkIDs splits ids into consecutive batches of at most size elements
func chunkIDs(ids []uint, size int) [][]uint {
	if len(ids) == 0 || size <= 0 {
		return nil
	}

	batches := make([][]uint, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
