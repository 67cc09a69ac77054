package postgres

import (
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	driver       repositories.DriverRepository
	quizSession  repositories.QuizSessionRepository
	quizResponse repositories.QuizResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		driver:       NewDriverPostgreSQL(db),
		quizSession:  NewQuizSessionPostgreSQL(db),
		quizResponse: NewQuizResponsePostgreSQL(db),
	}
}

func (r *Repository) Driver() repositories.DriverRepository {
	return r.driver
}

func (r *Repository) QuizSession() repositories.QuizSessionRepository {
	return r.quizSession
}

func (r *Repository) QuizResponse() repositories.QuizResponseRepository {
	return r.quizResponse
}
