package models

import (
	"math"
	"time"

	"gorm.io/datatypes"
)

type QuizSession struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	DriverID uint           `json:"driver_id" gorm:"not null;index"`
	QuizDate datatypes.Date `json:"quiz_date" gorm:"not null;index"`

	Completed      bool `json:"completed" gorm:"default:false"`
	TotalQuestions int  `json:"total_questions" gorm:"default:0"`
	TotalCorrect   int  `json:"total_correct" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Driver    Driver         `json:"driver" gorm:"foreignKey:DriverID"`
	Responses []QuizResponse `json:"responses,omitempty" gorm:"foreignKey:SessionID"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// Score is the rounded percentage of correct answers.
func (s *QuizSession) Score() int {
	if s.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalCorrect) / float64(s.TotalQuestions) * 100))
}

// QuizDateString formats the quiz date as YYYY-MM-DD.
func (s *QuizSession) QuizDateString() string {
	return time.Time(s.QuizDate).Format(time.DateOnly)
}

type QuizResponse struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	SessionID      uint      `json:"session_id" gorm:"not null;index"`
	QuestionID     uint      `json:"question_id" gorm:"not null;index"`
	SelectedOption int       `json:"selected_option" gorm:"not null"`
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	AnsweredAt     time.Time `json:"answered_at" gorm:"autoCreateTime"`

	// Relations
	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}
