package models

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null;size:100"`
	Phone    string `json:"phone" gorm:"uniqueIndex;not null;size:20"`
	Language string `json:"language" gorm:"default:en;size:10"`

	// Maintained by the daily quiz flow
	Streak       int        `json:"streak" gorm:"default:0"`
	LastQuizDate *time.Time `json:"last_quiz_date" gorm:"type:date"`

	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Driver) TableName() string {
	return "drivers"
}
