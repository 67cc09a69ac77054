package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultLanguage is the fallback for language-keyed content.
const DefaultLanguage = "en"

type Question struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Language-keyed content, e.g. {"en": "...", "de": "..."}
	Text    datatypes.JSON `json:"text" gorm:"type:jsonb;not null"`
	Options datatypes.JSON `json:"options" gorm:"type:jsonb"` // {"en": ["...", "..."], ...}

	CorrectOption int     `json:"correct_option" gorm:"not null"`
	Topic         *string `json:"topic" gorm:"size:100;index"`
	Language      string  `json:"language" gorm:"default:en;size:10;index"`
	IsActive      bool    `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// TextFor resolves the question text for lang, falling back to English and then
// to any available translation.
func (q *Question) TextFor(lang string) string {
	var texts map[string]string
	if err := json.Unmarshal(q.Text, &texts); err != nil {
		// Legacy rows store a plain JSON string
		var plain string
		if json.Unmarshal(q.Text, &plain) == nil {
			return plain
		}
		return ""
	}

	if text, ok := texts[lang]; ok && text != "" {
		return text
	}
	if text, ok := texts[DefaultLanguage]; ok && text != "" {
		return text
	}
	for _, text := range texts {
		if text != "" {
			return text
		}
	}
	return ""
}
