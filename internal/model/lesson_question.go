package model

import (
	"time"

	"gorm.io/gorm"
)

type LessonQuestion struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	LessonID       uint           `json:"lesson_id" gorm:"not null;index"`
	OrderInLesson  int            `json:"order_in_lesson" gorm:"not null"`
	Prompt         string         `json:"prompt" gorm:"type:text;not null"`
	Answer         string         `json:"answer,omitempty" gorm:"type:text"` // flashcard format only
	Options        []string       `json:"options,omitempty" gorm:"serializer:json"`
	CorrectOption  *int           `json:"correct_option,omitempty"` // quiz format only, index into Options
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
