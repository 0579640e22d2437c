package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	LessonFormatFlashcard = "flashcard"
	LessonFormatQuiz      = "quiz"
)

type Lesson struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Title       string           `json:"title" gorm:"not null;uniqueIndex"`
	Description string           `json:"description,omitempty"`
	Format      string           `json:"format" gorm:"not null"` // "flashcard", "quiz"
	XPValue     uint             `json:"xp_value" gorm:"not null"`
	Published   bool             `json:"published" gorm:"not null;default:false;index"`
	Questions   []LessonQuestion `json:"questions,omitempty" gorm:"foreignKey:LessonID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}
