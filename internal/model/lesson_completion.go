package model

import "time"

// UserLessonCompletion records that a user finished a lesson. Completions
// drive both XP awards and the personalized daily quest question pool.
type UserLessonCompletion struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Lesson      Lesson    `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	XPEarned    uint      `json:"xp_earned" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time `json:"created_at"`
}
