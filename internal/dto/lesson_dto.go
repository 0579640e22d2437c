package dto

import "time"

// LessonQuestionCreateDTO is used within LessonCreateDTO for admin lesson
// authoring. Answer is required for flashcard lessons; Options and
// CorrectOption for quiz lessons (validated in the service).
type LessonQuestionCreateDTO struct {
	OrderInLesson int      `json:"order_in_lesson" binding:"required,min=1"`
	Prompt        string   `json:"prompt" binding:"required"`
	Answer        string   `json:"answer"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option"`
}

// LessonCreateDTO is for admins to create a lesson with all its questions.
type LessonCreateDTO struct {
	Title       string                    `json:"title" binding:"required"`
	Description string                    `json:"description,omitempty"`
	Format      string                    `json:"format" binding:"required,oneof=flashcard quiz"`
	XPValue     uint                      `json:"xp_value" binding:"required,gt=0"`
	Published   bool                      `json:"published"`
	Questions   []LessonQuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type LessonQuestionResponseDTO struct {
	ID            uint     `json:"id"`
	LessonID      uint     `json:"lesson_id"`
	OrderInLesson int      `json:"order_in_lesson"`
	Prompt        string   `json:"prompt"`
	Answer        string   `json:"answer,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectOption *int     `json:"correct_option,omitempty"`
}

type LessonResponseDTO struct {
	ID          uint                        `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description,omitempty"`
	Format      string                      `json:"format"`
	XPValue     uint                        `json:"xp_value"`
	Published   bool                        `json:"published"`
	Questions   []LessonQuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// LessonSummaryDTO is used for listing lessons, with the requesting user's
// completion state when known.
type LessonSummaryDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Format        string     `json:"format"`
	XPValue       uint       `json:"xp_value"`
	Published     bool       `json:"published"`
	QuestionCount int        `json:"question_count"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LessonCompletionDTO is returned after a user completes a lesson.
type LessonCompletionDTO struct {
	LessonID    uint      `json:"lesson_id"`
	XPEarned    uint      `json:"xp_earned"`
	TotalXP     uint      `json:"total_xp"`
	Level       uint      `json:"level"`
	CompletedAt time.Time `json:"completed_at"`
}

// ProgressResponseDTO is the user's XP ledger state.
type ProgressResponseDTO struct {
	UserID  uint `json:"user_id"`
	TotalXP uint `json:"total_xp"`
	Level   uint `json:"level"`
}
