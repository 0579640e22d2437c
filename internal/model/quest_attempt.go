package model

import "time"

// UserQuestAttempt is a user's one-time completion record for a quest. The
// uniqueIndex on (UserID, QuestID) is the storage-level guarantee that a
// user can complete a given day's quest at most once.
type UserQuestAttempt struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	UserID         uint              `json:"user_id" gorm:"not null;uniqueIndex:idx_user_quest"`
	QuestID        uint              `json:"quest_id" gorm:"not null;uniqueIndex:idx_user_quest"`
	Quest          Quest             `json:"quest,omitempty" gorm:"foreignKey:QuestID"`
	StartedAt      time.Time         `json:"started_at" gorm:"not null"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	TotalQuestions int               `json:"total_questions" gorm:"not null"`
	CorrectCount   int               `json:"correct_count" gorm:"not null"`
	XPEarned       uint              `json:"xp_earned" gorm:"not null"`
	IsCompleted    bool              `json:"is_completed" gorm:"not null;default:false"`
	Answers        []UserQuestAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time         `json:"created_at"`
}
