package model

import "time"

type UserQuestAnswer struct {
	ID              uint                  `gorm:"primarykey" json:"id"`
	AttemptID       uint                  `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_snapshot"`
	SnapshotID      uint                  `json:"snapshot_id" gorm:"not null;uniqueIndex:idx_attempt_snapshot"`
	Snapshot        QuestQuestionSnapshot `json:"snapshot,omitempty" gorm:"foreignKey:SnapshotID"`
	SubmittedAnswer string                `json:"submitted_answer" gorm:"type:text;not null"`
	IsCorrect       bool                  `json:"is_correct" gorm:"not null"`
	AnsweredAt      time.Time             `json:"answered_at" gorm:"autoCreateTime"`
}
