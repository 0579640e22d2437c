package model

import "time"

// Quest is the single daily challenge for one calendar date. It is created
// lazily on first access, never mutated afterwards, and the uniqueIndex on
// Date is what makes concurrent generation safe across server processes.
type Quest struct {
	ID          uint                    `gorm:"primarykey" json:"id"`
	Date        time.Time               `json:"date" gorm:"type:date;not null;uniqueIndex"`
	Title       string                  `json:"title" gorm:"not null"`
	Description string                  `json:"description,omitempty"`
	LessonID    uint                    `json:"lesson_id" gorm:"not null;index"`
	Lesson      Lesson                  `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	QuestType   string                  `json:"quest_type" gorm:"not null"` // "flashcard", "quiz"
	XPReward    uint                    `json:"xp_reward" gorm:"not null"`
	Snapshots   []QuestQuestionSnapshot `json:"snapshots,omitempty" gorm:"foreignKey:QuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time               `json:"created_at"`
}
