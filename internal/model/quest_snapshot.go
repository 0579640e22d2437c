package model

import "time"

// QuestQuestionSnapshot is an immutable copy of one lesson question, taken
// at quest generation time. Editing the source lesson later never touches a
// snapshot, so historical quests keep the content users actually saw.
type QuestQuestionSnapshot struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	QuestID       uint      `json:"quest_id" gorm:"not null;uniqueIndex:idx_quest_order"`
	OrderInQuest  int       `json:"order_in_quest" gorm:"not null;uniqueIndex:idx_quest_order"` // 1..5
	SourceID      uint      `json:"source_id" gorm:"not null"`                                  // original LessonQuestion ID, informational only
	Prompt        string    `json:"prompt" gorm:"type:text;not null"`
	Answer        string    `json:"answer,omitempty" gorm:"type:text"`
	Options       []string  `json:"options,omitempty" gorm:"serializer:json"`
	CorrectOption *int      `json:"correct_option,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
