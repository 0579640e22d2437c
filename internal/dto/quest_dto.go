package dto

import "time"

// SnapshotResponseDTO is the user-facing view of a quest question. The
// correct answer is deliberately absent: it only appears in review DTOs
// after the user has completed the quest.
type SnapshotResponseDTO struct {
	ID           uint     `json:"id"`
	OrderInQuest int      `json:"order_in_quest"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`
}

// QuestResponseDTO is the daily quest as shown to users.
type QuestResponseDTO struct {
	ID          uint                  `json:"id"`
	Date        time.Time             `json:"date"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	QuestType   string                `json:"quest_type"`
	XPReward    uint                  `json:"xp_reward"`
	Questions   []SnapshotResponseDTO `json:"questions"`
}

// PreviousScoreDTO summarizes an earlier completion of the same quest.
type PreviousScoreDTO struct {
	CorrectCount   int  `json:"correct_count"`
	TotalQuestions int  `json:"total_questions"`
	XPEarned       uint `json:"xp_earned"`
}

// TodayQuestDTO is the view model for the daily quest page.
type TodayQuestDTO struct {
	Quest         QuestResponseDTO  `json:"quest"`
	IsCompleted   bool              `json:"is_completed"`
	PreviousScore *PreviousScoreDTO `json:"previous_score,omitempty"`
}

// QuestAttemptSubmitDTO is the request body for submitting a quest attempt.
// Answers are ordered by the snapshot's order_in_quest; for quiz quests each
// answer is the selected option index as a decimal string.
type QuestAttemptSubmitDTO struct {
	UserID  uint     `json:"user_id" binding:"required"`
	Answers []string `json:"answers" binding:"required,len=5"`
}

// AnswerResultDTO reports the outcome for a single question.
type AnswerResultDTO struct {
	OrderInQuest    int    `json:"order_in_quest"`
	Prompt          string `json:"prompt"`
	SubmittedAnswer string `json:"submitted_answer"`
	IsCorrect       bool   `json:"is_correct"`
	CorrectAnswer   string `json:"correct_answer"`
}

// QuestAttemptResultDTO is returned after scoring a submission.
type QuestAttemptResultDTO struct {
	AttemptID      uint              `json:"attempt_id"`
	QuestID        uint              `json:"quest_id"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	XPEarned       uint              `json:"xp_earned"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	Results        []AnswerResultDTO `json:"results"`
}

// ReviewAnswerDTO is one reviewed answer, optionally with AI feedback on a
// missed question.
type ReviewAnswerDTO struct {
	OrderInQuest    int    `json:"order_in_quest"`
	Prompt          string `json:"prompt"`
	SubmittedAnswer string `json:"submitted_answer"`
	IsCorrect       bool   `json:"is_correct"`
	CorrectAnswer   string `json:"correct_answer"`
	Explanation     string `json:"explanation,omitempty"`
}

// QuestHistoryEntryDTO summarizes one past quest completion for the
// history listing.
type QuestHistoryEntryDTO struct {
	QuestID        uint       `json:"quest_id"`
	QuestDate      time.Time  `json:"quest_date"`
	QuestTitle     string     `json:"quest_title"`
	CorrectCount   int        `json:"correct_count"`
	TotalQuestions int        `json:"total_questions"`
	XPEarned       uint       `json:"xp_earned"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// QuestReviewDTO is the post-completion review of a quest attempt.
type QuestReviewDTO struct {
	QuestID        uint              `json:"quest_id"`
	QuestTitle     string            `json:"quest_title"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	XPEarned       uint              `json:"xp_earned"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	Answers        []ReviewAnswerDTO `json:"answers"`
}
