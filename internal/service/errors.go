package service

import "errors"

var (
	// ErrInsufficientPool is returned when fewer than QuestSize distinct
	// questions are eligible for a user's daily quest.
	ErrInsufficientPool = errors.New("not enough questions available to generate a quest")
	// ErrAlreadyCompleted is returned on a repeat submission for a quest or
	// lesson the user has already completed.
	ErrAlreadyCompleted = errors.New("already completed")
	// ErrInvalidAnswerCount is returned when a submission does not carry
	// exactly one answer per quest question.
	ErrInvalidAnswerCount = errors.New("submission must contain exactly one answer per question")
	// ErrQuestNotFound indicates a stale or unknown quest reference.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrLessonNotFound indicates an unknown lesson reference.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrInvalidAmount is returned by the XP ledger for negative or
	// overflowing awards.
	ErrInvalidAmount = errors.New("invalid xp amount")
)
