package service

import (
	"errors"
	"testing"

	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
)

func newLessonService(stack *questStack) UserLessonService {
	return NewUserLessonService(
		repository.NewLessonRepository(stack.db),
		repository.NewCompletionRepository(stack.db),
		stack.progress,
		stack.db,
	)
}

func TestCompleteLessonAwardsFullXP(t *testing.T) {
	stack := newQuestStack(t)
	lessons := newLessonService(stack)
	lesson := seedFlashcardLesson(t, stack.db, "Basics", 120, 5)

	result, err := lessons.CompleteLesson(1, lesson.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if result.XPEarned != 120 {
		t.Fatalf("expected 120 xp, got %d", result.XPEarned)
	}
	if result.TotalXP != 120 {
		t.Fatalf("ledger holds %d, expected 120", result.TotalXP)
	}
}

func TestCompleteLessonRejectsRepeat(t *testing.T) {
	stack := newQuestStack(t)
	lessons := newLessonService(stack)
	lesson := seedFlashcardLesson(t, stack.db, "Basics", 120, 5)

	if _, err := lessons.CompleteLesson(1, lesson.ID); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	_, err := lessons.CompleteLesson(1, lesson.ID)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}

	progress, err := stack.progress.GetProgress(1)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if progress.TotalXP != 120 {
		t.Fatalf("repeat completion double-awarded xp: %d", progress.TotalXP)
	}

	var count int64
	stack.db.Model(&model.UserLessonCompletion{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 completion row, got %d", count)
	}
}

func TestCompleteLessonUnknownOrUnpublished(t *testing.T) {
	stack := newQuestStack(t)
	lessons := newLessonService(stack)

	if _, err := lessons.CompleteLesson(1, 999); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound for unknown lesson, got %v", err)
	}

	hidden := seedFlashcardLesson(t, stack.db, "Hidden", 50, 5)
	if err := stack.db.Model(&hidden).Update("published", false).Error; err != nil {
		t.Fatalf("failed to unpublish: %v", err)
	}
	if _, err := lessons.CompleteLesson(1, hidden.ID); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound for unpublished lesson, got %v", err)
	}
}

func TestListPublishedLessonsMarksCompletion(t *testing.T) {
	stack := newQuestStack(t)
	lessons := newLessonService(stack)
	done := seedFlashcardLesson(t, stack.db, "Done", 100, 4)
	seedFlashcardLesson(t, stack.db, "Pending", 100, 4)
	seedCompletion(t, stack.db, 1, done.ID)

	summaries, err := lessons.ListPublishedLessons(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.QuestionCount != 4 {
			t.Fatalf("lesson %q has question count %d, expected 4", s.Title, s.QuestionCount)
		}
		wantCompleted := s.ID == done.ID
		if s.IsCompleted != wantCompleted {
			t.Fatalf("lesson %q completion flag = %v", s.Title, s.IsCompleted)
		}
		if wantCompleted && s.CompletedAt == nil {
			t.Fatalf("completed lesson %q missing completion timestamp", s.Title)
		}
		if !wantCompleted && s.CompletedAt != nil {
			t.Fatalf("pending lesson %q carries a completion timestamp", s.Title)
		}
	}
}
