package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"gorm.io/gorm"
)

var testDay = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestGetOrCreateQuestIsIdempotentPerDate(t *testing.T) {
	stack := newQuestStack(t)
	seedFlashcardLesson(t, stack.db, "Greetings", 100, 10)

	first, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	second, err := stack.generator.GetOrCreateQuestForDate(2, testDay.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same quest, got IDs %d and %d", first.ID, second.ID)
	}

	var questCount int64
	stack.db.Model(&model.Quest{}).Count(&questCount)
	if questCount != 1 {
		t.Fatalf("expected exactly 1 quest row, got %d", questCount)
	}
	var snapCount int64
	stack.db.Model(&model.QuestQuestionSnapshot{}).Count(&snapCount)
	if snapCount != QuestSize {
		t.Fatalf("expected exactly %d snapshot rows, got %d", QuestSize, snapCount)
	}
}

func TestQuestSnapshotOrdering(t *testing.T) {
	stack := newQuestStack(t)
	seedFlashcardLesson(t, stack.db, "Vocabulary", 80, 12)

	quest, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if len(quest.Snapshots) != QuestSize {
		t.Fatalf("expected %d snapshots, got %d", QuestSize, len(quest.Snapshots))
	}
	for i, snap := range quest.Snapshots {
		if snap.OrderInQuest != i+1 {
			t.Fatalf("expected order %d at position %d, got %d", i+1, i, snap.OrderInQuest)
		}
	}
}

func TestQuestXPRewardIsFlooredShare(t *testing.T) {
	stack := newQuestStack(t)
	seedFlashcardLesson(t, stack.db, "Numbers", 100, 8)

	quest, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if quest.XPReward != 75 {
		t.Fatalf("expected xp_reward 75 for lesson xp 100, got %d", quest.XPReward)
	}
}

func TestQuestSnapshotsSurviveLessonEdits(t *testing.T) {
	stack := newQuestStack(t)
	lesson := seedFlashcardLesson(t, stack.db, "Idioms", 100, 6)

	quest, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	original := make(map[uint]string)
	for _, snap := range quest.Snapshots {
		original[snap.ID] = snap.Prompt
	}

	// Rewrite every source question after generation.
	err = stack.db.Model(&model.LessonQuestion{}).
		Where("lesson_id = ?", lesson.ID).
		Updates(map[string]interface{}{"prompt": "REWRITTEN", "answer": "REWRITTEN"}).Error
	if err != nil {
		t.Fatalf("failed to edit lesson questions: %v", err)
	}

	reloaded, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	for _, snap := range reloaded.Snapshots {
		if snap.Prompt != original[snap.ID] {
			t.Fatalf("snapshot %d changed after lesson edit: %q", snap.ID, snap.Prompt)
		}
		if snap.Prompt == "REWRITTEN" {
			t.Fatalf("snapshot %d re-synced with live lesson content", snap.ID)
		}
	}
}

func TestInsufficientPoolCreatesNoQuest(t *testing.T) {
	stack := newQuestStack(t)
	seedFlashcardLesson(t, stack.db, "Sparse", 100, 3)

	_, err := stack.generator.GetOrCreateQuestForDate(1, testDay)
	if !errors.Is(err, ErrInsufficientPool) {
		t.Fatalf("expected ErrInsufficientPool, got %v", err)
	}

	var questCount int64
	stack.db.Model(&model.Quest{}).Count(&questCount)
	if questCount != 0 {
		t.Fatalf("expected no quest rows after failed generation, got %d", questCount)
	}
	var snapCount int64
	stack.db.Model(&model.QuestQuestionSnapshot{}).Count(&snapCount)
	if snapCount != 0 {
		t.Fatalf("expected no snapshot rows after failed generation, got %d", snapCount)
	}
}

func TestQuestUsesRequestingUsersPool(t *testing.T) {
	stack := newQuestStack(t)
	known := seedFlashcardLesson(t, stack.db, "Known", 100, 6)
	seedFlashcardLesson(t, stack.db, "Unknown", 100, 6)

	const userID = 1
	seedCompletion(t, stack.db, userID, known.ID)

	quest, err := stack.generator.GetOrCreateQuestForDate(userID, testDay)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if quest.LessonID != known.ID {
		t.Fatalf("expected quest sourced from completed lesson %d, got %d", known.ID, quest.LessonID)
	}

	sourceIDs := make(map[uint]bool)
	for _, q := range known.Questions {
		sourceIDs[q.ID] = true
	}
	for _, snap := range quest.Snapshots {
		if !sourceIDs[snap.SourceID] {
			t.Fatalf("snapshot drew from outside the user's pool: source %d", snap.SourceID)
		}
	}
}

// staleQuestReads misses the first date lookup, reproducing a writer whose
// existence check ran before a concurrent writer committed the day's quest.
type staleQuestReads struct {
	repository.QuestRepository
	missed bool
}

func (r *staleQuestReads) FindByDate(date time.Time) (*model.Quest, error) {
	if !r.missed {
		r.missed = true
		return nil, gorm.ErrRecordNotFound
	}
	return r.QuestRepository.FindByDate(date)
}

func TestGetOrCreateQuestLosingWriterAdoptsWinner(t *testing.T) {
	db := newTestDB(t)
	lessonRepo := repository.NewLessonRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	questRepo := &staleQuestReads{QuestRepository: repository.NewQuestRepository(db)}
	generator := NewQuestGeneratorService(questRepo, lessonRepo, NewQuestionPoolService(lessonRepo, completionRepo), db)

	lesson := seedFlashcardLesson(t, db, "Contested", 100, 10)

	// The winning writer's quest is already committed for the day.
	winner := model.Quest{
		Date:      QuestDay(testDay),
		Title:     "Daily Quest for March 14, 2026",
		LessonID:  lesson.ID,
		QuestType: model.LessonFormatFlashcard,
		XPReward:  75,
	}
	for i := 0; i < QuestSize; i++ {
		winner.Snapshots = append(winner.Snapshots, model.QuestQuestionSnapshot{
			OrderInQuest: i + 1,
			SourceID:     lesson.Questions[i].ID,
			Prompt:       lesson.Questions[i].Prompt,
			Answer:       lesson.Questions[i].Answer,
		})
	}
	if err := db.Create(&winner).Error; err != nil {
		t.Fatalf("failed to seed winning quest: %v", err)
	}

	quest, err := generator.GetOrCreateQuestForDate(1, testDay)
	if err != nil {
		t.Fatalf("losing writer should adopt the existing quest, got: %v", err)
	}
	if quest.ID != winner.ID {
		t.Fatalf("expected winner quest %d back, got %d", winner.ID, quest.ID)
	}

	var questCount int64
	db.Model(&model.Quest{}).Count(&questCount)
	if questCount != 1 {
		t.Fatalf("expected exactly 1 quest row after the race, got %d", questCount)
	}
	var snapCount int64
	db.Model(&model.QuestQuestionSnapshot{}).Count(&snapCount)
	if snapCount != QuestSize {
		t.Fatalf("expected exactly %d snapshot rows after the race, got %d", QuestSize, snapCount)
	}
}

func TestQuestDayNormalization(t *testing.T) {
	late := time.Date(2026, time.March, 14, 23, 59, 59, 0, time.UTC)
	early := time.Date(2026, time.March, 14, 0, 0, 1, 0, time.UTC)
	if !QuestDay(late).Equal(QuestDay(early)) {
		t.Fatal("expected both timestamps to normalize to the same quest day")
	}
	if QuestDay(late).Hour() != 0 {
		t.Fatal("expected midnight UTC")
	}
}
