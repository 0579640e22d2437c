package service

import (
	"fmt"
	"testing"

	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the same error
// translation the production Postgres connection uses, so uniqueness
// violations surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&model.Lesson{},
		&model.LessonQuestion{},
		&model.UserLessonCompletion{},
		&model.UserProgress{},
		&model.Quest{},
		&model.QuestQuestionSnapshot{},
		&model.UserQuestAttempt{},
		&model.UserQuestAnswer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedFlashcardLesson creates a published flashcard lesson with n questions
// named after the lesson title.
func seedFlashcardLesson(t *testing.T, db *gorm.DB, title string, xpValue uint, n int) model.Lesson {
	t.Helper()
	lesson := model.Lesson{
		Title:     title,
		Format:    model.LessonFormatFlashcard,
		XPValue:   xpValue,
		Published: true,
	}
	for i := 1; i <= n; i++ {
		lesson.Questions = append(lesson.Questions, model.LessonQuestion{
			OrderInLesson: i,
			Prompt:        fmt.Sprintf("%s prompt %d", title, i),
			Answer:        fmt.Sprintf("%s answer %d", title, i),
		})
	}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("failed to seed lesson %q: %v", title, err)
	}
	return lesson
}

func seedQuizLesson(t *testing.T, db *gorm.DB, title string, xpValue uint, n int) model.Lesson {
	t.Helper()
	lesson := model.Lesson{
		Title:     title,
		Format:    model.LessonFormatQuiz,
		XPValue:   xpValue,
		Published: true,
	}
	for i := 1; i <= n; i++ {
		correct := i % 4
		lesson.Questions = append(lesson.Questions, model.LessonQuestion{
			OrderInLesson: i,
			Prompt:        fmt.Sprintf("%s prompt %d", title, i),
			Options:       []string{"uno", "dos", "tres", "cuatro"},
			CorrectOption: &correct,
		})
	}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("failed to seed lesson %q: %v", title, err)
	}
	return lesson
}

func seedCompletion(t *testing.T, db *gorm.DB, userID uint, lessonID uint) {
	t.Helper()
	completion := model.UserLessonCompletion{UserID: userID, LessonID: lessonID, XPEarned: 0}
	if err := db.Create(&completion).Error; err != nil {
		t.Fatalf("failed to seed completion for lesson %d: %v", lessonID, err)
	}
}

// questStack wires the pool resolver, generator, and attempt recorder over
// one test database, mirroring the fx graph in cmd/main.go.
type questStack struct {
	db        *gorm.DB
	pool      QuestionPoolService
	generator QuestGeneratorService
	attempts  QuestAttemptService
	progress  ProgressService
}

func newQuestStack(t *testing.T) *questStack {
	t.Helper()
	db := newTestDB(t)
	lessonRepo := repository.NewLessonRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	questRepo := repository.NewQuestRepository(db)
	attemptRepo := repository.NewQuestAttemptRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	pool := NewQuestionPoolService(lessonRepo, completionRepo)
	generator := NewQuestGeneratorService(questRepo, lessonRepo, pool, db)
	progress := NewProgressService(progressRepo)
	attempts := NewQuestAttemptService(questRepo, attemptRepo, generator, progress, nil, db)

	return &questStack{
		db:        db,
		pool:      pool,
		generator: generator,
		attempts:  attempts,
		progress:  progress,
	}
}
