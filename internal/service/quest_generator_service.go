package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// QuestSize is the number of question snapshots in every daily quest.
	QuestSize = 5

	// A quest pays out 3/4 of the source lesson's XP value, floored.
	questXPNumerator   = 3
	questXPDenominator = 4
)

// QuestGeneratorService lazily materializes the daily quest. The first
// request of the day builds it from the requesting user's question pool;
// every later request gets the same persisted quest back.
type QuestGeneratorService interface {
	GetOrCreateQuestForDate(userID uint, date time.Time) (*model.Quest, error)
}

type questGeneratorService struct {
	questRepo   repository.QuestRepository
	lessonRepo  repository.LessonRepository
	poolService QuestionPoolService
	db          *gorm.DB
}

func NewQuestGeneratorService(
	questRepo repository.QuestRepository,
	lessonRepo repository.LessonRepository,
	poolService QuestionPoolService,
	db *gorm.DB,
) QuestGeneratorService {
	return &questGeneratorService{
		questRepo:   questRepo,
		lessonRepo:  lessonRepo,
		poolService: poolService,
		db:          db,
	}
}

// QuestDay normalizes a timestamp to its calendar date in UTC, the key a
// quest is stored under.
func QuestDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *questGeneratorService) GetOrCreateQuestForDate(userID uint, date time.Time) (*model.Quest, error) {
	day := QuestDay(date)

	quest, err := s.questRepo.FindByDate(day)
	if err == nil {
		return quest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("date", day.Format("2006-01-02")).Msg("GetOrCreateQuestForDate: quest lookup failed")
		return nil, err
	}

	pool, err := s.poolService.ResolvePool(userID)
	if err != nil {
		return nil, err
	}

	picks, err := sampleIndices(len(pool), QuestSize)
	if err != nil {
		log.Error().Err(err).Msg("GetOrCreateQuestForDate: sampling failed")
		return nil, err
	}

	selected := make([]model.LessonQuestion, 0, QuestSize)
	for _, idx := range picks {
		selected = append(selected, pool[idx])
	}

	lesson, err := s.lessonRepo.FindByID(sourceLessonID(selected))
	if err != nil {
		log.Error().Err(err).Msg("GetOrCreateQuestForDate: source lesson lookup failed")
		return nil, err
	}

	built := s.buildQuest(day, lesson, selected)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Creates the quest and its five snapshots as one unit; a partial
		// quest is never observable.
		return tx.Create(built).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the generation race for this date. Discard the local
			// build and hand back the winner's quest.
			log.Info().Str("date", day.Format("2006-01-02")).Msg("GetOrCreateQuestForDate: concurrent generation detected, reusing existing quest")
			return s.questRepo.FindByDate(day)
		}
		log.Error().Err(err).Str("date", day.Format("2006-01-02")).Msg("GetOrCreateQuestForDate: failed to persist quest")
		return nil, err
	}

	log.Info().Uint("questID", built.ID).Str("date", day.Format("2006-01-02")).Uint("lessonID", lesson.ID).Msg("Generated daily quest")
	return built, nil
}

func (s *questGeneratorService) buildQuest(day time.Time, lesson *model.Lesson, selected []model.LessonQuestion) *model.Quest {
	quest := &model.Quest{
		Date:        day,
		Title:       fmt.Sprintf("Daily Quest for %s", day.Format("January 2, 2006")),
		Description: fmt.Sprintf("Five questions drawn from %q. Answer them all to earn bonus XP!", lesson.Title),
		LessonID:    lesson.ID,
		QuestType:   lesson.Format,
		XPReward:    lesson.XPValue * questXPNumerator / questXPDenominator,
	}
	for i, q := range selected {
		quest.Snapshots = append(quest.Snapshots, model.QuestQuestionSnapshot{
			OrderInQuest:  i + 1,
			SourceID:      q.ID,
			Prompt:        q.Prompt,
			Answer:        q.Answer,
			Options:       append([]string(nil), q.Options...),
			CorrectOption: copyIntPtr(q.CorrectOption),
		})
	}
	return quest
}

// sourceLessonID picks the lesson the quest is attributed to: the one
// contributing the most selected questions, lowest ID winning ties.
func sourceLessonID(selected []model.LessonQuestion) uint {
	counts := make(map[uint]int)
	for _, q := range selected {
		counts[q.LessonID]++
	}
	var best uint
	bestCount := -1
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best = id
			bestCount = count
		}
	}
	return best
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
