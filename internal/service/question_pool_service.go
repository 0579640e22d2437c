package service

import (
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionPoolService resolves the set of lesson questions eligible for a
// user's daily quest. Users with completed lessons only see questions from
// those lessons; everyone else falls back to the full published catalog.
type QuestionPoolService interface {
	ResolvePool(userID uint) ([]model.LessonQuestion, error)
}

type questionPoolService struct {
	lessonRepo     repository.LessonRepository
	completionRepo repository.CompletionRepository
}

func NewQuestionPoolService(lessonRepo repository.LessonRepository, completionRepo repository.CompletionRepository) QuestionPoolService {
	return &questionPoolService{lessonRepo: lessonRepo, completionRepo: completionRepo}
}

func (s *questionPoolService) ResolvePool(userID uint) ([]model.LessonQuestion, error) {
	completedIDs, err := s.completionRepo.FindLessonIDsByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ResolvePool: failed to load lesson completions")
		return nil, err
	}

	var lessons []model.Lesson
	if len(completedIDs) > 0 {
		lessons, err = s.lessonRepo.FindPublishedByIDsWithQuestions(completedIDs)
	} else {
		// Cold start: no history yet, draw from every published lesson.
		lessons, err = s.lessonRepo.FindPublishedWithQuestions()
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ResolvePool: failed to load lessons")
		return nil, err
	}

	seen := make(map[uint]bool)
	var pool []model.LessonQuestion
	for _, lesson := range lessons {
		for _, q := range lesson.Questions {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			pool = append(pool, q)
		}
	}

	if len(pool) < QuestSize {
		log.Warn().Uint("userID", userID).Int("poolSize", len(pool)).Msg("ResolvePool: pool too small for a quest")
		return nil, ErrInsufficientPool
	}
	return pool, nil
}
