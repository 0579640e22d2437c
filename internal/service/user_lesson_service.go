package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Lorikeet/internal/dto"
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserLessonService is the learner-facing lesson surface: browsing the
// published catalog and recording completions, which both award XP and feed
// the daily quest question pool.
type UserLessonService interface {
	ListPublishedLessons(userID uint) ([]dto.LessonSummaryDTO, error)
	GetLessonDetail(lessonID uint) (*dto.LessonResponseDTO, error)
	CompleteLesson(userID, lessonID uint) (*dto.LessonCompletionDTO, error)
}

type userLessonService struct {
	lessonRepo      repository.LessonRepository
	completionRepo  repository.CompletionRepository
	progressService ProgressService
	db              *gorm.DB
}

func NewUserLessonService(
	lessonRepo repository.LessonRepository,
	completionRepo repository.CompletionRepository,
	progressService ProgressService,
	db *gorm.DB,
) UserLessonService {
	return &userLessonService{
		lessonRepo:      lessonRepo,
		completionRepo:  completionRepo,
		progressService: progressService,
		db:              db,
	}
}

func (s *userLessonService) ListPublishedLessons(userID uint) ([]dto.LessonSummaryDTO, error) {
	lessons, err := s.lessonRepo.FindPublishedWithQuestions()
	if err != nil {
		return nil, err
	}

	completed := make(map[uint]model.UserLessonCompletion)
	if userID != 0 {
		completions, err := s.completionRepo.FindAllByUser(userID)
		if err != nil {
			return nil, err
		}
		for _, c := range completions {
			completed[c.LessonID] = c
		}
	}

	summaries := make([]dto.LessonSummaryDTO, 0, len(lessons))
	for _, lesson := range lessons {
		summary := dto.LessonSummaryDTO{
			ID:            lesson.ID,
			Title:         lesson.Title,
			Description:   lesson.Description,
			Format:        lesson.Format,
			XPValue:       lesson.XPValue,
			Published:     lesson.Published,
			QuestionCount: len(lesson.Questions),
			CreatedAt:     lesson.CreatedAt,
		}
		if c, ok := completed[lesson.ID]; ok {
			summary.IsCompleted = true
			completedAt := c.CompletedAt
			summary.CompletedAt = &completedAt
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *userLessonService) GetLessonDetail(lessonID uint) (*dto.LessonResponseDTO, error) {
	lesson, err := s.lessonRepo.FindByIDWithQuestions(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	if !lesson.Published {
		return nil, ErrLessonNotFound
	}

	var resp dto.LessonResponseDTO
	if err := copier.Copy(&resp, lesson); err != nil {
		log.Error().Err(err).Uint("lessonID", lessonID).Msg("GetLessonDetail: failed to copy lesson to DTO")
		return nil, err
	}
	return &resp, nil
}

func (s *userLessonService) CompleteLesson(userID, lessonID uint) (*dto.LessonCompletionDTO, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	if !lesson.Published {
		return nil, ErrLessonNotFound
	}

	// Cheap pre-check; the unique (user_id, lesson_id) index is what actually
	// guarantees at-most-once under concurrent completions.
	if _, err := s.completionRepo.FindByUserAndLesson(userID, lessonID); err == nil {
		return nil, ErrAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion := model.UserLessonCompletion{
		UserID:   userID,
		LessonID: lessonID,
		XPEarned: lesson.XPValue,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}
		return s.progressService.AwardXP(tx, userID, lesson.XPValue)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCompleted
		}
		log.Error().Err(err).Uint("userID", userID).Uint("lessonID", lessonID).Msg("CompleteLesson: failed to record completion")
		return nil, err
	}

	progress, err := s.progressService.GetProgress(userID)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("lessonID", lessonID).Uint("xpEarned", lesson.XPValue).Msg("Lesson completed")
	return &dto.LessonCompletionDTO{
		LessonID:    lessonID,
		XPEarned:    lesson.XPValue,
		TotalXP:     progress.TotalXP,
		Level:       progress.Level,
		CompletedAt: completion.CompletedAt,
	}, nil
}
