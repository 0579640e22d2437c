package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Lorikeet/internal/dto"
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminLessonService interface {
	CreateLesson(req dto.LessonCreateDTO) (*dto.LessonResponseDTO, error)
	SetPublished(lessonID uint, published bool) error
	ListLessons() ([]dto.LessonSummaryDTO, error)
}

type adminLessonService struct {
	lessonRepo repository.LessonRepository
}

func NewAdminLessonService(lessonRepo repository.LessonRepository) AdminLessonService {
	return &adminLessonService{lessonRepo: lessonRepo}
}

func (s *adminLessonService) CreateLesson(req dto.LessonCreateDTO) (*dto.LessonResponseDTO, error) {
	orderSeen := make(map[int]bool)
	var questions []model.LessonQuestion

	for _, qDto := range req.Questions {
		if orderSeen[qDto.OrderInLesson] {
			return nil, fmt.Errorf("duplicate order_in_lesson %d", qDto.OrderInLesson)
		}
		orderSeen[qDto.OrderInLesson] = true
		if qDto.OrderInLesson > len(req.Questions) {
			return nil, fmt.Errorf("order_in_lesson %d exceeds question count %d", qDto.OrderInLesson, len(req.Questions))
		}

		switch req.Format {
		case model.LessonFormatFlashcard:
			if qDto.Answer == "" {
				return nil, fmt.Errorf("flashcard question (order %d) requires a non-empty answer", qDto.OrderInLesson)
			}
		case model.LessonFormatQuiz:
			if len(qDto.Options) < 2 {
				return nil, fmt.Errorf("quiz question (order %d) requires at least 2 options", qDto.OrderInLesson)
			}
			if qDto.CorrectOption == nil || *qDto.CorrectOption < 0 || *qDto.CorrectOption >= len(qDto.Options) {
				return nil, fmt.Errorf("quiz question (order %d) requires a correct_option within its options", qDto.OrderInLesson)
			}
		}

		questions = append(questions, model.LessonQuestion{
			OrderInLesson: qDto.OrderInLesson,
			Prompt:        qDto.Prompt,
			Answer:        qDto.Answer,
			Options:       qDto.Options,
			CorrectOption: qDto.CorrectOption,
		})
	}

	lesson := model.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Format:      req.Format,
		XPValue:     req.XPValue,
		Published:   req.Published,
		Questions:   questions,
	}
	if err := s.lessonRepo.Create(&lesson); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateLesson: failed to create lesson")
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	log.Info().Uint("lessonID", lesson.ID).Str("title", lesson.Title).Int("questions", len(lesson.Questions)).Msg("Lesson created")

	var resp dto.LessonResponseDTO
	if err := copier.Copy(&resp, &lesson); err != nil {
		log.Error().Err(err).Msg("CreateLesson: failed to copy lesson to DTO")
		return nil, err
	}
	return &resp, nil
}

func (s *adminLessonService) SetPublished(lessonID uint, published bool) error {
	err := s.lessonRepo.SetPublished(lessonID, published)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLessonNotFound
	}
	return err
}

func (s *adminLessonService) ListLessons() ([]dto.LessonSummaryDTO, error) {
	rows, err := s.lessonRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.LessonSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.LessonSummaryDTO{
			ID:            row.ID,
			Title:         row.Title,
			Description:   row.Description,
			Format:        row.Format,
			XPValue:       row.XPValue,
			Published:     row.Published,
			QuestionCount: row.QuestionCount,
			CreatedAt:     row.CreatedAt,
		})
	}
	return summaries, nil
}
