package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Lorikeet/internal/dto"
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestAttemptService scores quest submissions and records one completion
// per user per quest, awarding proportional XP in the same transaction.
type QuestAttemptService interface {
	GetTodayQuestView(userID uint) (*dto.TodayQuestDTO, error)
	SubmitAttempt(userID, questID uint, answers []string) (*dto.QuestAttemptResultDTO, error)
	GetReview(userID, questID uint) (*dto.QuestReviewDTO, error)
	GetHistory(userID uint) ([]dto.QuestHistoryEntryDTO, error)
}

type questAttemptService struct {
	questRepo       repository.QuestRepository
	attemptRepo     repository.QuestAttemptRepository
	generator       QuestGeneratorService
	progressService ProgressService
	geminiService   GeminiLLMService
	db              *gorm.DB
}

func NewQuestAttemptService(
	questRepo repository.QuestRepository,
	attemptRepo repository.QuestAttemptRepository,
	generator QuestGeneratorService,
	progressService ProgressService,
	geminiService GeminiLLMService,
	db *gorm.DB,
) QuestAttemptService {
	return &questAttemptService{
		questRepo:       questRepo,
		attemptRepo:     attemptRepo,
		generator:       generator,
		progressService: progressService,
		geminiService:   geminiService,
		db:              db,
	}
}

func (s *questAttemptService) GetTodayQuestView(userID uint) (*dto.TodayQuestDTO, error) {
	quest, err := s.generator.GetOrCreateQuestForDate(userID, time.Now())
	if err != nil {
		return nil, err
	}

	view := &dto.TodayQuestDTO{}
	if err := copier.Copy(&view.Quest, quest); err != nil {
		log.Error().Err(err).Msg("GetTodayQuestView: failed to copy quest to DTO")
		return nil, err
	}
	// Snapshots carry the correct answers; users only get the prompts.
	view.Quest.Questions = make([]dto.SnapshotResponseDTO, 0, len(quest.Snapshots))
	for _, snap := range quest.Snapshots {
		view.Quest.Questions = append(view.Quest.Questions, dto.SnapshotResponseDTO{
			ID:           snap.ID,
			OrderInQuest: snap.OrderInQuest,
			Prompt:       snap.Prompt,
			Options:      snap.Options,
		})
	}

	attempt, err := s.attemptRepo.FindByUserAndQuest(userID, quest.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Uint("userID", userID).Uint("questID", quest.ID).Msg("GetTodayQuestView: attempt lookup failed")
			return nil, err
		}
		return view, nil
	}
	if attempt.IsCompleted {
		view.IsCompleted = true
		view.PreviousScore = &dto.PreviousScoreDTO{
			CorrectCount:   attempt.CorrectCount,
			TotalQuestions: attempt.TotalQuestions,
			XPEarned:       attempt.XPEarned,
		}
	}
	return view, nil
}

func (s *questAttemptService) SubmitAttempt(userID, questID uint, answers []string) (*dto.QuestAttemptResultDTO, error) {
	quest, err := s.questRepo.FindByIDWithSnapshots(questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		log.Error().Err(err).Uint("questID", questID).Msg("SubmitAttempt: quest lookup failed")
		return nil, err
	}

	if len(answers) != len(quest.Snapshots) {
		return nil, ErrInvalidAnswerCount
	}

	// Cheap pre-check; the unique (user_id, quest_id) index is what actually
	// guarantees at-most-once under concurrent submissions.
	if existing, err := s.attemptRepo.FindByUserAndQuest(userID, questID); err == nil && existing.IsCompleted {
		return nil, ErrAlreadyCompleted
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	attempt := model.UserQuestAttempt{
		UserID:         userID,
		QuestID:        questID,
		StartedAt:      now,
		CompletedAt:    &now,
		TotalQuestions: len(quest.Snapshots),
		IsCompleted:    true,
	}

	results := make([]dto.AnswerResultDTO, 0, len(quest.Snapshots))
	for i, snap := range quest.Snapshots {
		submitted := answers[i]
		correct := scoreAnswer(&snap, submitted)
		if correct {
			attempt.CorrectCount++
		}
		attempt.Answers = append(attempt.Answers, model.UserQuestAnswer{
			SnapshotID:      snap.ID,
			SubmittedAnswer: submitted,
			IsCorrect:       correct,
			AnsweredAt:      now,
		})
		results = append(results, dto.AnswerResultDTO{
			OrderInQuest:    snap.OrderInQuest,
			Prompt:          snap.Prompt,
			SubmittedAnswer: submitted,
			IsCorrect:       correct,
			CorrectAnswer:   correctAnswerText(&snap),
		})
	}

	// Integer arithmetic keeps the floor exact: 5/5 always pays the full
	// reward, partial credit never rounds up.
	attempt.XPEarned = quest.XPReward * uint(attempt.CorrectCount) / uint(attempt.TotalQuestions)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		return s.progressService.AwardXP(tx, userID, attempt.XPEarned)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a submission race: exactly one attempt row exists and XP
			// was awarded once, by the winner.
			return nil, ErrAlreadyCompleted
		}
		log.Error().Err(err).Uint("userID", userID).Uint("questID", questID).Msg("SubmitAttempt: failed to persist attempt")
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("questID", questID).Int("correct", attempt.CorrectCount).Uint("xpEarned", attempt.XPEarned).Msg("Quest attempt recorded")

	return &dto.QuestAttemptResultDTO{
		AttemptID:      attempt.ID,
		QuestID:        questID,
		CorrectCount:   attempt.CorrectCount,
		TotalQuestions: attempt.TotalQuestions,
		XPEarned:       attempt.XPEarned,
		CompletedAt:    attempt.CompletedAt,
		Results:        results,
	}, nil
}

func (s *questAttemptService) GetReview(userID, questID uint) (*dto.QuestReviewDTO, error) {
	attempt, err := s.attemptRepo.FindByUserAndQuestWithAnswers(userID, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	review := &dto.QuestReviewDTO{
		QuestID:        attempt.QuestID,
		QuestTitle:     attempt.Quest.Title,
		CorrectCount:   attempt.CorrectCount,
		TotalQuestions: attempt.TotalQuestions,
		XPEarned:       attempt.XPEarned,
		CompletedAt:    attempt.CompletedAt,
	}
	for _, ans := range attempt.Answers {
		reviewed := dto.ReviewAnswerDTO{
			OrderInQuest:    ans.Snapshot.OrderInQuest,
			Prompt:          ans.Snapshot.Prompt,
			SubmittedAnswer: ans.SubmittedAnswer,
			IsCorrect:       ans.IsCorrect,
			CorrectAnswer:   correctAnswerText(&ans.Snapshot),
		}
		if !ans.IsCorrect && s.geminiService != nil {
			explanation, expErr := s.geminiService.ExplainMistake(&ans.Snapshot, ans.SubmittedAnswer)
			if expErr != nil {
				log.Warn().Err(expErr).Uint("snapshotID", ans.SnapshotID).Msg("GetReview: explanation generation failed, continuing without it")
			} else {
				reviewed.Explanation = explanation
			}
		}
		review.Answers = append(review.Answers, reviewed)
	}
	return review, nil
}

func (s *questAttemptService) GetHistory(userID uint) ([]dto.QuestHistoryEntryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetHistory: attempt listing failed")
		return nil, err
	}

	history := make([]dto.QuestHistoryEntryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		history = append(history, dto.QuestHistoryEntryDTO{
			QuestID:        attempt.QuestID,
			QuestDate:      attempt.Quest.Date,
			QuestTitle:     attempt.Quest.Title,
			CorrectCount:   attempt.CorrectCount,
			TotalQuestions: attempt.TotalQuestions,
			XPEarned:       attempt.XPEarned,
			CompletedAt:    attempt.CompletedAt,
		})
	}
	return history, nil
}

// scoreAnswer dispatches on the snapshot's own payload, not the quest-level
// type: a pool mixing flashcard and quiz lessons produces quests with both
// kinds of snapshot. Quiz snapshots compare the submitted option index,
// flashcard snapshots compare normalized text.
func scoreAnswer(snap *model.QuestQuestionSnapshot, submitted string) bool {
	if snap.CorrectOption != nil {
		idx, err := strconv.Atoi(strings.TrimSpace(submitted))
		if err != nil {
			return false
		}
		return idx == *snap.CorrectOption
	}
	return normalizeAnswer(submitted) == normalizeAnswer(snap.Answer)
}

// normalizeAnswer lowercases and collapses internal whitespace so that
// "La Mesa " matches "la mesa".
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func correctAnswerText(snap *model.QuestQuestionSnapshot) string {
	if snap.CorrectOption != nil {
		if idx := *snap.CorrectOption; idx >= 0 && idx < len(snap.Options) {
			return snap.Options[idx]
		}
		return ""
	}
	return snap.Answer
}
