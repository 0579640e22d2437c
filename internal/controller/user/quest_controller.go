package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lorikeet/internal/dto"
	"github.com/lshigami/Lorikeet/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestController struct {
	attemptService service.QuestAttemptService
}

func NewQuestController(attemptService service.QuestAttemptService) *QuestController {
	return &QuestController{attemptService: attemptService}
}

// GetTodayQuest godoc
// @Summary (User) Get today's daily quest
// @Description Returns today's quest, generating it on first access. Includes the user's completion state and previous score if already completed.
// @Tags User - Daily Quest
// @Produce json
// @Param user_id query int true "User ID (temporary - will come from auth token)"
// @Success 200 {object} dto.TodayQuestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 404 {object} dto.ErrorResponse "No quest available today"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quests/today [get]
func (c *QuestController) GetTodayQuest(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	view, err := c.attemptService.GetTodayQuestView(userID)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientPool) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No quest available today: not enough lesson content yet."})
			return
		}
		log.Error().Err(err).Uint("userID", userID).Msg("GetTodayQuest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load today's quest"})
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// SubmitQuestAttempt godoc
// @Summary (User) Submit answers for a quest
// @Description Submits exactly five answers for the given quest. Scores them, records the one-per-user completion, and awards proportional XP.
// @Tags User - Daily Quest
// @Accept json
// @Produce json
// @Param quest_id path int true "Quest ID"
// @Param submission body dto.QuestAttemptSubmitDTO true "User ID and ordered answers"
// @Success 200 {object} dto.QuestAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed submission"
// @Failure 404 {object} dto.ErrorResponse "Quest not found"
// @Failure 409 {object} dto.ErrorResponse "Quest already completed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quests/{quest_id}/attempts [post]
func (c *QuestController) SubmitQuestAttempt(ctx *gin.Context) {
	questIDStr := ctx.Param("quest_id")
	questID, err := strconv.ParseUint(questIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quest ID format"})
		return
	}

	var req dto.QuestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitQuestAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.SubmitAttempt(req.UserID, uint(questID), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quest not found"})
		case errors.Is(err, service.ErrInvalidAnswerCount):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission must contain exactly one answer per question"})
		case errors.Is(err, service.ErrAlreadyCompleted):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "You already completed today's quest"})
		default:
			log.Error().Err(err).Uint64("questID", questID).Msg("SubmitQuestAttempt: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit quest attempt"})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetQuestReview godoc
// @Summary (User) Review a completed quest attempt
// @Description Returns the user's answers, the correct answers, and tutor explanations for missed questions.
// @Tags User - Daily Quest
// @Produce json
// @Param quest_id path int true "Quest ID"
// @Param user_id query int true "User ID (temporary - will come from auth token)"
// @Success 200 {object} dto.QuestReviewDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "No completed attempt for this quest"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quests/{quest_id}/review [get]
func (c *QuestController) GetQuestReview(ctx *gin.Context) {
	questIDStr := ctx.Param("quest_id")
	questID, err := strconv.ParseUint(questIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quest ID format"})
		return
	}
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	review, err := c.attemptService.GetReview(userID, uint(questID))
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No completed attempt found for this quest"})
			return
		}
		log.Error().Err(err).Uint64("questID", questID).Uint("userID", userID).Msg("GetQuestReview: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load quest review"})
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// GetQuestHistory godoc
// @Summary (User) List past quest completions
// @Description Returns the user's completed quest attempts, most recent first.
// @Tags User - Daily Quest
// @Produce json
// @Param user_id query int true "User ID (temporary - will come from auth token)"
// @Success 200 {array} dto.QuestHistoryEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quests/history [get]
func (c *QuestController) GetQuestHistory(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	history, err := c.attemptService.GetHistory(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetQuestHistory: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load quest history"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// parseUserID reads the user_id query parameter standing in for the
// authenticated user reference.
func parseUserID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return 0, false
	}
	return uint(val), true
}
