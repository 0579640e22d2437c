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

type LessonController struct {
	lessonService   service.UserLessonService
	progressService service.ProgressService
}

func NewLessonController(lessonService service.UserLessonService, progressService service.ProgressService) *LessonController {
	return &LessonController{lessonService: lessonService, progressService: progressService}
}

// ListLessons godoc
// @Summary (User) List published lessons
// @Description Lists the published lesson catalog. If user_id is provided, each lesson carries that user's completion flag.
// @Tags User - Lessons
// @Produce json
// @Param user_id query int false "Optional User ID to include completion state"
// @Success 200 {array} dto.LessonSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	var userID uint
	if raw := ctx.Query("user_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid User ID format in query"})
			return
		}
		userID = uint(val)
	}

	lessons, err := c.lessonService.ListPublishedLessons(userID)
	if err != nil {
		log.Error().Err(err).Msg("ListLessons: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve lessons"})
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}

// GetLessonDetail godoc
// @Summary (User) Get a published lesson with its questions
// @Tags User - Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.LessonResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Lesson ID format"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lesson_id} [get]
func (c *LessonController) GetLessonDetail(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("lesson_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Lesson ID format"})
		return
	}

	lesson, err := c.lessonService.GetLessonDetail(uint(lessonID))
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
			return
		}
		log.Error().Err(err).Uint64("lessonID", lessonID).Msg("GetLessonDetail: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve lesson"})
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// CompleteLesson godoc
// @Summary (User) Mark a lesson as completed
// @Description Records a one-time completion, awards the lesson's full XP value, and unlocks the lesson's questions for the user's daily quest pool.
// @Tags User - Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Param user_id query int true "User ID (temporary - will come from auth token)"
// @Success 200 {object} dto.LessonCompletionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson already completed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{lesson_id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("lesson_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Lesson ID format"})
		return
	}
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	completion, err := c.lessonService.CompleteLesson(userID, uint(lessonID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
		case errors.Is(err, service.ErrAlreadyCompleted):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "You already completed this lesson"})
		default:
			log.Error().Err(err).Uint64("lessonID", lessonID).Uint("userID", userID).Msg("CompleteLesson: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to complete lesson"})
		}
		return
	}
	ctx.JSON(http.StatusOK, completion)
}

// GetProgress godoc
// @Summary (User) Get XP and level
// @Tags User - Progress
// @Produce json
// @Param user_id query int true "User ID (temporary - will come from auth token)"
// @Success 200 {object} dto.ProgressResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid User ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	progress, err := c.progressService.GetProgress(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve progress"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ProgressResponseDTO{
		UserID:  progress.UserID,
		TotalXP: progress.TotalXP,
		Level:   progress.Level,
	})
}
