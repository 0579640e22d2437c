package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lorikeet/internal/dto"
	"github.com/lshigami/Lorikeet/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminLessonController struct {
	adminLessonService service.AdminLessonService
}

func NewAdminLessonController(adminLessonService service.AdminLessonService) *AdminLessonController {
	return &AdminLessonController{adminLessonService: adminLessonService}
}

// CreateLesson godoc
// @Summary (Admin) Create a lesson with its questions
// @Description Creates a flashcard or quiz lesson with ordered questions. Question payloads are validated against the lesson format.
// @Tags Admin - Lessons
// @Accept json
// @Produce json
// @Param lesson body dto.LessonCreateDTO true "Lesson definition"
// @Success 201 {object} dto.LessonResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson definition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/lessons [post]
func (c *AdminLessonController) CreateLesson(ctx *gin.Context) {
	var req dto.LessonCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateLesson: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	lesson, err := c.adminLessonService.CreateLesson(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateLesson: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create lesson", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, lesson)
}

// SetLessonPublished godoc
// @Summary (Admin) Publish or unpublish a lesson
// @Tags Admin - Lessons
// @Accept json
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Param body body map[string]bool true "{\"published\": true}"
// @Success 204 "Updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/lessons/{lesson_id}/publish [patch]
func (c *AdminLessonController) SetLessonPublished(ctx *gin.Context) {
	lessonID, err := strconv.ParseUint(ctx.Param("lesson_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Lesson ID format"})
		return
	}

	var body struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminLessonService.SetPublished(uint(lessonID), *body.Published); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
			return
		}
		log.Error().Err(err).Uint64("lessonID", lessonID).Msg("SetLessonPublished: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update lesson"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListLessons godoc
// @Summary (Admin) List all lessons with question counts
// @Tags Admin - Lessons
// @Produce json
// @Success 200 {array} dto.LessonSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/lessons [get]
func (c *AdminLessonController) ListLessons(ctx *gin.Context) {
	lessons, err := c.adminLessonService.ListLessons()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListLessons: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve lessons"})
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}
