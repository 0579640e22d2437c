package repository

import (
	"github.com/lshigami/Lorikeet/internal/model"
	"gorm.io/gorm"
)

type CompletionRepository interface {
	FindLessonIDsByUser(userID uint) ([]uint, error)
	FindByUserAndLesson(userID, lessonID uint) (*model.UserLessonCompletion, error)
	FindAllByUser(userID uint) ([]model.UserLessonCompletion, error)
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) FindLessonIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.UserLessonCompletion{}).
		Where("user_id = ?", userID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

func (r *completionRepository) FindByUserAndLesson(userID, lessonID uint) (*model.UserLessonCompletion, error) {
	var completion model.UserLessonCompletion
	err := r.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&completion).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *completionRepository) FindAllByUser(userID uint) ([]model.UserLessonCompletion, error) {
	var completions []model.UserLessonCompletion
	err := r.db.Where("user_id = ?", userID).
		Preload("Lesson").
		Order("completed_at DESC").
		Find(&completions).Error
	return completions, err
}
