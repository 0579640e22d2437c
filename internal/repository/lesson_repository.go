package repository

import (
	"github.com/lshigami/Lorikeet/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByIDWithQuestions(id uint) (*model.Lesson, error)
	FindPublishedWithQuestions() ([]model.Lesson, error)
	FindPublishedByIDsWithQuestions(ids []uint) ([]model.Lesson, error)
	SetPublished(id uint, published bool) error
	FindAllWithQuestionCount() ([]struct {
		model.Lesson
		QuestionCount int
	}, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	// GORM creates the associated questions alongside the lesson.
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.First(&lesson, id).Error
	return &lesson, err
}

func (r *lessonRepository) FindByIDWithQuestions(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("lesson_questions.order_in_lesson ASC")
	}).First(&lesson, id).Error
	return &lesson, err
}

func (r *lessonRepository) FindPublishedWithQuestions() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.Where("published = ?", true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_questions.order_in_lesson ASC")
		}).
		Order("lessons.created_at ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) FindPublishedByIDsWithQuestions(ids []uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if len(ids) == 0 {
		return lessons, nil
	}
	err := r.db.Where("published = ? AND id IN ?", true, ids).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_questions.order_in_lesson ASC")
		}).
		Order("lessons.created_at ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) SetPublished(id uint, published bool) error {
	res := r.db.Model(&model.Lesson{}).Where("id = ?", id).Update("published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lessonRepository) FindAllWithQuestionCount() ([]struct {
	model.Lesson
	QuestionCount int
}, error) {
	var results []struct {
		model.Lesson
		QuestionCount int
	}
	err := r.db.Model(&model.Lesson{}).
		Select("lessons.*, (SELECT COUNT(*) FROM lesson_questions WHERE lesson_questions.lesson_id = lessons.id AND lesson_questions.deleted_at IS NULL) as question_count").
		Where("lessons.deleted_at IS NULL").
		Order("lessons.created_at DESC").
		Scan(&results).Error
	return results, err
}
