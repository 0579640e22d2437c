package repository

import (
	"github.com/lshigami/Lorikeet/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	FindByUser(userID uint) (*model.UserProgress, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUser(userID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
