package repository

import (
	"time"

	"github.com/lshigami/Lorikeet/internal/model"
	"gorm.io/gorm"
)

type QuestRepository interface {
	FindByDate(date time.Time) (*model.Quest, error)
	FindByIDWithSnapshots(id uint) (*model.Quest, error)
}

type questRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) FindByDate(date time.Time) (*model.Quest, error) {
	var quest model.Quest
	err := r.db.Where("date = ?", date).
		Preload("Snapshots", func(db *gorm.DB) *gorm.DB {
			return db.Order("quest_question_snapshots.order_in_quest ASC")
		}).
		First(&quest).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *questRepository) FindByIDWithSnapshots(id uint) (*model.Quest, error) {
	var quest model.Quest
	err := r.db.Preload("Snapshots", func(db *gorm.DB) *gorm.DB {
		return db.Order("quest_question_snapshots.order_in_quest ASC")
	}).First(&quest, id).Error
	if err != nil {
		return nil, err
	}
	return &quest, nil
}
