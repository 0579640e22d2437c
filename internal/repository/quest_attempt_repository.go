package repository

import (
	"github.com/lshigami/Lorikeet/internal/model"
	"gorm.io/gorm"
)

type QuestAttemptRepository interface {
	FindByUserAndQuest(userID, questID uint) (*model.UserQuestAttempt, error)
	FindByUserAndQuestWithAnswers(userID, questID uint) (*model.UserQuestAttempt, error)
	FindAllByUser(userID uint) ([]model.UserQuestAttempt, error)
}

type questAttemptRepository struct {
	db *gorm.DB
}

func NewQuestAttemptRepository(db *gorm.DB) QuestAttemptRepository {
	return &questAttemptRepository{db: db}
}

func (r *questAttemptRepository) FindByUserAndQuest(userID, questID uint) (*model.UserQuestAttempt, error) {
	var attempt model.UserQuestAttempt
	err := r.db.Where("user_id = ? AND quest_id = ?", userID, questID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *questAttemptRepository) FindByUserAndQuestWithAnswers(userID, questID uint) (*model.UserQuestAttempt, error) {
	var attempt model.UserQuestAttempt
	err := r.db.Where("user_id = ? AND quest_id = ?", userID, questID).
		Preload("Quest").
		Preload("Answers.Snapshot").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *questAttemptRepository) FindAllByUser(userID uint) ([]model.UserQuestAttempt, error) {
	var attempts []model.UserQuestAttempt
	err := r.db.Where("user_id = ?", userID).
		Preload("Quest").
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}
