package service

import (
	"errors"
	"math"

	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// maxXPAward caps a single ledger award well below uint overflow.
const maxXPAward = math.MaxInt32

// ProgressService is the XP ledger. AwardXP runs inside the caller's
// transaction so the award commits or rolls back together with whatever
// completion record triggered it.
type ProgressService interface {
	AwardXP(tx *gorm.DB, userID uint, amount uint) error
	GetProgress(userID uint) (*model.UserProgress, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

func (s *progressService) AwardXP(tx *gorm.DB, userID uint, amount uint) error {
	if amount > maxXPAward {
		return ErrInvalidAmount
	}

	var progress model.UserProgress
	err := tx.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.UserProgress{UserID: userID}
	} else if err != nil {
		return err
	}

	if progress.TotalXP > math.MaxUint32-amount {
		return ErrInvalidAmount
	}
	progress.TotalXP += amount
	progress.Level = model.LevelForXP(progress.TotalXP)

	if err := tx.Save(&progress).Error; err != nil {
		return err
	}
	log.Debug().Uint("userID", userID).Uint("amount", amount).Uint("totalXP", progress.TotalXP).Uint("level", progress.Level).Msg("XP awarded")
	return nil
}

func (s *progressService) GetProgress(userID uint) (*model.UserProgress, error) {
	progress, err := s.progressRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A user with no awards yet is simply at the starting state.
		return &model.UserProgress{UserID: userID, TotalXP: 0, Level: 1}, nil
	}
	return progress, err
}
