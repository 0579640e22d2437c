package model

import "time"

// XPPerLevel is how much accumulated XP advances the user by one level.
const XPPerLevel uint = 1000

// UserProgress is the XP ledger row for one user.
type UserProgress struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	TotalXP   uint      `json:"total_xp" gorm:"not null;default:0"`
	Level     uint      `json:"level" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LevelForXP maps accumulated XP to a level, starting at level 1.
func LevelForXP(totalXP uint) uint {
	return 1 + totalXP/XPPerLevel
}
