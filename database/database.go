package database

import (
	"fmt"

	"github.com/lshigami/Lorikeet/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the Postgres connection. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey, which the quest
// generator and attempt recorder rely on to resolve races.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("Database connection established")
	return db, nil
}
