package database

import (
	"log"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/config"
	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a SQLite database at the given DSN. The default DSN is an
// in-memory database that lives exactly as long as its one connection, so the
// pool is pinned to a single connection; this also serializes every mutation.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	return db, nil
}

func Connect(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.BotSettings{},
		&models.Mention{},
		&models.Stats{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Participant{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	seedSingletons(db)
	log.Println("database migrated")
}

// seedSingletons makes sure the one-row settings and stats records exist.
func seedSingletons(db *gorm.DB) {
	var settings models.BotSettings
	if err := db.First(&settings).Error; err != nil {
		db.Create(&models.BotSettings{})
	}

	var stats models.Stats
	if err := db.First(&stats).Error; err != nil {
		db.Create(&models.Stats{Date: time.Now()})
	}
}
