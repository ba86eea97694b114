package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) Get() (*models.Stats, error) {
	var stats models.Stats
	err := s.db.First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.Stats{Date: time.Now()}
		if err := s.db.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Increment bumps the totals and the per-mode counter in one UPDATE, so the
// per-mode counts always sum to the total.
func (s *StatsService) Increment(mode models.ResponseMode) (*models.Stats, error) {
	var column string
	switch mode {
	case models.ModeWitty:
		column = "witty_count"
	case models.ModeRoast:
		column = "roast_count"
	case models.ModeDebate:
		column = "debate_count"
	case models.ModePeace:
		column = "peace_count"
	default:
		return nil, fmt.Errorf("unknown response mode %q", mode)
	}

	stats, err := s.Get()
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Stats{}).Where("id = ?", stats.ID).
		Updates(map[string]interface{}{
			"total_responses": gorm.Expr("total_responses + 1"),
			"today_responses": gorm.Expr("today_responses + 1"),
			column:            gorm.Expr(column + " + 1"),
		}).Error
	if err != nil {
		return nil, err
	}

	return s.Get()
}
