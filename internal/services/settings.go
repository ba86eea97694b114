package services

import (
	"errors"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/gorm"
)

// SettingsService owns the single operator record: external-service
// credentials and the bot-active flag.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) Get() (*models.BotSettings, error) {
	var settings models.BotSettings
	err := s.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BotSettings{}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) UpdateTwitterCredentials(apiKey, apiSecret, accessToken, accessSecret, username string) (*models.BotSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	settings.TwitterAPIKey = apiKey
	settings.TwitterAPISecret = apiSecret
	settings.TwitterAccessToken = accessToken
	settings.TwitterAccessSecret = accessSecret
	settings.TwitterUsername = username
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) UpdateOpenAIKey(apiKey string) (*models.BotSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	settings.OpenAIAPIKey = apiKey
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) ToggleActive() (bool, error) {
	settings, err := s.Get()
	if err != nil {
		return false, err
	}

	settings.BotActive = !settings.BotActive
	if err := s.db.Save(settings).Error; err != nil {
		return false, err
	}
	return settings.BotActive, nil
}
