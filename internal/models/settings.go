package models

import "time"

// BotSettings is the single-tenant operator record: one row holding the
// external-service credentials and the bot's active flag.
type BotSettings struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	TwitterAPIKey       string    `gorm:"size:255" json:"-"`
	TwitterAPISecret    string    `gorm:"size:255" json:"-"`
	TwitterAccessToken  string    `gorm:"size:255" json:"-"`
	TwitterAccessSecret string    `gorm:"size:255" json:"-"`
	TwitterUsername     string    `gorm:"size:100" json:"twitterUsername"`
	OpenAIAPIKey        string    `gorm:"size:255" json:"-"`
	BotActive           bool      `gorm:"not null;default:false" json:"botActive"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
