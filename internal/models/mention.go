package models

import "time"

// ResponseMode is the closed set of reply styles the bot understands.
type ResponseMode string

const (
	ModeWitty  ResponseMode = "witty"
	ModeRoast  ResponseMode = "roast"
	ModeDebate ResponseMode = "debate"
	ModePeace  ResponseMode = "peace"
)

func (m ResponseMode) Valid() bool {
	switch m {
	case ModeWitty, ModeRoast, ModeDebate, ModePeace:
		return true
	}
	return false
}

// ResponseStatus tracks a mention reply through pending -> sent|failed.
type ResponseStatus string

const (
	StatusPending ResponseStatus = "pending"
	StatusSent    ResponseStatus = "sent"
	StatusFailed  ResponseStatus = "failed"
)

type Mention struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	TweetID            string         `gorm:"size:64;uniqueIndex;not null" json:"tweetId"`
	AuthorUsername     string         `gorm:"size:100;not null" json:"authorUsername"`
	AuthorName         string         `gorm:"size:100" json:"authorName"`
	AuthorProfileImage string         `gorm:"size:500" json:"authorProfileImage"`
	Content            string         `gorm:"type:text;not null" json:"content"`
	CreatedAt          time.Time      `json:"createdAt"`
	ResponseID         *string        `gorm:"size:64" json:"responseId"`
	ResponseContent    *string        `gorm:"type:text" json:"responseContent"`
	ResponseMode       *ResponseMode  `gorm:"size:10" json:"responseMode"`
	ResponseStatus     ResponseStatus `gorm:"size:10;not null;default:'pending'" json:"responseStatus"`
	ResponseSentAt     *time.Time     `json:"responseSentAt"`
}
