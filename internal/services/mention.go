package services

import (
	"errors"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/gorm"
)

type MentionService struct {
	db *gorm.DB
}

func NewMentionService(db *gorm.DB) *MentionService {
	return &MentionService{db: db}
}

type CreateMentionInput struct {
	TweetID            string
	AuthorUsername     string
	AuthorName         string
	AuthorProfileImage string
	Content            string
	CreatedAt          time.Time
}

// GetRecent returns the newest mentions first; mentions created at the same
// instant keep their insertion order.
func (s *MentionService) GetRecent(count int) ([]models.Mention, error) {
	if count <= 0 {
		count = 20
	}
	mentions := make([]models.Mention, 0, count)
	err := s.db.Order("created_at DESC, id ASC").Limit(count).Find(&mentions).Error
	if err != nil {
		return nil, err
	}
	return mentions, nil
}

// GetByTweetID returns (nil, nil) when no mention with that tweet ID exists.
func (s *MentionService) GetByTweetID(tweetID string) (*models.Mention, error) {
	var mention models.Mention
	err := s.db.Where("tweet_id = ?", tweetID).First(&mention).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mention, nil
}

// Create stores a mention with status pending. Re-ingesting an already known
// tweet ID is a no-op and returns the existing record.
func (s *MentionService) Create(input CreateMentionInput) (*models.Mention, error) {
	existing, err := s.GetByTweetID(input.TweetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	mention := models.Mention{
		TweetID:            input.TweetID,
		AuthorUsername:     input.AuthorUsername,
		AuthorName:         input.AuthorName,
		AuthorProfileImage: input.AuthorProfileImage,
		Content:            input.Content,
		CreatedAt:          input.CreatedAt,
		ResponseStatus:     models.StatusPending,
	}
	if err := s.db.Create(&mention).Error; err != nil {
		return nil, err
	}
	return &mention, nil
}

// UpdateDraft overwrites the generated reply and mode without touching the
// response status.
func (s *MentionService) UpdateDraft(tweetID, content string, mode models.ResponseMode) (*models.Mention, error) {
	mention, err := s.GetByTweetID(tweetID)
	if err != nil {
		return nil, err
	}
	if mention == nil {
		return nil, ErrMentionNotFound
	}

	mention.ResponseContent = &content
	mention.ResponseMode = &mode
	if err := s.db.Save(mention).Error; err != nil {
		return nil, err
	}
	return mention, nil
}

// MarkSent finalizes a mention after its reply was posted.
func (s *MentionService) MarkSent(tweetID, responseID string) (*models.Mention, error) {
	mention, err := s.GetByTweetID(tweetID)
	if err != nil {
		return nil, err
	}
	if mention == nil {
		return nil, ErrMentionNotFound
	}

	now := time.Now()
	mention.ResponseID = &responseID
	mention.ResponseStatus = models.StatusSent
	mention.ResponseSentAt = &now
	if err := s.db.Save(mention).Error; err != nil {
		return nil, err
	}
	return mention, nil
}

func (s *MentionService) MarkFailed(tweetID string) (*models.Mention, error) {
	mention, err := s.GetByTweetID(tweetID)
	if err != nil {
		return nil, err
	}
	if mention == nil {
		return nil, ErrMentionNotFound
	}

	mention.ResponseStatus = models.StatusFailed
	if err := s.db.Save(mention).Error; err != nil {
		return nil, err
	}
	return mention, nil
}
