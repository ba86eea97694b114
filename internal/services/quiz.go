package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/gorm"
)

const (
	joinCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength  = 6
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

func (s *QuizService) CreateQuiz(creatorID uint, title, description string, isPublic bool) (*models.Quiz, error) {
	quiz := models.Quiz{
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		Code:        s.generateUniqueCode(),
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) generateUniqueCode() string {
	for {
		buf := make([]byte, joinCodeLength)
		for i := range buf {
			buf[i] = joinCodeCharset[rand.Intn(len(joinCodeCharset))]
		}
		code := string(buf)

		var count int64
		s.db.Model(&models.Quiz{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

// GetQuizzes lists public quizzes, newest first.
func (s *QuizService) GetQuizzes(limit int) ([]models.Quiz, error) {
	if limit <= 0 {
		limit = 20
	}
	quizzes := make([]models.Quiz, 0, limit)
	err := s.db.Where("is_public = ?", true).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) GetQuizzesByCreator(creatorID uint) ([]models.Quiz, error) {
	quizzes := make([]models.Quiz, 0)
	err := s.db.Where("creator_id = ?", creatorID).
		Order("created_at DESC, id ASC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

type QuestionInput struct {
	Text        string        `json:"text"`
	Options     []OptionInput `json:"options"`
	Explanation string        `json:"explanation"`
}

type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

func validateQuestion(input QuestionInput) error {
	if input.Text == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	}
	if len(input.Options) < 2 || len(input.Options) > 6 {
		return fmt.Errorf("%w: question must have 2 to 6 options", ErrInvalidQuestion)
	}
	correctCount := 0
	for _, o := range input.Options {
		if o.Text == "" {
			return fmt.Errorf("%w: option text is required", ErrInvalidQuestion)
		}
		if o.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return fmt.Errorf("%w: exactly one option must be marked as correct", ErrInvalidQuestion)
	}
	return nil
}

// AddQuestion creates a question with its options. Only the quiz creator may
// add questions. The stored CorrectOptionID always references one of the
// question's own options.
func (s *QuizService) AddQuestion(quizID, userID uint, input QuestionInput) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}
	if quiz.CreatorID != userID {
		return nil, ErrAccessDenied
	}

	if err := validateQuestion(input); err != nil {
		return nil, err
	}

	question := models.Question{
		QuizID:      quizID,
		Text:        input.Text,
		Explanation: input.Explanation,
	}

	tx := s.db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, o := range input.Options {
		opt := models.Option{
			QuestionID: question.ID,
			Text:       o.Text,
		}
		if err := tx.Create(&opt).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if o.IsCorrect {
			question.CorrectOptionID = opt.ID
		}
	}

	if err := tx.Model(&models.Question{}).Where("id = ?", question.ID).
		Update("correct_option_id", question.CorrectOptionID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	tx.Commit()

	s.db.Preload("Options").First(&question, question.ID)
	return &question, nil
}

// AddQuestions imports a batch, skipping entries that fail validation. Used
// for AI-generated questions, which are not always well formed.
func (s *QuizService) AddQuestions(quizID, userID uint, inputs []QuestionInput) ([]models.Question, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}
	if quiz.CreatorID != userID {
		return nil, ErrAccessDenied
	}

	created := make([]models.Question, 0, len(inputs))
	for _, input := range inputs {
		if err := validateQuestion(input); err != nil {
			continue
		}
		q, err := s.AddQuestion(quizID, userID, input)
		if err != nil {
			return nil, err
		}
		created = append(created, *q)
	}
	return created, nil
}
