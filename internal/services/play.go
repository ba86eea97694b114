package services

import (
	"errors"
	"time"

	"github.com/drsavage0/Twitter-Answer-me-bot/internal/models"

	"gorm.io/gorm"
)

// PlayService covers the participant side of a quiz: joining by code,
// submitting answers and reading leaderboards.
type PlayService struct {
	db *gorm.DB
}

func NewPlayService(db *gorm.DB) *PlayService {
	return &PlayService{db: db}
}

// Join validates the code against the quiz and creates a participant. An
// authenticated user who already joined this quiz gets their existing
// participant back instead of a duplicate.
func (s *PlayService) Join(quizID uint, code, displayName string, userID *uint) (*models.Participant, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}
	if quiz.Code != code {
		return nil, ErrInvalidCode
	}

	if userID != nil {
		var existing models.Participant
		err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, *userID).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
	}

	participant := models.Participant{
		QuizID:      quizID,
		UserID:      userID,
		DisplayName: displayName,
		Score:       0,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

type AnswerResult struct {
	IsCorrect       bool   `json:"isCorrect"`
	CorrectOptionID uint   `json:"correctOptionId"`
	Explanation     string `json:"explanation,omitempty"`
}

// SubmitAnswer records an answer exactly once. Correctness is decided here,
// at write time; a correct answer bumps the participant's score by one via a
// single UPDATE so concurrent submissions cannot lose increments.
func (s *PlayService) SubmitAnswer(participantID, questionID, selectedOptionID uint) (*AnswerResult, error) {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		return nil, ErrParticipantNotFound
	}

	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	if question.QuizID != participant.QuizID {
		return nil, ErrQuestionNotFound
	}

	var option models.Option
	if err := s.db.Where("id = ? AND question_id = ?", selectedOptionID, questionID).
		First(&option).Error; err != nil {
		return nil, ErrOptionNotFound
	}

	var existing models.Answer
	err := s.db.Where("participant_id = ? AND question_id = ?", participantID, questionID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyAnswered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	isCorrect := selectedOptionID == question.CorrectOptionID
	answer := models.Answer{
		ParticipantID:    participantID,
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
		IsCorrect:        isCorrect,
		AnsweredAt:       time.Now(),
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}

	if isCorrect {
		err := s.db.Model(&models.Participant{}).Where("id = ?", participantID).
			UpdateColumn("score", gorm.Expr("score + 1")).Error
		if err != nil {
			return nil, err
		}
	}

	return &AnswerResult{
		IsCorrect:       isCorrect,
		CorrectOptionID: question.CorrectOptionID,
		Explanation:     question.Explanation,
	}, nil
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	ParticipantID uint   `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Score         int    `json:"score"`
}

// Leaderboard ranks all participants of a quiz by score descending. Equal
// scores keep join order, and ranks are a contiguous sequence from 1.
func (s *PlayService) Leaderboard(quizID uint) ([]LeaderboardEntry, error) {
	var participants []models.Participant
	err := s.db.Where("quiz_id = ?", quizID).
		Order("score DESC, id ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(participants))
	for i, p := range participants {
		entries[i] = LeaderboardEntry{
			Rank:          i + 1,
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			Score:         p.Score,
		}
	}
	return entries, nil
}

type ParticipantState struct {
	Participant models.Participant `json:"participant"`
	Quiz        models.Quiz        `json:"quiz"`
	Answers     []models.Answer    `json:"answers"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// ParticipantState gathers everything the play screen needs in one read.
func (s *PlayService) ParticipantState(participantID uint) (*ParticipantState, error) {
	var participant models.Participant
	if err := s.db.First(&participant, participantID).Error; err != nil {
		return nil, ErrParticipantNotFound
	}

	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quiz, participant.QuizID).Error
	if err != nil {
		return nil, ErrQuizNotFound
	}

	answers := make([]models.Answer, 0)
	if err := s.db.Where("participant_id = ?", participantID).
		Order("answered_at ASC, id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}

	leaderboard, err := s.Leaderboard(participant.QuizID)
	if err != nil {
		return nil, err
	}

	return &ParticipantState{
		Participant: participant,
		Quiz:        quiz,
		Answers:     answers,
		Leaderboard: leaderboard,
	}, nil
}
