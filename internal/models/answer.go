package models

import "time"

// Answer records a single submission. IsCorrect is computed once at write
// time and never re-derived.
type Answer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ParticipantID    uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"participantId"`
	QuestionID       uint      `gorm:"not null;uniqueIndex:idx_answer_unique" json:"questionId"`
	SelectedOptionID uint      `gorm:"not null" json:"selectedOptionId"`
	IsCorrect        bool      `gorm:"not null" json:"isCorrect"`
	AnsweredAt       time.Time `json:"answeredAt"`
}
