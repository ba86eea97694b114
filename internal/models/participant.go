package models

import "time"

// Participant is one player in one quiz. UserID is nil for anonymous players;
// for authenticated users at most one participant exists per (user, quiz).
type Participant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QuizID      uint      `gorm:"not null;index" json:"quizId"`
	UserID      *uint     `gorm:"index" json:"userId,omitempty"`
	DisplayName string    `gorm:"size:100;not null" json:"displayName"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	JoinedAt    time.Time `json:"joinedAt"`
}
