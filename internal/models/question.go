package models

type Question struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	QuizID          uint     `gorm:"not null;index" json:"quizId"`
	Text            string   `gorm:"type:text;not null" json:"text"`
	Options         []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CorrectOptionID uint     `gorm:"not null" json:"correctOptionId"`
	Explanation     string   `gorm:"type:text" json:"explanation,omitempty"`
}
