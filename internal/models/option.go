package models

type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
}
