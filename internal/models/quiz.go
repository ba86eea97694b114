package models

import "time"

type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatorID   uint       `gorm:"not null;index" json:"creatorId"`
	Creator     User       `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	IsPublic    bool       `gorm:"not null" json:"isPublic"`
	Code        string     `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
