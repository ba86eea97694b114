package models

import "time"

// Stats is a single-row aggregate updated only when a reply is successfully
// sent. TodayResponses has no rollover; it resets with the process.
type Stats struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TotalResponses  int       `gorm:"not null;default:0" json:"totalResponses"`
	TodayResponses  int       `gorm:"not null;default:0" json:"todayResponses"`
	PositiveRating  int       `gorm:"not null;default:0" json:"positiveRating"`
	NegativeRating  int       `gorm:"not null;default:0" json:"negativeRating"`
	AvgResponseTime int       `gorm:"not null;default:0" json:"avgResponseTime"`
	WittyCount      int       `gorm:"not null;default:0" json:"wittyCount"`
	RoastCount      int       `gorm:"not null;default:0" json:"roastCount"`
	DebateCount     int       `gorm:"not null;default:0" json:"debateCount"`
	PeaceCount      int       `gorm:"not null;default:0" json:"peaceCount"`
	Date            time.Time `json:"date"`
}
