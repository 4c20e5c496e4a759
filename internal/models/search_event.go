package models

import "time"

// SearchEvent is one row of the append-only search history log. A row is
// written for every successful lookup and never updated or deleted.
type SearchEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	City      string    `json:"city" gorm:"not null"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

func (SearchEvent) TableName() string {
	return "search_history"
}
