package models

import "time"

// RequestLog records handled requests for operators. Paths are stored without
// the query string so management/attendance codes never end up in the log.
type RequestLog struct {
	ID         uint   `gorm:"primaryKey"`
	Method     string `gorm:"size:16"`
	Path       string `gorm:"size:255"`
	Status     int    `gorm:"index"`
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	DurationMS int64
	CreatedAt  time.Time
}
