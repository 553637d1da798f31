package model

import (
	"time"
)

// GazeData is an append-only gaze estimate for one attempt.
type GazeData struct {
	TestID        uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	TestTakerID   uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Discriminator uint64    `gorm:"primaryKey;autoIncrement" json:"discriminator"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`
	Point         `gorm:"embedded"`
}

func (GazeData) TableName() string {
	return "gaze_data"
}
