package model

import (
	"time"
)

// Rows are hard-deleted so that ON DELETE CASCADE reaches every dependent table.
//
// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
