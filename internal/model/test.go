package model

import (
	"time"
)

// swagger:model Test
type Test struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Guidelines  string    `gorm:"type:text;not null" json:"guidelines"`
	CreatorID   uint      `gorm:"not null;index" json:"creatorId"`

	// ordered by Number, loaded by the repository
	Questions []Question `gorm:"-" json:"questions"`
}

func (Test) TableName() string {
	return "tests"
}

// MaxMarks is recomputed on every call.
func (t *Test) MaxMarks() int {
	total := 0
	for _, q := range t.Questions {
		total += q.MaxMarks
	}
	return total
}

// IsOpen reports whether attempts may be started or answered at now.
func (t *Test) IsOpen(now time.Time) bool {
	return !now.Before(t.StartTime) && now.Before(t.EndTime)
}

func (t *Test) Question(discriminator uint) (*Question, bool) {
	for i := range t.Questions {
		if t.Questions[i].Discriminator == discriminator {
			return &t.Questions[i], true
		}
	}
	return nil, false
}

// NextQuestionDiscriminator returns a discriminator not used by any loaded question.
func (t *Test) NextQuestionDiscriminator() uint {
	var max uint
	for _, q := range t.Questions {
		if q.Discriminator > max {
			max = q.Discriminator
		}
	}
	return max + 1
}
