package model

import (
	"errors"
	"math"
	"time"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is the screen's position as seen by the capture camera, used to
// extrapolate gaze estimates onto the screen.
type Rectangle struct {
	TopLeft     Point `gorm:"embedded;embeddedPrefix:top_left_" json:"topLeft"`
	TopRight    Point `gorm:"embedded;embeddedPrefix:top_right_" json:"topRight"`
	BottomLeft  Point `gorm:"embedded;embeddedPrefix:bottom_left_" json:"bottomLeft"`
	BottomRight Point `gorm:"embedded;embeddedPrefix:bottom_right_" json:"bottomRight"`
}

var errNonFiniteCoordinate = errors.New("screen position coordinates must be finite")

func (r Rectangle) Validate() error {
	for _, p := range []Point{r.TopLeft, r.TopRight, r.BottomLeft, r.BottomRight} {
		for _, v := range []float64{p.X, p.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errNonFiniteCoordinate
			}
		}
	}
	return nil
}

// TestAttempt is keyed by (TestID, TestTakerID): one attempt per taker per test.
//
// swagger:model TestAttempt
type TestAttempt struct {
	TestID              uint       `gorm:"primaryKey;autoIncrement:false" json:"testId"`
	TestTakerID         uint       `gorm:"primaryKey;autoIncrement:false" json:"testTakerId"`
	InvigilatorID       *uint      `gorm:"index" json:"invigilatorId"`
	EnvironmentImageURL string     `gorm:"type:text;not null" json:"environmentImageUrl"`
	ScreenPosition      Rectangle  `gorm:"embedded" json:"screenPosition"`
	StartTime           *time.Time `json:"startTime"`
	EndTime             *time.Time `json:"endTime"`
	CaughtCheating      bool       `gorm:"not null;default:false" json:"caughtCheating"`
	CreatedAt           time.Time  `json:"-"`

	Answers []Answer `gorm:"-" json:"answers"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// MarksObtained is defined only once every answer has been marked; nil means
// grading is still in progress.
func (a *TestAttempt) MarksObtained() *int {
	total := 0
	for _, ans := range a.Answers {
		if ans.MarksObtained == nil {
			return nil
		}
		total += *ans.MarksObtained
	}
	return &total
}

func (a *TestAttempt) Finished() bool {
	return a.EndTime != nil
}

func (a *TestAttempt) Answer(questionDiscriminator uint) (*Answer, bool) {
	for i := range a.Answers {
		if a.Answers[i].QuestionDiscriminator == questionDiscriminator {
			return &a.Answers[i], true
		}
	}
	return nil, false
}
