package model

import (
	"time"
)

// swagger:model Answer
type Answer struct {
	TestID                    uint         `gorm:"primaryKey;autoIncrement:false" json:"-"`
	TestTakerID               uint         `gorm:"primaryKey;autoIncrement:false" json:"-"`
	QuestionDiscriminator     uint         `gorm:"primaryKey;autoIncrement:false" json:"questionDiscriminator"`
	Type                      QuestionType `gorm:"column:answer_type;size:32;not null" json:"type"`
	ChosenOptionDiscriminator *uint        `json:"chosenOptionDiscriminator,omitempty"`
	AnswerText                *string      `gorm:"type:text" json:"answerText,omitempty"`
	AttachedFileURL           *string      `gorm:"type:text" json:"attachedFileUrl,omitempty"`
	MarksObtained             *int         `json:"marksObtained"`
	IsBookmarked              bool         `gorm:"not null;default:false" json:"isBookmarked"`
	UpdatedAt                 time.Time    `json:"updatedAt"`
}

func (Answer) TableName() string {
	return "answers"
}

// AnswerVariant mirrors QuestionVariant; an answer's variant must match its question's.
type AnswerVariant interface {
	Type() QuestionType
	applyTo(a *Answer)
}

// MCQAnswer with a nil choice is an unanswered multiple choice question.
type MCQAnswer struct {
	ChosenOptionDiscriminator *uint
}

type TextFieldAnswer struct {
	AnswerText string
}

type AttachmentAnswer struct {
	AttachedFileURL *string
}

func (MCQAnswer) Type() QuestionType        { return MultipleChoiceType }
func (TextFieldAnswer) Type() QuestionType  { return TextFieldType }
func (AttachmentAnswer) Type() QuestionType { return AttachmentType }

func (v MCQAnswer) applyTo(a *Answer) {
	a.ChosenOptionDiscriminator = v.ChosenOptionDiscriminator
}

func (v TextFieldAnswer) applyTo(a *Answer) {
	text := v.AnswerText
	a.AnswerText = &text
}

func (v AttachmentAnswer) applyTo(a *Answer) {
	a.AttachedFileURL = v.AttachedFileURL
}

// NewBlankAnswer is the unanswered, ungraded answer to question q of one
// attempt. Every question of an attempt carries one.
func NewBlankAnswer(q *Question, testTakerID uint) Answer {
	a := Answer{TestID: q.TestID, TestTakerID: testTakerID, QuestionDiscriminator: q.Discriminator}
	switch q.Type {
	case TextFieldType:
		a.SetVariant(TextFieldAnswer{})
	case AttachmentType:
		a.SetVariant(AttachmentAnswer{})
	default:
		a.SetVariant(MCQAnswer{})
	}
	return a
}

// SetVariant clears the columns of every other variant.
func (a *Answer) SetVariant(v AnswerVariant) {
	a.Type = v.Type()
	a.ChosenOptionDiscriminator = nil
	a.AnswerText = nil
	a.AttachedFileURL = nil
	v.applyTo(a)
}

func (a *Answer) Variant() AnswerVariant {
	switch a.Type {
	case MultipleChoiceType:
		return MCQAnswer{ChosenOptionDiscriminator: a.ChosenOptionDiscriminator}
	case TextFieldType:
		v := TextFieldAnswer{}
		if a.AnswerText != nil {
			v.AnswerText = *a.AnswerText
		}
		return v
	case AttachmentType:
		return AttachmentAnswer{AttachedFileURL: a.AttachedFileURL}
	}
	return nil
}
