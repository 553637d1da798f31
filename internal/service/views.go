package service

import (
	"time"

	"proctor_backend/internal/model"
)

// Views are the JSON shapes returned to clients. Question and answer
// variants render as exactly one non-null member.

// swagger:model OptionView
type OptionView struct {
	Discriminator uint   `json:"discriminator"`
	OptionText    string `json:"optionText"`
}

type MultipleChoiceView struct {
	Options []OptionView `json:"options"`
	// authoring view only
	CorrectOptionDiscriminator *uint `json:"correctOptionDiscriminator,omitempty"`
}

type EmptyVariant struct{}

// swagger:model QuestionView
type QuestionView struct {
	Discriminator          uint                `json:"discriminator"`
	Number                 int                 `json:"number"`
	QuestionText           string              `json:"questionText"`
	MaxMarks               int                 `json:"maxMarks"`
	Type                   model.QuestionType  `json:"type"`
	MultipleChoiceQuestion *MultipleChoiceView `json:"multipleChoiceQuestion,omitempty"`
	TextFieldQuestion      *EmptyVariant       `json:"textFieldQuestion,omitempty"`
	AttachmentQuestion     *EmptyVariant       `json:"attachmentQuestion,omitempty"`
}

// swagger:model TestView
type TestView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     time.Time      `json:"endTime"`
	Guidelines  string         `json:"guidelines"`
	MaxMarks    int            `json:"maxMarks"`
	Questions   []QuestionView `json:"questions"`
}

func newQuestionView(q *model.Question, withKey bool) QuestionView {
	v := QuestionView{
		Discriminator: q.Discriminator,
		Number:        q.Number,
		QuestionText:  q.QuestionText,
		MaxMarks:      q.MaxMarks,
		Type:          q.Type,
	}
	switch variant := q.Variant().(type) {
	case model.MultipleChoice:
		mc := &MultipleChoiceView{Options: make([]OptionView, len(variant.Options))}
		for i, o := range variant.Options {
			mc.Options[i] = OptionView{Discriminator: o.Discriminator, OptionText: o.OptionText}
		}
		if withKey {
			mc.CorrectOptionDiscriminator = variant.CorrectOptionDiscriminator
		}
		v.MultipleChoiceQuestion = mc
	case model.TextField:
		v.TextFieldQuestion = &EmptyVariant{}
	case model.Attachment:
		v.AttachmentQuestion = &EmptyVariant{}
	}
	return v
}

// newTestView renders t; withKey includes correct options, withQuestions
// includes the paper at all.
func newTestView(t *model.Test, withKey, withQuestions bool) TestView {
	v := TestView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Guidelines:  t.Guidelines,
		MaxMarks:    t.MaxMarks(),
		Questions:   []QuestionView{},
	}
	if withQuestions {
		for i := range t.Questions {
			v.Questions = append(v.Questions, newQuestionView(&t.Questions[i], withKey))
		}
	}
	return v
}

type MCQAnswerView struct {
	ChosenOptionDiscriminator *uint `json:"chosenOptionDiscriminator"`
}

type TextFieldAnswerView struct {
	AnswerText string `json:"answerText"`
}

type AttachmentAnswerView struct {
	AttachedFileURL *string `json:"attachedFileUrl"`
}

// swagger:model AnswerView
type AnswerView struct {
	QuestionDiscriminator uint                  `json:"questionDiscriminator"`
	Type                  model.QuestionType    `json:"type"`
	MultipleChoiceAnswer  *MCQAnswerView        `json:"multipleChoiceAnswer,omitempty"`
	TextFieldAnswer       *TextFieldAnswerView  `json:"textFieldAnswer,omitempty"`
	AttachmentAnswer      *AttachmentAnswerView `json:"attachmentAnswer,omitempty"`
	MarksObtained         *int                  `json:"marksObtained"`
	IsBookmarked          bool                  `json:"isBookmarked"`
}

func newAnswerView(a *model.Answer) AnswerView {
	v := AnswerView{
		QuestionDiscriminator: a.QuestionDiscriminator,
		Type:                  a.Type,
		MarksObtained:         a.MarksObtained,
		IsBookmarked:          a.IsBookmarked,
	}
	switch variant := a.Variant().(type) {
	case model.MCQAnswer:
		v.MultipleChoiceAnswer = &MCQAnswerView{ChosenOptionDiscriminator: variant.ChosenOptionDiscriminator}
	case model.TextFieldAnswer:
		v.TextFieldAnswer = &TextFieldAnswerView{AnswerText: variant.AnswerText}
	case model.AttachmentAnswer:
		v.AttachmentAnswer = &AttachmentAnswerView{AttachedFileURL: variant.AttachedFileURL}
	}
	return v
}

// swagger:model AttemptView
type AttemptView struct {
	TestID              uint            `json:"testId"`
	TestTakerID         uint            `json:"testTakerId"`
	InvigilatorID       *uint           `json:"invigilatorId"`
	EnvironmentImageURL string          `json:"environmentImageUrl"`
	ScreenPosition      model.Rectangle `json:"screenPosition"`
	StartTime           *time.Time      `json:"startTime"`
	EndTime             *time.Time      `json:"endTime"`
	CaughtCheating      bool            `json:"caughtCheating"`
	// null until every answer is marked
	MarksObtained *int         `json:"marksObtained"`
	MaxMarks      int          `json:"maxMarks"`
	Answers       []AnswerView `json:"answers"`
}

func newAttemptView(a *model.TestAttempt, maxMarks int) AttemptView {
	v := AttemptView{
		TestID:              a.TestID,
		TestTakerID:         a.TestTakerID,
		InvigilatorID:       a.InvigilatorID,
		EnvironmentImageURL: a.EnvironmentImageURL,
		ScreenPosition:      a.ScreenPosition,
		StartTime:           a.StartTime,
		EndTime:             a.EndTime,
		CaughtCheating:      a.CaughtCheating,
		MarksObtained:       a.MarksObtained(),
		MaxMarks:            maxMarks,
		Answers:             make([]AnswerView, len(a.Answers)),
	}
	for i := range a.Answers {
		v.Answers[i] = newAnswerView(&a.Answers[i])
	}
	return v
}
