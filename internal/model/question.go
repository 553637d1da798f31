package model

type QuestionType string

const (
	MultipleChoiceType QuestionType = "multiple_choice"
	TextFieldType      QuestionType = "text_field"
	AttachmentType     QuestionType = "attachment"
)

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoiceType, TextFieldType, AttachmentType:
		return true
	}
	return false
}

// Question is identified by (TestID, Discriminator). Number is its display rank
// and may change; the discriminator never does.
//
// swagger:model Question
type Question struct {
	TestID                     uint         `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Discriminator              uint         `gorm:"primaryKey;autoIncrement:false" json:"discriminator"`
	Number                     int          `gorm:"not null" json:"number"`
	QuestionText               string       `gorm:"type:text;not null" json:"questionText"`
	MaxMarks                   int          `gorm:"not null" json:"maxMarks"`
	Type                       QuestionType `gorm:"column:question_type;size:32;not null" json:"type"`
	CorrectOptionDiscriminator *uint        `json:"-"`

	// ordered by Number, multiple choice only
	Options []Option `gorm:"-" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	TestID                uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	QuestionDiscriminator uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Discriminator         uint   `gorm:"primaryKey;autoIncrement:false" json:"discriminator"`
	Number                int    `gorm:"not null" json:"-"`
	OptionText            string `gorm:"type:text;not null" json:"optionText"`
}

func (Option) TableName() string {
	return "options"
}

// QuestionVariant is the closed set of question kinds; exactly one is attached
// to every question.
type QuestionVariant interface {
	Type() QuestionType
	applyTo(q *Question)
}

type MultipleChoice struct {
	Options                    []Option
	CorrectOptionDiscriminator *uint
}

type TextField struct{}

type Attachment struct{}

func (MultipleChoice) Type() QuestionType { return MultipleChoiceType }
func (TextField) Type() QuestionType      { return TextFieldType }
func (Attachment) Type() QuestionType     { return AttachmentType }

func (v MultipleChoice) applyTo(q *Question) {
	q.Options = make([]Option, len(v.Options))
	for i, o := range v.Options {
		o.TestID = q.TestID
		o.QuestionDiscriminator = q.Discriminator
		o.Number = i
		q.Options[i] = o
	}
	q.CorrectOptionDiscriminator = v.CorrectOptionDiscriminator
}

func (TextField) applyTo(q *Question) {
	q.Options = nil
	q.CorrectOptionDiscriminator = nil
}

func (Attachment) applyTo(q *Question) {
	q.Options = nil
	q.CorrectOptionDiscriminator = nil
}

// SetVariant replaces the question's kind and every column that belongs to it.
func (q *Question) SetVariant(v QuestionVariant) {
	q.Type = v.Type()
	v.applyTo(q)
}

func (q *Question) Variant() QuestionVariant {
	switch q.Type {
	case MultipleChoiceType:
		return MultipleChoice{Options: q.Options, CorrectOptionDiscriminator: q.CorrectOptionDiscriminator}
	case TextFieldType:
		return TextField{}
	case AttachmentType:
		return Attachment{}
	}
	return nil
}

func (q *Question) Option(discriminator uint) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].Discriminator == discriminator {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// SetKey assigns the question's identity and propagates it to its options.
func (q *Question) SetKey(testID, discriminator uint) {
	q.TestID = testID
	q.Discriminator = discriminator
	for i := range q.Options {
		q.Options[i].TestID = testID
		q.Options[i].QuestionDiscriminator = discriminator
	}
}

// NewQuestion builds an unsaved question; keys and rank are assigned by the caller.
func NewQuestion(text string, maxMarks int, v QuestionVariant) Question {
	q := Question{QuestionText: text, MaxMarks: maxMarks}
	q.SetVariant(v)
	return q
}
