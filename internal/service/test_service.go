package service

import (
	"context"
	"time"

	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/logger"

	"go.uber.org/zap"
)

// TestService covers authoring and grading; every method is scoped to the
// calling test setter's own tests.
type TestService struct {
	Tests    repository.TestStore
	Attempts repository.AttemptStore
}

func NewTestService(tests repository.TestStore, attempts repository.AttemptStore) *TestService {
	return &TestService{Tests: tests, Attempts: attempts}
}

// OptionReq.Discriminator only exists to let the client designate the
// correct option; stored options are numbered 1..M in request order.
//
// swagger:model OptionReq
type OptionReq struct {
	Discriminator uint   `json:"discriminator"`
	OptionText    string `json:"optionText" binding:"required"`
}

// swagger:model MultipleChoiceReq
type MultipleChoiceReq struct {
	Options                    []OptionReq `json:"options" binding:"required,min=1,dive"`
	CorrectOptionDiscriminator *uint       `json:"correctOptionDiscriminator"`
}

// swagger:model QuestionReq
type QuestionReq struct {
	QuestionText           string             `json:"questionText" binding:"required"`
	MaxMarks               int                `json:"maxMarks" binding:"min=0"`
	MultipleChoiceQuestion *MultipleChoiceReq `json:"multipleChoiceQuestion"`
	TextFieldQuestion      *EmptyVariant      `json:"textFieldQuestion"`
	AttachmentQuestion     *EmptyVariant      `json:"attachmentQuestion"`
}

// swagger:model CreateTestReq
type CreateTestReq struct {
	Title       string        `json:"title" binding:"required,max=255"`
	Description string        `json:"description"`
	StartTime   time.Time     `json:"startTime" binding:"required"`
	EndTime     time.Time     `json:"endTime" binding:"required"`
	Guidelines  string        `json:"guidelines"`
	Questions   []QuestionReq `json:"questions" binding:"dive"`
}

// swagger:model ReorderReq
type ReorderReq struct {
	Discriminators []uint `json:"discriminators" binding:"required"`
}

// swagger:model MarksReq
type MarksReq struct {
	Marks *int `json:"marks" binding:"required"`
}

// toQuestion builds the one variant the request names.
func (r *QuestionReq) toQuestion() (model.Question, error) {
	set := 0
	for _, present := range []bool{r.MultipleChoiceQuestion != nil, r.TextFieldQuestion != nil, r.AttachmentQuestion != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return model.Question{}, util.ErrInvalidQuestion
	}

	switch {
	case r.TextFieldQuestion != nil:
		return model.NewQuestion(r.QuestionText, r.MaxMarks, model.TextField{}), nil
	case r.AttachmentQuestion != nil:
		return model.NewQuestion(r.QuestionText, r.MaxMarks, model.Attachment{}), nil
	}

	mc := r.MultipleChoiceQuestion
	options := make([]model.Option, len(mc.Options))
	var correct *uint
	for i, o := range mc.Options {
		disc := uint(i + 1)
		options[i] = model.Option{Discriminator: disc, OptionText: o.OptionText}
		if correct == nil && mc.CorrectOptionDiscriminator != nil && o.Discriminator == *mc.CorrectOptionDiscriminator {
			correct = &disc
		}
	}
	if mc.CorrectOptionDiscriminator != nil && correct == nil {
		return model.Question{}, util.ErrInvalidCorrectOption
	}
	return model.NewQuestion(r.QuestionText, r.MaxMarks, model.MultipleChoice{
		Options:                    options,
		CorrectOptionDiscriminator: correct,
	}), nil
}

func (s *TestService) CreateTest(ctx context.Context, setterID uint, req CreateTestReq) (*model.Test, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, util.ErrInvalidTestWindow
	}

	test := &model.Test{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Guidelines:  req.Guidelines,
		CreatorID:   setterID,
		Questions:   make([]model.Question, 0, len(req.Questions)),
	}
	for i := range req.Questions {
		q, err := req.Questions[i].toQuestion()
		if err != nil {
			return nil, err
		}
		test.Questions = append(test.Questions, q)
	}

	if err := s.Tests.Create(ctx, test); err != nil {
		return nil, err
	}
	logger.Log.Info("Test created",
		zap.Uint("test_id", test.ID),
		zap.Uint("creator_id", setterID),
		zap.Int("questions", len(test.Questions)),
	)
	return test, nil
}

// ListCreatedTests returns the authoring view, correct options included.
func (s *TestService) ListCreatedTests(ctx context.Context, setterID uint) ([]TestView, error) {
	tests, err := s.Tests.ListByCreator(ctx, setterID)
	if err != nil {
		return nil, err
	}
	views := make([]TestView, len(tests))
	for i := range tests {
		views[i] = newTestView(&tests[i], true, true)
	}
	return views, nil
}

// ownedTest hides tests of other setters behind ErrTestNotFound.
func (s *TestService) ownedTest(ctx context.Context, setterID, testID uint) (*model.Test, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.CreatorID != setterID {
		return nil, util.ErrTestNotFound
	}
	return test, nil
}

// AddQuestion inserts at position (negative appends) and returns the stored question.
func (s *TestService) AddQuestion(ctx context.Context, setterID, testID uint, req QuestionReq, position int) (*QuestionView, error) {
	if _, err := s.ownedTest(ctx, setterID, testID); err != nil {
		return nil, err
	}
	q, err := req.toQuestion()
	if err != nil {
		return nil, err
	}
	if err := s.Tests.InsertQuestion(ctx, testID, &q, position); err != nil {
		return nil, err
	}
	v := newQuestionView(&q, true)
	return &v, nil
}

// ReorderQuestions requires a permutation of the test's question discriminators.
func (s *TestService) ReorderQuestions(ctx context.Context, setterID, testID uint, order []uint) error {
	test, err := s.ownedTest(ctx, setterID, testID)
	if err != nil {
		return err
	}
	if len(order) != len(test.Questions) {
		return util.ErrInvalidOrder
	}
	seen := make(map[uint]bool, len(order))
	for _, disc := range order {
		if _, ok := test.Question(disc); !ok || seen[disc] {
			return util.ErrInvalidOrder
		}
		seen[disc] = true
	}
	return s.Tests.ReorderQuestions(ctx, testID, order)
}

func (s *TestService) DeleteTest(ctx context.Context, setterID, testID uint) error {
	if _, err := s.ownedTest(ctx, setterID, testID); err != nil {
		return err
	}
	if err := s.Tests.Delete(ctx, testID); err != nil {
		return err
	}
	logger.Log.Info("Test deleted", zap.Uint("test_id", testID), zap.Uint("creator_id", setterID))
	return nil
}

func (s *TestService) ListAttempts(ctx context.Context, setterID, testID uint) ([]AttemptView, error) {
	test, err := s.ownedTest(ctx, setterID, testID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.Attempts.ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	maxMarks := test.MaxMarks()
	views := make([]AttemptView, len(attempts))
	for i := range attempts {
		views[i] = newAttemptView(&attempts[i], maxMarks)
	}
	return views, nil
}

// GradeAnswer sets the marks of one answer, bounded by the question's max marks.
func (s *TestService) GradeAnswer(ctx context.Context, setterID, testID, testTakerID, questionDisc uint, marks int) error {
	test, err := s.ownedTest(ctx, setterID, testID)
	if err != nil {
		return err
	}
	q, ok := test.Question(questionDisc)
	if !ok {
		return util.ErrQuestionNotFound
	}
	if marks < 0 || marks > q.MaxMarks {
		return util.ErrMarksOutOfRange
	}
	return s.Attempts.SetMarks(ctx, testID, testTakerID, questionDisc, marks)
}
