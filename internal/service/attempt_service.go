package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"
	"proctor_backend/pkg/logger"

	"go.uber.org/zap"
)

// ObjectStore is the part of StorageService attempts need.
type ObjectStore interface {
	Store(ctx context.Context, prefix string, reader io.Reader, size int64, contentType string) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

// Upload is a file received from a client, already type-checked.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// AttemptService covers the test taker's side of an attempt and the
// invigilator's supervision of it.
type AttemptService struct {
	Tests    repository.TestStore
	Attempts repository.AttemptStore
	Users    repository.UserStore
	Storage  ObjectStore

	now func() time.Time
}

func NewAttemptService(tests repository.TestStore, attempts repository.AttemptStore, users repository.UserStore, storage ObjectStore) *AttemptService {
	return &AttemptService{
		Tests:    tests,
		Attempts: attempts,
		Users:    users,
		Storage:  storage,
		now:      time.Now,
	}
}

// StartAttemptReq arrives as multipart form fields next to the image.
type StartAttemptReq struct {
	InvigilatorID  *uint
	ScreenPosition model.Rectangle
}

type MCQAnswerReq struct {
	ChosenOptionDiscriminator *uint `json:"chosenOptionDiscriminator"`
}

type TextFieldAnswerReq struct {
	AnswerText string `json:"answerText"`
}

// swagger:model AnswerReq
type AnswerReq struct {
	MultipleChoiceAnswer *MCQAnswerReq       `json:"multipleChoiceAnswer"`
	TextFieldAnswer      *TextFieldAnswerReq `json:"textFieldAnswer"`
	// the file itself is uploaded separately
	AttachmentAnswer *EmptyVariant `json:"attachmentAnswer"`
	IsBookmarked     bool          `json:"isBookmarked"`
}

// swagger:model GazePointReq
type GazePointReq struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
}

// swagger:model GazeReq
type GazeReq struct {
	Points []GazePointReq `json:"points" binding:"required,min=1,dive"`
}

// swagger:model CheatingReq
type CheatingReq struct {
	CaughtCheating *bool `json:"caughtCheating" binding:"required"`
}

// PaperView returns a test without its answer key. Questions stay hidden
// until the test starts.
func (s *AttemptService) PaperView(ctx context.Context, testID uint) (*TestView, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	v := newTestView(test, false, !s.now().Before(test.StartTime))
	return &v, nil
}

// StartAttempt opens the taker's single attempt at an open test and creates
// an unanswered answer for every question, so the attempt counts as graded
// only once each question has been marked.
func (s *AttemptService) StartAttempt(ctx context.Context, takerID, testID uint, req StartAttemptReq, image Upload) (*AttemptView, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !test.IsOpen(now) {
		return nil, util.ErrTestNotOpen
	}
	if err := req.ScreenPosition.Validate(); err != nil {
		return nil, util.ErrInvalidRectangle
	}
	if req.InvigilatorID != nil {
		roles, err := s.Users.Roles(ctx, *req.InvigilatorID)
		if err != nil {
			return nil, err
		}
		if !roles.Invigilator {
			return nil, util.ErrNotInvigilator
		}
	}
	switch _, err := s.Attempts.Find(ctx, testID, takerID); {
	case err == nil:
		return nil, util.ErrAttemptExists
	case !errors.Is(err, util.ErrAttemptNotFound):
		return nil, err
	}

	url, discard, err := s.store(ctx, fmt.Sprintf("environments/%d/%d", testID, takerID), image)
	if err != nil {
		return nil, err
	}

	attempt := &model.TestAttempt{
		TestID:              testID,
		TestTakerID:         takerID,
		InvigilatorID:       req.InvigilatorID,
		EnvironmentImageURL: url,
		ScreenPosition:      req.ScreenPosition,
		StartTime:           &now,
		Answers:             make([]model.Answer, len(test.Questions)),
	}
	for i := range test.Questions {
		attempt.Answers[i] = model.NewBlankAnswer(&test.Questions[i], takerID)
	}

	if err := s.Attempts.Create(ctx, attempt); err != nil {
		discard()
		return nil, err
	}

	logger.Log.Info("Attempt started", zap.Uint("test_id", testID), zap.Uint("test_taker_id", takerID))
	v := newAttemptView(attempt, test.MaxMarks())
	return &v, nil
}

// store uploads u and removes it again if the request's transaction rolls
// back. Without a request transaction the caller runs discard itself when
// its own write fails.
func (s *AttemptService) store(ctx context.Context, prefix string, u Upload) (url string, discard func(), err error) {
	key, url, err := s.Storage.Store(ctx, prefix, u.Reader, u.Size, u.ContentType)
	if err != nil {
		return "", nil, err
	}
	remove := func() {
		if err := s.Storage.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.Log.Warn("Failed to remove orphaned object", zap.String("key", key), zap.Error(err))
		}
	}
	if database.OnRollback(ctx, remove) {
		return url, func() {}, nil
	}
	return url, remove, nil
}

func (s *AttemptService) GetAttempt(ctx context.Context, takerID, testID uint) (*AttemptView, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.Attempts.Find(ctx, testID, takerID)
	if err != nil {
		return nil, err
	}
	v := newAttemptView(attempt, test.MaxMarks())
	return &v, nil
}

// writableAttempt loads the test and an unfinished attempt inside its window.
func (s *AttemptService) writableAttempt(ctx context.Context, takerID, testID uint) (*model.Test, *model.TestAttempt, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, nil, err
	}
	attempt, err := s.Attempts.Find(ctx, testID, takerID)
	if err != nil {
		return nil, nil, err
	}
	if attempt.Finished() {
		return nil, nil, util.ErrAttemptClosed
	}
	if !test.IsOpen(s.now()) {
		return nil, nil, util.ErrTestNotOpen
	}
	return test, attempt, nil
}

func (r *AnswerReq) variant(existing *model.Answer) (model.AnswerVariant, error) {
	set := 0
	for _, present := range []bool{r.MultipleChoiceAnswer != nil, r.TextFieldAnswer != nil, r.AttachmentAnswer != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, util.ErrInvalidAnswer
	}
	switch {
	case r.MultipleChoiceAnswer != nil:
		return model.MCQAnswer{ChosenOptionDiscriminator: r.MultipleChoiceAnswer.ChosenOptionDiscriminator}, nil
	case r.TextFieldAnswer != nil:
		return model.TextFieldAnswer{AnswerText: r.TextFieldAnswer.AnswerText}, nil
	}
	// keep a previously uploaded file
	var url *string
	if existing != nil && existing.Type == model.AttachmentType {
		url = existing.AttachedFileURL
	}
	return model.AttachmentAnswer{AttachedFileURL: url}, nil
}

// SaveAnswer records the taker's answer to one question. The answer's
// variant must be the question's, and a chosen option must be one of the
// question's options.
func (s *AttemptService) SaveAnswer(ctx context.Context, takerID, testID, questionDisc uint, req AnswerReq) (*AnswerView, error) {
	test, attempt, err := s.writableAttempt(ctx, takerID, testID)
	if err != nil {
		return nil, err
	}
	q, ok := test.Question(questionDisc)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	existing, _ := attempt.Answer(questionDisc)

	variant, err := req.variant(existing)
	if err != nil {
		return nil, err
	}
	if variant.Type() != q.Type {
		return nil, util.ErrVariantMismatch
	}
	if mcq, ok := variant.(model.MCQAnswer); ok && mcq.ChosenOptionDiscriminator != nil {
		if _, ok := q.Option(*mcq.ChosenOptionDiscriminator); !ok {
			return nil, util.ErrInvalidOption
		}
	}

	answer := &model.Answer{
		TestID:                testID,
		TestTakerID:           takerID,
		QuestionDiscriminator: questionDisc,
		IsBookmarked:          req.IsBookmarked,
	}
	answer.SetVariant(variant)
	if err := s.Attempts.SaveAnswer(ctx, answer); err != nil {
		return nil, err
	}
	v := newAnswerView(answer)
	return &v, nil
}

// UploadAttachment stores file as the answer to an attachment question,
// keeping the answer's bookmark.
func (s *AttemptService) UploadAttachment(ctx context.Context, takerID, testID, questionDisc uint, file Upload) (*AnswerView, error) {
	test, attempt, err := s.writableAttempt(ctx, takerID, testID)
	if err != nil {
		return nil, err
	}
	q, ok := test.Question(questionDisc)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	if q.Type != model.AttachmentType {
		return nil, util.ErrVariantMismatch
	}

	url, discard, err := s.store(ctx, fmt.Sprintf("attachments/%d/%d/%d", testID, takerID, questionDisc), file)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		TestID:                testID,
		TestTakerID:           takerID,
		QuestionDiscriminator: questionDisc,
	}
	if existing, ok := attempt.Answer(questionDisc); ok {
		answer.IsBookmarked = existing.IsBookmarked
	}
	answer.SetVariant(model.AttachmentAnswer{AttachedFileURL: &url})
	if err := s.Attempts.SaveAnswer(ctx, answer); err != nil {
		discard()
		return nil, err
	}
	v := newAnswerView(answer)
	return &v, nil
}

// RecordGaze appends gaze estimates to an unfinished attempt.
func (s *AttemptService) RecordGaze(ctx context.Context, takerID, testID uint, req GazeReq) (int, error) {
	if _, _, err := s.writableAttempt(ctx, takerID, testID); err != nil {
		return 0, err
	}
	points := make([]model.GazeData, len(req.Points))
	for i, p := range req.Points {
		points[i] = model.GazeData{
			TestID:      testID,
			TestTakerID: takerID,
			Timestamp:   p.Timestamp,
			Point:       model.Point{X: p.X, Y: p.Y},
		}
	}
	if err := s.Attempts.AppendGaze(ctx, points); err != nil {
		return 0, err
	}
	return len(points), nil
}

// FinishAttempt closes the attempt; it may be finished after the window ends.
func (s *AttemptService) FinishAttempt(ctx context.Context, takerID, testID uint) error {
	attempt, err := s.Attempts.Find(ctx, testID, takerID)
	if err != nil {
		return err
	}
	if attempt.Finished() {
		return util.ErrAttemptClosed
	}
	if err := s.Attempts.Finish(ctx, testID, takerID, s.now()); err != nil {
		return err
	}
	logger.Log.Info("Attempt finished", zap.Uint("test_id", testID), zap.Uint("test_taker_id", takerID))
	return nil
}

// SupervisedAttempts lists the attempts naming invigilatorID.
func (s *AttemptService) SupervisedAttempts(ctx context.Context, invigilatorID uint) ([]AttemptView, error) {
	attempts, err := s.Attempts.ListByInvigilator(ctx, invigilatorID)
	if err != nil {
		return nil, err
	}
	maxMarks := make(map[uint]int)
	views := make([]AttemptView, len(attempts))
	for i := range attempts {
		testID := attempts[i].TestID
		if _, ok := maxMarks[testID]; !ok {
			test, err := s.Tests.FindByID(ctx, testID)
			if err != nil {
				return nil, err
			}
			maxMarks[testID] = test.MaxMarks()
		}
		views[i] = newAttemptView(&attempts[i], maxMarks[testID])
	}
	return views, nil
}

// supervised hides attempts of other invigilators behind ErrAttemptNotFound.
func (s *AttemptService) supervised(ctx context.Context, invigilatorID, testID, takerID uint) error {
	attempt, err := s.Attempts.Find(ctx, testID, takerID)
	if err != nil {
		return err
	}
	if attempt.InvigilatorID == nil || *attempt.InvigilatorID != invigilatorID {
		return util.ErrAttemptNotFound
	}
	return nil
}

func (s *AttemptService) GazeLog(ctx context.Context, invigilatorID, testID, takerID uint) ([]model.GazeData, error) {
	if err := s.supervised(ctx, invigilatorID, testID, takerID); err != nil {
		return nil, err
	}
	return s.Attempts.GazeLog(ctx, testID, takerID)
}

func (s *AttemptService) FlagCheating(ctx context.Context, invigilatorID, testID, takerID uint, caught bool) error {
	if err := s.supervised(ctx, invigilatorID, testID, takerID); err != nil {
		return err
	}
	if err := s.Attempts.SetCaughtCheating(ctx, testID, takerID, caught); err != nil {
		return err
	}
	logger.Log.Info("Cheating flag set",
		zap.Uint("test_id", testID),
		zap.Uint("test_taker_id", takerID),
		zap.Bool("caught", caught),
	)
	return nil
}
