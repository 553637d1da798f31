package util

import (
	"errors"
	"net/http"
)

var (
	ErrUsernameTaken     = errors.New("Username is already taken up.")
	ErrEmailRegistered   = errors.New("E-mail address is already registered.")
	ErrInvalidCredential = errors.New("Invalid credential")
	ErrUnauthenticated   = errors.New("Unauthorised")
	ErrStaleSession      = errors.New("session refers to a deleted user")
	ErrForbidden         = errors.New("Forbidden")
	ErrUserNotFound      = errors.New("user not found")

	ErrAlreadyTestSetter  = errors.New("User is already a test setter.")
	ErrAlreadyTestTaker   = errors.New("User is already a test taker.")
	ErrAlreadyInvigilator = errors.New("User is already an invigilator.")

	ErrTestNotFound         = errors.New("test not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidCorrectOption = errors.New("correct option does not match any option of the question")
	ErrInvalidQuestion      = errors.New("question must carry exactly one of multipleChoiceQuestion, textFieldQuestion, attachmentQuestion")
	ErrInvalidOrder         = errors.New("question order must list every question of the test exactly once")
	ErrInvalidTestWindow    = errors.New("test must end after it starts")

	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAttemptExists    = errors.New("attempt already started for this test")
	ErrAttemptClosed    = errors.New("attempt is finished")
	ErrTestNotOpen      = errors.New("test is not open")
	ErrNotInvigilator   = errors.New("invigilator not found")
	ErrInvalidRectangle = errors.New("screen position coordinates must be finite")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrVariantMismatch  = errors.New("answer type does not match the question type")
	ErrInvalidOption    = errors.New("chosen option does not belong to the question")
	ErrMarksOutOfRange  = errors.New("marks must be between zero and the question's max marks")
	ErrInvalidAnswer    = errors.New("answer must carry exactly one of multipleChoiceAnswer, textFieldAnswer, attachmentAnswer")
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is consulted in order; the first match wins.
var errorStatuses = []errorStatus{
	{ErrUsernameTaken, http.StatusUnprocessableEntity},
	{ErrEmailRegistered, http.StatusUnprocessableEntity},
	{ErrInvalidCredential, http.StatusUnauthorized},
	{ErrUnauthenticated, http.StatusUnauthorized},
	{ErrStaleSession, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrAlreadyTestSetter, http.StatusBadRequest},
	{ErrAlreadyTestTaker, http.StatusBadRequest},
	{ErrAlreadyInvigilator, http.StatusBadRequest},
	{ErrInvalidCorrectOption, http.StatusBadRequest},
	{ErrInvalidQuestion, http.StatusBadRequest},
	{ErrInvalidOrder, http.StatusBadRequest},
	{ErrInvalidTestWindow, http.StatusBadRequest},
	{ErrTestNotOpen, http.StatusBadRequest},
	{ErrNotInvigilator, http.StatusBadRequest},
	{ErrInvalidRectangle, http.StatusBadRequest},
	{ErrVariantMismatch, http.StatusBadRequest},
	{ErrInvalidOption, http.StatusBadRequest},
	{ErrMarksOutOfRange, http.StatusBadRequest},
	{ErrInvalidAnswer, http.StatusBadRequest},
	{ErrInvalidFileType, http.StatusBadRequest},
	{ErrFileMissing, http.StatusBadRequest},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrTestNotFound, http.StatusNotFound},
	{ErrQuestionNotFound, http.StatusNotFound},
	{ErrAttemptNotFound, http.StatusNotFound},
	{ErrAnswerNotFound, http.StatusNotFound},
	{ErrAttemptExists, http.StatusConflict},
	{ErrAttemptClosed, http.StatusConflict},
}

// StatusOf returns the HTTP status and client message for err. Unknown errors
// map to 500 with a generic message.
func StatusOf(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			msg := es.err.Error()
			// a stale session looks exactly like no session to the client
			if es.err == ErrStaleSession {
				msg = ErrUnauthenticated.Error()
			}
			return es.status, msg
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}
