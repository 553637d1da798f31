package repository

import (
	"context"
	"time"

	"proctor_backend/internal/model"
)

// Stores read the request transaction from ctx when one is bound (see
// database.Conn). Not-found conditions surface as the util sentinels.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	Roles(ctx context.Context, id uint) (model.Roles, error)
	AddRole(ctx context.Context, id uint, role model.UserRole) error
}

type TestStore interface {
	// Create persists the test, its questions and their options, assigning
	// question discriminators 1..N in slice order.
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]model.Test, error)
	Delete(ctx context.Context, id uint) error
	// InsertQuestion places q at rank position, shifting the questions at or
	// after it. A negative position appends.
	InsertQuestion(ctx context.Context, testID uint, q *model.Question, position int) error
	// ReorderQuestions ranks the questions in the order of discriminators.
	ReorderQuestions(ctx context.Context, testID uint, discriminators []uint) error
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.TestAttempt) error
	Find(ctx context.Context, testID, testTakerID uint) (*model.TestAttempt, error)
	ListByTest(ctx context.Context, testID uint) ([]model.TestAttempt, error)
	ListByInvigilator(ctx context.Context, invigilatorID uint) ([]model.TestAttempt, error)
	Finish(ctx context.Context, testID, testTakerID uint, at time.Time) error
	SetCaughtCheating(ctx context.Context, testID, testTakerID uint, caught bool) error
	// SaveAnswer upserts an answer. Changing an answer clears its marks.
	SaveAnswer(ctx context.Context, answer *model.Answer) error
	SetMarks(ctx context.Context, testID, testTakerID, questionDiscriminator uint, marks int) error
	AppendGaze(ctx context.Context, points []model.GazeData) error
	GazeLog(ctx context.Context, testID, testTakerID uint) ([]model.GazeData, error)
}

// SessionRegistry records live session ids so that logout revokes a credential
// even if the client keeps a copy.
type SessionRegistry interface {
	Register(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Lookup(ctx context.Context, sid string) (uint, bool, error)
	Revoke(ctx context.Context, sid string) error
}

var (
	_ UserStore       = (*UserRepository)(nil)
	_ TestStore       = (*TestRepository)(nil)
	_ AttemptStore    = (*AttemptRepository)(nil)
	_ SessionRegistry = (*RedisSessionRegistry)(nil)
)
