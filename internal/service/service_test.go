package service

import (
	"context"
	"testing"
	"time"

	"proctor_backend/internal/config"
	"proctor_backend/internal/model"
	"proctor_backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var windowStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	auth     *AuthService
	users    *UserService
	tests    *TestService
	attempts *AttemptService
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	sessionCfg := &config.SessionConfig{
		Secret:           "test-secret",
		TTL:              time.Hour,
		RememberDuration: 30 * 24 * time.Hour,
	}
	storage := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}

	f := &fixture{
		store:    store,
		auth:     NewAuthService(store.Users(), store.Sessions(), hasher, sessionCfg),
		users:    NewUserService(store.Users()),
		tests:    NewTestService(store.Tests(), store.Attempts()),
		attempts: NewAttemptService(store.Tests(), store.Attempts(), store.Users(), storage),
		now:      windowStart.Add(10 * time.Minute),
	}
	f.attempts.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) user(t *testing.T, name string, roles ...model.UserRole) *model.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.auth.CreateAccount(ctx, CreateAccountReq{
		Username: name,
		FullName: name,
		Email:    name + "@example.com",
		Password: "pw-" + name,
	})
	require.NoError(t, err)
	for _, role := range roles {
		require.NoError(t, f.users.AssumeRole(ctx, u.ID, role))
	}
	return u
}

func uintPtr(v uint) *uint { return &v }

func mcqReq(text string, marks int, options []string, correctClientDisc *uint) QuestionReq {
	mc := &MultipleChoiceReq{CorrectOptionDiscriminator: correctClientDisc}
	for i, o := range options {
		// client discriminators deliberately differ from the stored ones
		mc.Options = append(mc.Options, OptionReq{Discriminator: uint(100 + i), OptionText: o})
	}
	return QuestionReq{QuestionText: text, MaxMarks: marks, MultipleChoiceQuestion: mc}
}

func testReq(questions ...QuestionReq) CreateTestReq {
	return CreateTestReq{
		Title:     "Midterm",
		StartTime: windowStart,
		EndTime:   windowStart.Add(time.Hour),
		Questions: questions,
	}
}
