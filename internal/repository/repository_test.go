package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB connects to PROCTOR_TEST_DATABASE_DSN and resets the schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("PROCTOR_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("PROCTOR_TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.DropAll(db))
	require.NoError(t, database.Migrate(db))
	// a second run must be a no-op
	require.NoError(t, database.Migrate(db))
	return db
}

func createSetter(t *testing.T, users *UserRepository, name string) *model.User {
	t.Helper()
	ctx := context.Background()
	u := &model.User{Username: name, FullName: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, users.AddRole(ctx, u.ID, model.TestSetterRole))
	return u
}

func mcqTest(creatorID uint, questions, options int) *model.Test {
	start := time.Now().Add(-time.Hour)
	test := &model.Test{
		Title:     "Quiz",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		CreatorID: creatorID,
	}
	for i := 0; i < questions; i++ {
		opts := make([]model.Option, options)
		for j := range opts {
			opts[j] = model.Option{Discriminator: uint(j + 1), OptionText: fmt.Sprintf("q%d-o%d", i, j)}
		}
		correct := uint(i%options + 1)
		test.Questions = append(test.Questions, model.NewQuestion(
			fmt.Sprintf("question %d", i), 2,
			model.MultipleChoice{Options: opts, CorrectOptionDiscriminator: &correct},
		))
	}
	return test
}

func TestUserUniqueness(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "ana", Email: "ana@example.com", PasswordHash: "x"}))
	err := users.Create(ctx, &model.User{Username: "ana", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
	err = users.Create(ctx, &model.User{Username: "bob", Email: "ana@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
	assert.NoError(t, users.Create(ctx, &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}))
}

func TestConcurrentRegistration(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				ctx := database.WithTx(context.Background(), tx)
				return users.Create(ctx, &model.User{
					Username:     "racer",
					Email:        fmt.Sprintf("racer%d@example.com", i),
					PasswordHash: "x",
				})
			})
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, util.ErrUsernameTaken):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
}

func TestRoleTwice(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	u := createSetter(t, users, "setter")

	err := users.AddRole(context.Background(), u.ID, model.TestSetterRole)
	assert.ErrorIs(t, err, util.ErrAlreadyTestSetter)

	roles, err := users.Roles(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Roles{TestSetter: true}, roles)
}

func TestMultipleChoiceRoundTrip(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	ctx := context.Background()
	u := createSetter(t, users, "setter")

	in := mcqTest(u.ID, 3, 4)
	require.NoError(t, tests.Create(ctx, in))

	out, err := tests.FindByID(ctx, in.ID)
	require.NoError(t, err)
	require.Len(t, out.Questions, 3)
	assert.Equal(t, 6, out.MaxMarks())
	for i, q := range out.Questions {
		assert.Equal(t, uint(i+1), q.Discriminator)
		assert.Equal(t, model.MultipleChoiceType, q.Type)
		require.Len(t, q.Options, 4)
		for j, o := range q.Options {
			assert.Equal(t, fmt.Sprintf("q%d-o%d", i, j), o.OptionText)
		}
		require.NotNil(t, q.CorrectOptionDiscriminator)
		assert.Equal(t, uint(i%4+1), *q.CorrectOptionDiscriminator)
	}
}

func TestDanglingCorrectOptionFailsAtCommit(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	u := createSetter(t, users, "setter")

	in := mcqTest(u.ID, 1, 2)
	missing := uint(9)
	in.Questions[0].CorrectOptionDiscriminator = &missing
	assert.Error(t, tests.Create(context.Background(), in))

	var count int64
	require.NoError(t, db.Model(&model.Test{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteUserCascadesToTests(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	ctx := context.Background()
	u := createSetter(t, users, "setter")
	require.NoError(t, tests.Create(ctx, mcqTest(u.ID, 2, 3)))

	require.NoError(t, users.Delete(ctx, u.ID))

	for _, m := range []interface{}{&model.TestSetter{}, &model.Test{}, &model.Question{}, &model.Option{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T", m)
	}
}

func TestInsertAndReorderQuestions(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	ctx := context.Background()
	u := createSetter(t, users, "setter")

	test := &model.Test{Title: "Essay", StartTime: time.Now(), EndTime: time.Now().Add(time.Hour), CreatorID: u.ID}
	for _, text := range []string{"a", "b", "c"} {
		test.Questions = append(test.Questions, model.NewQuestion(text, 1, model.TextField{}))
	}
	require.NoError(t, tests.Create(ctx, test))

	q := model.NewQuestion("inserted", 1, model.Attachment{})
	require.NoError(t, tests.InsertQuestion(ctx, test.ID, &q, 1))
	assert.Equal(t, uint(4), q.Discriminator)

	got, err := tests.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "inserted", "b", "c"}, questionTexts(got))

	// reversing passes through duplicate ranks before commit
	err = db.Transaction(func(tx *gorm.DB) error {
		return tests.ReorderQuestions(database.WithTx(ctx, tx), test.ID, []uint{3, 2, 4, 1})
	})
	require.NoError(t, err)

	got, err = tests.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "inserted", "a"}, questionTexts(got))
}

func questionTexts(test *model.Test) []string {
	texts := make([]string, len(test.Questions))
	for i, q := range test.Questions {
		texts[i] = q.QuestionText
	}
	return texts
}

func TestAttemptLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	attempts := NewAttemptRepository(db)
	ctx := context.Background()

	setter := createSetter(t, users, "setter")
	taker := &model.User{Username: "taker", Email: "taker@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, taker))
	require.NoError(t, users.AddRole(ctx, taker.ID, model.TestTakerRole))
	test := mcqTest(setter.ID, 1, 2)
	require.NoError(t, tests.Create(ctx, test))

	attempt := &model.TestAttempt{TestID: test.ID, TestTakerID: taker.ID}
	var blank model.Answer
	blank.TestID, blank.TestTakerID, blank.QuestionDiscriminator = test.ID, taker.ID, 1
	blank.SetVariant(model.MCQAnswer{})
	attempt.Answers = []model.Answer{blank}
	require.NoError(t, attempts.Create(ctx, attempt))
	assert.ErrorIs(t, attempts.Create(ctx, &model.TestAttempt{TestID: test.ID, TestTakerID: taker.ID}), util.ErrAttemptExists)

	// a text answer to a multiple choice question is rejected by the schema
	wrong := model.Answer{TestID: test.ID, TestTakerID: taker.ID, QuestionDiscriminator: 1}
	wrong.SetVariant(model.TextFieldAnswer{AnswerText: "nope"})
	assert.Error(t, attempts.SaveAnswer(ctx, &wrong))

	chosen := uint(2)
	ans := model.Answer{TestID: test.ID, TestTakerID: taker.ID, QuestionDiscriminator: 1}
	ans.SetVariant(model.MCQAnswer{ChosenOptionDiscriminator: &chosen})
	require.NoError(t, attempts.SaveAnswer(ctx, &ans))
	require.NoError(t, attempts.SetMarks(ctx, test.ID, taker.ID, 1, 2))

	got, err := attempts.Find(ctx, test.ID, taker.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, &chosen, got.Answers[0].ChosenOptionDiscriminator)
	require.NotNil(t, got.MarksObtained())
	assert.Equal(t, 2, *got.MarksObtained())

	now := time.Now()
	require.NoError(t, attempts.AppendGaze(ctx, []model.GazeData{
		{TestID: test.ID, TestTakerID: taker.ID, Timestamp: now.Add(time.Second), Point: model.Point{X: 2, Y: 2}},
		{TestID: test.ID, TestTakerID: taker.ID, Timestamp: now, Point: model.Point{X: 1, Y: 1}},
	}))
	log, err := attempts.GazeLog(ctx, test.ID, taker.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, 1.0, log[0].X)

	require.NoError(t, tests.Delete(ctx, test.ID))
	for _, m := range []interface{}{&model.TestAttempt{}, &model.Answer{}, &model.GazeData{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T", m)
	}
}

func TestInsertQuestionBackfillsAttempts(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tests := NewTestRepository(db)
	attempts := NewAttemptRepository(db)
	ctx := context.Background()

	setter := createSetter(t, users, "setter")
	test := mcqTest(setter.ID, 1, 2)
	require.NoError(t, tests.Create(ctx, test))

	var takers []uint
	for _, name := range []string{"taker1", "taker2"} {
		u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
		require.NoError(t, users.Create(ctx, u))
		require.NoError(t, users.AddRole(ctx, u.ID, model.TestTakerRole))
		attempt := &model.TestAttempt{TestID: test.ID, TestTakerID: u.ID}
		attempt.Answers = []model.Answer{model.NewBlankAnswer(&test.Questions[0], u.ID)}
		require.NoError(t, attempts.Create(ctx, attempt))
		require.NoError(t, attempts.SetMarks(ctx, test.ID, u.ID, 1, 2))
		takers = append(takers, u.ID)
	}

	q := model.NewQuestion("late", 4, model.Attachment{})
	require.NoError(t, tests.InsertQuestion(ctx, test.ID, &q, 0))

	for _, takerID := range takers {
		got, err := attempts.Find(ctx, test.ID, takerID)
		require.NoError(t, err)
		require.Len(t, got.Answers, 2)
		assert.Nil(t, got.MarksObtained())

		added, ok := got.Answer(q.Discriminator)
		require.True(t, ok)
		assert.Equal(t, model.AttachmentType, added.Type)
		assert.Nil(t, added.MarksObtained)

		require.NoError(t, attempts.SetMarks(ctx, test.ID, takerID, q.Discriminator, 3))
	}
	got, err := attempts.Find(ctx, test.ID, takers[0])
	require.NoError(t, err)
	require.NotNil(t, got.MarksObtained())
	assert.Equal(t, 5, *got.MarksObtained())
}
