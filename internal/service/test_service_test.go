package service

import (
	"context"
	"fmt"
	"testing"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTestMultipleChoiceRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	setter := f.user(t, "setter", model.TestSetterRole)

	const n, m = 4, 3
	var questions []QuestionReq
	for i := 0; i < n; i++ {
		var options []string
		for j := 0; j < m; j++ {
			options = append(options, fmt.Sprintf("q%d option %d", i, j))
		}
		// client discriminators are 100..; designate index i%m
		questions = append(questions, mcqReq(fmt.Sprintf("question %d", i), 1, options, uintPtr(uint(100+i%m))))
	}

	_, err := f.tests.CreateTest(ctx, setter.ID, testReq(questions...))
	require.NoError(t, err)

	views, err := f.tests.ListCreatedTests(ctx, setter.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, n, views[0].MaxMarks)
	require.Len(t, views[0].Questions, n)
	for i, q := range views[0].Questions {
		require.NotNil(t, q.MultipleChoiceQuestion)
		assert.Nil(t, q.TextFieldQuestion)
		opts := q.MultipleChoiceQuestion.Options
		require.Len(t, opts, m)
		for j, o := range opts {
			assert.Equal(t, fmt.Sprintf("q%d option %d", i, j), o.OptionText)
			assert.Equal(t, uint(j+1), o.Discriminator)
		}
		require.NotNil(t, q.MultipleChoiceQuestion.CorrectOptionDiscriminator)
		assert.Equal(t, uint(i%m+1), *q.MultipleChoiceQuestion.CorrectOptionDiscriminator)
	}
}

func TestCreateTestRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	setter := f.user(t, "setter", model.TestSetterRole)

	backwards := testReq()
	backwards.EndTime = backwards.StartTime

	tests := []struct {
		name    string
		req     CreateTestReq
		wantErr error
	}{
		{
			name:    "correct option not among options",
			req:     testReq(mcqReq("q", 1, []string{"a", "b"}, uintPtr(7))),
			wantErr: util.ErrInvalidCorrectOption,
		},
		{
			name:    "no variant",
			req:     testReq(QuestionReq{QuestionText: "q", MaxMarks: 1}),
			wantErr: util.ErrInvalidQuestion,
		},
		{
			name: "two variants",
			req: testReq(QuestionReq{
				QuestionText:       "q",
				TextFieldQuestion:  &EmptyVariant{},
				AttachmentQuestion: &EmptyVariant{},
			}),
			wantErr: util.ErrInvalidQuestion,
		},
		{
			name:    "empty window",
			req:     backwards,
			wantErr: util.ErrInvalidTestWindow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tests.CreateTest(ctx, setter.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	views, err := f.tests.ListCreatedTests(ctx, setter.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCreateTestWithoutCorrectOption(t *testing.T) {
	f := newFixture(t)
	setter := f.user(t, "setter", model.TestSetterRole)

	_, err := f.tests.CreateTest(context.Background(), setter.ID, testReq(mcqReq("survey", 0, []string{"yes", "no"}, nil)))
	require.NoError(t, err)
}

func questionTexts(v TestView) []string {
	texts := make([]string, len(v.Questions))
	for i, q := range v.Questions {
		texts[i] = q.QuestionText
	}
	return texts
}

func TestInsertAndReorderQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	setter := f.user(t, "setter", model.TestSetterRole)
	text := func(s string) QuestionReq {
		return QuestionReq{QuestionText: s, MaxMarks: 1, TextFieldQuestion: &EmptyVariant{}}
	}
	test, err := f.tests.CreateTest(ctx, setter.ID, testReq(text("a"), text("b"), text("c")))
	require.NoError(t, err)

	q, err := f.tests.AddQuestion(ctx, setter.ID, test.ID, text("first"), 0)
	require.NoError(t, err)
	assert.Equal(t, uint(4), q.Discriminator)
	_, err = f.tests.AddQuestion(ctx, setter.ID, test.ID, text("last"), -1)
	require.NoError(t, err)

	views, err := f.tests.ListCreatedTests(ctx, setter.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "a", "b", "c", "last"}, questionTexts(views[0]))

	require.NoError(t, f.tests.ReorderQuestions(ctx, setter.ID, test.ID, []uint{5, 3, 2, 1, 4}))
	views, err = f.tests.ListCreatedTests(ctx, setter.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"last", "c", "b", "a", "first"}, questionTexts(views[0]))
	for i, q := range views[0].Questions {
		assert.Equal(t, i, q.Number)
	}

	for _, order := range [][]uint{{1, 2, 3}, {1, 1, 2, 3, 4}, {1, 2, 3, 4, 9}} {
		err := f.tests.ReorderQuestions(ctx, setter.ID, test.ID, order)
		assert.ErrorIs(t, err, util.ErrInvalidOrder, "%v", order)
	}
}

func TestOtherSettersTestsAreHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner", model.TestSetterRole)
	other := f.user(t, "other", model.TestSetterRole)
	test, err := f.tests.CreateTest(ctx, owner.ID, testReq())
	require.NoError(t, err)

	assert.ErrorIs(t, f.tests.DeleteTest(ctx, other.ID, test.ID), util.ErrTestNotFound)
	_, err = f.tests.ListAttempts(ctx, other.ID, test.ID)
	assert.ErrorIs(t, err, util.ErrTestNotFound)

	views, err := f.tests.ListCreatedTests(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeletingSetterCascadesToTests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	setter := f.user(t, "setter", model.TestSetterRole)
	test, err := f.tests.CreateTest(ctx, setter.ID, testReq(mcqReq("q", 1, []string{"a"}, uintPtr(100))))
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteAccount(ctx, setter.ID))

	_, err = f.store.Tests().FindByID(ctx, test.ID)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestGradingCompletesMarksObtained(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	setter := f.user(t, "setter", model.TestSetterRole)
	taker := f.user(t, "taker", model.TestTakerRole)

	text := QuestionReq{QuestionText: "explain", MaxMarks: 5, TextFieldQuestion: &EmptyVariant{}}
	test, err := f.tests.CreateTest(ctx, setter.ID, testReq(text, text, text))
	require.NoError(t, err)
	_, err = f.attempts.StartAttempt(ctx, taker.ID, test.ID, StartAttemptReq{}, pngUpload())
	require.NoError(t, err)

	marksFor := func() *int {
		views, err := f.tests.ListAttempts(ctx, setter.ID, test.ID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, 15, views[0].MaxMarks)
		return views[0].MarksObtained
	}

	require.NoError(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 1, 2))
	require.NoError(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 3, 5))
	assert.Nil(t, marksFor())

	require.NoError(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 2, 3))
	got := marksFor()
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)

	assert.ErrorIs(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 2, 6), util.ErrMarksOutOfRange)
	assert.ErrorIs(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 2, -1), util.ErrMarksOutOfRange)
	assert.ErrorIs(t, f.tests.GradeAnswer(ctx, setter.ID, test.ID, taker.ID, 9, 1), util.ErrQuestionNotFound)
}

func TestAssumeRoleTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana", model.TestSetterRole, model.InvigilatorRole)

	assert.ErrorIs(t, f.users.AssumeRole(ctx, u.ID, model.TestSetterRole), util.ErrAlreadyTestSetter)
	assert.ErrorIs(t, f.users.AssumeRole(ctx, u.ID, model.InvigilatorRole), util.ErrAlreadyInvigilator)
	require.NoError(t, f.users.AssumeRole(ctx, u.ID, model.TestTakerRole))
	assert.ErrorIs(t, f.users.AssumeRole(ctx, u.ID, model.TestTakerRole), util.ErrAlreadyTestTaker)

	details, err := f.users.Details(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, model.Roles{TestSetter: true, TestTaker: true, Invigilator: true}, details.Roles)
	assert.Equal(t, "ana@example.com", details.Email)
}
