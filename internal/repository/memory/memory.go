// Package memory holds in-process implementations of the repository
// interfaces. They mirror the postgres constraints that services rely on
// (uniqueness, cascades, SET NULL) and back the service and controller tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
)

var (
	_ repository.UserStore       = (*UserStore)(nil)
	_ repository.TestStore       = (*TestStore)(nil)
	_ repository.AttemptStore    = (*AttemptStore)(nil)
	_ repository.SessionRegistry = (*SessionStore)(nil)
)

type attemptKey struct{ test, taker uint }

type state struct {
	mu sync.Mutex

	nextUserID uint
	nextTestID uint
	nextGazeID uint64

	users    map[uint]model.User
	roles    map[uint]model.Roles
	tests    map[uint]model.Test
	attempts map[attemptKey]model.TestAttempt
	gaze     map[attemptKey][]model.GazeData
	sessions map[string]session
}

type session struct {
	userID  uint
	expires time.Time
}

// Store groups the in-memory repositories over one shared state.
type Store struct {
	s *state
}

func New() *Store {
	return &Store{s: &state{
		users:    make(map[uint]model.User),
		roles:    make(map[uint]model.Roles),
		tests:    make(map[uint]model.Test),
		attempts: make(map[attemptKey]model.TestAttempt),
		gaze:     make(map[attemptKey][]model.GazeData),
		sessions: make(map[string]session),
	}}
}

func (s *Store) Users() *UserStore       { return &UserStore{s.s} }
func (s *Store) Tests() *TestStore       { return &TestStore{s.s} }
func (s *Store) Attempts() *AttemptStore { return &AttemptStore{s.s} }
func (s *Store) Sessions() *SessionStore { return &SessionStore{s: s.s, now: time.Now} }

type UserStore struct{ s *state }

func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return util.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}
	u.s.nextUserID++
	now := time.Now()
	user.ID = u.s.nextUserID
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (u *UserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (u *UserStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &user, nil
}

func (u *UserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, util.ErrUserNotFound
}

// Delete cascades the way the postgres schema does.
func (u *UserStore) Delete(_ context.Context, id uint) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return util.ErrUserNotFound
	}
	delete(u.s.users, id)
	delete(u.s.roles, id)

	for testID, t := range u.s.tests {
		if t.CreatorID == id {
			u.s.deleteTest(testID)
		}
	}
	for k, a := range u.s.attempts {
		if k.taker == id {
			delete(u.s.attempts, k)
			delete(u.s.gaze, k)
			continue
		}
		if a.InvigilatorID != nil && *a.InvigilatorID == id {
			a.InvigilatorID = nil
			u.s.attempts[k] = a
		}
	}
	return nil
}

func (u *UserStore) Roles(_ context.Context, id uint) (model.Roles, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return u.s.roles[id], nil
}

func (u *UserStore) AddRole(_ context.Context, id uint, role model.UserRole) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	roles := u.s.roles[id]
	switch role {
	case model.TestSetterRole:
		if roles.TestSetter {
			return util.ErrAlreadyTestSetter
		}
		roles.TestSetter = true
	case model.TestTakerRole:
		if roles.TestTaker {
			return util.ErrAlreadyTestTaker
		}
		roles.TestTaker = true
	case model.InvigilatorRole:
		if roles.Invigilator {
			return util.ErrAlreadyInvigilator
		}
		roles.Invigilator = true
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	u.s.roles[id] = roles
	return nil
}

// deleteTest must be called with mu held.
func (s *state) deleteTest(id uint) {
	delete(s.tests, id)
	for k := range s.attempts {
		if k.test == id {
			delete(s.attempts, k)
			delete(s.gaze, k)
		}
	}
}

type TestStore struct{ s *state }

func cloneTest(t model.Test) model.Test {
	questions := make([]model.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.Options = append([]model.Option(nil), q.Options...)
		questions[i] = q
	}
	t.Questions = questions
	return t
}

func sortQuestions(t *model.Test) {
	sort.SliceStable(t.Questions, func(i, j int) bool {
		return t.Questions[i].Number < t.Questions[j].Number
	})
}

func (ts *TestStore) Create(_ context.Context, test *model.Test) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	if !ts.s.roles[test.CreatorID].TestSetter {
		return fmt.Errorf("creator %d is not a test setter", test.CreatorID)
	}
	ts.s.nextTestID++
	now := time.Now()
	test.ID = ts.s.nextTestID
	test.CreatedAt, test.UpdatedAt = now, now
	for i := range test.Questions {
		q := &test.Questions[i]
		q.SetKey(test.ID, uint(i+1))
		q.Number = i
		if err := checkCorrectOption(q); err != nil {
			return err
		}
	}
	ts.s.tests[test.ID] = cloneTest(*test)
	return nil
}

// checkCorrectOption stands in for the deferred foreign key.
func checkCorrectOption(q *model.Question) error {
	if q.CorrectOptionDiscriminator == nil {
		return nil
	}
	if _, ok := q.Option(*q.CorrectOptionDiscriminator); !ok {
		return fmt.Errorf("question %d: correct option %d does not exist", q.Discriminator, *q.CorrectOptionDiscriminator)
	}
	return nil
}

func (ts *TestStore) FindByID(_ context.Context, id uint) (*model.Test, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	t, ok := ts.s.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	t = cloneTest(t)
	return &t, nil
}

func (ts *TestStore) ListByCreator(_ context.Context, creatorID uint) ([]model.Test, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	var tests []model.Test
	for _, t := range ts.s.tests {
		if t.CreatorID == creatorID {
			tests = append(tests, cloneTest(t))
		}
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

func (ts *TestStore) Delete(_ context.Context, id uint) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	if _, ok := ts.s.tests[id]; !ok {
		return util.ErrTestNotFound
	}
	ts.s.deleteTest(id)
	return nil
}

func (ts *TestStore) InsertQuestion(_ context.Context, testID uint, q *model.Question, position int) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	t, ok := ts.s.tests[testID]
	if !ok {
		return util.ErrTestNotFound
	}
	if position < 0 || position > len(t.Questions) {
		position = len(t.Questions)
	}
	t = cloneTest(t)
	for i := range t.Questions {
		if t.Questions[i].Number >= position {
			t.Questions[i].Number++
		}
	}
	q.SetKey(testID, t.NextQuestionDiscriminator())
	q.Number = position
	if err := checkCorrectOption(q); err != nil {
		return err
	}
	t.Questions = append(t.Questions, *q)
	sortQuestions(&t)
	ts.s.tests[testID] = cloneTest(t)

	for k, a := range ts.s.attempts {
		if k.test != testID {
			continue
		}
		a = cloneAttempt(a)
		a.Answers = append(a.Answers, model.NewBlankAnswer(q, k.taker))
		ts.s.attempts[k] = a
	}
	return nil
}

func (ts *TestStore) ReorderQuestions(_ context.Context, testID uint, discriminators []uint) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()
	t, ok := ts.s.tests[testID]
	if !ok {
		return util.ErrTestNotFound
	}
	t = cloneTest(t)
	for rank, disc := range discriminators {
		q, ok := t.Question(disc)
		if !ok {
			return util.ErrQuestionNotFound
		}
		q.Number = rank
	}
	sortQuestions(&t)
	ts.s.tests[testID] = t
	return nil
}

type AttemptStore struct{ s *state }

func cloneAttempt(a model.TestAttempt) model.TestAttempt {
	a.Answers = append([]model.Answer(nil), a.Answers...)
	return a
}

func (as *AttemptStore) Create(_ context.Context, attempt *model.TestAttempt) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	k := attemptKey{attempt.TestID, attempt.TestTakerID}
	if _, exists := as.s.attempts[k]; exists {
		return util.ErrAttemptExists
	}
	if _, ok := as.s.tests[attempt.TestID]; !ok {
		return fmt.Errorf("test %d does not exist", attempt.TestID)
	}
	attempt.CreatedAt = time.Now()
	as.s.attempts[k] = cloneAttempt(*attempt)
	return nil
}

func (as *AttemptStore) Find(_ context.Context, testID, testTakerID uint) (*model.TestAttempt, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	a, ok := as.s.attempts[attemptKey{testID, testTakerID}]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	a = cloneAttempt(a)
	return &a, nil
}

func (as *AttemptStore) ListByTest(_ context.Context, testID uint) ([]model.TestAttempt, error) {
	return as.list(func(a model.TestAttempt) bool { return a.TestID == testID }), nil
}

func (as *AttemptStore) ListByInvigilator(_ context.Context, invigilatorID uint) ([]model.TestAttempt, error) {
	return as.list(func(a model.TestAttempt) bool {
		return a.InvigilatorID != nil && *a.InvigilatorID == invigilatorID
	}), nil
}

func (as *AttemptStore) list(match func(model.TestAttempt) bool) []model.TestAttempt {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	var attempts []model.TestAttempt
	for _, a := range as.s.attempts {
		if match(a) {
			attempts = append(attempts, cloneAttempt(a))
		}
	}
	sort.Slice(attempts, func(i, j int) bool {
		if attempts[i].TestID != attempts[j].TestID {
			return attempts[i].TestID < attempts[j].TestID
		}
		return attempts[i].TestTakerID < attempts[j].TestTakerID
	})
	return attempts
}

func (as *AttemptStore) modify(testID, testTakerID uint, fn func(*model.TestAttempt) error) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	k := attemptKey{testID, testTakerID}
	a, ok := as.s.attempts[k]
	if !ok {
		return util.ErrAttemptNotFound
	}
	a = cloneAttempt(a)
	if err := fn(&a); err != nil {
		return err
	}
	as.s.attempts[k] = a
	return nil
}

func (as *AttemptStore) Finish(_ context.Context, testID, testTakerID uint, at time.Time) error {
	return as.modify(testID, testTakerID, func(a *model.TestAttempt) error {
		a.EndTime = &at
		return nil
	})
}

func (as *AttemptStore) SetCaughtCheating(_ context.Context, testID, testTakerID uint, caught bool) error {
	return as.modify(testID, testTakerID, func(a *model.TestAttempt) error {
		a.CaughtCheating = caught
		return nil
	})
}

func (as *AttemptStore) SaveAnswer(_ context.Context, answer *model.Answer) error {
	answer.MarksObtained = nil
	answer.UpdatedAt = time.Now()
	return as.modify(answer.TestID, answer.TestTakerID, func(a *model.TestAttempt) error {
		if existing, ok := a.Answer(answer.QuestionDiscriminator); ok {
			*existing = *answer
			return nil
		}
		a.Answers = append(a.Answers, *answer)
		sort.Slice(a.Answers, func(i, j int) bool {
			return a.Answers[i].QuestionDiscriminator < a.Answers[j].QuestionDiscriminator
		})
		return nil
	})
}

func (as *AttemptStore) SetMarks(_ context.Context, testID, testTakerID, questionDiscriminator uint, marks int) error {
	return as.modify(testID, testTakerID, func(a *model.TestAttempt) error {
		ans, ok := a.Answer(questionDiscriminator)
		if !ok {
			return util.ErrAnswerNotFound
		}
		ans.MarksObtained = &marks
		return nil
	})
}

func (as *AttemptStore) AppendGaze(_ context.Context, points []model.GazeData) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	for i := range points {
		k := attemptKey{points[i].TestID, points[i].TestTakerID}
		if _, ok := as.s.attempts[k]; !ok {
			return util.ErrAttemptNotFound
		}
		as.s.nextGazeID++
		points[i].Discriminator = as.s.nextGazeID
		as.s.gaze[k] = append(as.s.gaze[k], points[i])
	}
	return nil
}

func (as *AttemptStore) GazeLog(_ context.Context, testID, testTakerID uint) ([]model.GazeData, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	points := append([]model.GazeData(nil), as.s.gaze[attemptKey{testID, testTakerID}]...)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, nil
}

type SessionStore struct {
	s   *state
	now func() time.Time
}

func (ss *SessionStore) Register(_ context.Context, sid string, userID uint, ttl time.Duration) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	ss.s.sessions[sid] = session{userID: userID, expires: ss.now().Add(ttl)}
	return nil
}

func (ss *SessionStore) Lookup(_ context.Context, sid string) (uint, bool, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	sess, ok := ss.s.sessions[sid]
	if !ok || !ss.now().Before(sess.expires) {
		return 0, false, nil
	}
	return sess.userID, true, nil
}

func (ss *SessionStore) Revoke(_ context.Context, sid string) error {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()
	delete(ss.s.sessions, sid)
	return nil
}
