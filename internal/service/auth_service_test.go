package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"proctor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "ana")

	tests := []struct {
		name    string
		req     CreateAccountReq
		wantErr error
	}{
		{
			name:    "same username",
			req:     CreateAccountReq{Username: "ana", FullName: "Ana", Email: "other@example.com", Password: "pw"},
			wantErr: util.ErrUsernameTaken,
		},
		{
			name:    "same email",
			req:     CreateAccountReq{Username: "bob", FullName: "Bob", Email: "ana@example.com", Password: "pw"},
			wantErr: util.ErrEmailRegistered,
		},
		{
			name:    "both taken reports the username",
			req:     CreateAccountReq{Username: "ana", FullName: "Ana", Email: "ana@example.com", Password: "pw"},
			wantErr: util.ErrUsernameTaken,
		},
		{
			name: "distinct",
			req:  CreateAccountReq{Username: "bob", FullName: "Bob", Email: "bob@example.com", Password: "pw"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.CreateAccount(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateAccountConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := f.auth.CreateAccount(ctx, CreateAccountReq{Username: "racer", FullName: "R", Email: email, Password: "pw"})
			errs <- err
		}(email)
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, util.ErrUsernameTaken)
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
}

func TestVerifyCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana")

	id, err := f.auth.VerifyCredential(ctx, "ana", "pw-ana")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, wrongPassword := f.auth.VerifyCredential(ctx, "ana", "nope")
	_, unknownUser := f.auth.VerifyCredential(ctx, "ghost", "pw-ana")
	assert.ErrorIs(t, wrongPassword, util.ErrInvalidCredential)
	assert.ErrorIs(t, unknownUser, util.ErrInvalidCredential)

	// the client sees the same thing either way
	s1, m1 := util.StatusOf(wrongPassword)
	s2, m2 := util.StatusOf(unknownUser)
	assert.Equal(t, s1, s2)
	assert.Equal(t, m1, m2)
}

func TestVerifyCredentialTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("timing comparison is slow")
	}
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "ana")
	// make bcrypt dominate scheduling noise, with ana's hash at the timeholder's cost
	require.NoError(t, f.auth.Hasher.SetCost(8))
	hash, err := f.auth.Hasher.Hash(ctx, "pw-ana")
	require.NoError(t, err)
	stored, err := f.store.Users().FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Delete(ctx, stored.ID))
	stored.PasswordHash = hash
	require.NoError(t, f.store.Users().Create(ctx, stored))

	const trials = 15
	measure := func(username string) time.Duration {
		var total time.Duration
		for i := 0; i < trials; i++ {
			start := time.Now()
			_, err := f.auth.VerifyCredential(ctx, username, "wrong password")
			total += time.Since(start)
			require.ErrorIs(t, err, util.ErrInvalidCredential)
		}
		return total / trials
	}

	wrongPassword := measure("ana")
	unknownUser := measure("ghost")
	ratio := float64(unknownUser) / float64(wrongPassword)
	assert.True(t, ratio > 0.5 && ratio < 2, "unknown user %v vs wrong password %v", unknownUser, wrongPassword)
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana")

	sess, err := f.auth.StartSession(ctx, u.ID, false)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, sess.TTL)

	got, err := f.auth.Authenticate(ctx, sess.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)

	// a session id paired with someone else's user id is rejected
	_, err = f.auth.Authenticate(ctx, sess.ID, u.ID+1)
	assert.ErrorIs(t, err, util.ErrUnauthenticated)

	require.NoError(t, f.auth.Logout(ctx, sess.ID))
	_, err = f.auth.Authenticate(ctx, sess.ID, u.ID)
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}

func TestRememberedSessionLastsLonger(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ana")

	sess, err := f.auth.StartSession(context.Background(), u.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, sess.TTL)
	assert.True(t, sess.Remember)
}

func TestStaleSessionIsRevoked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana")
	sess, err := f.auth.StartSession(ctx, u.ID, false)
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteAccount(ctx, u.ID))

	_, err = f.auth.Authenticate(ctx, sess.ID, u.ID)
	assert.ErrorIs(t, err, util.ErrStaleSession)
	status, msg := util.StatusOf(err)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Unauthorised", msg)

	_, registered, err := f.store.Sessions().Lookup(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestTokenRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ana")
	sess, err := f.auth.StartSession(ctx, u.ID, false)
	require.NoError(t, err)

	token, err := f.auth.IssueToken(sess)
	require.NoError(t, err)

	sid, uid, err := f.auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, sid)
	assert.Equal(t, u.ID, uid)

	_, _, err = f.auth.ParseToken(token + "x")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
}
