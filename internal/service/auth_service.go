package service

import (
	"context"
	"errors"
	"time"

	"proctor_backend/internal/config"
	"proctor_backend/internal/model"
	"proctor_backend/internal/repository"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/logger"
	"proctor_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	Users    repository.UserStore
	Sessions repository.SessionRegistry
	Hasher   *PasswordHasher
	Cfg      *config.SessionConfig

	now func() time.Time
}

func NewAuthService(users repository.UserStore, sessions repository.SessionRegistry, hasher *PasswordHasher, cfg *config.SessionConfig) *AuthService {
	return &AuthService{
		Users:    users,
		Sessions: sessions,
		Hasher:   hasher,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// swagger:model CreateAccountReq
type CreateAccountReq struct {
	Username string `json:"username" binding:"required,max=150"`
	FullName string `json:"fullName" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

// swagger:model LoginReq
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is a registered credential: the pair (UserID, ID) is what the
// cookie or bearer token carries.
type Session struct {
	ID        string
	UserID    uint
	Remember  bool
	TTL       time.Duration
	ExpiresAt time.Time
}

// CreateAccount checks username then email before inserting; a concurrent
// registration that slips past both checks is caught by the unique indexes
// and reported with the same errors.
func (s *AuthService) CreateAccount(ctx context.Context, req CreateAccountReq) (*model.User, error) {
	taken, err := s.Users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}

	registered, err := s.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, util.ErrEmailRegistered
	}

	hash, err := s.Hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("Account created", zap.Uint("user_id", user.ID))
	return user, nil
}

// VerifyCredential returns the user id for a matching username and password.
// Unknown users and wrong passwords fail identically, after one bcrypt compare each.
func (s *AuthService) VerifyCredential(ctx context.Context, username, password string) (uint, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, util.ErrUserNotFound) {
		if err := s.Hasher.CompareTimeholder(ctx, password); err != nil {
			return 0, err
		}
		monitoring.ObserveLogin(false)
		return 0, util.ErrInvalidCredential
	}
	if err != nil {
		return 0, err
	}

	ok, err := s.Hasher.Compare(ctx, user.PasswordHash, password)
	if err != nil {
		return 0, err
	}
	monitoring.ObserveLogin(ok)
	if !ok {
		return 0, util.ErrInvalidCredential
	}
	return user.ID, nil
}

// StartSession registers a new session id for userID. Remembered sessions
// live for the remember duration, others for the session ttl.
func (s *AuthService) StartSession(ctx context.Context, userID uint, remember bool) (*Session, error) {
	ttl := s.Cfg.TTL
	if remember {
		ttl = s.Cfg.RememberDuration
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Remember:  remember,
		TTL:       ttl,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.Sessions.Register(ctx, sess.ID, userID, ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

// IssueToken renders sess as a bearer token for non-browser clients.
func (s *AuthService) IssueToken(sess *Session) (string, error) {
	return util.GenerateJWT(sess.UserID, sess.ID, s.Cfg.Secret, sess.ExpiresAt)
}

// ParseToken extracts the credential carried by a bearer token.
func (s *AuthService) ParseToken(token string) (sid string, userID uint, err error) {
	claims, err := util.ParseJWT(token, s.Cfg.Secret)
	if err != nil {
		return "", 0, util.ErrUnauthenticated
	}
	return claims.ID, claims.UserID, nil
}

// Authenticate resolves a credential to its user. A registered session whose
// user has since been deleted is revoked and reported as ErrStaleSession.
func (s *AuthService) Authenticate(ctx context.Context, sid string, userID uint) (*model.User, error) {
	if sid == "" {
		return nil, util.ErrUnauthenticated
	}
	registered, ok, err := s.Sessions.Lookup(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !ok || registered != userID {
		return nil, util.ErrUnauthenticated
	}

	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, util.ErrUserNotFound) {
		if err := s.Sessions.Revoke(ctx, sid); err != nil {
			logger.Log.Warn("Failed to revoke stale session", zap.Error(err))
		}
		return nil, util.ErrStaleSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Revoke(ctx, sid)
}
