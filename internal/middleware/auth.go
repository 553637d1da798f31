package middleware

import (
	"context"
	"errors"

	"proctor_backend/internal/model"
	"proctor_backend/internal/util"
	"proctor_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator resolves a credential to its user; *service.AuthService
// implements it.
type Authenticator interface {
	ParseToken(token string) (sid string, userID uint, err error)
	Authenticate(ctx context.Context, sid string, userID uint) (*model.User, error)
}

// SessionMiddleware accepts either a bearer token or the session cookie and
// loads the user it names. Sessions of deleted users are cleared so the
// browser stops sending them.
func SessionMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			sid        string
			userID     uint
			fromCookie bool
		)

		if token, ok := util.BearerToken(c); ok {
			var err error
			sid, userID, err = auth.ParseToken(token)
			if err != nil {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		} else {
			var ok bool
			sid, userID, ok = util.SessionCredential(c)
			if !ok {
				util.Unauthorized(c)
				c.Abort()
				return
			}
			fromCookie = true
		}

		user, err := auth.Authenticate(c.Request.Context(), sid, userID)
		if err != nil {
			if errors.Is(err, util.ErrStaleSession) && fromCookie {
				if err := util.ClearSession(c); err != nil {
					logger.Log.Warn("Failed to clear stale session cookie", zap.Error(err))
				}
			}
			util.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Set(util.ContextSessionKey, sid)
		c.Next()
	}
}

// RoleChecker reports the roles a user holds.
type RoleChecker interface {
	Roles(ctx context.Context, userID uint) (model.Roles, error)
}

// RoleMiddleware admits only users holding role. It must run after
// SessionMiddleware, so an anonymous request gets 401 before 403.
func RoleMiddleware(checker RoleChecker, role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		roles, err := checker.Roles(c.Request.Context(), user.ID)
		if err != nil {
			util.HandleError(c, err)
			c.Abort()
			return
		}
		if !roles.Has(role) {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
