package util

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// cookie session keys
const (
	sessionUserKey = "uid"
	sessionIDKey   = "sid"
)

// SaveSession writes the credential (userID, sessionID) into the signed cookie.
// opts.MaxAge 0 makes it a browser-session cookie.
func SaveSession(c *gin.Context, opts sessions.Options, sessionID string, userID uint) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, userID)
	session.Set(sessionIDKey, sessionID)
	session.Options(opts)
	return session.Save()
}

// SessionCredential reads the credential from the cookie, if any.
func SessionCredential(c *gin.Context) (sessionID string, userID uint, ok bool) {
	session := sessions.Default(c)
	userID, okUser := session.Get(sessionUserKey).(uint)
	sessionID, okID := session.Get(sessionIDKey).(string)
	if !okUser || !okID || sessionID == "" {
		return "", 0, false
	}
	return sessionID, userID, true
}

// ClearSession expires the cookie on the client.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// SessionFromContext returns the session id stored by the session middleware.
func SessionFromContext(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
