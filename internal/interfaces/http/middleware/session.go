package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SessionKey is the gin context key holding the resolved *identity.Session
const SessionKey = "session"

// SessionResolver loads a live session by id
type SessionResolver interface {
	Current(ctx context.Context, sessionID string) (*identity.Session, error)
}

// TokenParser extracts the session id from the signed cookie value
type TokenParser interface {
	Parse(token string) (string, error)
}

// SessionAuth resolves the session cookie into a session and rejects the
// request with 401 when there is none. Pending sessions pass; use
// RequireConcluded2FA on routes that need the second factor settled.
func SessionAuth(resolver SessionResolver, tokens TokenParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolveSession(c, resolver, tokens, cookieName)
		if err != nil {
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				logger.L(c.Request.Context()).Error("session lookup failed", zap.Error(err))
			}
			abortWithError(c, err)
			return
		}

		c.Set(SessionKey, session)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), session.UserID))
		c.Next()
	}
}

// RequireConcluded2FA lets through sessions whose second-factor step is
// over, by a verified code or an explicit skip. It must run after SessionAuth.
func RequireConcluded2FA() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.Level.HasConcluded2FA() {
			abortWithError(c, shared.ErrNotAuthenticated)
			return
		}
		c.Next()
	}
}

// GetSession returns the session stored by SessionAuth
func GetSession(c *gin.Context) (*identity.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*identity.Session)
	return session, ok && session != nil
}

// SessionIDFromCookie returns the session id carried by the cookie, or ""
// when the cookie is missing or its signature does not verify.
func SessionIDFromCookie(c *gin.Context, tokens TokenParser, cookieName string) string {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return ""
	}
	sessionID, err := tokens.Parse(raw)
	if err != nil {
		return ""
	}
	return sessionID
}

func resolveSession(c *gin.Context, resolver SessionResolver, tokens TokenParser, cookieName string) (*identity.Session, error) {
	sessionID := SessionIDFromCookie(c, tokens, cookieName)
	if sessionID == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return resolver.Current(c.Request.Context(), sessionID)
}

func abortWithError(c *gin.Context, err error) {
	status, body, _ := dto.ErrorFor(err)
	c.AbortWithStatusJSON(status, body)
}
