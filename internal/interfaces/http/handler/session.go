package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/sannaclaudia/WebAPP/internal/application/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Authenticator is what the session endpoints need from the auth service
type Authenticator interface {
	Login(ctx context.Context, req appidentity.LoginRequest) (*identity.Session, error)
	VerifyTOTP(ctx context.Context, sessionID, code string) (*identity.Session, error)
	SkipTOTP(ctx context.Context, sessionID string) (*identity.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// SessionTokens signs and parses the session cookie value
type SessionTokens interface {
	middleware.TokenParser
	Sign(sessionID string, userID uint, expiresAt time.Time) (string, error)
}

// CookieSettings controls the session cookie attributes
type CookieSettings struct {
	Name   string
	Secure bool
}

// SessionHandler handles login, the second factor and logout
type SessionHandler struct {
	BaseHandler
	auth   Authenticator
	tokens SessionTokens
	cookie CookieSettings
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(auth Authenticator, tokens SessionTokens, cookie CookieSettings) *SessionHandler {
	return &SessionHandler{auth: auth, tokens: tokens, cookie: cookie}
}

// Login handles POST /api/sessions
func (h *SessionHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !middleware.BindStrictJSON(c, &req) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, err := h.tokens.Sign(session.ID, session.UserID, session.ExpiresAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.setCookie(c, token, time.Until(session.ExpiresAt))
	h.Success(c, session.Info())
}

// VerifyTOTP handles POST /api/login-totp
func (h *SessionHandler) VerifyTOTP(c *gin.Context) {
	current, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appidentity.VerifyTOTPRequest
	if !middleware.BindStrictJSON(c, &req) {
		return
	}

	session, err := h.auth.VerifyTOTP(c.Request.Context(), current.ID, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session.Info())
}

// SkipTOTP handles POST /api/skip-totp
func (h *SessionHandler) SkipTOTP(c *gin.Context) {
	current, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session, err := h.auth.SkipTOTP(c.Request.Context(), current.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session.Info())
}

// Current handles GET /api/sessions/current
func (h *SessionHandler) Current(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session.Info())
}

// Logout handles DELETE /api/sessions/current. It always clears the
// cookie, also when the session is already gone.
func (h *SessionHandler) Logout(c *gin.Context) {
	if sessionID := middleware.SessionIDFromCookie(c, h.tokens, h.cookie.Name); sessionID != "" {
		if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
			logger.L(c.Request.Context()).Warn("logout failed", zap.Error(err))
		}
	}
	h.setCookie(c, "", -1)
	h.NoContent(c)
}

func (h *SessionHandler) setCookie(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
