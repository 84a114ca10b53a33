package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

const testCookie = "webapp_session"

type fakeTokens struct{}

func (fakeTokens) Parse(token string) (string, error) {
	if token == "tampered" {
		return "", errors.New("bad signature")
	}
	return "sid-" + token, nil
}

type fakeResolver struct {
	sessions map[string]*identity.Session
	err      error
}

func (r *fakeResolver) Current(_ context.Context, sessionID string) (*identity.Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, shared.ErrNotAuthenticated
	}
	return s, nil
}

func newSessionRouter(resolver SessionResolver, guards ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{SessionAuth(resolver, fakeTokens{}, testCookie)}, guards...)
	chain = append(chain, func(c *gin.Context) {
		s, _ := GetSession(c)
		c.String(http.StatusOK, s.Username)
	})
	router.GET("/api/orders", chain...)
	return router
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: value})
	}
	return req
}

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeResolver{sessions: map[string]*identity.Session{
		"sid-alice": {ID: "sid-alice", UserID: 1, Username: "alice", Level: identity.AuthLevelSkipped2FA},
		"sid-bob":   {ID: "sid-bob", UserID: 2, Username: "bob", Level: identity.AuthLevelPending2FA},
	}}

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{"valid session", "alice", http.StatusOK, "alice"},
		{"pending session passes auth", "bob", http.StatusOK, "bob"},
		{"missing cookie", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"tampered cookie", "tampered", http.StatusUnauthorized, "Not authenticated"},
		{"unknown session", "carol", http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newSessionRouter(resolver).ServeHTTP(w, requestWithCookie(tt.cookie))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestSessionAuth_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeResolver{err: errors.New("redis: connection refused")}

	w := httptest.NewRecorder()
	newSessionRouter(resolver).ServeHTTP(w, requestWithCookie("alice"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestRequireConcluded2FA(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeResolver{sessions: map[string]*identity.Session{
		"sid-skipped":  {UserID: 1, Username: "skipped", Level: identity.AuthLevelSkipped2FA},
		"sid-verified": {UserID: 2, Username: "verified", Level: identity.AuthLevelVerified2FA},
		"sid-pending":  {UserID: 3, Username: "pending", Level: identity.AuthLevelPending2FA},
	}}
	router := newSessionRouter(resolver, RequireConcluded2FA())

	for cookie, want := range map[string]int{
		"skipped":  http.StatusOK,
		"verified": http.StatusOK,
		"pending":  http.StatusUnauthorized,
	} {
		t.Run(cookie, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, requestWithCookie(cookie))
			assert.Equal(t, want, w.Code)
		})
	}
}

func TestRequireConcluded2FA_WithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", RequireConcluded2FA(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
