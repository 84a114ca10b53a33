package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
)

// Session is the server-side state of one login. Only derived flags ever
// reach the client.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Level     AuthLevel `json:"level"`
	CanDoTotp bool      `json:"can_do_totp"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserInfo is the client view of a session
type UserInfo struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	CanDoTotp     bool   `json:"canDoTotp"`
	IsTotp        bool   `json:"isTotp"`
	IsSkippedTotp bool   `json:"isSkippedTotp"`
}

// NewSession opens a session for a user whose password was verified.
// Accounts with a TOTP secret wait for the second factor; accounts without
// one start with a skipped second factor.
func NewSession(user *User, ttl time.Duration) *Session {
	level := AuthLevelSkipped2FA
	if user.HasTOTP() {
		level = AuthLevelPending2FA
	}
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		Level:     level,
		CanDoTotp: user.HasTOTP(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session is past its expiry time
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// CompleteTOTP records a verified code. It is accepted both while the
// second factor is pending and as a step-up from a skipped one; the session
// ID and identity stay the same.
func (s *Session) CompleteTOTP() error {
	if s.Level == AuthLevelVerified2FA {
		return nil
	}
	if !s.CanDoTotp {
		return shared.NewDomainError("TOTP_NOT_ENABLED", "No TOTP secret found")
	}
	if !s.Level.CanTransitionTo(AuthLevelVerified2FA) {
		return shared.ErrNotAuthenticated
	}
	s.Level = AuthLevelVerified2FA
	return nil
}

// SkipTOTP concludes the second-factor step without a code. A verified
// session is never downgraded.
func (s *Session) SkipTOTP() error {
	switch s.Level {
	case AuthLevelSkipped2FA, AuthLevelVerified2FA:
		return nil
	case AuthLevelPending2FA:
		s.Level = AuthLevelSkipped2FA
		return nil
	}
	return shared.ErrNotAuthenticated
}

// Info returns the client view of the session
func (s *Session) Info() UserInfo {
	return UserInfo{
		ID:            s.UserID,
		Username:      s.Username,
		CanDoTotp:     s.CanDoTotp,
		IsTotp:        s.Level == AuthLevelVerified2FA,
		IsSkippedTotp: s.Level == AuthLevelSkipped2FA,
	}
}
