package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/sannaclaudia/WebAPP/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Auth errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Incorrect username or password")
	ErrInvalidTOTPCode    = shared.NewDomainError("INVALID_TOTP", "Invalid TOTP code")
	ErrNoTOTPSecret       = shared.NewDomainError("TOTP_NOT_ENABLED", "No TOTP secret found")
)

// TOTPVerifier checks one-time codes against a shared secret
type TOTPVerifier interface {
	Verify(secret, code string) bool
}

// AuthService drives the login state machine: password, then an optional
// second factor that is either verified or skipped.
type AuthService struct {
	users      identity.UserRepository
	sessions   identity.SessionStore
	totp       TOTPVerifier
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, sessions identity.SessionStore, totp TOTPVerifier, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		totp:       totp,
		sessionTTL: sessionTTL,
	}
}

// Login checks the password and opens a session. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*identity.Session, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		logger.L(ctx).Info("login failed", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	session := identity.NewSession(user, s.sessionTTL)
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.L(ctx).Info("login succeeded",
		zap.Uint("user_id", user.ID),
		zap.String("auth_level", session.Level.String()),
	)
	return session, nil
}

// Current resolves a session ID to a live session
func (s *AuthService) Current(ctx context.Context, sessionID string) (*identity.Session, error) {
	if sessionID == "" {
		return nil, shared.ErrNotAuthenticated
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotAuthenticated
		}
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, shared.ErrNotAuthenticated
	}
	return session, nil
}

// VerifyTOTP upgrades the session to verified_2fa when code is valid.
// It works both while the second factor is pending and after a skip.
func (s *AuthService) VerifyTOTP(ctx context.Context, sessionID, code string) (*identity.Session, error) {
	session, err := s.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.CanDoTotp {
		return nil, ErrNoTOTPSecret
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotAuthenticated
		}
		return nil, err
	}
	if !user.HasTOTP() {
		return nil, ErrNoTOTPSecret
	}
	if !s.totp.Verify(user.TotpSecret, code) {
		logger.L(ctx).Info("totp verification failed", zap.Uint("user_id", user.ID))
		return nil, ErrInvalidTOTPCode
	}

	session, err = s.transition(ctx, sessionID, (*identity.Session).CompleteTOTP)
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("totp verified", zap.Uint("user_id", user.ID))
	return session, nil
}

// SkipTOTP concludes the second-factor step without a code
func (s *AuthService) SkipTOTP(ctx context.Context, sessionID string) (*identity.Session, error) {
	if _, err := s.Current(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.transition(ctx, sessionID, (*identity.Session).SkipTOTP)
}

// Logout destroys the server-side session. Unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// transition applies a level change to the latest stored state of the
// session. A skip racing a verification therefore sees verified_2fa and
// leaves it alone.
func (s *AuthService) transition(ctx context.Context, sessionID string, change func(*identity.Session) error) (*identity.Session, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(current *identity.Session) error {
		if current.IsExpired(time.Now()) {
			return shared.ErrNotAuthenticated
		}
		return change(current)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotAuthenticated
		}
		if errors.Is(err, shared.ErrNotAuthenticated) {
			_ = s.sessions.Delete(ctx, sessionID)
		}
		return nil, err
	}
	return session, nil
}
