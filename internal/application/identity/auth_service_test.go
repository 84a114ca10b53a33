package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "JBSWY3DPEHPK3PXP"
	goodCode     = "123456"
	testPassword = "correct horse"
)

type memUsers struct {
	users map[uint]*identity.User
}

func (m *memUsers) Create(_ context.Context, u *identity.User) error {
	u.ID = uint(len(m.users) + 1)
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*identity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]identity.Session

	// beforeUpdate lets a test change the stored session between the
	// caller's read and the update
	beforeUpdate func(*identity.Session)
}

func (m *memSessions) Save(_ context.Context, s *identity.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memSessions) Get(_ context.Context, id string) (*identity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessions) Update(_ context.Context, id string, fn func(*identity.Session) error) (*identity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate(&s)
	}
	if err := fn(&s); err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return &s, nil
}

type fixedTOTP struct{}

func (fixedTOTP) Verify(secret, code string) bool {
	return secret == testSecret && code == goodCode
}

func newTestAuthService(t *testing.T) (*AuthService, *memSessions) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{users: map[uint]*identity.User{}}
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &identity.User{Username: "alice", PasswordHash: string(hash), TotpSecret: testSecret}))
	require.NoError(t, users.Create(ctx, &identity.User{Username: "bob", PasswordHash: string(hash)}))

	sessions := &memSessions{sessions: map[string]identity.Session{}}
	return NewAuthService(users, sessions, fixedTOTP{}, time.Hour), sessions
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestAuthService(t)

	t.Run("totp account waits for the second factor", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelPending2FA, session.Level)
		assert.Equal(t, identity.UserInfo{ID: 1, Username: "alice", CanDoTotp: true}, session.Info())
		assert.Contains(t, sessions.sessions, session.ID)
	})

	t.Run("account without totp starts skipped", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelSkipped2FA, session.Level)
		assert.True(t, session.Info().IsSkippedTotp)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, LoginRequest{Username: "mallory", Password: testPassword})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_SecondFactor(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code verifies the session", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)

		verified, err := svc.VerifyTOTP(ctx, session.ID, goodCode)
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelVerified2FA, verified.Level)

		current, err := svc.Current(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, current.Info().IsTotp)
	})

	t.Run("invalid code leaves the session pending", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)

		_, err = svc.VerifyTOTP(ctx, session.ID, "000000")
		assert.ErrorIs(t, err, ErrInvalidTOTPCode)

		current, err := svc.Current(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelPending2FA, current.Level)
	})

	t.Run("skip then step up on the same session", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)

		skipped, err := svc.SkipTOTP(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelSkipped2FA, skipped.Level)

		verified, err := svc.VerifyTOTP(ctx, session.ID, goodCode)
		require.NoError(t, err)
		assert.Equal(t, session.ID, verified.ID)
		assert.Equal(t, identity.AuthLevelVerified2FA, verified.Level)
	})

	t.Run("skip never downgrades", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)
		_, err = svc.VerifyTOTP(ctx, session.ID, goodCode)
		require.NoError(t, err)

		after, err := svc.SkipTOTP(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelVerified2FA, after.Level)
	})

	t.Run("skip racing a verification keeps verified", func(t *testing.T) {
		svc, sessions := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)

		// the verification lands after the skip read pending_2fa
		sessions.beforeUpdate = func(s *identity.Session) {
			s.Level = identity.AuthLevelVerified2FA
		}

		after, err := svc.SkipTOTP(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.AuthLevelVerified2FA, after.Level)
		assert.Equal(t, identity.AuthLevelVerified2FA, sessions.sessions[session.ID].Level)
	})

	t.Run("session removed before the update", func(t *testing.T) {
		svc, sessions := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: testPassword})
		require.NoError(t, err)
		sessions.beforeUpdate = func(s *identity.Session) {
			s.ExpiresAt = time.Now().Add(-time.Second)
		}

		_, err = svc.VerifyTOTP(ctx, session.ID, goodCode)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		assert.NotContains(t, sessions.sessions, session.ID)
	})

	t.Run("account without secret cannot verify", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: testPassword})
		require.NoError(t, err)

		_, err = svc.VerifyTOTP(ctx, session.ID, goodCode)
		assert.ErrorIs(t, err, ErrNoTOTPSecret)
	})
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestAuthService(t)

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Current(ctx, "nope")
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		_, err = svc.Current(ctx, "")
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
	})

	t.Run("expired session is removed", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: testPassword})
		require.NoError(t, err)
		stale := sessions.sessions[session.ID]
		stale.ExpiresAt = time.Now().Add(-time.Second)
		sessions.sessions[session.ID] = stale

		_, err = svc.Current(ctx, session.ID)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		assert.NotContains(t, sessions.sessions, session.ID)
	})

	t.Run("logout", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginRequest{Username: "bob", Password: testPassword})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, session.ID))
		_, err = svc.Current(ctx, session.ID)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		assert.NoError(t, svc.Logout(ctx, ""))
	})
}
