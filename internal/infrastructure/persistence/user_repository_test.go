package persistence

import (
	"context"
	"testing"

	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user := &identity.User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     "alice",
		PasswordHash: "$2a$12$placeholder",
		TotpSecret:   "JBSWY3DPEHPK3PXP",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	t.Run("find by username ignores case", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "  Alice ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.True(t, found.HasTOTP())
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := &identity.User{BaseEntity: shared.NewBaseEntity(), Username: "alice", PasswordHash: "x"}
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "bob")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
