package repository

import (
	"context"
	"testing"

	"github.com/kurirapp/courier-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourierRepository_Create(t *testing.T) {
	tdb := setupTestDB(t)
	repo := NewCourierRepository(tdb.DB)
	ctx := context.Background()

	t.Run("create courier successfully", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Courier{
			Username:     "alice",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "alice", created.Username)
		assert.NotZero(t, created.CreatedAt)
	})

	t.Run("duplicate username leaves a single row", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Courier{
			Username:     "alice",
			PasswordHash: "$2a$10$otherhash",
		})
		assert.ErrorIs(t, err, ErrDuplicateUsername)
		assert.Nil(t, created)

		var count int64
		err = tdb.rawDB.Model(&CourierEntity{}).Where("username = ?", "alice").Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestCourierRepository_GetByUsername(t *testing.T) {
	tdb := setupTestDB(t)
	repo := NewCourierRepository(tdb.DB)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Courier{
		Username:     "bob",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)

	t.Run("existing courier", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	})

	t.Run("unknown courier", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrCourierNotFound)
		assert.Nil(t, got)
	})
}
