package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

func seedUsers(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	users := []models.UserModel{
		{ID: 1, Role: "admin", Name: "Ada", Email: "ada@example.com"},
		{ID: 2, Role: "partner", Name: "Pat", Email: "pat@example.com"},
		{ID: 3, Role: "partner", Name: "Quinn", Email: "quinn@example.com"},
		{ID: 10, Role: "client", Business: "Acme", Email: "ops@acme.test"},
		{ID: 11, Role: "client", Name: "Bea", Email: "bea@example.com"},
	}
	require.NoError(t, gdb.Create(&users).Error)
	links := []models.PartnerClientModel{
		{PartnerID: 2, ClientID: 10},
		{PartnerID: 2, ClientID: 11},
		{PartnerID: 3, ClientID: 11},
	}
	require.NoError(t, gdb.Create(&links).Error)
}

func TestUserDirectory(t *testing.T) {
	gdb := setupTestDB(t)
	seedUsers(t, gdb)
	dir := NewUserDirectory(gdb, logger.NewNopLogger())
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		u, err := dir.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, authorization.RoleClient, u.Role)
		assert.Equal(t, "ops@acme.test", u.DisplayName())

		_, err = dir.GetByID(ctx, 99)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("list admins", func(t *testing.T) {
		admins, err := dir.ListByRole(ctx, authorization.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, admins, 1)
		assert.Equal(t, uint(1), admins[0].ID)
	})

	t.Run("partners of client", func(t *testing.T) {
		partners, err := dir.ListPartnersOfClient(ctx, 11)
		require.NoError(t, err)
		require.Len(t, partners, 2)
		assert.Equal(t, uint(2), partners[0].ID)
		assert.Equal(t, uint(3), partners[1].ID)

		none, err := dir.ListPartnersOfClient(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("clients of partner", func(t *testing.T) {
		ids, err := dir.ListClientIDsOfPartner(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []uint{10, 11}, ids)

		ids, err = dir.ListClientIDsOfPartner(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})

	t.Run("is partner of", func(t *testing.T) {
		ok, err := dir.IsPartnerOf(ctx, 3, 11)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = dir.IsPartnerOf(ctx, 3, 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
