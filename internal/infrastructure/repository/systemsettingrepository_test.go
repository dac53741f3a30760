package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/clientdesk/internal/domain/setting"
	"github.com/clientdesk/clientdesk/internal/shared/constants"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

func TestSystemSettingRepository_Upsert(t *testing.T) {
	repo := NewSystemSettingRepository(setupTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	_, err := repo.Get(ctx, constants.SettingActiveAIModel)
	assert.ErrorIs(t, err, setting.ErrSettingNotFound)

	require.NoError(t, repo.Upsert(ctx, constants.SettingActiveAIModel, "models/gemini-1.5-pro"))
	require.NoError(t, repo.Upsert(ctx, constants.SettingActiveAIModel, "models/gemini-2.0-flash"))

	got, err := repo.Get(ctx, constants.SettingActiveAIModel)
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-2.0-flash", got.Value)
}
