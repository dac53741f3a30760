package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDto "github.com/clientdesk/clientdesk/internal/application/notification/dto"
	"github.com/clientdesk/clientdesk/internal/interfaces/http/handlers/testutil"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// =====================================================================
// Mocks
// =====================================================================

type mockListNotifications struct {
	got    appDto.ListNotificationsRequest
	result *appDto.NotificationListDTO
	err    error
}

func (m *mockListNotifications) Execute(_ context.Context, req appDto.ListNotificationsRequest) (*appDto.NotificationListDTO, error) {
	m.got = req
	return m.result, m.err
}

type mockMarkRead struct {
	gotID     uint
	gotUserID uint
	err       error
}

func (m *mockMarkRead) Execute(_ context.Context, id uint, userID uint) error {
	m.gotID, m.gotUserID = id, userID
	return m.err
}

type mockRefresher struct {
	model string
	err   error
}

func (m *mockRefresher) RefreshModel(context.Context) (string, error) {
	return m.model, m.err
}

// =====================================================================
// NotificationHandler
// =====================================================================

func TestListNotifications(t *testing.T) {
	list := &mockListNotifications{result: &appDto.NotificationListDTO{
		Items:    []*appDto.NotificationDTO{{ID: 3, Message: "Ticket #7 escalated"}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}}
	h := NewNotificationHandler(list, &mockMarkRead{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetQueryParams(c, map[string]string{"unread": "true"})
	testutil.SetAuthContext(c, 5, authorization.RoleClient)

	h.ListNotifications(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), list.got.UserID)
	assert.True(t, list.got.UnreadOnly)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(1), data.Total)
}

func TestListNotifications_Unauthenticated(t *testing.T) {
	h := NewNotificationHandler(&mockListNotifications{}, &mockMarkRead{}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)

	h.ListNotifications(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarkNotificationAsRead(t *testing.T) {
	tests := []struct {
		name   string
		param  string
		err    error
		status int
	}{
		{name: "success", param: "3", status: http.StatusOK},
		{name: "invalid id", param: "x", status: http.StatusBadRequest},
		{name: "not found", param: "3", err: errors.NewNotFoundError("notification not found"), status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mark := &mockMarkRead{err: tt.err}
			h := NewNotificationHandler(&mockListNotifications{}, mark, logger.NewNopLogger())

			c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/"+tt.param+"/read", nil)
			testutil.SetURLParam(c, "id", tt.param)
			testutil.SetAuthContext(c, 5, authorization.RoleClient)

			h.MarkNotificationAsRead(c)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, uint(3), mark.gotID)
				assert.Equal(t, uint(5), mark.gotUserID)
			}
		})
	}
}

// =====================================================================
// AIModelHandler
// =====================================================================

func TestRefreshModel(t *testing.T) {
	h := NewAIModelHandler(&mockRefresher{model: "models/gemini-2.0-flash"}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/ai/model/refresh", nil)

	h.RefreshModel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "models/gemini-2.0-flash")
}

func TestRefreshModel_ProviderError(t *testing.T) {
	h := NewAIModelHandler(&mockRefresher{err: stderrors.New("catalog down")}, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/ai/model/refresh", nil)

	h.RefreshModel(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRefreshModel_Disabled(t *testing.T) {
	h := NewAIModelHandler(nil, logger.NewNopLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/ai/model/refresh", nil)

	h.RefreshModel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// HealthHandler
// =====================================================================

func TestHealthCheck(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{"database": func(context.Context) error { return nil }})
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)

		h.HealthCheck(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return stderrors.New("dial tcp: refused") },
		})
		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)

		h.HealthCheck(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	})
}
