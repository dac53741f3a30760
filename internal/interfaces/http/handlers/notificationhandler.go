package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/application/notification/dto"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

type NotificationHandler struct {
	listUC     listNotificationsExecutor
	markReadUC markNotificationAsReadExecutor
	logger     logger.Interface
}

func NewNotificationHandler(listUC listNotificationsExecutor, markReadUC markNotificationAsReadExecutor, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		listUC:     listUC,
		markReadUC: markReadUC,
		logger:     logger,
	}
}

// ListNotifications handles GET /notifications
//
//	@Summary		List the caller's notifications
//	@Tags			notifications
//	@Produce		json
//	@Security		Bearer
//	@Param			unread		query		bool	false	"Only unread notifications"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	utils.APIResponse
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	p, ok := authorization.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	pagination := utils.ParsePagination(c)
	req := dto.ListNotificationsRequest{
		UserID:     p.UserID,
		UnreadOnly: c.Query("unread") == "true",
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	}

	result, err := h.listUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// MarkNotificationAsRead handles PATCH /notifications/:id/read
//
//	@Summary		Mark a notification read
//	@Tags			notifications
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Notification ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse	"Notification not found"
//	@Router			/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	p, ok := authorization.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	id, ok := utils.ParseUintParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid notification ID"))
		return
	}

	if err := h.markReadUC.Execute(c.Request.Context(), id, p.UserID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}
