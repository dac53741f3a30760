package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/application/ticket/usecases"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  createTicketExecutor
	replyTicketUC   replyTicketExecutor
	closeTicketUC   closeTicketExecutor
	reopenTicketUC  reopenTicketExecutor
	getThreadUC     getThreadExecutor
	listTicketsUC   listTicketsExecutor
	snoozeTicketUC  snoozeTicketExecutor
	updateTicketUC  updateTicketExecutor
	createInsightUC createInsightTicketExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC createTicketExecutor,
	replyTicketUC replyTicketExecutor,
	closeTicketUC closeTicketExecutor,
	reopenTicketUC reopenTicketExecutor,
	getThreadUC getThreadExecutor,
	listTicketsUC listTicketsExecutor,
	snoozeTicketUC snoozeTicketExecutor,
	updateTicketUC updateTicketExecutor,
	createInsightUC createInsightTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		replyTicketUC:   replyTicketUC,
		closeTicketUC:   closeTicketUC,
		reopenTicketUC:  reopenTicketUC,
		getThreadUC:     getThreadUC,
		listTicketsUC:   listTicketsUC,
		snoozeTicketUC:  snoozeTicketUC,
		updateTicketUC:  updateTicketUC,
		createInsightUC: createInsightUC,
		logger:          logger,
	}
}

// CreateTicket handles POST /tickets
//
//	@Summary		Open a ticket
//	@Description	Clients open tickets for themselves; staff must name the owning client.
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			ticket	body		CreateTicketRequest	true	"Ticket data"
//	@Success		201		{object}	utils.APIResponse	"Ticket created"
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		403		{object}	utils.APIResponse	"Forbidden"
//	@Failure		429		{object}	utils.APIResponse	"Creating tickets too quickly"
//	@Router			/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// ListTickets handles GET /tickets
//
//	@Summary		List tickets visible to the caller
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			status			query		string	false	"Status filter"
//	@Param			priority		query		string	false	"Priority filter"
//	@Param			include_snoozed	query		bool	false	"Include snoozed tickets (staff only)"
//	@Param			page			query		int		false	"Page number"
//	@Param			page_size		query		int		false	"Page size"
//	@Success		200				{object}	utils.APIResponse
//	@Router			/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetThread handles GET /tickets/:id
//
//	@Summary		Get a ticket with its messages
//	@Description	Internal notes are only returned to staff.
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		403	{object}	utils.APIResponse	"Forbidden"
//	@Failure		404	{object}	utils.APIResponse	"Ticket not found"
//	@Router			/tickets/{id} [get]
func (h *TicketHandler) GetThread(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	result, err := h.getThreadUC.Execute(c.Request.Context(), usecases.GetThreadQuery{Actor: actor, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ReplyTicket handles POST /tickets/:id/messages
//
//	@Summary		Reply to a ticket
//	@Description	Appends a message. Client replies may trigger an automated answer before the response returns.
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			message	body		ReplyTicketRequest	true	"Message"
//	@Success		201		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse	"Ticket is closed"
//	@Router			/tickets/{id}/messages [post]
func (h *TicketHandler) ReplyTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req ReplyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for reply ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.replyTicketUC.Execute(c.Request.Context(), req.ToCommand(actor, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Reply added successfully")
}

// CloseTicket handles POST /tickets/:id/close
//
//	@Summary		Close a ticket
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Failure		409	{object}	utils.APIResponse	"Already closed"
//	@Router			/tickets/{id}/close [post]
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), usecases.CloseTicketCommand{Actor: actor, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed successfully", result)
}

// ReopenTicket handles POST /tickets/:id/reopen
//
//	@Summary		Reopen a closed or escalated ticket
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		int	true	"Ticket ID"
//	@Success		200	{object}	utils.APIResponse
//	@Router			/tickets/{id}/reopen [post]
func (h *TicketHandler) ReopenTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	result, err := h.reopenTicketUC.Execute(c.Request.Context(), usecases.ReopenTicketCommand{Actor: actor, TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket reopened successfully", result)
}

// SnoozeTicket handles PATCH /tickets/:id/snooze
//
//	@Summary		Snooze or unsnooze a ticket
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			snooze	body		SnoozeTicketRequest	true	"Snooze until; null clears"
//	@Success		200		{object}	utils.APIResponse
//	@Router			/tickets/{id}/snooze [patch]
func (h *TicketHandler) SnoozeTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req SnoozeTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	cmd := usecases.SnoozeTicketCommand{Actor: actor, TicketID: ticketID, Until: req.Until}
	result, err := h.snoozeTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket snooze updated", result)
}

// UpdateTicket handles PATCH /tickets/:id
//
//	@Summary		Update ticket attributes
//	@Description	Changes priority, billable flag or project link. Staff only.
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		int					true	"Ticket ID"
//	@Param			ticket	body		UpdateTicketRequest	true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse
//	@Router			/tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	ticketID, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(actor, ticketID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// CreateInsightTicket handles POST /tickets/insights
//
//	@Summary		Open a proactive insight ticket
//	@Description	Admin only. The ticket starts in AI triage with a scripted opener.
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			insight	body		CreateInsightTicketRequest	true	"Insight data"
//	@Success		201		{object}	utils.APIResponse
//	@Router			/tickets/insights [post]
func (h *TicketHandler) CreateInsightTicket(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}

	var req CreateInsightTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createInsightUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Insight ticket created successfully")
}

func principal(c *gin.Context) (authorization.Principal, bool) {
	p, ok := authorization.PrincipalFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return authorization.Principal{}, false
	}
	return p, true
}

func ticketIDParam(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseUintParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid ticket ID"))
		return 0, false
	}
	return id, true
}
