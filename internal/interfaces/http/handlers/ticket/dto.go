package ticket

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/application/ticket/usecases"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

type CreateTicketRequest struct {
	// OwnerID is required when staff open a ticket on a client's behalf.
	OwnerID       uint   `json:"owner_id"`
	Subject       string `json:"subject" binding:"required,max=200"`
	Body          string `json:"body" binding:"required_without=AttachmentRef,max=10000"`
	Priority      string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	AttachmentRef string `json:"attachment_ref" binding:"omitempty,max=500"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Principal) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:         actor,
		OwnerID:       r.OwnerID,
		Subject:       r.Subject,
		Body:          r.Body,
		Priority:      r.Priority,
		AttachmentRef: r.AttachmentRef,
	}
}

type ReplyTicketRequest struct {
	Body          string `json:"body" binding:"required_without=AttachmentRef,max=10000"`
	IsInternal    bool   `json:"is_internal"`
	AttachmentRef string `json:"attachment_ref" binding:"omitempty,max=500"`
}

func (r *ReplyTicketRequest) ToCommand(actor authorization.Principal, ticketID uint) usecases.ReplyTicketCommand {
	return usecases.ReplyTicketCommand{
		Actor:         actor,
		TicketID:      ticketID,
		Body:          r.Body,
		IsInternal:    r.IsInternal,
		AttachmentRef: r.AttachmentRef,
	}
}

type ListTicketsRequest struct {
	Status         string `form:"status" binding:"omitempty,oneof=open waiting_client escalated ai_triage closed"`
	Priority       string `form:"priority" binding:"omitempty,oneof=low normal high urgent"`
	IncludeSnoozed bool   `form:"include_snoozed"`
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
}

func (r *ListTicketsRequest) ToQuery(actor authorization.Principal) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:          actor,
		Status:         r.Status,
		Priority:       r.Priority,
		IncludeSnoozed: r.IncludeSnoozed,
		Page:           r.Page,
		PageSize:       r.PageSize,
	}
}

// SnoozeTicketRequest clears the snooze when Until is null.
type SnoozeTicketRequest struct {
	Until *time.Time `json:"until"`
}

type UpdateTicketRequest struct {
	Priority     *string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	Billable     *bool   `json:"billable"`
	ProjectID    *uint   `json:"project_id" binding:"omitempty,min=1"`
	ClearProject bool    `json:"clear_project"`
}

func (r *UpdateTicketRequest) ToCommand(actor authorization.Principal, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:        actor,
		TicketID:     ticketID,
		Priority:     r.Priority,
		Billable:     r.Billable,
		ProjectID:    r.ProjectID,
		ClearProject: r.ClearProject,
	}
}

type CreateInsightTicketRequest struct {
	OwnerID  uint   `json:"owner_id" binding:"required"`
	Subject  string `json:"subject" binding:"required,max=200"`
	Insight  string `json:"insight" binding:"required,max=10000"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
}

func (r *CreateInsightTicketRequest) ToCommand(actor authorization.Principal) usecases.CreateInsightTicketCommand {
	return usecases.CreateInsightTicketCommand{
		Actor:    actor,
		OwnerID:  r.OwnerID,
		Subject:  r.Subject,
		Insight:  r.Insight,
		Priority: r.Priority,
	}
}
