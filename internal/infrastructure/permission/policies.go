package permission

import (
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const (
	ResourceTicket       = "ticket"
	ResourceNotification = "notification"
	ResourceAIModel      = "ai_model"
)

const (
	ActionCreate        = "create"
	ActionRead          = "read"
	ActionReply         = "reply"
	ActionNote          = "note"
	ActionClose         = "close"
	ActionReopen        = "reopen"
	ActionSnooze        = "snooze"
	ActionUpdate        = "update"
	ActionCreateInsight = "create_insight"
	ActionRefresh       = "refresh"
)

// DefaultPolicies is the coarse role gate. Ownership and assignment are checked by the use cases.
func DefaultPolicies() [][]string {
	return [][]string{
		{"admin", ResourceTicket, ActionCreate},
		{"admin", ResourceTicket, ActionRead},
		{"admin", ResourceTicket, ActionReply},
		{"admin", ResourceTicket, ActionNote},
		{"admin", ResourceTicket, ActionClose},
		{"admin", ResourceTicket, ActionReopen},
		{"admin", ResourceTicket, ActionSnooze},
		{"admin", ResourceTicket, ActionUpdate},
		{"admin", ResourceTicket, ActionCreateInsight},
		{"admin", ResourceAIModel, ActionRefresh},
		{"admin", ResourceNotification, ActionRead},
		{"admin", ResourceNotification, ActionUpdate},

		{"partner", ResourceTicket, ActionCreate},
		{"partner", ResourceTicket, ActionRead},
		{"partner", ResourceTicket, ActionReply},
		{"partner", ResourceTicket, ActionNote},
		{"partner", ResourceTicket, ActionSnooze},
		{"partner", ResourceTicket, ActionUpdate},
		{"partner", ResourceNotification, ActionRead},
		{"partner", ResourceNotification, ActionUpdate},

		{"client", ResourceTicket, ActionCreate},
		{"client", ResourceTicket, ActionRead},
		{"client", ResourceTicket, ActionReply},
		{"client", ResourceTicket, ActionClose},
		{"client", ResourceTicket, ActionReopen},
		{"client", ResourceNotification, ActionRead},
		{"client", ResourceNotification, ActionUpdate},
	}
}

// InitDefaultPolicies adds any missing default policy. Existing rows are kept.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies() {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return err
		}
	}

	log.Infow("permission policies initialized", "count", len(DefaultPolicies()))
	return nil
}
