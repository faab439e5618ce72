package domain

import "time"

type TicketEventType string

const (
	TicketEventCreated TicketEventType = "ticket.created"
	TicketEventUpdated TicketEventType = "ticket.updated"
)

// TicketEvent is broadcast to a tenant's live subscribers after a ticket changes.
type TicketEvent struct {
	Type            TicketEventType `json:"type"`
	TenantID        string          `json:"tenant_id"`
	TicketID        string          `json:"ticket_id"`
	Number          string          `json:"number"`
	ClientID        string          `json:"client_id"`
	AssignedAgentID string          `json:"assigned_agent_id,omitempty"`
	Status          TicketStatus    `json:"status"`
	Priority        TicketPriority  `json:"priority"`
	Subject         string          `json:"subject"`
	Timestamp       time.Time       `json:"timestamp"`
}

func NewTicketEvent(eventType TicketEventType, t *Ticket) TicketEvent {
	return TicketEvent{
		Type:            eventType,
		TenantID:        t.TenantID,
		TicketID:        t.ID,
		Number:          t.Number,
		ClientID:        t.ClientID,
		AssignedAgentID: deref(t.AssignedAgentID),
		Status:          t.Status,
		Priority:        t.Priority,
		Subject:         t.Subject,
		Timestamp:       time.Now().UTC(),
	}
}
