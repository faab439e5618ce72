package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

var ValidTicketStatuses = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed}

func IsValidTicketStatus(status string) bool {
	return slices.Contains(ValidTicketStatuses, TicketStatus(status))
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

var ValidTicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}

func IsValidTicketPriority(priority string) bool {
	return slices.Contains(ValidTicketPriorities, TicketPriority(priority))
}

type Ticket struct {
	RecordHeader
	// Sequence is the per-tenant counter behind Number; unique with tenant_id.
	Sequence        int            `gorm:"not null" json:"sequence"`
	Number          string         `gorm:"size:50;not null" json:"number"`
	ClientID        string         `gorm:"type:uuid;not null;index" json:"client_id"`
	AssignedAgentID *string        `gorm:"type:uuid;index" json:"assigned_agent_id,omitempty"`
	Subject         string         `gorm:"size:500;not null" json:"subject"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Priority        TicketPriority `gorm:"size:20;not null" json:"priority"`
	Status          TicketStatus   `gorm:"size:50;not null;index" json:"status"`
	Module          *string        `gorm:"size:100" json:"module,omitempty"`
	Feature         *string        `gorm:"size:100" json:"feature,omitempty"`
	AttachmentURL   *string        `gorm:"size:500" json:"attachment_url,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// FormatTicketNumber renders the display number for a tenant sequence value.
func FormatTicketNumber(sequence int) string {
	return fmt.Sprintf("TKT-%06d", sequence)
}

// TicketView is a ticket plus the display names of the users it references.
type TicketView struct {
	Ticket
	ClientFirstName *string
	ClientLastName  *string
	AgentFirstName  *string
	AgentLastName   *string
}

func (v *TicketView) ClientName() string {
	return joinName(v.ClientFirstName, v.ClientLastName)
}

func (v *TicketView) AgentName() string {
	return joinName(v.AgentFirstName, v.AgentLastName)
}

func joinName(first, last *string) string {
	var parts []string
	if first != nil && *first != "" {
		parts = append(parts, *first)
	}
	if last != nil && *last != "" {
		parts = append(parts, *last)
	}
	return strings.Join(parts, " ")
}

type TicketFilter struct {
	ClientID string       `json:"client_id"`
	Status   TicketStatus `json:"status"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}

// TicketPatch lists the fields an update may change. Nil means untouched.
type TicketPatch struct {
	Subject         *string
	Description     *string
	Priority        *TicketPriority
	Status          *TicketStatus
	AssignedAgentID *string
}

func (p TicketPatch) IsEmpty() bool {
	return p.Subject == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && p.AssignedAgentID == nil
}

// TicketDocument is the flattened form of a ticket kept in the search index.
type TicketDocument struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	Number            string    `json:"number"`
	ClientID          string    `json:"client_id"`
	ClientName        string    `json:"client_name"`
	AssignedAgentID   string    `json:"assigned_agent_id,omitempty"`
	AssignedAgentName string    `json:"assigned_agent_name,omitempty"`
	Subject           string    `json:"subject"`
	Description       string    `json:"description"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
	Module            string    `json:"module,omitempty"`
	Feature           string    `json:"feature,omitempty"`
	AttachmentURL     string    `json:"attachment_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewTicketDocument(v *TicketView) *TicketDocument {
	return &TicketDocument{
		ID:                v.ID,
		TenantID:          v.TenantID,
		Number:            v.Number,
		ClientID:          v.ClientID,
		ClientName:        v.ClientName(),
		AssignedAgentID:   deref(v.AssignedAgentID),
		AssignedAgentName: v.AgentName(),
		Subject:           v.Subject,
		Description:       v.Description,
		Priority:          string(v.Priority),
		Status:            string(v.Status),
		Module:            deref(v.Module),
		Feature:           deref(v.Feature),
		AttachmentURL:     deref(v.AttachmentURL),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

type TicketSearchQuery struct {
	Text     string `json:"text"`
	ClientID string `json:"client_id"`
	Size     int    `json:"size"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
