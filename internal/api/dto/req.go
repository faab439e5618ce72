package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// TenantSubdomain is only needed when the email exists in more than one tenant.
	TenantSubdomain string `json:"tenantSubdomain"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	TenantSubdomain string `json:"tenantSubdomain"`
}

// CreateTicketRequest is bound from a multipart form.
type CreateTicketRequest struct {
	Subject     string `form:"subject"`
	Description string `form:"description"`
	Priority    string `form:"priority"`
	Module      string `form:"module"`
	Category    string `form:"category"`
}

// AttachmentUpload is a file received with a ticket.
type AttachmentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UpdateTicketRequest fields left empty are not changed.
type UpdateTicketRequest struct {
	Subject         string `json:"subject"`
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	AssignedAgentID string `json:"assignedAgentId"`
}

type TicketListQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type TicketSearchRequest struct {
	Query string `form:"q"`
	Size  int    `form:"size"`
}

type CreateBookingRequest struct {
	ClientID     string          `json:"clientId"`
	ConsultantID string          `json:"consultantId"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      time.Time       `json:"endTime"`
	ServiceType  string          `json:"serviceType"`
	LocationType string          `json:"locationType"`
	Address      string          `json:"address"`
	Instructions string          `json:"instructions"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingListQuery accepts RFC3339 or YYYY-MM-DD bounds on the start time.
type BookingListQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
