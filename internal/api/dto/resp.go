package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AuthUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	TenantID   string `json:"tenantId"`
	TenantName string `json:"tenantName"`
	Phone      string `json:"phone"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

type TicketResponse struct {
	ID                string    `json:"id"`
	Number            string    `json:"ticketNumber"`
	Subject           string    `json:"subject"`
	Description       string    `json:"description"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
	Module            string    `json:"module,omitempty"`
	Category          string    `json:"category,omitempty"`
	AttachmentURL     string    `json:"attachmentUrl,omitempty"`
	ClientID          string    `json:"clientId"`
	ClientName        string    `json:"clientName"`
	AssignedAgentID   string    `json:"assignedAgentId,omitempty"`
	AssignedAgentName string    `json:"assignedAgentName,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	FullName   string    `json:"fullName"`
	Role       string    `json:"role"`
	Phone      string    `json:"phone"`
	IsActive   bool      `json:"isActive"`
	TenantName string    `json:"tenantName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type RoleGroup struct {
	Role  string        `json:"role"`
	Count int           `json:"count"`
	Users []UserSummary `json:"users"`
}

type StaffResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization,omitempty"`
}

type BookingResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	ClientName     string          `json:"clientName"`
	ConsultantID   string          `json:"consultantId"`
	ConsultantName string          `json:"consultantName"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	ServiceType    string          `json:"serviceType"`
	LocationType   string          `json:"locationType"`
	Address        string          `json:"address,omitempty"`
	Instructions   string          `json:"instructions,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type DashboardStats struct {
	TotalTickets      int64 `json:"totalTickets"`
	OpenTickets       int64 `json:"openTickets"`
	InProgressTickets int64 `json:"inProgressTickets"`
	ResolvedTickets   int64 `json:"resolvedTickets"`
	PendingBookings   int64 `json:"pendingBookings"`
	UpcomingBookings  int64 `json:"upcomingBookings"`
}

type DashboardUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	TenantID string `json:"tenantId"`
}

type DashboardResponse struct {
	Stats          DashboardStats    `json:"stats"`
	RecentTickets  []TicketResponse  `json:"recentTickets"`
	RecentBookings []BookingResponse `json:"recentBookings"`
	User           DashboardUser     `json:"user"`
}

type TenantResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subdomain    string `json:"subdomain"`
	CustomDomain string `json:"customDomain,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
	PrimaryColor string `json:"primaryColor"`
}

// Error is the body of every non-2xx response produced by a handler.
type Error struct {
	Error string `json:"error"`
}
