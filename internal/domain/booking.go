package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var ValidBookingStatuses = []BookingStatus{
	BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled,
}

// ActiveBookingStatuses are the statuses of sessions that are still going to happen.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

func IsValidBookingStatus(status string) bool {
	return slices.Contains(ValidBookingStatuses, BookingStatus(status))
}

type LocationType string

const (
	LocationOnline LocationType = "online"
	LocationOnsite LocationType = "onsite"
)

func IsValidLocationType(location string) bool {
	return location == string(LocationOnline) || location == string(LocationOnsite)
}

type Booking struct {
	RecordHeader
	ClientID     string          `gorm:"type:uuid;not null;index" json:"client_id"`
	ConsultantID string          `gorm:"type:uuid;not null;index" json:"consultant_id"`
	StartTime    time.Time       `gorm:"not null;index" json:"start_time"`
	EndTime      time.Time       `gorm:"not null" json:"end_time"`
	ServiceType  string          `gorm:"size:100;not null" json:"service_type"`
	LocationType LocationType    `gorm:"size:20;not null" json:"location_type"`
	Address      *string         `gorm:"size:500" json:"address,omitempty"`
	Instructions *string         `gorm:"type:text" json:"instructions,omitempty"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status       BookingStatus   `gorm:"size:50;not null;index" json:"status"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingView is a booking plus the display names of its client and consultant.
type BookingView struct {
	Booking
	ClientFirstName     *string
	ClientLastName      *string
	ConsultantFirstName *string
	ConsultantLastName  *string
}

func (v *BookingView) ClientName() string {
	return joinName(v.ClientFirstName, v.ClientLastName)
}

func (v *BookingView) ConsultantName() string {
	return joinName(v.ConsultantFirstName, v.ConsultantLastName)
}

type BookingFilter struct {
	ClientID     string          `json:"client_id"`
	ConsultantID string          `json:"consultant_id"`
	Statuses     []BookingStatus `json:"statuses"`
	StartFrom    time.Time       `json:"start_from"`
	StartTo      time.Time       `json:"start_to"`
	Limit        int             `json:"limit"`
}
