package domain

import (
	"time"
)

const DefaultPrimaryColor = "#0066cc"

type Tenant struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Subdomain    string    `gorm:"size:100;not null;uniqueIndex" json:"subdomain"`
	CustomDomain *string   `gorm:"size:255;uniqueIndex" json:"custom_domain,omitempty"`
	LogoURL      *string   `gorm:"size:500" json:"logo_url,omitempty"`
	PrimaryColor string    `gorm:"size:7;not null" json:"primary_color"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}
