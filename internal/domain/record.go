package domain

import "time"

// RecordHeader carries the columns every tenant-owned row shares.
// Entities embed it instead of pointing at each other; relations are plain ids.
type RecordHeader struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID  string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
