package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IdempotencyKey stores the response of a processed request so a retried
// submission replays it instead of creating a second record.
type IdempotencyKey struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string         `gorm:"uniqueIndex;size:255;not null"` // Idempotency-Key header value
	Endpoint     string         `gorm:"size:255;not null"`             // e.g. "POST /api/v1/invoices"
	RequestHash  string         `gorm:"size:64;not null"`              // SHA256 of the request body
	ResponseCode int            `gorm:"not null"`
	ResponseBody datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	ExpiresAt    time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
