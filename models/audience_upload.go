// Package models contains domain entities and business models for the matchmaking platform
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UploadStatus represents the lifecycle of one audience data upload
type UploadStatus string

const (
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusFailed     UploadStatus = "failed"
)

// String returns the string representation of the status
func (s UploadStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadStatusProcessing, UploadStatusCompleted, UploadStatusFailed:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for UploadStatus
func (s *UploadStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = UploadStatus(v)
	case []byte:
		*s = UploadStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into UploadStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for UploadStatus
func (s UploadStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid UploadStatus: %s", s)
	}
	return string(s), nil
}

// Upload format constants (declared by the caller)
const (
	UploadFormatCSV  = "csv"
	UploadFormatXLSX = "xlsx"
	UploadFormatJSON = "json"
)

// AudienceUpload tracks one ingestion run of creator-submitted viewer
// location data: validation counts, rejects, and the terminal outcome.
type AudienceUpload struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_audience_uploads_uuid" json:"uuid"`
	CustomerID uint      `gorm:"not null;index:idx_audience_uploads_customer_id" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`

	Format  string       `gorm:"size:10;not null" json:"format"`
	Status  UploadStatus `gorm:"size:20;not null;index:idx_audience_uploads_status" json:"status"`
	RawData []byte       `gorm:"type:bytea" json:"-"`

	ValidCount      *int            `json:"valid_count,omitempty"`
	RejectCount     *int            `json:"reject_count,omitempty"`
	UnresolvedCount *int            `json:"unresolved_count,omitempty"`
	RejectDetail    json.RawMessage `gorm:"type:jsonb" json:"reject_detail,omitempty"`
	FailureReason   *string         `gorm:"size:100" json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_audience_uploads_created_at" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (AudienceUpload) TableName() string {
	return "audience_uploads"
}

// AudienceUploadFilter represents filter criteria for upload queries
type AudienceUploadFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	CustomerID    *uint
	Status        *UploadStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
