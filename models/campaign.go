// Package models contains domain entities and business models for the matchmaking platform
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the status of a collaboration campaign
type CampaignStatus string

const (
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusAccepted  CampaignStatus = "accepted"
	CampaignStatusDeclined  CampaignStatus = "declined"
	CampaignStatusCancelled CampaignStatus = "cancelled"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusPending, CampaignStatusAccepted, CampaignStatusDeclined,
		CampaignStatusCancelled, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can leave this status
func (s CampaignStatus) IsTerminal() bool {
	switch s {
	case CampaignStatusDeclined, CampaignStatusCancelled, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// campaignTransitions is the full transition table. Anything absent here
// is an invalid transition and must leave the record unchanged.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusPending:  {CampaignStatusAccepted, CampaignStatusDeclined, CampaignStatusCancelled},
	CampaignStatusAccepted: {CampaignStatusCompleted, CampaignStatusCancelled},
}

// CanTransitionTo reports whether the target status is reachable from s
// in one step. Re-entering the current status is never allowed, so a
// retried transition surfaces as invalid instead of silently succeeding.
func (s CampaignStatus) CanTransitionTo(target CampaignStatus) bool {
	for _, next := range campaignTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// CampaignActor identifies which side of the collaboration acts
type CampaignActor string

const (
	CampaignActorBusiness CampaignActor = "business"
	CampaignActorCreator  CampaignActor = "creator"
)

// CampaignDetails represents the JSON details of a campaign request
type CampaignDetails struct {
	Title     *string `json:"title,omitempty"`
	Message   *string `json:"message,omitempty"`
	BudgetMin *uint64 `json:"budget_min,omitempty"`
	BudgetMax *uint64 `json:"budget_max,omitempty"`
}

// Value implements the driver.Valuer interface for CampaignDetails
func (d CampaignDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for CampaignDetails
func (d *CampaignDetails) Scan(value any) error {
	if value == nil {
		*d = CampaignDetails{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CampaignDetails", value)
	}

	return json.Unmarshal(bytes, d)
}

// Campaign is one collaboration request between a business and a
// creator. Status moves only through the transitions in
// campaignTransitions, driven by the campaign flow.
type Campaign struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`

	BusinessID uint      `gorm:"not null;index:idx_campaigns_business_id" json:"business_id"`
	Business   *Customer `gorm:"foreignKey:BusinessID;references:ID" json:"business,omitempty"`
	CreatorID  uint      `gorm:"not null;index:idx_campaigns_creator_id" json:"creator_id"`
	Creator    *Customer `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`

	Status  CampaignStatus  `gorm:"size:20;not null;index:idx_campaigns_status" json:"status"`
	Details CampaignDetails `gorm:"type:jsonb" json:"details"`

	ResponseMessage *string `gorm:"type:text" json:"response_message,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_campaigns_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignFilter represents filter criteria for campaign queries
type CampaignFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	BusinessID    *uint
	CreatorID     *uint
	Status        *CampaignStatus
	Title         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}
