// Package models contains domain entities and business models for the matchmaking platform
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Customer is one authenticated identity on the platform. Creators carry
// declared content categories and languages consumed by the matchmaking
// scorer; businesses carry the company fields used on campaign requests.
// Account provisioning itself happens in the external identity service.
type Customer struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uk_customers_uuid" json:"uuid"`
	AccountTypeID uint        `gorm:"not null;index:idx_customers_account_type_id" json:"account_type_id"`
	AccountType   AccountType `gorm:"foreignKey:AccountTypeID;references:ID" json:"account_type,omitempty"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Email       string `gorm:"size:255;not null;uniqueIndex:idx_customers_email" json:"email"`
	Mobile      string `gorm:"size:15;not null;uniqueIndex:idx_customers_mobile" json:"mobile"`

	// Creator profile fields (empty for businesses)
	ContentCategories pq.StringArray `gorm:"type:text[]" json:"content_categories,omitempty"`
	Languages         pq.StringArray `gorm:"type:text[]" json:"languages,omitempty"`
	ChannelURL        *string        `gorm:"size:255" json:"channel_url,omitempty"`

	// Business profile fields (empty for creators)
	CompanyName    *string `gorm:"size:100" json:"company_name,omitempty"`
	CompanyPincode *string `gorm:"size:6" json:"company_pincode,omitempty"`

	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash

	IsActive *bool `gorm:"default:true;index:idx_customers_is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_customers_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	AuditLogs        []AuditLog       `gorm:"foreignKey:CustomerID" json:"-"`
	AudienceUploads  []AudienceUpload `gorm:"foreignKey:CustomerID" json:"-"`
	ClusterSummaries []ClusterSummary `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// IsCreator reports whether the loaded account type is the creator role
func (c *Customer) IsCreator() bool {
	return c.AccountType.TypeName == AccountTypeCreator
}

// IsBusiness reports whether the loaded account type is the business role
func (c *Customer) IsBusiness() bool {
	return c.AccountType.TypeName == AccountTypeBusiness
}

// CustomerFilter represents filter criteria for customer queries
type CustomerFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	AccountTypeID   *uint
	AccountTypeName *string
	Email           *string
	Mobile          *string
	IsActive        *bool
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}
