// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
)

// contextKey is the typed key used to carry a transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

// CustomerRepository provides customer data access
type CustomerRepository interface {
	ByID(ctx context.Context, id uint) (*models.Customer, error)
	ByUUID(ctx context.Context, uuid string) (*models.Customer, error)
	ByFilter(ctx context.Context, filter models.CustomerFilter, orderBy string, limit, offset int) ([]*models.Customer, error)
	ActiveCreators(ctx context.Context) ([]*models.Customer, error)
	Save(ctx context.Context, customer *models.Customer) error
}

// GeoReferenceRepository provides pincode reference lookups
type GeoReferenceRepository interface {
	ByPincode(ctx context.Context, pincode string) (*models.GeoReference, error)
	SeedBatch(ctx context.Context, rows []*models.GeoReference) error
	Count(ctx context.Context) (int64, error)
}

// AudienceUploadRepository provides upload run bookkeeping
type AudienceUploadRepository interface {
	ByID(ctx context.Context, id uint) (*models.AudienceUpload, error)
	ByUUID(ctx context.Context, uuid string) (*models.AudienceUpload, error)
	ByCustomerID(ctx context.Context, customerID uint, limit, offset int) ([]*models.AudienceUpload, error)
	PendingUploads(ctx context.Context, limit int) ([]*models.AudienceUpload, error)
	Save(ctx context.Context, upload *models.AudienceUpload) error
	MarkCompleted(ctx context.Context, id uint, validCount, rejectCount, unresolvedCount int, rejectDetail json.RawMessage) error
	MarkFailed(ctx context.Context, id uint, reason string) error
}

// ClusterSummaryRepository stores per-creator clustering snapshots
type ClusterSummaryRepository interface {
	ByCustomerID(ctx context.Context, customerID uint) (*models.ClusterSummary, error)
	ByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*models.ClusterSummary, error)
	Replace(ctx context.Context, summary *models.ClusterSummary) error
}

// CampaignRepository provides campaign data access
type CampaignRepository interface {
	ByID(ctx context.Context, id uint) (*models.Campaign, error)
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	ByFilter(ctx context.Context, filter models.CampaignFilter, orderBy string, limit, offset int) ([]*models.Campaign, error)
	Count(ctx context.Context, filter models.CampaignFilter) (int64, error)
	Save(ctx context.Context, campaign *models.Campaign) error
	// UpdateStatusCAS transitions status only when updated_at still
	// matches the caller's snapshot, returning false on a lost race.
	UpdateStatusCAS(ctx context.Context, id uint, from models.CampaignStatus, to models.CampaignStatus, expectedUpdatedAt *time.Time, responseMessage *string) (bool, error)
}

// AuditLogRepository provides audit trail persistence
type AuditLogRepository interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	ByFilter(ctx context.Context, filter models.AuditLogFilter, orderBy string, limit, offset int) ([]*models.AuditLog, error)
}
