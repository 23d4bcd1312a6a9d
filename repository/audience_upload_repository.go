package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"gorm.io/gorm"
)

// AudienceUploadRepositoryImpl implements the AudienceUploadRepository interface
type AudienceUploadRepositoryImpl struct {
	*BaseRepository[models.AudienceUpload, models.AudienceUploadFilter]
}

// NewAudienceUploadRepository creates a new audience upload repository
func NewAudienceUploadRepository(db *gorm.DB) AudienceUploadRepository {
	return &AudienceUploadRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AudienceUpload, models.AudienceUploadFilter](db),
	}
}

// ByUUID retrieves an upload by UUID
func (r *AudienceUploadRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.AudienceUpload, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	db := r.getDB(ctx)

	var upload models.AudienceUpload
	err = db.Where("uuid = ?", parsedUUID).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &upload, nil
}

// ByCustomerID retrieves uploads by customer ID with pagination
func (r *AudienceUploadRepositoryImpl) ByCustomerID(ctx context.Context, customerID uint, limit, offset int) ([]*models.AudienceUpload, error) {
	db := r.getDB(ctx)

	var uploads []*models.AudienceUpload
	query := db.Where("customer_id = ?", customerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	return uploads, nil
}

// PendingUploads retrieves uploads that still need processing, oldest first
func (r *AudienceUploadRepositoryImpl) PendingUploads(ctx context.Context, limit int) ([]*models.AudienceUpload, error) {
	db := r.getDB(ctx)

	var uploads []*models.AudienceUpload
	query := db.Where("status = ?", models.UploadStatusProcessing).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	return uploads, nil
}

// MarkCompleted records the outcome of a successful run and drops the raw payload
func (r *AudienceUploadRepositoryImpl) MarkCompleted(ctx context.Context, id uint, validCount, rejectCount, unresolvedCount int, rejectDetail json.RawMessage) error {
	db := r.getDB(ctx)

	now := utils.UTCNow()
	return db.Model(&models.AudienceUpload{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           models.UploadStatusCompleted,
			"valid_count":      validCount,
			"reject_count":     rejectCount,
			"unresolved_count": unresolvedCount,
			"reject_detail":    rejectDetail,
			"raw_data":         nil,
			"updated_at":       now,
			"completed_at":     now,
		}).Error
}

// MarkFailed records a run-level failure with its machine-readable reason
func (r *AudienceUploadRepositoryImpl) MarkFailed(ctx context.Context, id uint, reason string) error {
	db := r.getDB(ctx)

	return db.Model(&models.AudienceUpload{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         models.UploadStatusFailed,
			"failure_reason": reason,
			"updated_at":     utils.UTCNow(),
		}).Error
}
