package repository

import (
	"context"
	"errors"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"gorm.io/gorm"
)

// GeoReferenceRepositoryImpl implements the GeoReferenceRepository interface
type GeoReferenceRepositoryImpl struct {
	*BaseRepository[models.GeoReference, models.GeoReferenceFilter]
}

// NewGeoReferenceRepository creates a new geo reference repository
func NewGeoReferenceRepository(db *gorm.DB) GeoReferenceRepository {
	return &GeoReferenceRepositoryImpl{
		BaseRepository: NewBaseRepository[models.GeoReference, models.GeoReferenceFilter](db),
	}
}

// ByPincode resolves one pincode; a miss returns (nil, nil)
func (r *GeoReferenceRepositoryImpl) ByPincode(ctx context.Context, pincode string) (*models.GeoReference, error) {
	db := r.getDB(ctx)

	var ref models.GeoReference
	err := db.Where("pincode = ?", pincode).First(&ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ref, nil
}

// SeedBatch bulk-inserts reference rows, skipping pincodes already present
func (r *GeoReferenceRepositoryImpl) SeedBatch(ctx context.Context, rows []*models.GeoReference) error {
	if len(rows) == 0 {
		return nil
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.CreateInBatches(rows, 500).Error
	return err
}

// Count returns the number of reference rows
func (r *GeoReferenceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.GeoReference{}).Count(&count).Error
	return count, err
}
