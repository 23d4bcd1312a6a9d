package repository

import (
	"context"
	"errors"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"gorm.io/gorm"
)

// ClusterSummaryRepositoryImpl implements the ClusterSummaryRepository interface
type ClusterSummaryRepositoryImpl struct {
	*BaseRepository[models.ClusterSummary, models.ClusterSummaryFilter]
}

// NewClusterSummaryRepository creates a new cluster summary repository
func NewClusterSummaryRepository(db *gorm.DB) ClusterSummaryRepository {
	return &ClusterSummaryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ClusterSummary, models.ClusterSummaryFilter](db),
	}
}

// ByCustomerID retrieves the latest summary for one creator
func (r *ClusterSummaryRepositoryImpl) ByCustomerID(ctx context.Context, customerID uint) (*models.ClusterSummary, error) {
	db := r.getDB(ctx)

	var summary models.ClusterSummary
	err := db.Where("customer_id = ?", customerID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// ByCustomerIDs loads summaries for a set of creators in one query
func (r *ClusterSummaryRepositoryImpl) ByCustomerIDs(ctx context.Context, customerIDs []uint) ([]*models.ClusterSummary, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var summaries []*models.ClusterSummary
	err := db.Where("customer_id IN ?", customerIDs).Find(&summaries).Error
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// Replace swaps the creator's snapshot wholesale: the previous summary
// row is deleted and the new one inserted in the same transaction, so a
// reader never observes a partially updated summary.
func (r *ClusterSummaryRepositoryImpl) Replace(ctx context.Context, summary *models.ClusterSummary) error {
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

	err = db.Where("customer_id = ?", summary.CustomerID).
		Delete(&models.ClusterSummary{}).Error
	if err != nil {
		return err
	}

	err = db.Create(summary).Error
	return err
}
