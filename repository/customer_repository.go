package repository

import (
	"context"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"gorm.io/gorm"
)

// CustomerRepositoryImpl implements the CustomerRepository interface
type CustomerRepositoryImpl struct {
	*BaseRepository[models.Customer, models.CustomerFilter]
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &CustomerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Customer, models.CustomerFilter](db),
	}
}

// ByID retrieves a customer by ID with the account type preloaded
func (r *CustomerRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Customer, error) {
	db := r.getDB(ctx)

	var customer models.Customer
	err := db.Preload("AccountType").Last(&customer, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &customer, nil
}

// ByUUID retrieves a customer by UUID
func (r *CustomerRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Customer, error) {
	parsedUUID, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.CustomerFilter{UUID: &parsedUUID}
	customers, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(customers) == 0 {
		return nil, nil
	}

	return customers[0], nil
}

// ActiveCreators retrieves the full catalog of active creator accounts
func (r *CustomerRepositoryImpl) ActiveCreators(ctx context.Context) ([]*models.Customer, error) {
	typeName := models.AccountTypeCreator
	active := true
	filter := models.CustomerFilter{AccountTypeName: &typeName, IsActive: &active}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// ByFilter retrieves customers based on filter criteria
func (r *CustomerRepositoryImpl) ByFilter(ctx context.Context, filter models.CustomerFilter, orderBy string, limit, offset int) ([]*models.Customer, error) {
	db := r.getDB(ctx)

	var customers []*models.Customer
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	query = query.Preload("AccountType")

	err := query.Find(&customers).Error
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *CustomerRepositoryImpl) applyFilter(db *gorm.DB, filter models.CustomerFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("customers.id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("customers.uuid = ?", *filter.UUID)
	}
	if filter.AccountTypeID != nil {
		db = db.Where("customers.account_type_id = ?", *filter.AccountTypeID)
	}
	if filter.AccountTypeName != nil {
		db = db.Joins("JOIN account_types ON customers.account_type_id = account_types.id").
			Where("account_types.type_name = ?", *filter.AccountTypeName)
	}
	if filter.Email != nil {
		db = db.Where("customers.email = ?", *filter.Email)
	}
	if filter.Mobile != nil {
		db = db.Where("customers.mobile = ?", *filter.Mobile)
	}
	if filter.IsActive != nil {
		db = db.Where("customers.is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("customers.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("customers.created_at < ?", *filter.CreatedBefore)
	}

	return db
}
