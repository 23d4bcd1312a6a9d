// Package testing provides test utilities and database setup for testing the matchmaking platform
package testing

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCustomer creates a test customer with the specified account type
func (tf *TestFixtures) CreateTestCustomer(accountTypeName string) (*models.Customer, error) {
	// Get account type
	var accountType models.AccountType
	err := tf.DB.DB.Where("type_name = ?", accountTypeName).Last(&accountType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find account type %s: %w", accountTypeName, err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	suffix := rand.Intn(900000000) + 100000000
	customer := &models.Customer{
		UUID:          uuid.New(),
		AccountTypeID: accountType.ID,
		DisplayName:   fmt.Sprintf("Test %s %d", accountType.DisplayName, suffix),
		Email:         fmt.Sprintf("test.%d.%d@example.com", accountType.ID, suffix),
		Mobile:        fmt.Sprintf("+9198%09d", suffix),
		PasswordHash:  string(hashedPassword),
		IsActive:      utils.ToPtr(true),
		CreatedAt:     utils.UTCNow(),
		UpdatedAt:     utils.UTCNow(),
	}

	// Set account-specific fields
	switch accountTypeName {
	case models.AccountTypeCreator:
		customer.ContentCategories = []string{"tech", "education"}
		customer.Languages = []string{"hindi", "english"}
		customer.ChannelURL = utils.ToPtr(fmt.Sprintf("https://videos.example.com/c/%d", suffix))
	case models.AccountTypeBusiness:
		customer.CompanyName = utils.ToPtr(fmt.Sprintf("Test Company %d", suffix))
		customer.CompanyPincode = utils.ToPtr("110001")
	}

	if err := tf.DB.DB.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test customer: %w", err)
	}

	// Reload with the account type association populated
	if err := tf.DB.DB.Preload("AccountType").First(customer, customer.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload test customer: %w", err)
	}

	return customer, nil
}

// CreateTestGeoReferences seeds a small pincode lookup table spanning
// metros far enough apart to land in separate clusters
func (tf *TestFixtures) CreateTestGeoReferences() ([]*models.GeoReference, error) {
	rows := []*models.GeoReference{
		{Pincode: "110001", State: "Delhi", District: "New Delhi", Latitude: 28.6139, Longitude: 77.2090},
		{Pincode: "110002", State: "Delhi", District: "New Delhi", Latitude: 28.6304, Longitude: 77.2177},
		{Pincode: "110003", State: "Delhi", District: "New Delhi", Latitude: 28.5983, Longitude: 77.2319},
		{Pincode: "400001", State: "Maharashtra", District: "Mumbai", Latitude: 18.9388, Longitude: 72.8354},
		{Pincode: "400002", State: "Maharashtra", District: "Mumbai", Latitude: 18.9500, Longitude: 72.8258},
		{Pincode: "560001", State: "Karnataka", District: "Bengaluru", Latitude: 12.9716, Longitude: 77.5946},
	}

	for _, row := range rows {
		if err := tf.DB.DB.Create(row).Error; err != nil {
			return nil, fmt.Errorf("failed to create geo reference %s: %w", row.Pincode, err)
		}
	}

	return rows, nil
}

// CreateTestUpload creates an upload record in the given status for a customer
func (tf *TestFixtures) CreateTestUpload(customerID uint, status models.UploadStatus, rawData []byte) (*models.AudienceUpload, error) {
	upload := &models.AudienceUpload{
		UUID:       uuid.New(),
		CustomerID: customerID,
		Format:     models.UploadFormatJSON,
		Status:     status,
		RawData:    rawData,
		CreatedAt:  utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(upload).Error; err != nil {
		return nil, fmt.Errorf("failed to create test upload: %w", err)
	}

	return upload, nil
}

// CreateTestClusterSummary creates a single-cluster summary for a creator
func (tf *TestFixtures) CreateTestClusterSummary(customerID uint, pincode string, lat, lon float64, viewers int64) (*models.ClusterSummary, error) {
	summary := &models.ClusterSummary{
		UUID:       uuid.New(),
		CustomerID: customerID,
		Clusters: models.ClusterResults{
			{
				ClusterID:       0,
				CentroidPincode: pincode,
				CentroidLat:     lat,
				CentroidLon:     lon,
				TotalViewers:    viewers,
				Members: []models.ClusterMember{
					{Pincode: pincode, Viewers: viewers, Latitude: lat, Longitude: lon},
				},
			},
		},
		TotalViewers: viewers,
		TopPincodes: models.TopPincodes{
			{Pincode: pincode, Viewers: viewers},
		},
		GeneratedAt: utils.UTCNow(),
		CreatedAt:   utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(summary).Error; err != nil {
		return nil, fmt.Errorf("failed to create test cluster summary: %w", err)
	}

	return summary, nil
}

// CreateTestCampaign creates a campaign between a business and a creator
func (tf *TestFixtures) CreateTestCampaign(businessID, creatorID uint, status models.CampaignStatus) (*models.Campaign, error) {
	now := utils.UTCNow()
	campaign := &models.Campaign{
		UUID:       uuid.New(),
		BusinessID: businessID,
		CreatorID:  creatorID,
		Status:     status,
		Details: models.CampaignDetails{
			Title:   utils.ToPtr("Diwali product placement"),
			Message: utils.ToPtr("We would like a 30 second mention in your next video."),
		},
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}

	return campaign, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(customerID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		CustomerID:  customerID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
