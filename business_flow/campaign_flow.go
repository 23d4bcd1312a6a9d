// Package businessflow contains the core business logic and use cases for campaign workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/services"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"gorm.io/gorm"
)

// CampaignFlow handles the collaboration campaign business logic
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error)
	GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error)
	RespondCampaign(ctx context.Context, req *dto.RespondCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error)
	CancelCampaign(ctx context.Context, req *dto.CancelCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error)
	CompleteCampaign(ctx context.Context, req *dto.CompleteCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditLogRepository
	notifier     services.NotificationService
	db           *gorm.DB
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	notifier services.NotificationService,
	db *gorm.DB,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
		db:           db,
	}
}

// CreateCampaign handles the complete campaign creation process
func (s *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest, metadata *ClientMetadata) (*dto.CreateCampaignResponse, error) {
	business, err := getCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if !business.IsBusiness() {
		return nil, NewBusinessError("CAMPAIGN_CREATE_DENIED", "Only business accounts create campaigns", ErrNotBusiness)
	}

	creator, err := s.customerRepo.ByUUID(ctx, req.CreatorUUID)
	if err != nil {
		return nil, NewBusinessError("CREATOR_LOOKUP_FAILED", "Failed to lookup creator", err)
	}
	if creator == nil || !utils.IsTrue(creator.IsActive) || !creator.IsCreator() {
		return nil, NewBusinessError("CREATOR_NOT_FOUND", "Target creator not found", ErrCreatorNotFound)
	}
	if creator.ID == business.ID {
		return nil, NewBusinessError("SELF_CAMPAIGN", "Campaign cannot target the requesting account", ErrSelfCampaign)
	}

	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMin > *req.BudgetMax {
		return nil, NewBusinessError("INVALID_BUDGET_RANGE", "Budget minimum exceeds budget maximum", ErrBudgetRangeInvalid)
	}

	campaign := &models.Campaign{
		UUID:       uuid.New(),
		BusinessID: business.ID,
		CreatorID:  creator.ID,
		Status:     models.CampaignStatusPending,
		Details: models.CampaignDetails{
			Title:     &req.Title,
			Message:   &req.Message,
			BudgetMin: req.BudgetMin,
			BudgetMax: req.BudgetMax,
		},
		CreatedAt: utils.UTCNow(),
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.campaignRepo.Save(txCtx, campaign)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Campaign creation failed: %s", err.Error())
		_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &business, models.AuditActionCampaignRejected, errMsg, false, &errMsg, metadata))

		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	msg := fmt.Sprintf("Campaign created: %s", campaign.UUID.String())
	_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &business, models.AuditActionCampaignCreated, msg, true, nil, metadata))

	_ = s.notifier.NotifyCampaignTransition(ctx, campaign.ID, models.CampaignActorBusiness, models.CampaignStatusPending)

	return &dto.CreateCampaignResponse{
		Message:   "Campaign created successfully",
		UUID:      campaign.UUID.String(),
		Status:    string(campaign.Status),
		CreatedAt: campaign.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetCampaign returns one campaign visible to the caller
func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error) {
	campaign, err := s.loadCampaignForCustomer(ctx, req.UUID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	out := ToCampaignDTO(*campaign)
	return &out, nil
}

// ListCampaigns returns the caller's campaigns, newest first
func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error) {
	customer, err := getCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		return nil, NewBusinessError("INVALID_PAGE_SIZE", "Page size must be between 1 and 100", ErrInvalidPageSize)
	}

	filter := models.CampaignFilter{}
	if customer.IsBusiness() {
		filter.BusinessID = &customer.ID
	} else {
		filter.CreatorID = &customer.ID
	}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		filter.Status = &status
	}

	total, err := s.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to count campaigns", err)
	}

	campaigns, err := s.campaignRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	items := make([]dto.CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, ToCampaignDTO(*c))
	}

	return &dto.ListCampaignsResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// RespondCampaign applies the targeted creator's accept or decline decision
func (s *CampaignFlowImpl) RespondCampaign(ctx context.Context, req *dto.RespondCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error) {
	target := models.CampaignStatusAccepted
	action := models.AuditActionCampaignAccepted
	if req.Action == "decline" {
		target = models.CampaignStatusDeclined
		action = models.AuditActionCampaignDeclined
	}

	return s.transition(ctx, req.UUID, req.CustomerID, models.CampaignActorCreator, target, action, req.ResponseMessage, metadata)
}

// CancelCampaign cancels a pending or accepted campaign on behalf of its originator
func (s *CampaignFlowImpl) CancelCampaign(ctx context.Context, req *dto.CancelCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error) {
	return s.transition(ctx, req.UUID, req.CustomerID, models.CampaignActorBusiness, models.CampaignStatusCancelled, models.AuditActionCampaignCancelled, nil, metadata)
}

// CompleteCampaign marks an accepted campaign as fulfilled
func (s *CampaignFlowImpl) CompleteCampaign(ctx context.Context, req *dto.CompleteCampaignRequest, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error) {
	return s.transition(ctx, req.UUID, req.CustomerID, models.CampaignActorBusiness, models.CampaignStatusCompleted, models.AuditActionCampaignCompleted, nil, metadata)
}

// transition serializes one status change per campaign UUID. The mutex
// orders concurrent callers in this process; the updated_at compare and
// swap in the repository rejects a lost race with another process.
func (s *CampaignFlowImpl) transition(ctx context.Context, campaignUUID string, customerID uint, actor models.CampaignActor, target models.CampaignStatus, auditAction string, responseMessage *string, metadata *ClientMetadata) (*dto.TransitionCampaignResponse, error) {
	customer, err := getCustomer(ctx, s.customerRepo, customerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}

	mu := lockCampaign(campaignUUID)
	defer mu.Unlock()

	campaign, err := s.loadCampaignForCustomer(ctx, campaignUUID, customerID)
	if err != nil {
		return nil, err
	}

	if actor == models.CampaignActorCreator && campaign.CreatorID != customerID {
		return nil, NewBusinessError("CAMPAIGN_ACCESS_DENIED", "Only the targeted creator may respond", ErrCampaignAccessDenied)
	}
	if actor == models.CampaignActorBusiness && campaign.BusinessID != customerID {
		return nil, NewBusinessError("CAMPAIGN_ACCESS_DENIED", "Only the originating business may act", ErrCampaignAccessDenied)
	}

	if !campaign.Status.CanTransitionTo(target) {
		msg := fmt.Sprintf("Rejected transition %s -> %s for campaign %s", campaign.Status, target, campaignUUID)
		_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &customer, models.AuditActionCampaignRejected, msg, false, &msg, metadata))

		return nil, NewBusinessErrorf("INVALID_TRANSITION", "Cannot move campaign from %s to %s", ErrInvalidTransition, campaign.Status, target)
	}

	swapped, err := s.campaignRepo.UpdateStatusCAS(ctx, campaign.ID, campaign.Status, target, campaign.UpdatedAt, responseMessage)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_TRANSITION_FAILED", "Failed to apply campaign transition", err)
	}
	if !swapped {
		msg := fmt.Sprintf("Lost transition race on campaign %s", campaignUUID)
		_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &customer, models.AuditActionCampaignRejected, msg, false, &msg, metadata))

		return nil, NewBusinessErrorf("INVALID_TRANSITION", "Campaign %s changed concurrently", ErrInvalidTransition, campaignUUID)
	}

	msg := fmt.Sprintf("Campaign %s moved from %s to %s", campaignUUID, campaign.Status, target)
	_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &customer, auditAction, msg, true, nil, metadata))

	_ = s.notifier.NotifyCampaignTransition(ctx, campaign.ID, actor, target)

	return &dto.TransitionCampaignResponse{
		Message: "Campaign updated successfully",
		UUID:    campaignUUID,
		Status:  string(target),
	}, nil
}

// loadCampaignForCustomer fetches a campaign and enforces that the
// caller is one of its two parties.
func (s *CampaignFlowImpl) loadCampaignForCustomer(ctx context.Context, campaignUUID string, customerID uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.ByUUID(ctx, campaignUUID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}
	if campaign.BusinessID != customerID && campaign.CreatorID != customerID {
		return nil, NewBusinessError("CAMPAIGN_ACCESS_DENIED", "Campaign access denied", ErrCampaignAccessDenied)
	}

	return campaign, nil
}
