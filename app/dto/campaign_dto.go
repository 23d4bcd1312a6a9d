package dto

import "time"

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	CustomerID  uint    `json:"-"`
	CreatorUUID string  `json:"creator_uuid" validate:"required,uuid4"`
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Message     string  `json:"message" validate:"required,min=1,max=2000"`
	BudgetMin   *uint64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax   *uint64 `json:"budget_max" validate:"omitempty,gte=0"`
}

// CreateCampaignResponse represents the response to create a new campaign
type CreateCampaignResponse struct {
	Message   string `json:"message"`
	UUID      string `json:"uuid"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GetCampaignRequest represents the request to fetch a campaign
type GetCampaignRequest struct {
	UUID       string `json:"-"`
	CustomerID uint   `json:"-"`
}

// CampaignDTO represents a campaign in responses
type CampaignDTO struct {
	UUID            string     `json:"uuid"`
	Status          string     `json:"status"`
	BusinessUUID    string     `json:"business_uuid"`
	BusinessName    string     `json:"business_name"`
	CreatorUUID     string     `json:"creator_uuid"`
	CreatorName     string     `json:"creator_name"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	BudgetMin       *uint64    `json:"budget_min,omitempty"`
	BudgetMax       *uint64    `json:"budget_max,omitempty"`
	ResponseMessage *string    `json:"response_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ListCampaignsRequest represents the request to list campaigns
type ListCampaignsRequest struct {
	CustomerID uint    `json:"-"`
	Status     *string `json:"status" validate:"omitempty,oneof=pending accepted declined cancelled completed"`
	Page       int     `json:"page" validate:"omitempty,gte=1"`
	PageSize   int     `json:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// ListCampaignsResponse represents a page of campaigns
type ListCampaignsResponse struct {
	Items    []CampaignDTO `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// RespondCampaignRequest represents a creator's accept/decline decision
type RespondCampaignRequest struct {
	UUID            string  `json:"-"`
	CustomerID      uint    `json:"-"`
	Action          string  `json:"action" validate:"required,oneof=accept decline"`
	ResponseMessage *string `json:"response_message" validate:"omitempty,max=2000"`
}

// CancelCampaignRequest represents the business cancelling a campaign
type CancelCampaignRequest struct {
	UUID       string `json:"-"`
	CustomerID uint   `json:"-"`
}

// CompleteCampaignRequest represents the business completing a campaign
type CompleteCampaignRequest struct {
	UUID       string `json:"-"`
	CustomerID uint   `json:"-"`
}

// TransitionCampaignResponse acknowledges a status transition
type TransitionCampaignResponse struct {
	Message string `json:"message"`
	UUID    string `json:"uuid"`
	Status  string `json:"status"`
}
