// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
)

// MatchmakingHandlerInterface defines the contract for matchmaking handlers
type MatchmakingHandlerInterface interface {
	SearchCreators(c fiber.Ctx) error
}

// MatchmakingHandler handles matchmaking HTTP requests
type MatchmakingHandler struct {
	matchmakingFlow businessflow.MatchmakingFlow
	validator       *validator.Validate
}

func (h *MatchmakingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MatchmakingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewMatchmakingHandler creates a new matchmaking handler
func NewMatchmakingHandler(matchmakingFlow businessflow.MatchmakingFlow) *MatchmakingHandler {
	return &MatchmakingHandler{
		matchmakingFlow: matchmakingFlow,
		validator:       validator.New(),
	}
}

// SearchCreators handles ranked creator search for businesses
// @Summary Search Creators
// @Description Rank creators against a target pincode and criteria
// @Tags Matchmaking
// @Accept json
// @Produce json
// @Param request body dto.SearchCreatorsRequest true "Search criteria"
// @Success 200 {object} dto.APIResponse{data=dto.SearchCreatorsResponse} "Creators ranked successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or unresolvable pincode"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden - business accounts only"
// @Router /api/v1/matchmaking/search [post]
func (h *MatchmakingHandler) SearchCreators(c fiber.Ctx) error {
	var req dto.SearchCreatorsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}
	req.CustomerID = customerID

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.matchmakingFlow.FindCreators(h.createRequestContext(c, "/api/v1/matchmaking/search"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		if businessflow.IsNotBusiness(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only business accounts search for creators", "NOT_BUSINESS", nil)
		}
		if businessflow.IsPincodeNotResolved(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Target pincode has no geo reference", "PINCODE_NOT_RESOLVED", nil)
		}

		log.Println("Creator search failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Creator search failed", "SEARCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Creators ranked successfully", result)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *MatchmakingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *MatchmakingHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
