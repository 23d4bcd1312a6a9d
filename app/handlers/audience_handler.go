// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
)

// Upload payloads are capped well below Fiber's body limit so one
// oversized file cannot occupy a worker for the full parse.
const maxUploadBytes = 10 << 20

// AudienceHandlerInterface defines the contract for audience handlers
type AudienceHandlerInterface interface {
	SubmitUpload(c fiber.Ctx) error
	GetUpload(c fiber.Ctx) error
	GetSummary(c fiber.Ctx) error
	GetHeatmap(c fiber.Ctx) error
}

// AudienceHandler handles audience pipeline HTTP requests
type AudienceHandler struct {
	audienceFlow businessflow.AudienceFlow
	validator    *validator.Validate
}

func (h *AudienceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AudienceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NewAudienceHandler creates a new audience handler
func NewAudienceHandler(audienceFlow businessflow.AudienceFlow) *AudienceHandler {
	return &AudienceHandler{
		audienceFlow: audienceFlow,
		validator:    validator.New(),
	}
}

// SubmitUpload handles audience data upload submission
// @Summary Submit Audience Upload
// @Description Upload viewer data as multipart (file + format) or raw JSON body
// @Tags Audience
// @Accept json,mpfd
// @Produce json
// @Success 202 {object} dto.APIResponse{data=dto.SubmitUploadResponse} "Upload accepted for processing"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden - creator accounts only"
// @Router /api/v1/audience/uploads [post]
func (h *AudienceHandler) SubmitUpload(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.SubmitUploadRequest{CustomerID: customerID}

	if file, err := c.FormFile("file"); err == nil {
		req.Format = c.FormValue("format")
		src, err := file.Open()
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read uploaded file", "INVALID_UPLOAD", err.Error())
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read uploaded file", "INVALID_UPLOAD", err.Error())
		}
		req.Data = data
	} else {
		// Raw body uploads are implicitly JSON
		req.Format = "json"
		req.Data = append([]byte(nil), c.Body()...)
	}

	if len(req.Data) > maxUploadBytes {
		return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "Upload exceeds size limit", "UPLOAD_TOO_LARGE", nil)
	}
	if len(req.Data) == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Upload body is empty", "EMPTY_UPLOAD", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.audienceFlow.SubmitUpload(h.createRequestContext(c, "/api/v1/audience/uploads"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		if businessflow.IsNotCreator(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Only creator accounts upload audience data", "NOT_CREATOR", nil)
		}
		if businessflow.IsUnsupportedFormat(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported upload format", "UNSUPPORTED_FORMAT", nil)
		}

		log.Println("Upload submission failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Upload submission failed", "UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusAccepted, "Upload accepted for processing", result)
}

// GetUpload handles upload status polling
// @Summary Get Upload Status
// @Description Fetch processing status and reject detail for one upload
// @Tags Audience
// @Produce json
// @Param uuid path string true "Upload UUID"
// @Success 200 {object} dto.APIResponse{data=dto.GetUploadResponse} "Upload retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Upload not found"
// @Router /api/v1/audience/uploads/{uuid} [get]
func (h *AudienceHandler) GetUpload(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	req := dto.GetUploadRequest{
		UUID:       c.Params("uuid"),
		CustomerID: customerID,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.audienceFlow.GetUpload(h.createRequestContext(c, "/api/v1/audience/uploads/"+req.UUID), &req, metadata)
	if err != nil {
		if businessflow.IsUploadNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Upload not found", "UPLOAD_NOT_FOUND", nil)
		}

		log.Println("Upload lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Upload lookup failed", "UPLOAD_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Upload retrieved successfully", result)
}

// GetSummary handles fetching the caller's latest cluster summary
// @Summary Get Cluster Summary
// @Description Fetch the caller's latest audience cluster summary
// @Tags Audience
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GetSummaryResponse} "Summary retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "No summary generated yet"
// @Router /api/v1/audience/summary [get]
func (h *AudienceHandler) GetSummary(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	result, err := h.audienceFlow.GetSummary(h.createRequestContext(c, "/api/v1/audience/summary"), customerID)
	if err != nil {
		if businessflow.IsSummaryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No cluster summary generated yet", "SUMMARY_NOT_FOUND", nil)
		}

		log.Println("Summary lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Summary lookup failed", "SUMMARY_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Summary retrieved successfully", result)
}

// GetHeatmap handles fetching the heatmap projection
// @Summary Get Audience Heatmap
// @Description Project the caller's cluster summary into heatmap points
// @Tags Audience
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GetHeatmapResponse} "Heatmap retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "No summary generated yet"
// @Router /api/v1/audience/heatmap [get]
func (h *AudienceHandler) GetHeatmap(c fiber.Ctx) error {
	customerID, ok := c.Locals("customer_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Customer ID not found in context", "MISSING_CUSTOMER_ID", nil)
	}

	result, err := h.audienceFlow.GetHeatmap(h.createRequestContext(c, "/api/v1/audience/heatmap"), customerID)
	if err != nil {
		if businessflow.IsSummaryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No cluster summary generated yet", "SUMMARY_NOT_FOUND", nil)
		}

		log.Println("Heatmap lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Heatmap lookup failed", "HEATMAP_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Heatmap retrieved successfully", result)
}

// createRequestContext mirrors other handlers for request-scoped values
func (h *AudienceHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *AudienceHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
