// Package businessflow contains the core business logic and use cases for matchmaking workflows
package businessflow

import (
	"errors"
	"fmt"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/audience"
)

// Business flow error constants
var (
	// Customer-related errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAccountInactive  = errors.New("account is inactive")
	ErrCreatorNotFound  = errors.New("creator not found")
	ErrNotBusiness      = errors.New("account is not a business")
	ErrNotCreator       = errors.New("account is not a creator")

	// Campaign-related errors
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignAccessDenied = errors.New("campaign access denied")
	ErrInvalidTransition    = errors.New("invalid campaign status transition")
	ErrSelfCampaign         = errors.New("campaign cannot target the requesting account")
	ErrBudgetRangeInvalid   = errors.New("budget minimum exceeds budget maximum")

	// Audience-related errors
	ErrUploadNotFound     = errors.New("upload not found")
	ErrUnsupportedFormat  = errors.New("unsupported upload format")
	ErrSummaryNotFound    = errors.New("cluster summary not found")
	ErrPincodeNotResolved = errors.New("target pincode has no geo reference")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")

	// ErrClusteringTimeout is the run-level budget failure from the
	// clustering engine, re-exported so callers match on one package.
	ErrClusteringTimeout = audience.ErrClusteringTimeout
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsCreatorNotFound(err error) bool {
	return errors.Is(err, ErrCreatorNotFound)
}

func IsNotBusiness(err error) bool {
	return errors.Is(err, ErrNotBusiness)
}

func IsNotCreator(err error) bool {
	return errors.Is(err, ErrNotCreator)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignAccessDenied(err error) bool {
	return errors.Is(err, ErrCampaignAccessDenied)
}

func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

func IsSelfCampaign(err error) bool {
	return errors.Is(err, ErrSelfCampaign)
}

func IsBudgetRangeInvalid(err error) bool {
	return errors.Is(err, ErrBudgetRangeInvalid)
}

func IsUploadNotFound(err error) bool {
	return errors.Is(err, ErrUploadNotFound)
}

func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

func IsSummaryNotFound(err error) bool {
	return errors.Is(err, ErrSummaryNotFound)
}

func IsPincodeNotResolved(err error) bool {
	return errors.Is(err, ErrPincodeNotResolved)
}

func IsClusteringTimeout(err error) bool {
	return errors.Is(err, ErrClusteringTimeout)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
