// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"context"
	"log"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
)

// NotificationService dispatches campaign transition events. Delivery,
// retries, and channel selection belong to the dispatcher behind it.
type NotificationService interface {
	NotifyCampaignTransition(ctx context.Context, campaignID uint, actor models.CampaignActor, newStatus models.CampaignStatus) error
}

// TransitionDispatcher receives transition events for delivery
type TransitionDispatcher interface {
	Dispatch(ctx context.Context, campaignID uint, actor models.CampaignActor, newStatus models.CampaignStatus) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	dispatcher TransitionDispatcher
}

// NewNotificationService creates a new notification service
func NewNotificationService(dispatcher TransitionDispatcher) NotificationService {
	return &NotificationServiceImpl{dispatcher: dispatcher}
}

// NotifyCampaignTransition forwards the event to the configured
// dispatcher. A missing dispatcher logs and succeeds so transitions
// never fail on notification plumbing.
func (s *NotificationServiceImpl) NotifyCampaignTransition(ctx context.Context, campaignID uint, actor models.CampaignActor, newStatus models.CampaignStatus) error {
	if s.dispatcher == nil {
		log.Printf("campaign %d transitioned to %s by %s (no dispatcher configured)", campaignID, newStatus, actor)
		return nil
	}

	return s.dispatcher.Dispatch(ctx, campaignID, actor, newStatus)
}
