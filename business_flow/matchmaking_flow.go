// Package businessflow contains the core business logic and use cases for matchmaking search
package businessflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/audience"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/config"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"github.com/redis/go-redis/v9"
)

// MatchmakingFlow ranks creators against a business's target criteria
type MatchmakingFlow interface {
	FindCreators(ctx context.Context, req *dto.SearchCreatorsRequest, metadata *ClientMetadata) (*dto.SearchCreatorsResponse, error)
}

// MatchmakingFlowImpl implements the matchmaking business flow
type MatchmakingFlowImpl struct {
	customerRepo repository.CustomerRepository
	summaryRepo  repository.ClusterSummaryRepository
	geoRepo      repository.GeoReferenceRepository
	auditRepo    repository.AuditLogRepository
	cacheConfig  *config.CacheConfig
	rc           *redis.Client
}

// NewMatchmakingFlow creates a new matchmaking flow instance
func NewMatchmakingFlow(
	customerRepo repository.CustomerRepository,
	summaryRepo repository.ClusterSummaryRepository,
	geoRepo repository.GeoReferenceRepository,
	auditRepo repository.AuditLogRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) MatchmakingFlow {
	return &MatchmakingFlowImpl{
		customerRepo: customerRepo,
		summaryRepo:  summaryRepo,
		geoRepo:      geoRepo,
		auditRepo:    auditRepo,
		cacheConfig:  cacheConfig,
		rc:           rc,
	}
}

// FindCreators resolves the target pincode, scores every active creator
// with a summary, and returns the ranked results. Identical criteria
// always produce identical rankings, so results are safe to cache.
func (s *MatchmakingFlowImpl) FindCreators(ctx context.Context, req *dto.SearchCreatorsRequest, metadata *ClientMetadata) (*dto.SearchCreatorsResponse, error) {
	business, err := getCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if !business.IsBusiness() {
		return nil, NewBusinessError("SEARCH_DENIED", "Only business accounts search for creators", ErrNotBusiness)
	}

	criteria, err := s.buildCriteria(ctx, req)
	if err != nil {
		return nil, err
	}

	cacheKey := s.matchCacheKey(criteria, req.Limit)
	if resp, ok := cacheGet[dto.SearchCreatorsResponse](ctx, s.rc, cacheKey); ok {
		return resp, nil
	}

	creators, err := s.customerRepo.ActiveCreators(ctx)
	if err != nil {
		return nil, NewBusinessError("CREATOR_CATALOG_FAILED", "Failed to load creator catalog", err)
	}

	creatorIDs := make([]uint, 0, len(creators))
	byID := make(map[uint]*models.Customer, len(creators))
	for _, c := range creators {
		creatorIDs = append(creatorIDs, c.ID)
		byID[c.ID] = c
	}

	summaries, err := s.summaryRepo.ByCustomerIDs(ctx, creatorIDs)
	if err != nil {
		return nil, NewBusinessError("SUMMARY_LOOKUP_FAILED", "Failed to load creator summaries", err)
	}

	catalog := make([]audience.CreatorCandidate, 0, len(summaries))
	for _, summary := range summaries {
		creator, ok := byID[summary.CustomerID]
		if !ok {
			continue
		}
		catalog = append(catalog, audience.CreatorCandidate{
			CreatorID:  creator.ID,
			Categories: creator.ContentCategories,
			Languages:  creator.Languages,
			Summary:    summary,
		})
	}

	matches := audience.Score(criteria, catalog)
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	resp := &dto.SearchCreatorsResponse{
		TargetPincode: criteria.TargetPincode,
		RadiusKm:      criteria.RadiusKm,
		Matches:       make([]dto.CreatorMatchDTO, 0, len(matches)),
	}
	for _, m := range matches {
		creator := byID[m.CreatorID]
		resp.Matches = append(resp.Matches, dto.CreatorMatchDTO{
			CreatorUUID:         creator.UUID.String(),
			DisplayName:         creator.DisplayName,
			ChannelURL:          creator.ChannelURL,
			Score:               m.MatchScore,
			GeoOverlapPct:       m.OverlapPercentage,
			CategoryMatchPct:    m.CategoryMatchPct,
			LanguageMatchPct:    m.LanguageMatchPct,
			ViewersInTarget:     m.ViewersInTarget,
			OverlappingPincodes: m.OverlappingPincodes,
		})
	}

	if s.rc != nil {
		if payload, err := json.Marshal(resp); err == nil {
			ttl := 10 * time.Minute
			if s.cacheConfig != nil && s.cacheConfig.DefaultTTL > 0 {
				ttl = s.cacheConfig.DefaultTTL
			}
			_ = s.rc.Set(ctx, cacheKey, payload, ttl).Err()
		}
	}

	msg := fmt.Sprintf("Match search on %s (%.0fkm radius): %d results", criteria.TargetPincode, criteria.RadiusKm, len(resp.Matches))
	_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &business, models.AuditActionMatchSearch, msg, true, nil, metadata))

	return resp, nil
}

// buildCriteria resolves the target pincode and applies product
// defaults for radius and the viewer floor.
func (s *MatchmakingFlowImpl) buildCriteria(ctx context.Context, req *dto.SearchCreatorsRequest) (audience.MatchCriteria, error) {
	ref, err := s.geoRepo.ByPincode(ctx, req.TargetPincode)
	if err != nil {
		return audience.MatchCriteria{}, NewBusinessError("GEO_LOOKUP_FAILED", "Failed to resolve target pincode", err)
	}
	if ref == nil {
		return audience.MatchCriteria{}, NewBusinessErrorf("PINCODE_NOT_RESOLVED", "Pincode %s has no geo reference", ErrPincodeNotResolved, req.TargetPincode)
	}

	radius := req.RadiusKm
	if radius <= 0 {
		radius = utils.DefaultSearchRadiusKm
	}

	minViewers := int64(utils.DefaultMinViewers)
	if req.MinViewers != nil {
		minViewers = *req.MinViewers
	}

	return audience.MatchCriteria{
		TargetPincode:     req.TargetPincode,
		TargetLat:         ref.Latitude,
		TargetLon:         ref.Longitude,
		RadiusKm:          radius,
		ContentCategories: req.ContentCategories,
		Languages:         req.Languages,
		MinViewers:        minViewers,
	}, nil
}

// matchCacheKey hashes the fully resolved criteria so equivalent
// requests share one cache entry.
func (s *MatchmakingFlowImpl) matchCacheKey(criteria audience.MatchCriteria, limit int) string {
	payload, _ := json.Marshal(struct {
		audience.MatchCriteria
		Limit int
	}{criteria, limit})
	sum := sha256.Sum256(payload)

	prefix := "locallens"
	if s.cacheConfig != nil && s.cacheConfig.RedisPrefix != "" {
		prefix = s.cacheConfig.RedisPrefix
	}
	return prefix + ":match:" + hex.EncodeToString(sum[:8])
}
