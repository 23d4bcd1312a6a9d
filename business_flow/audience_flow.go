// Package businessflow contains the core business logic and use cases for the audience pipeline
package businessflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/audience"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/config"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AudienceFlow handles upload intake, the clustering pipeline, and
// summary retrieval.
type AudienceFlow interface {
	SubmitUpload(ctx context.Context, req *dto.SubmitUploadRequest, metadata *ClientMetadata) (*dto.SubmitUploadResponse, error)
	GetUpload(ctx context.Context, req *dto.GetUploadRequest, metadata *ClientMetadata) (*dto.GetUploadResponse, error)
	ProcessUpload(ctx context.Context, uploadID uint) error
	GetSummary(ctx context.Context, customerID uint) (*dto.GetSummaryResponse, error)
	GetHeatmap(ctx context.Context, customerID uint) (*dto.GetHeatmapResponse, error)
}

// AudienceFlowImpl implements the audience business flow
type AudienceFlowImpl struct {
	uploadRepo       repository.AudienceUploadRepository
	summaryRepo      repository.ClusterSummaryRepository
	geoRepo          repository.GeoReferenceRepository
	customerRepo     repository.CustomerRepository
	auditRepo        repository.AuditLogRepository
	clusteringConfig config.ClusteringConfig
	cacheConfig      *config.CacheConfig
	rc               *redis.Client
	db               *gorm.DB
}

// NewAudienceFlow creates a new audience flow instance
func NewAudienceFlow(
	uploadRepo repository.AudienceUploadRepository,
	summaryRepo repository.ClusterSummaryRepository,
	geoRepo repository.GeoReferenceRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
	rc *redis.Client,
	clusteringConfig config.ClusteringConfig,
	cacheConfig *config.CacheConfig,
) AudienceFlow {
	return &AudienceFlowImpl{
		uploadRepo:       uploadRepo,
		summaryRepo:      summaryRepo,
		geoRepo:          geoRepo,
		customerRepo:     customerRepo,
		auditRepo:        auditRepo,
		clusteringConfig: clusteringConfig,
		cacheConfig:      cacheConfig,
		rc:               rc,
		db:               db,
	}
}

// SubmitUpload accepts raw audience data and queues it for processing
func (s *AudienceFlowImpl) SubmitUpload(ctx context.Context, req *dto.SubmitUploadRequest, metadata *ClientMetadata) (*dto.SubmitUploadResponse, error) {
	customer, err := getCustomer(ctx, s.customerRepo, req.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to lookup customer", err)
	}
	if !customer.IsCreator() {
		return nil, NewBusinessError("UPLOAD_DENIED", "Only creator accounts upload audience data", ErrNotCreator)
	}

	switch req.Format {
	case models.UploadFormatCSV, models.UploadFormatXLSX, models.UploadFormatJSON:
	default:
		return nil, NewBusinessErrorf("UNSUPPORTED_FORMAT", "Unsupported upload format %q", ErrUnsupportedFormat, req.Format)
	}

	upload := &models.AudienceUpload{
		UUID:       uuid.New(),
		CustomerID: customer.ID,
		Format:     req.Format,
		Status:     models.UploadStatusProcessing,
		RawData:    req.Data,
		CreatedAt:  utils.UTCNow(),
	}

	if err := s.uploadRepo.Save(ctx, upload); err != nil {
		return nil, NewBusinessError("UPLOAD_SAVE_FAILED", "Failed to store upload", err)
	}

	msg := fmt.Sprintf("Upload received: %s (%s, %d bytes)", upload.UUID.String(), req.Format, len(req.Data))
	_ = s.auditRepo.Save(ctx, newAuditLog(ctx, &customer, models.AuditActionUploadReceived, msg, true, nil, metadata))

	return &dto.SubmitUploadResponse{
		Message:   "Upload accepted for processing",
		UUID:      upload.UUID.String(),
		Status:    string(upload.Status),
		CreatedAt: upload.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetUpload returns upload status and the per-row reject detail
func (s *AudienceFlowImpl) GetUpload(ctx context.Context, req *dto.GetUploadRequest, metadata *ClientMetadata) (*dto.GetUploadResponse, error) {
	upload, err := s.uploadRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("UPLOAD_LOOKUP_FAILED", "Failed to lookup upload", err)
	}
	if upload == nil || upload.CustomerID != req.CustomerID {
		return nil, NewBusinessError("UPLOAD_NOT_FOUND", "Upload not found", ErrUploadNotFound)
	}

	resp := &dto.GetUploadResponse{
		UUID:          upload.UUID.String(),
		Format:        upload.Format,
		Status:        string(upload.Status),
		FailureReason: upload.FailureReason,
		CreatedAt:     upload.CreatedAt,
		CompletedAt:   upload.CompletedAt,
	}
	if upload.ValidCount != nil {
		resp.ValidCount = *upload.ValidCount
	}
	if upload.RejectCount != nil {
		resp.RejectCount = *upload.RejectCount
	}
	if upload.UnresolvedCount != nil {
		resp.UnresolvedCount = *upload.UnresolvedCount
	}
	if len(upload.RejectDetail) > 0 {
		var rejects []audience.Reject
		if err := json.Unmarshal(upload.RejectDetail, &rejects); err == nil {
			for _, r := range rejects {
				resp.Rejects = append(resp.Rejects, dto.RejectDTO{
					Row:    r.Row,
					Reason: string(r.Reason),
					Value:  r.Pincode,
				})
			}
		}
	}

	return resp, nil
}

// ProcessUpload runs the full pipeline for one stored upload: parse,
// validate, enrich, cluster, and replace the creator's summary
// snapshot. Called by the scheduler, never by request handlers.
func (s *AudienceFlowImpl) ProcessUpload(ctx context.Context, uploadID uint) error {
	upload, err := s.uploadRepo.ByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if upload == nil {
		return ErrUploadNotFound
	}
	if upload.Status != models.UploadStatusProcessing {
		return nil
	}

	rows, err := s.parseUpload(upload)
	if err != nil {
		_ = s.uploadRepo.MarkFailed(ctx, upload.ID, "parse_failed")
		s.auditPipeline(ctx, upload, models.AuditActionUploadFailed, fmt.Sprintf("Upload %s parse failed: %v", upload.UUID, err), false)
		return err
	}

	records, rejects := audience.ValidateUpload(rows)

	resolver := &repoGeoResolver{ctx: ctx, repo: s.geoRepo}
	regions, unresolved := audience.Aggregate(records, resolver)

	runCtx := ctx
	if s.clusteringConfig.Budget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.clusteringConfig.Budget)
		defer cancel()
	}

	clusters, err := audience.ClusterWithBudget(runCtx, regions, s.clusteringConfig.ClusterCount, s.clusteringConfig.Seed)
	if err != nil {
		_ = s.uploadRepo.MarkFailed(ctx, upload.ID, "clustering_timeout")
		s.auditPipeline(ctx, upload, models.AuditActionClusteringFailed, fmt.Sprintf("Clustering for upload %s exceeded budget", upload.UUID), false)
		return err
	}

	var totalViewers int64
	for _, c := range clusters {
		totalViewers += c.TotalViewers
	}

	summary := &models.ClusterSummary{
		UUID:         uuid.New(),
		CustomerID:   upload.CustomerID,
		UploadID:     &upload.ID,
		Clusters:     clusters,
		TotalViewers: totalViewers,
		TopPincodes:  audience.TopPincodes(clusters, utils.TopPincodeCount),
		GeneratedAt:  utils.UTCNow(),
	}

	rejectDetail, err := json.Marshal(rejects)
	if err != nil {
		return err
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.summaryRepo.Replace(txCtx, summary); err != nil {
			return err
		}
		return s.uploadRepo.MarkCompleted(txCtx, upload.ID, len(records), len(rejects), unresolved, rejectDetail)
	})
	if err != nil {
		_ = s.uploadRepo.MarkFailed(ctx, upload.ID, "persistence_failed")
		s.auditPipeline(ctx, upload, models.AuditActionUploadFailed, fmt.Sprintf("Upload %s persistence failed: %v", upload.UUID, err), false)
		return err
	}

	s.invalidateCaches(ctx, upload.CustomerID)

	s.auditPipeline(ctx, upload, models.AuditActionClusteringComplete,
		fmt.Sprintf("Upload %s clustered: %d regions, %d clusters, %d rejects, %d unresolved",
			upload.UUID, len(regions), len(clusters), len(rejects), unresolved), true)

	return nil
}

// GetSummary returns the caller's latest cluster summary
func (s *AudienceFlowImpl) GetSummary(ctx context.Context, customerID uint) (*dto.GetSummaryResponse, error) {
	cacheKey := s.cacheKey(fmt.Sprintf("summary:%d", customerID))
	if resp, ok := cacheGet[dto.GetSummaryResponse](ctx, s.rc, cacheKey); ok {
		return resp, nil
	}

	summary, err := s.summaryRepo.ByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("SUMMARY_LOOKUP_FAILED", "Failed to lookup summary", err)
	}
	if summary == nil {
		return nil, NewBusinessError("SUMMARY_NOT_FOUND", "No cluster summary generated yet", ErrSummaryNotFound)
	}

	resp := &dto.GetSummaryResponse{
		UploadID:    summary.UploadID,
		GeneratedAt: summary.GeneratedAt,
	}
	for _, c := range summary.Clusters {
		members := make([]dto.ClusterMemberDTO, 0, len(c.Members))
		for _, m := range c.Members {
			members = append(members, dto.ClusterMemberDTO{
				Pincode:   m.Pincode,
				Viewers:   m.Viewers,
				Latitude:  m.Latitude,
				Longitude: m.Longitude,
			})
		}
		resp.Clusters = append(resp.Clusters, dto.ClusterDTO{
			ClusterID:       c.ClusterID,
			CentroidPincode: c.CentroidPincode,
			CentroidLat:     c.CentroidLat,
			CentroidLon:     c.CentroidLon,
			TotalViewers:    c.TotalViewers,
			Members:         members,
		})
	}
	for _, t := range summary.TopPincodes {
		resp.TopPincodes = append(resp.TopPincodes, dto.TopPincodeDTO{Pincode: t.Pincode, Viewers: t.Viewers})
	}

	s.cacheSet(ctx, cacheKey, resp)

	return resp, nil
}

// GetHeatmap projects the caller's summary into heatmap points
func (s *AudienceFlowImpl) GetHeatmap(ctx context.Context, customerID uint) (*dto.GetHeatmapResponse, error) {
	cacheKey := s.cacheKey(fmt.Sprintf("heatmap:%d", customerID))
	if resp, ok := cacheGet[dto.GetHeatmapResponse](ctx, s.rc, cacheKey); ok {
		return resp, nil
	}

	summary, err := s.summaryRepo.ByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewBusinessError("SUMMARY_LOOKUP_FAILED", "Failed to lookup summary", err)
	}
	if summary == nil {
		return nil, NewBusinessError("SUMMARY_NOT_FOUND", "No cluster summary generated yet", ErrSummaryNotFound)
	}

	points := audience.Heatmap(summary)
	resp := &dto.GetHeatmapResponse{GeneratedAt: summary.GeneratedAt}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.HeatmapPointDTO{
			Pincode:   p.Pincode,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Viewers:   p.Viewers,
			ClusterID: p.ClusterID,
			Intensity: p.Intensity,
		})
	}

	s.cacheSet(ctx, cacheKey, resp)

	return resp, nil
}

// parseUpload dispatches on the declared format
func (s *AudienceFlowImpl) parseUpload(upload *models.AudienceUpload) ([]audience.RawRow, error) {
	switch upload.Format {
	case models.UploadFormatCSV:
		return audience.ParseCSV(bytes.NewReader(upload.RawData))
	case models.UploadFormatXLSX:
		return audience.ParseXLSX(upload.RawData)
	case models.UploadFormatJSON:
		return audience.ParseJSON(upload.RawData)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (s *AudienceFlowImpl) auditPipeline(ctx context.Context, upload *models.AudienceUpload, action, description string, success bool) {
	var errMsg *string
	if !success {
		errMsg = &description
	}
	customer := &models.Customer{ID: upload.CustomerID}
	if err := s.auditRepo.Save(ctx, newAuditLog(ctx, customer, action, description, success, errMsg, nil)); err != nil {
		log.Printf("audit save failed for upload %s: %v", upload.UUID, err)
	}
}

// invalidateCaches drops cached summaries and match results after a
// re-clustering run. Match keys are criteria-hashed, so the whole
// match namespace is swept.
func (s *AudienceFlowImpl) invalidateCaches(ctx context.Context, customerID uint) {
	if s.rc == nil {
		return
	}

	_ = s.rc.Del(ctx,
		s.cacheKey(fmt.Sprintf("summary:%d", customerID)),
		s.cacheKey(fmt.Sprintf("heatmap:%d", customerID)),
	).Err()

	iter := s.rc.Scan(ctx, 0, s.cacheKey("match:*"), 100).Iterator()
	for iter.Next(ctx) {
		_ = s.rc.Del(ctx, iter.Val()).Err()
	}
}

func (s *AudienceFlowImpl) cacheKey(suffix string) string {
	prefix := "locallens"
	if s.cacheConfig != nil && s.cacheConfig.RedisPrefix != "" {
		prefix = s.cacheConfig.RedisPrefix
	}
	return prefix + ":" + suffix
}

func (s *AudienceFlowImpl) cacheSet(ctx context.Context, key string, value any) {
	if s.rc == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := 10 * time.Minute
	if s.cacheConfig != nil && s.cacheConfig.DefaultTTL > 0 {
		ttl = s.cacheConfig.DefaultTTL
	}
	_ = s.rc.Set(ctx, key, payload, ttl).Err()
}

// cacheGet loads a cached JSON value; a miss or decode error is a miss
func cacheGet[T any](ctx context.Context, rc *redis.Client, key string) (*T, bool) {
	if rc == nil {
		return nil, false
	}
	payload, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false
	}
	return &out, true
}

// repoGeoResolver adapts the geo reference repository to the resolver
// interface of the aggregation step. Lookups run on the pipeline's
// context; a lookup error counts as unresolved.
type repoGeoResolver struct {
	ctx  context.Context
	repo repository.GeoReferenceRepository
}

func (r *repoGeoResolver) Resolve(pincode string) (audience.GeoPoint, bool) {
	ref, err := r.repo.ByPincode(r.ctx, pincode)
	if err != nil || ref == nil {
		return audience.GeoPoint{}, false
	}
	return audience.GeoPoint{
		State:     ref.State,
		District:  ref.District,
		Latitude:  ref.Latitude,
		Longitude: ref.Longitude,
	}, true
}
