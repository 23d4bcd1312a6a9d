package scheduler

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/dto"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/config"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploadRepo struct {
	pending []*models.AudienceUpload
}

func (s *stubUploadRepo) ByID(ctx context.Context, id uint) (*models.AudienceUpload, error) {
	return nil, nil
}

func (s *stubUploadRepo) ByUUID(ctx context.Context, uuid string) (*models.AudienceUpload, error) {
	return nil, nil
}

func (s *stubUploadRepo) ByCustomerID(ctx context.Context, customerID uint, limit, offset int) ([]*models.AudienceUpload, error) {
	return nil, nil
}

func (s *stubUploadRepo) PendingUploads(ctx context.Context, limit int) ([]*models.AudienceUpload, error) {
	return s.pending, nil
}

func (s *stubUploadRepo) Save(ctx context.Context, upload *models.AudienceUpload) error {
	return nil
}

func (s *stubUploadRepo) MarkCompleted(ctx context.Context, id uint, validCount, rejectCount, unresolvedCount int, rejectDetail json.RawMessage) error {
	return nil
}

func (s *stubUploadRepo) MarkFailed(ctx context.Context, id uint, reason string) error {
	return nil
}

// stubAudienceFlow records which uploads were processed
type stubAudienceFlow struct {
	mu        sync.Mutex
	entered   int
	processed []uint
	block     chan struct{}
}

func (s *stubAudienceFlow) ProcessUpload(ctx context.Context, uploadID uint) error {
	s.mu.Lock()
	s.entered++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, uploadID)
	return nil
}

func (s *stubAudienceFlow) enteredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered
}

func (s *stubAudienceFlow) processedIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint(nil), s.processed...)
}

func (s *stubAudienceFlow) SubmitUpload(ctx context.Context, req *dto.SubmitUploadRequest, metadata *businessflow.ClientMetadata) (*dto.SubmitUploadResponse, error) {
	return nil, nil
}

func (s *stubAudienceFlow) GetUpload(ctx context.Context, req *dto.GetUploadRequest, metadata *businessflow.ClientMetadata) (*dto.GetUploadResponse, error) {
	return nil, nil
}

func (s *stubAudienceFlow) GetSummary(ctx context.Context, customerID uint) (*dto.GetSummaryResponse, error) {
	return nil, nil
}

func (s *stubAudienceFlow) GetHeatmap(ctx context.Context, customerID uint) (*dto.GetHeatmapResponse, error) {
	return nil, nil
}

// The worker depends on the flow through its interface, so the stub
// must satisfy it.
var _ businessflow.AudienceFlow = (*stubAudienceFlow)(nil)

func TestClusteringWorkerDrainsBacklog(t *testing.T) {
	repo := &stubUploadRepo{pending: []*models.AudienceUpload{{ID: 1}, {ID: 2}}}
	flow := &stubAudienceFlow{}

	worker := NewClusteringWorker(repo, flow, config.ClusteringConfig{
		PollInterval: 50 * time.Millisecond,
		PoolSize:     2,
		BatchSize:    10,
	}, nil)

	stop := worker.Start(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		return len(flow.processedIDs()) >= 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.ElementsMatch(t, []uint{1, 2}, flow.processedIDs()[:2])
}

func TestClusteringWorkerSkipsInFlightUploads(t *testing.T) {
	repo := &stubUploadRepo{pending: []*models.AudienceUpload{{ID: 7}}}
	flow := &stubAudienceFlow{block: make(chan struct{})}

	worker := NewClusteringWorker(repo, flow, config.ClusteringConfig{
		PollInterval: 20 * time.Millisecond,
		PoolSize:     2,
		BatchSize:    10,
	}, nil)

	stop := worker.Start(context.Background())

	// Several polls elapse while the single run is blocked; the upload
	// must not be submitted a second time.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, flow.enteredCount())

	close(flow.block)
	stop()
}

func TestClusteringWorkerAppliesDefaults(t *testing.T) {
	worker := NewClusteringWorker(&stubUploadRepo{}, &stubAudienceFlow{}, config.ClusteringConfig{}, nil)

	assert.Equal(t, 10*time.Second, worker.cfg.PollInterval)
	assert.Equal(t, 4, worker.cfg.PoolSize)
	assert.Equal(t, 20, worker.cfg.BatchSize)
}
