// Package scheduler
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/app/middleware"
	businessflow "github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/business_flow"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/config"
	"github.com/rahulranj05/LocalLens---AWS-AI-for-Bharat-Hackathon-Team---PARA/repository"
)

// ClusteringWorker polls for uploads stuck in processing state and runs the
// parse, aggregate, and cluster pipeline for each on a bounded worker pool.
type ClusteringWorker struct {
	uploadRepo   repository.AudienceUploadRepository
	audienceFlow businessflow.AudienceFlow
	cfg          config.ClusteringConfig
	pool         pond.Pool
	logger       *log.Logger

	// Uploads already submitted to the pool but not yet finished.
	// Prevents double submission when a run outlives one poll interval.
	inFlight sync.Map
}

// NewClusteringWorker creates a worker that drains the upload backlog.
func NewClusteringWorker(
	uploadRepo repository.AudienceUploadRepository,
	audienceFlow businessflow.AudienceFlow,
	cfg config.ClusteringConfig,
	logger *log.Logger,
) *ClusteringWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if logger == nil {
		logger = log.Default()
	}

	return &ClusteringWorker{
		uploadRepo:   uploadRepo,
		audienceFlow: audienceFlow,
		cfg:          cfg,
		pool:         pond.NewPool(cfg.PoolSize),
		logger:       logger,
	}
}

// Start launches the polling loop in a background goroutine and returns a stop function.
// The stop function cancels the loop and waits for in-flight runs to finish.
func (w *ClusteringWorker) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(w.cfg.PollInterval)
		defer ticker.Stop()

		w.pollOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.pollOnce(ctx)
			}
		}
	}()

	return func() {
		cancel()
		w.pool.StopAndWait()
	}
}

func (w *ClusteringWorker) pollOnce(ctx context.Context) {
	pending, err := w.uploadRepo.PendingUploads(ctx, w.cfg.BatchSize)
	if err != nil {
		w.logger.Printf("clustering: list pending uploads failed: %v", err)
		return
	}
	middleware.ClusteringBacklog.Set(float64(len(pending)))
	if len(pending) == 0 {
		return
	}
	w.logger.Printf("clustering: %d uploads pending", len(pending))

	for _, upload := range pending {
		id := upload.ID
		if _, loaded := w.inFlight.LoadOrStore(id, struct{}{}); loaded {
			continue
		}
		w.pool.Submit(func() {
			defer w.inFlight.Delete(id)
			w.runOne(ctx, id)
		})
	}
}

func (w *ClusteringWorker) runOne(ctx context.Context, uploadID uint) {
	start := time.Now()
	err := w.audienceFlow.ProcessUpload(ctx, uploadID)
	middleware.ClusteringRunDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		middleware.ClusteringRunsTotal.WithLabelValues("failure").Inc()
		w.logger.Printf("clustering: upload id=%d failed: %v", uploadID, err)
		return
	}
	middleware.ClusteringRunsTotal.WithLabelValues("success").Inc()
	w.logger.Printf("clustering: upload id=%d processed in %s", uploadID, time.Since(start).Round(time.Millisecond))
}
