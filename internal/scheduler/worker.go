package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	distservice "leadmarket_backend/internal/distribution/service"
	"leadmarket_backend/platform/config"
	"leadmarket_backend/platform/logger"
)

// BatchDistributor runs a sequential batch assignment. Implemented by the
// distribution service.
type BatchDistributor interface {
	BatchDistribute(ctx context.Context, leadIDs []uuid.UUID) []distservice.BatchResult
}

// Worker consumes queued distribution tasks.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	distributor BatchDistributor
	log         *logger.Logger
}

// NewWorker creates the asynq worker bound to the configured queue.
func NewWorker(cfg config.SchedulerConfig, distributor BatchDistributor, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		distributor: distributor,
		log:         log,
	}

	mux.HandleFunc(TaskBatchDistribution, w.handleBatchDistribution)

	return w, nil
}

func (w *Worker) handleBatchDistribution(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBatchDistributionPayload(task)
	if err != nil {
		return err
	}

	leadIDs := make([]uuid.UUID, 0, len(payload.LeadIDs))
	for _, raw := range payload.LeadIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			w.log.Warn("skipping malformed lead id in batch task", "leadId", raw)
			continue
		}
		leadIDs = append(leadIDs, id)
	}
	if len(leadIDs) == 0 {
		return nil
	}

	results := w.distributor.BatchDistribute(ctx, leadIDs)

	assigned := 0
	for _, result := range results {
		if result.Assigned {
			assigned++
		} else {
			w.log.Warn("batch item not assigned", "leadId", result.LeadID, "reason", result.Error)
		}
	}
	w.log.Info("batch distribution completed", "total", len(results), "assigned", assigned)

	return nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
