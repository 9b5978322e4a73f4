package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docatlas/internal/chunk"
	"github.com/dgallion1/docatlas/internal/config"
	"github.com/dgallion1/docatlas/internal/lightrag"
	"github.com/dgallion1/docatlas/internal/storage"
)

// Orchestrator manages the document ingestion pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	rag      *lightrag.Client
	store    *storage.Store
	log      *slog.Logger
	cfg      config.Config
	chunkCfg chunk.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; Start launches it.
func NewOrchestrator(cfg config.Config, rag *lightrag.Client, store *storage.Store, log *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		rag:   rag,
		store: store,
		log:   log,
		cfg:   cfg,
		chunkCfg: chunk.Config{
			ChunkSize:         cfg.DefaultChunkSize,
			ChunkOverlap:      cfg.DefaultChunkOverlap,
			MinChunkSize:      100,
			RespectSentences:  true,
			RespectParagraphs: true,
		},
	}
	return o
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for n := 0; n < o.cfg.WorkerCount; n++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.rag, o.store, o.log, o.chunkCfg, o.cfg.ChunkStrategy, o.cfg.MaxConcurrentIndex, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// RAGClient returns the lightrag client for direct use by API handlers.
func (o *Orchestrator) RAGClient() *lightrag.Client {
	return o.rag
}
