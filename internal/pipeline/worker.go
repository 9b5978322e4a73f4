package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docatlas/internal/chunk"
	"github.com/dgallion1/docatlas/internal/extract"
	"github.com/dgallion1/docatlas/internal/lightrag"
	"github.com/dgallion1/docatlas/internal/manifest"
	"github.com/dgallion1/docatlas/internal/storage"
)

// Worker processes a single document job.
type Worker struct {
	rag   *lightrag.Client
	store *storage.Store
	log   *slog.Logger

	chunkCfg chunk.Config
	strategy string

	maxConcurrentIndex int
	pdfFallback        bool
}

func NewWorker(rag *lightrag.Client, store *storage.Store, log *slog.Logger, chunkCfg chunk.Config, strategy string, maxIndex int, pdfFallback bool) *Worker {
	return &Worker{
		rag:                rag,
		store:              store,
		log:                log,
		chunkCfg:           chunkCfg,
		strategy:           strategy,
		maxConcurrentIndex: maxIndex,
		pdfFallback:        pdfFallback,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	defer job.ReleaseFileData()

	// Phase 1: Extract to markdown.
	job.SetStatus(StatusExtracting, "extracting")
	ex, err := extract.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if pe, ok := ex.(*extract.PDFExtractor); ok {
		pe.FallbackPdftotext = w.pdfFallback
	}

	res, err := ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if res.Markdown == "" {
		log.Warn("no extractable content")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Build the manifest.
	job.SetStatus(StatusManifest, "manifest")
	figures := make([]manifest.FigureAsset, 0, len(res.Figures))
	for _, f := range res.Figures {
		figures = append(figures, manifest.FigureAsset{
			ID:      fmt.Sprintf("fig_%d_%d", f.Page, f.Index),
			Page:    f.Page,
			Ext:     f.Ext,
			Caption: f.Caption,
			Width:   f.Width,
			Height:  f.Height,
			Source:  "extractor",
		})
	}

	m := manifest.Generate(manifest.Source{
		DocID:     job.DocID,
		Filename:  job.Filename,
		Markdown:  res.Markdown,
		Figures:   figures,
		PageCount: res.PageCount,
		Tables:    res.Tables,
	})
	job.SetTitle(m.Title)
	job.SetAssetCounts(len(m.Assets.Tables), len(m.Assets.Figures), len(m.Assets.Sections))
	log.Info("manifest built",
		"tables", len(m.Assets.Tables),
		"figures", len(m.Assets.Figures),
		"sections", len(m.Assets.Sections),
		"pages", m.PageCount)

	// Phase 3: Chunk.
	job.SetStatus(StatusChunking, "chunking")
	chunks := chunk.SmartChunk(res.Markdown, job.Filename, w.strategy, &w.chunkCfg)
	job.SetTotalChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks))

	// Phase 4: Index chunks into the knowledge graph with bounded
	// concurrency. Indexing is enrichment; failures degrade the job to
	// partial rather than failing it.
	hadErrors := false
	if len(chunks) > 0 && w.rag.Available(ctx) {
		job.SetStatus(StatusIndexing, "indexing")
		hadErrors = w.indexChunks(ctx, job, chunks, log)

		entities, err := w.rag.ExtractEntities(ctx, res.Markdown)
		if err != nil {
			log.Warn("entity extraction failed", "error", err)
		} else {
			m.Entities = entities
		}
	} else if len(chunks) > 0 {
		log.Warn("lightrag unavailable, skipping indexing")
		job.AddError("indexing skipped: lightrag unavailable")
		hadErrors = true
	}

	// Phase 5: Persist everything.
	job.SetStatus(StatusStoring, "storing")
	if err := w.store.SaveMarkdown(job.DocID, res.Markdown); err != nil {
		log.Error("markdown write failed", "error", err)
		job.AddError(fmt.Sprintf("store markdown: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	for i, f := range res.Figures {
		figID := m.Assets.Figures[i].ID
		path, err := w.store.SaveImage(job.DocID, figID, f.Ext, f.Data)
		if err != nil {
			log.Error("image write failed", "figure", figID, "error", err)
			job.AddError(fmt.Sprintf("store %s: %s", figID, err))
			hadErrors = true
			continue
		}
		m.Assets.Figures[i].Path = path
	}
	if err := w.store.SaveManifest(m); err != nil {
		log.Error("manifest write failed", "error", err)
		job.AddError(fmt.Sprintf("store manifest: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("ingestion complete", "status", job.Status)
}

// indexChunks pushes every chunk to the graph and reports whether any
// insert ultimately failed.
func (w *Worker) indexChunks(ctx context.Context, job *Job, chunks []chunk.Chunk, log *slog.Logger) bool {
	type indexResult struct {
		err error
		idx int
	}
	results := make(chan indexResult, len(chunks))
	sem := make(chan struct{}, w.maxConcurrentIndex)

	for i, c := range chunks {
		sem <- struct{}{}
		go func(i int, text string) {
			defer func() { <-sem }()
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				lastErr = w.rag.InsertText(ctx, job.DocID, text)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable index error", "chunk", i, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- indexResult{err: ctx.Err(), idx: i}
					return
				}
			}
			results <- indexResult{err: lastErr, idx: i}
		}(i, c.Text)
	}

	hadErrors := false
	for range chunks {
		r := <-results
		if r.err != nil {
			log.Error("index failed", "chunk", r.idx, "error", r.err)
			job.AddError(fmt.Sprintf("index chunk %d: %s", r.idx, r.err))
			hadErrors = true
			continue
		}
		job.IncrChunksIndexed()
	}
	return hadErrors
}
