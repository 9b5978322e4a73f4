package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("doc_report_abc123", "report.pdf", []byte("pdf bytes"))

	if job.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %d chars", len(job.ID))
	}
	if job.Status != StatusQueued {
		t.Errorf("expected queued status, got %q", job.Status)
	}
	if job.DocID != "doc_report_abc123" {
		t.Errorf("unexpected doc ID: %q", job.DocID)
	}
	if job.ContentHash == "" {
		t.Error("expected content hash to be set")
	}
	if string(job.FileData()) != "pdf bytes" {
		t.Error("file data not retained")
	}
}

func TestNewJob_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for n := 0; n < 100; n++ {
		job := NewJob("doc_x_000000", "x.md", nil)
		if seen[job.ID] {
			t.Fatalf("duplicate job ID: %s", job.ID)
		}
		seen[job.ID] = true
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusManifest, "manifest"},
		{StatusChunking, "chunking"},
		{StatusIndexing, "indexing"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", nil)
	job.AddError("index chunk 3 failed")
	job.AddError("index chunk 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "index chunk 3 failed" {
		t.Errorf("unexpected first error: %q", snap.Progress.Errors[0])
	}
}

func TestJob_IncrChunksIndexed(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", nil)
	job.IncrChunksIndexed()
	job.IncrChunksIndexed()
	job.IncrChunksIndexed()

	snap := job.Snapshot()
	if snap.Progress.ChunksIndexed != 3 {
		t.Errorf("expected 3 chunks indexed, got %d", snap.Progress.ChunksIndexed)
	}
}

func TestJob_SetAssetCounts(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", nil)
	job.SetAssetCounts(2, 5, 9)

	snap := job.Snapshot()
	if snap.Progress.TablesFound != 2 {
		t.Errorf("expected 2 tables, got %d", snap.Progress.TablesFound)
	}
	if snap.Progress.FiguresFound != 5 {
		t.Errorf("expected 5 figures, got %d", snap.Progress.FiguresFound)
	}
	if snap.Progress.SectionsFound != 9 {
		t.Errorf("expected 9 sections, got %d", snap.Progress.SectionsFound)
	}
}

func TestJob_SetTotalChunks(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", nil)
	job.SetTotalChunks(42)

	snap := job.Snapshot()
	if snap.Progress.TotalChunks != 42 {
		t.Errorf("expected 42 total chunks, got %d", snap.Progress.TotalChunks)
	}
}

func TestJob_ReleaseFileData(t *testing.T) {
	job := NewJob("doc_x_000000", "x.pdf", []byte("payload"))
	job.ReleaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := NewJob("doc_x_000000", "x.pdf", nil)
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc_x_000000", "x.pdf", nil)
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != job.ID {
		t.Errorf("expected ID %q, got %q", job.ID, got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("doc_old_000000", "old.pdf", nil)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := NewJob("doc_new_000000", "new.pdf", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestGenerateULID_Format(t *testing.T) {
	id := generateULID()
	if len(id) != 26 {
		t.Fatalf("expected 26 chars, got %d", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune(crockford, r) {
			t.Fatalf("unexpected character %q in ULID %s", r, id)
		}
	}
}
