package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docedit/internal/editor"
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

func TestNewID_UniqueAndWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing document"},
		{StatusEditing, "applying edits"},
		{StatusRendering, "rendering output"},
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

func TestJob_ProgressAccounting(t *testing.T) {
	job := &Job{ID: "progress-test", UpdatedAt: time.Now()}
	job.SetInput([]byte("data"), []editor.Op{
		{Op: "bold", Needle: "x", All: true},
		{Op: "replace-font", From: "Arial", To: "Calibri"},
	})
	job.RecordParse(12)
	job.RecordOp(3)
	job.RecordOp(1)

	snap := job.Snapshot()
	if snap.Progress.OpsTotal != 2 || snap.Progress.OpsApplied != 2 {
		t.Errorf("unexpected op accounting: %+v", snap.Progress)
	}
	if snap.Progress.BlocksParsed != 12 || snap.Progress.Changed != 4 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("op 3 failed")
	job.AddError("op 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "op 3 failed" {
		t.Errorf("expected first error %q, got %q", "op 3 failed", snap.Progress.Errors[0])
	}
}

func TestJob_SnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "nil-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestJobStore_PutGetCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)

	job := &Job{ID: "ttl-test", UpdatedAt: time.Now()}
	store.Put(job)

	if store.Get("ttl-test") == nil {
		t.Fatal("expected job to be retrievable")
	}
	if store.Get("missing") != nil {
		t.Error("expected nil for unknown id")
	}

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()
	if store.Get("ttl-test") != nil {
		t.Error("expected expired job to be evicted")
	}
}
