package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docedit/internal/editor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_ProcessMarkdownBatch(t *testing.T) {
	src := "# Title\n\ncat cat cat\n"
	job := &Job{
		ID:           "w-test",
		Filename:     "doc.md",
		Status:       StatusQueued,
		OutputFormat: "markdown",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	job.SetInput([]byte(src), []editor.Op{
		{Op: "bold", Path: []int{0, 0}, Needle: "cat", All: true},
	})

	w := NewWorker(testLogger())
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.OpsApplied != 1 || snap.Progress.Changed != 3 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}

	out := string(job.Result())
	if !strings.Contains(out, "# Title") {
		t.Errorf("output missing heading:\n%s", out)
	}
	if !strings.Contains(out, "**cat**") {
		t.Errorf("output missing bolded occurrences:\n%s", out)
	}
}

func TestWorker_BadOpYieldsPartial(t *testing.T) {
	job := &Job{
		ID:           "w-partial",
		Filename:     "doc.md",
		Status:       StatusQueued,
		OutputFormat: "markdown",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	job.SetInput([]byte("some text\n"), []editor.Op{
		{Op: "not-an-op"},
		{Op: "bold", Path: []int{0}},
	})

	w := NewWorker(testLogger())
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.OpsApplied != 1 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}
}

func TestWorker_UnsupportedFormatFails(t *testing.T) {
	job := &Job{
		ID:        "w-bad",
		Filename:  "doc.xyz",
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetInput([]byte("irrelevant"), nil)

	w := NewWorker(testLogger())
	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %s", job.Snapshot().Status)
	}
}
