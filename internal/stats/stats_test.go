package stats

import (
	"testing"
	"time"
)

func TestSnapshotPercentiles(t *testing.T) {
	svc := New(time.Hour)
	svc.EditApplied(1, 100*time.Millisecond)
	svc.EditApplied(2, 200*time.Millisecond)
	svc.EditApplied(3, 300*time.Millisecond)
	svc.EditApplied(0, 400*time.Millisecond)
	svc.EditApplied(4, 500*time.Millisecond)

	snap := svc.Snapshot()
	if snap.EditsApplied != 5 {
		t.Fatalf("expected edits_applied=5, got %d", snap.EditsApplied)
	}
	if snap.RunsChanged != 10 {
		t.Fatalf("expected runs_changed=10, got %d", snap.RunsChanged)
	}
	if snap.EditCount != 5 {
		t.Fatalf("expected edit_count=5, got %d", snap.EditCount)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
}

func TestSnapshotCounters(t *testing.T) {
	svc := New(time.Hour)
	svc.DocumentOpened()
	svc.DocumentOpened()
	svc.ExportRendered()

	snap := svc.Snapshot()
	if snap.DocumentsOpened != 2 {
		t.Fatalf("expected documents_opened=2, got %d", snap.DocumentsOpened)
	}
	if snap.ExportsRendered != 1 {
		t.Fatalf("expected exports_rendered=1, got %d", snap.ExportsRendered)
	}
	if snap.EditCount != 0 {
		t.Fatalf("expected no latency samples, got %d", snap.EditCount)
	}
}

func TestPrunesExpiredSamples(t *testing.T) {
	svc := New(10 * time.Millisecond)
	svc.EditApplied(1, 100*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	snap := svc.Snapshot()
	if snap.EditCount != 0 {
		t.Fatalf("expected edit_count=0 after prune, got %d", snap.EditCount)
	}
	// Counters survive pruning, only latency samples age out.
	if snap.EditsApplied != 1 {
		t.Fatalf("expected edits_applied=1, got %d", snap.EditsApplied)
	}

	svc.EditApplied(2, 200*time.Millisecond)
	snap = svc.Snapshot()
	if snap.EditCount != 1 {
		t.Fatalf("expected edit_count=1 for fresh sample, got %d", snap.EditCount)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestEditAppliedClampsNegativeDuration(t *testing.T) {
	svc := New(time.Hour)
	svc.EditApplied(1, -10*time.Millisecond)
	snap := svc.Snapshot()
	if snap.EditCount != 1 {
		t.Fatalf("expected edit_count=1, got %d", snap.EditCount)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
