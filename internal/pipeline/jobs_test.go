package pipeline

import (
	"errors"
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

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	a := NewJob("/tmp/a.txt", "a.txt", "english", 5)
	b := NewJob("/tmp/b.txt", "b.txt", "english", 5)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected unique non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, a.Status)
	}
	if a.Path() != "/tmp/a.txt" {
		t.Errorf("expected path %q, got %q", "/tmp/a.txt", a.Path())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("", "doc.txt", "english", 4)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusGenerating, "generating"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		snap := job.Snapshot()
		if snap.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, snap.Status)
		}
		if snap.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, snap.Phase)
		}
		if !snap.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}

	job.Complete(Result{Questions: []string{"Define Protocol."}, KeyPoints: 1, ContentHash: "abc"})
	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if len(snap.Questions) != 1 || snap.KeyPoints != 1 || snap.ContentHash != "abc" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("", "doc.txt", "english", 4)
	job.Fail("extracting", errors.New("read doc.txt: invalid UTF-8"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "extracting" {
		t.Errorf("expected phase %q, got %q", "extracting", snap.Phase)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "read doc.txt: invalid UTF-8" {
		t.Errorf("unexpected errors %v", snap.Errors)
	}
}

func TestJob_SnapshotSlicesNotNil(t *testing.T) {
	snap := NewJob("", "doc.txt", "english", 4).Snapshot()
	if snap.Errors == nil || snap.Questions == nil {
		t.Error("expected non-nil slices in snapshot")
	}
}

func TestJob_SnapshotIsCopy(t *testing.T) {
	job := NewJob("", "doc.txt", "english", 4)
	job.Complete(Result{Questions: []string{"a", "b"}})
	snap := job.Snapshot()
	snap.Questions[0] = "mutated"
	if job.Snapshot().Questions[0] != "a" {
		t.Error("snapshot must not alias job state")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job left, got %d", store.Len())
	}
}
