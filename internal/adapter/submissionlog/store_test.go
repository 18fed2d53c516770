package submissionlog

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gitlab.com/ppjudge.net/internal/domain"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// failingBlobs rejects writes after the first n puts
type failingBlobs struct {
	BlobStore
	allowed int
}

func (f *failingBlobs) Put(ctx context.Context, key string, data []byte) error {
	if f.allowed <= 0 {
		return errors.New("object store unavailable")
	}
	f.allowed--
	return f.BlobStore.Put(ctx, key, data)
}

func completedRun(runID string) *domain.JudgeRun {
	run := domain.NewJudgeRun(runID, "001", "getting-started", `print("Hello, World!")`)
	run.Results = []domain.CaseVerdict{
		{CaseID: "01", Status: domain.StatusAccepted, Output: "Hello, World!", TimeUsedMs: 12},
	}
	run.Status = domain.RunStatusCompleted
	return run
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	blobs, err := NewFSBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSBlobStore: %v", err)
	}
	return NewStore(blobs, nopLogger{})
}

func TestRecordAndGetDetails(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	log, err := store.Record(ctx, completedRun("run-1"))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if log.ID == "" {
		t.Fatal("submission id not generated")
	}
	if log.Status != domain.StatusAccepted {
		t.Errorf("overall status = %s, want AC", log.Status)
	}

	gotLog, gotResult, err := store.GetDetails(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if gotLog.ID != log.ID || gotLog.Code != `print("Hello, World!")` {
		t.Errorf("unexpected log: %+v", gotLog)
	}
	if gotResult.SubmissionID != log.ID || len(gotResult.Results) != 1 {
		t.Errorf("unexpected result: %+v", gotResult)
	}
	if !gotResult.SubmittedAt.Equal(log.SubmittedAt) {
		t.Errorf("timestamps diverge: %v != %v", gotResult.SubmittedAt, log.SubmittedAt)
	}
}

func TestGetDetailsUnknownID(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	_, _, err := store.GetDetails(context.Background(), "nope")
	if !errors.Is(err, errs.ErrSubmissionNotFound) {
		t.Errorf("GetDetails = %v, want ErrSubmissionNotFound", err)
	}
}

func TestListByProblemNewestFirst(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	// Insert out of chronological order; listing must sort by the encoded
	// timestamp, not by insertion order.
	stamps := []time.Time{
		time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 1, 5, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 2, 10, 9, 29, 59, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	ids := make(map[string]time.Time, len(stamps))
	for _, ts := range stamps {
		store.now = func() time.Time { return ts }
		log, err := store.Record(ctx, completedRun("run"))
		if err != nil {
			t.Fatalf("Record at %v: %v", ts, err)
		}
		ids[log.ID] = ts
	}

	logs, err := store.ListByProblem(ctx, "getting-started", "001", 10)
	if err != nil {
		t.Fatalf("ListByProblem: %v", err)
	}
	if len(logs) != len(stamps) {
		t.Fatalf("listed %d submissions, want %d", len(logs), len(stamps))
	}
	for i := 1; i < len(logs); i++ {
		prev, cur := ids[logs[i-1].ID], ids[logs[i].ID]
		if !prev.After(cur) {
			t.Errorf("listing out of order at %d: %v before %v", i, prev, cur)
		}
	}
}

func TestListByProblemLimit(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return ts }
		if _, err := store.Record(ctx, completedRun("run")); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	logs, err := store.ListByProblem(ctx, "getting-started", "001", 2)
	if err != nil {
		t.Fatalf("ListByProblem: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("listed %d submissions, want 2", len(logs))
	}
}

func TestListByProblemEmpty(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	logs, err := store.ListByProblem(context.Background(), "getting-started", "999", 10)
	if err != nil {
		t.Fatalf("ListByProblem: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("listed %d submissions for unknown problem", len(logs))
	}
}

func TestRecordFailureSurfaced(t *testing.T) {
	t.Parallel()
	blobs, err := NewFSBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSBlobStore: %v", err)
	}
	// The code artifact lands, then the result write fails: the submission
	// must not be reported as recorded.
	store := NewStore(&failingBlobs{BlobStore: blobs, allowed: 1}, nopLogger{})

	_, err = store.Record(context.Background(), completedRun("run-1"))
	if !errors.Is(err, errs.ErrDurableWrite) {
		t.Errorf("Record with failing store = %v, want ErrDurableWrite", err)
	}
}

func TestPartialRecordNotServed(t *testing.T) {
	t.Parallel()
	blobs, err := NewFSBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSBlobStore: %v", err)
	}
	store := NewStore(blobs, nopLogger{})
	ctx := context.Background()

	log, err := store.Record(ctx, completedRun("run-1"))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Corrupt the pairing: drop the result artifact the log references.
	// GetDetails must refuse to serve the partial record.
	if err := os.Remove(blobs.keyPath(log.ResultRef)); err != nil {
		t.Fatalf("remove result artifact: %v", err)
	}

	_, _, err = store.GetDetails(ctx, log.ID)
	if !errors.Is(err, errs.ErrSubmissionNotFound) {
		t.Errorf("GetDetails on partial record = %v, want ErrSubmissionNotFound", err)
	}
}
