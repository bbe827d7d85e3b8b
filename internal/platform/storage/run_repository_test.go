package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func setupRepo(t *testing.T) *RunRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return NewRunRepository(db)
}

func TestRunRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	run := &PodcastRun{
		ID:           "run-abc",
		Topic:        "tide pools",
		Format:       "interview",
		Status:       RunStatusRunning,
		SpeakerCount: 2,
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.FindByID(ctx, "run-abc")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got == nil || got.Topic != "tide pools" {
		t.Fatalf("unexpected run: %+v", got)
	}

	got.Status = RunStatusCompleted
	got.AudioPath = "/data/podcasts/run-abc/podcast.mp3"
	got.DurationSeconds = 312.4
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	updated, err := repo.FindByID(ctx, "run-abc")
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if updated.Status != RunStatusCompleted || updated.AudioPath == "" {
		t.Errorf("update not persisted: %+v", updated)
	}
}

func TestRunRepository_FailedRunKeepsIndexes(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	run := &PodcastRun{
		ID:            "run-fail",
		Status:        RunStatusFailed,
		FailureDetail: "synthesis failed for 2 utterances",
		FailedIndexes: "2,5",
	}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.FindByID(ctx, "run-fail")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.FailedIndexes != "2,5" {
		t.Errorf("FailedIndexes = %q, want %q", got.FailedIndexes, "2,5")
	}
}

func TestRunRepository_FindMissing(t *testing.T) {
	repo := setupRepo(t)
	got, err := repo.FindByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestRunRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := repo.Create(ctx, &PodcastRun{ID: id, Status: RunStatusFailed}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	runs, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}
