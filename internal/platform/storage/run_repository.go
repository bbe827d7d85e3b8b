package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"podcastforge-server-go/internal/platform/errors"
)

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PodcastRun is one generation attempt, from request to artifact or failure.
type PodcastRun struct {
	ID              string `gorm:"primaryKey"`
	Topic           string
	Format          string
	Status          string `gorm:"index"`
	SpeakerCount    int
	UtteranceCount  int
	AudioPath       string
	MetadataPath    string
	DurationSeconds float64
	FailureDetail   string
	// FailedIndexes lists the sequence indexes of utterances that failed
	// synthesis, comma-separated. Empty for completed runs.
	FailedIndexes string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RunRepository persists run records.
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *PodcastRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "run.create", "failed to create run record", err)
	}
	return nil
}

func (r *RunRepository) Update(ctx context.Context, run *PodcastRun) error {
	if err := r.db.WithContext(ctx).Save(run).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "run.update", "failed to update run record", err)
	}
	return nil
}

// FindByID returns nil when no run exists with the given id.
func (r *RunRepository) FindByID(ctx context.Context, id string) (*PodcastRun, error) {
	var run PodcastRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "run.find_by_id", "failed to find run", err)
	}
	return &run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]PodcastRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []PodcastRun
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "run.list_recent", "failed to list runs", err)
	}
	return runs, nil
}
