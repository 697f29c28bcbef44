package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

const defaultQueueSize = 100

type ProgressJob struct {
	UserID   string
	ModuleID string
}

type ProgressWorkerDeps struct {
	Memberships domain.MembershipRepository
	Completions domain.CompletionRepository
	Records     domain.ProgressRecordRepository
	Tracks      domain.TrackRepository
	Notifier    domain.ProgressNotifier
	Logger      *logger.Logger
	QueueSize   int
	Now         func() time.Time
}

// ProgressWorker rebuilds the persisted module and track progress of a user
// after one of their completions changed.
type ProgressWorker struct {
	memberships domain.MembershipRepository
	completions domain.CompletionRepository
	records     domain.ProgressRecordRepository
	tracks      domain.TrackRepository
	notifier    domain.ProgressNotifier
	log         *logger.Logger
	now         func() time.Time
	jobs        chan ProgressJob
}

func NewProgressWorker(deps ProgressWorkerDeps) *ProgressWorker {
	size := deps.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &ProgressWorker{
		memberships: deps.Memberships,
		completions: deps.Completions,
		records:     deps.Records,
		tracks:      deps.Tracks,
		notifier:    deps.Notifier,
		log:         log.With("component", "progress_worker"),
		now:         now,
		jobs:        make(chan ProgressJob, size),
	}
}

func (w *ProgressWorker) Start(ctx context.Context) {
	go func() {
		w.log.Info("progress worker started", "queue_size", cap(w.jobs))
		for {
			select {
			case job := <-w.jobs:
				if err := w.Process(ctx, job); err != nil {
					w.log.Error("progress recompute failed",
						"user_id", job.UserID,
						"module_id", job.ModuleID,
						"error", err,
					)
				}
			case <-ctx.Done():
				w.log.Info("progress worker shutting down", "pending", len(w.jobs))
				return
			}
		}
	}()
}

// Enqueue never blocks; when the queue is full the job is dropped.
func (w *ProgressWorker) Enqueue(userID, moduleID string) {
	select {
	case w.jobs <- ProgressJob{UserID: userID, ModuleID: moduleID}:
	default:
		w.log.Warn("progress queue full, dropping job", "user_id", userID, "module_id", moduleID)
	}
}

// Process runs one recompute synchronously.
func (w *ProgressWorker) Process(ctx context.Context, job ProgressJob) error {
	moduleIDs := []string{job.ModuleID}

	memberships, err := w.memberships.ListByModuleIDs(ctx, moduleIDs)
	if err != nil {
		return fmt.Errorf("list memberships: %w", err)
	}
	completions, err := w.completions.ListByUserAndModuleIDs(ctx, job.UserID, moduleIDs)
	if err != nil {
		return fmt.Errorf("list completions: %w", err)
	}

	info := domain.ComputeModuleProgress(moduleIDs, memberships, completions)[job.ModuleID]
	now := w.now()

	record, err := w.records.GetModuleProgress(ctx, job.UserID, job.ModuleID)
	switch {
	case errors.Is(err, domain.ErrProgressNotFound):
		if info.CompletedCount == 0 {
			// Nothing was ever started, keep it that way.
			return w.notify(ctx, job, info, nil)
		}
		record = &domain.ModuleProgressRecord{UserID: job.UserID, ModuleID: job.ModuleID}
	case err != nil:
		return fmt.Errorf("get module progress: %w", err)
	}

	record.Apply(info, now)
	if err := w.records.UpsertModuleProgress(ctx, record); err != nil {
		return fmt.Errorf("save module progress: %w", err)
	}

	trackIDs, err := w.refreshTracks(ctx, job, now)
	if err != nil {
		return err
	}

	w.log.Debug("module progress recomputed",
		"user_id", job.UserID,
		"module_id", job.ModuleID,
		"status", info.Status,
		"tracks", len(trackIDs),
	)

	return w.notify(ctx, job, info, trackIDs)
}

func (w *ProgressWorker) refreshTracks(ctx context.Context, job ProgressJob, now time.Time) ([]string, error) {
	if w.tracks == nil {
		return nil, nil
	}

	trackIDs, err := w.tracks.ListTrackIDsByModule(ctx, job.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("list tracks of module: %w", err)
	}

	for _, trackID := range trackIDs {
		moduleIDs, err := w.tracks.ListModuleIDs(ctx, trackID)
		if err != nil {
			return nil, fmt.Errorf("list modules of track %s: %w", trackID, err)
		}

		records, err := w.records.ListModuleProgress(ctx, job.UserID, moduleIDs)
		if err != nil {
			return nil, fmt.Errorf("list module progress of track %s: %w", trackID, err)
		}
		if len(records) == 0 {
			continue
		}

		track, err := w.records.GetTrackProgress(ctx, job.UserID, trackID)
		switch {
		case errors.Is(err, domain.ErrProgressNotFound):
			track = &domain.TrackProgressRecord{UserID: job.UserID, TrackID: trackID}
		case err != nil:
			return nil, fmt.Errorf("get track progress %s: %w", trackID, err)
		}

		track.Apply(domain.IsTrackCompleted(moduleIDs, records), now)
		if err := w.records.UpsertTrackProgress(ctx, track); err != nil {
			return nil, fmt.Errorf("save track progress %s: %w", trackID, err)
		}
	}

	return trackIDs, nil
}

func (w *ProgressWorker) notify(ctx context.Context, job ProgressJob, info domain.ModuleProgressInfo, trackIDs []string) error {
	if w.notifier == nil {
		return nil
	}

	event := domain.ProgressChanged{
		UserID:     job.UserID,
		ModuleID:   job.ModuleID,
		Progress:   info,
		TrackIDs:   trackIDs,
		OccurredAt: w.now(),
	}
	if err := w.notifier.Notify(ctx, event); err != nil {
		// Records are already saved; notification failures are only logged.
		w.log.Warn("progress notification failed", "user_id", job.UserID, "error", err)
	}
	return nil
}
