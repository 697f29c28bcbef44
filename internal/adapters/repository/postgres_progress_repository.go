package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

// PostgresProgressRepository stores content completions and the module and
// track progress derived from them.
type PostgresProgressRepository struct {
	db *sqlx.DB
}

func NewPostgresProgressRepository(db *sqlx.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

func (r *PostgresProgressRepository) ListByUserAndModuleIDs(ctx context.Context, userID string, moduleIDs []string) ([]domain.CompletionRecord, error) {
	if len(moduleIDs) == 0 {
		return []domain.CompletionRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT module_id, content_id, is_completed
		FROM content_progress
		WHERE user_id = $1 AND module_id = ANY($2::text[])`

	var rows []domain.CompletionRecord
	if err := r.db.SelectContext(ctx, &rows, query, userID, pq.Array(moduleIDs)); err != nil {
		return nil, fmt.Errorf("repository: list completions failed: %w", err)
	}
	return rows, nil
}

func (r *PostgresProgressRepository) Upsert(ctx context.Context, userID string, record domain.CompletionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO content_progress (user_id, module_id, content_id, is_completed, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, module_id, content_id)
		DO UPDATE SET is_completed = EXCLUDED.is_completed, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, userID, record.ModuleID, record.ContentID, record.IsCompleted, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: upsert completion failed: %w", err)
	}
	return nil
}

func (r *PostgresProgressRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM content_progress WHERE user_id = $1 AND is_completed`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("repository: count completions failed: %w", err)
	}
	return count, nil
}

func (r *PostgresProgressRepository) ListModuleProgress(ctx context.Context, userID string, moduleIDs []string) ([]domain.ModuleProgressRecord, error) {
	if len(moduleIDs) == 0 {
		return []domain.ModuleProgressRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT user_id, module_id, started_at, completed_at, updated_at
		FROM module_progress
		WHERE user_id = $1 AND module_id = ANY($2::text[])`

	var records []domain.ModuleProgressRecord
	if err := r.db.SelectContext(ctx, &records, query, userID, pq.Array(moduleIDs)); err != nil {
		return nil, fmt.Errorf("repository: list module progress failed: %w", err)
	}
	return records, nil
}

func (r *PostgresProgressRepository) ListModuleProgressByUser(ctx context.Context, userID string) ([]domain.ModuleProgressRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT user_id, module_id, started_at, completed_at, updated_at
		FROM module_progress
		WHERE user_id = $1
		ORDER BY module_id`

	var records []domain.ModuleProgressRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list module progress by user failed: %w", err)
	}
	return records, nil
}

func (r *PostgresProgressRepository) GetModuleProgress(ctx context.Context, userID, moduleID string) (*domain.ModuleProgressRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT user_id, module_id, started_at, completed_at, updated_at
		FROM module_progress
		WHERE user_id = $1 AND module_id = $2`

	var record domain.ModuleProgressRecord
	if err := r.db.GetContext(ctx, &record, query, userID, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("repository: get module progress failed: %w", err)
	}
	return &record, nil
}

func (r *PostgresProgressRepository) UpsertModuleProgress(ctx context.Context, record *domain.ModuleProgressRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO module_progress (user_id, module_id, started_at, completed_at, updated_at)
		VALUES (:user_id, :module_id, :started_at, :completed_at, :updated_at)
		ON CONFLICT (user_id, module_id)
		DO UPDATE SET completed_at = EXCLUDED.completed_at, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("repository: upsert module progress failed: %w", err)
	}
	return nil
}

func (r *PostgresProgressRepository) ListTrackProgressByUser(ctx context.Context, userID string) ([]domain.TrackProgressRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT user_id, track_id, started_at, completed_at, updated_at
		FROM track_progress
		WHERE user_id = $1
		ORDER BY track_id`

	var records []domain.TrackProgressRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list track progress failed: %w", err)
	}
	return records, nil
}

func (r *PostgresProgressRepository) GetTrackProgress(ctx context.Context, userID, trackID string) (*domain.TrackProgressRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT user_id, track_id, started_at, completed_at, updated_at
		FROM track_progress
		WHERE user_id = $1 AND track_id = $2`

	var record domain.TrackProgressRecord
	if err := r.db.GetContext(ctx, &record, query, userID, trackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("repository: get track progress failed: %w", err)
	}
	return &record, nil
}

func (r *PostgresProgressRepository) UpsertTrackProgress(ctx context.Context, record *domain.TrackProgressRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO track_progress (user_id, track_id, started_at, completed_at, updated_at)
		VALUES (:user_id, :track_id, :started_at, :completed_at, :updated_at)
		ON CONFLICT (user_id, track_id)
		DO UPDATE SET completed_at = EXCLUDED.completed_at, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("repository: upsert track progress failed: %w", err)
	}
	return nil
}
