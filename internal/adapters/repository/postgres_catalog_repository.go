package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

// PostgresCatalogRepository reads module contents and track layouts.
type PostgresCatalogRepository struct {
	db *sqlx.DB
}

func NewPostgresCatalogRepository(db *sqlx.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

func (r *PostgresCatalogRepository) ListByModuleIDs(ctx context.Context, moduleIDs []string) ([]domain.ModuleMembership, error) {
	if len(moduleIDs) == 0 {
		return []domain.ModuleMembership{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT module_id, content_id
		FROM module_contents
		WHERE module_id = ANY($1::text[])
		ORDER BY module_id, position`

	var rows []domain.ModuleMembership
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(moduleIDs)); err != nil {
		return nil, fmt.Errorf("repository: list memberships failed: %w", err)
	}
	return rows, nil
}

func (r *PostgresCatalogRepository) ListTrackIDsByModule(ctx context.Context, moduleID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var ids []string
	query := `SELECT track_id FROM track_modules WHERE module_id = $1 ORDER BY track_id`
	if err := r.db.SelectContext(ctx, &ids, query, moduleID); err != nil {
		return nil, fmt.Errorf("repository: list tracks of module failed: %w", err)
	}
	return ids, nil
}

func (r *PostgresCatalogRepository) ListModuleIDs(ctx context.Context, trackID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var ids []string
	query := `SELECT module_id FROM track_modules WHERE track_id = $1 ORDER BY position, module_id`
	if err := r.db.SelectContext(ctx, &ids, query, trackID); err != nil {
		return nil, fmt.Errorf("repository: list modules of track failed: %w", err)
	}
	return ids, nil
}

// AddModuleContents appends content ids to a module, keeping their order.
func (r *PostgresCatalogRepository) AddModuleContents(ctx context.Context, moduleID string, contentIDs ...string) error {
	return r.insertOrdered(ctx,
		`INSERT INTO module_contents (module_id, content_id, position) VALUES ($1, $2, $3)
		 ON CONFLICT (module_id, content_id) DO UPDATE SET position = EXCLUDED.position`,
		moduleID, contentIDs)
}

// AddTrackModules appends module ids to a track, keeping their order.
func (r *PostgresCatalogRepository) AddTrackModules(ctx context.Context, trackID string, moduleIDs ...string) error {
	return r.insertOrdered(ctx,
		`INSERT INTO track_modules (track_id, module_id, position) VALUES ($1, $2, $3)
		 ON CONFLICT (track_id, module_id) DO UPDATE SET position = EXCLUDED.position`,
		trackID, moduleIDs)
}

func (r *PostgresCatalogRepository) insertOrdered(ctx context.Context, query, parentID string, childIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, childID := range childIDs {
		if _, err := tx.ExecContext(ctx, query, parentID, childID, i); err != nil {
			return fmt.Errorf("repository: insert catalog row failed: %w", err)
		}
	}

	return tx.Commit()
}
