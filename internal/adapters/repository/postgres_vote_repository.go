package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

type PostgresVoteRepository struct {
	db *sqlx.DB
}

func NewPostgresVoteRepository(db *sqlx.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

func (r *PostgresVoteRepository) Upsert(ctx context.Context, vote *domain.ModuleVote) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO module_votes (id, user_id, module_id, value, created_at, updated_at)
		VALUES (:id, :user_id, :module_id, :value, :created_at, :updated_at)
		ON CONFLICT (user_id, module_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, vote); err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		case isUniqueViolation(err):
			// Only reachable on an id collision; (user, module) is handled by the upsert.
			return domain.ErrVoteConflict
		}
		return fmt.Errorf("repository: upsert vote failed: %w", err)
	}
	return nil
}

func (r *PostgresVoteRepository) Delete(ctx context.Context, userID, moduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `DELETE FROM module_votes WHERE user_id = $1 AND module_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, moduleID); err != nil {
		return fmt.Errorf("repository: delete vote failed: %w", err)
	}
	return nil
}

func (r *PostgresVoteRepository) ListByModule(ctx context.Context, moduleID string) ([]domain.ModuleVote, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, user_id, module_id, value, created_at, updated_at
		FROM module_votes
		WHERE module_id = $1`

	var votes []domain.ModuleVote
	if err := r.db.SelectContext(ctx, &votes, query, moduleID); err != nil {
		return nil, fmt.Errorf("repository: list votes failed: %w", err)
	}
	return votes, nil
}
