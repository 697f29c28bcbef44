package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

type PostgresLoginDayRepository struct {
	db *sqlx.DB
}

func NewPostgresLoginDayRepository(db *sqlx.DB) *PostgresLoginDayRepository {
	return &PostgresLoginDayRepository{db: db}
}

func (r *PostgresLoginDayRepository) Record(ctx context.Context, userID string, day time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO login_days (user_id, day)
		VALUES ($1, $2::date)
		ON CONFLICT (user_id, day) DO NOTHING`

	// The day travels as text so the session time zone cannot shift it.
	_, err := r.db.ExecContext(ctx, query, userID, domain.CalendarDay(day).Format(domain.DayLayout))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: record login day failed: %w", err)
	}
	return nil
}

func (r *PostgresLoginDayRepository) ListRecent(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT to_char(day, 'YYYY-MM-DD')
		FROM login_days
		WHERE user_id = $1
		ORDER BY day DESC
		LIMIT $2`

	var raw []string
	if err := r.db.SelectContext(ctx, &raw, query, userID, limit); err != nil {
		return nil, fmt.Errorf("repository: list login days failed: %w", err)
	}

	days := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("repository: bad login day %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, nil
}
