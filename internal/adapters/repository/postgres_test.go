package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("DB_USER", "kanso_user"),
		envOr("DB_PASSWORD", "secret"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_NAME", "kanso_db"),
	)

	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db), "Failed to apply schema")
	return db
}

// createTestUser inserts a user with a random id and returns it.
func createTestUser(t *testing.T, db *sqlx.DB) string {
	t.Helper()

	user, err := domain.NewUser(uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, NewPostgresUserRepository(db).Ensure(context.Background(), user))
	return user.ID
}
