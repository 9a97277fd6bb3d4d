package postgresql_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

const migrationFile = "../../../../db/migrations/0001_init.sql"

var tables = []string{
	"outbox_events",
	"audit_logs",
	"leave_approvals",
	"leave_requests",
	"attendances",
	"employees",
	"users",
}

// newTestDB connects to TEST_DATABASE_URL, applies the schema when it is
// missing and empties every table. Tests are skipped without a database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, ensureSchema(ctx, db))
	truncateAll(t, db)
	t.Cleanup(func() { truncateAll(t, db) })

	return db
}

func ensureSchema(ctx context.Context, db *database.DB) error {
	var existing *string
	if err := db.QueryRow(ctx, `SELECT to_regclass('public.outbox_events')::text`).Scan(&existing); err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	raw, err := os.ReadFile(migrationFile)
	if err != nil {
		return err
	}
	up, _, _ := strings.Cut(string(raw), "-- +migrate Down")
	_, err = db.Exec(ctx, up)
	return err
}

func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err)
}
