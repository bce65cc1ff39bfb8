// Package testutil provides shared helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tripdesk/tripdesk/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationPairs lists the schema migrations in apply order.
var migrationPairs = []string{
	"000001_clients",
	"000002_trips",
	"000003_client_trips",
}

// ResetTravelSchema drops and recreates the full travel schema for tests.
func ResetTravelSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	// Down migrations in reverse order, then up in order.
	for i := len(migrationPairs) - 1; i >= 0; i-- {
		if err := applyMigration(ctx, pool, root, migrationPairs[i]+".down.sql"); err != nil {
			return err
		}
	}
	for _, name := range migrationPairs {
		if err := applyMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, root, filename string) error {
	path := filepath.Join(root, "migrations", filename)
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filename, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

var peselCounter uint64

// UniquePesel returns an 11-digit pesel distinct within the test process.
func UniquePesel(t testing.TB) string {
	t.Helper()
	n := atomic.AddUint64(&peselCounter, 1)
	return fmt.Sprintf("%011d", (uint64(time.Now().UnixNano())%1e7)*1e4+n%1e4)
}

// NewTestClient creates a client with sensible defaults.
func NewTestClient(t testing.TB) *model.Client {
	t.Helper()
	now := time.Now().UTC()
	return &model.Client{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@example.com",
		Telephone: "+48123456789",
		Pesel:     UniquePesel(t),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestTrip creates a trip starting at the given offset from now.
func NewTestTrip(t testing.TB, name string, startsIn time.Duration) *model.Trip {
	t.Helper()
	start := time.Now().UTC().Add(startsIn).Truncate(time.Microsecond)
	return &model.Trip{
		Name:        name,
		Description: "Test trip " + name,
		DateFrom:    start,
		DateTo:      start.Add(7 * 24 * time.Hour),
		MaxPeople:   30,
		Countries:   []model.Country{},
		Clients:     []model.Client{},
	}
}
