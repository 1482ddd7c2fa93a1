package repositories

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyportal/internal/app/migrations"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/db"
)

// testDatabaseEnv names a disposable Postgres used by the database tests.
const testDatabaseEnv = "STUDYPORTAL_TEST_DATABASE_URL"

func TestMergeEntrySQL_KeepsExistingEntries(t *testing.T) {
	sql := strings.Join(strings.Fields(mergeEntrySQL), " ")
	if !strings.Contains(sql, "ON CONFLICT (user_id, resource_id) DO NOTHING") {
		t.Errorf("merge must ignore entries already saved: %s", sql)
	}
	if strings.Contains(strings.ToUpper(sql), "DO UPDATE") || strings.Contains(sql, "saved_at") {
		t.Errorf("merge must leave saved_at to the column default: %s", sql)
	}
	if !strings.Contains(sql, "FROM resources WHERE id = $2") {
		t.Errorf("merge must skip ids without a resource: %s", sql)
	}
}

// newTestPostgres migrates a fresh schema of the database named by testDatabaseEnv
// and drops it when the test ends.
func newTestPostgres(t *testing.T) *db.PostgresDB {
	t.Helper()
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}
	ctx := context.Background()

	admin, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect to schema: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrations.NewMigrator(pool).MigrateFromDirectory(ctx, "../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &db.PostgresDB{Pool: pool}
}

func savedAt(t *testing.T, pg *db.PostgresDB, userID, resourceID string) time.Time {
	t.Helper()
	var at time.Time
	err := pg.Pool.QueryRow(context.Background(),
		`SELECT saved_at FROM watchlist WHERE user_id = $1 AND resource_id = $2`, userID, resourceID).Scan(&at)
	if err != nil {
		t.Fatalf("saved_at of %s: %v", resourceID, err)
	}
	return at
}

func TestWatchlistRepository_MergeIsIdempotent(t *testing.T) {
	pg := newTestPostgres(t)
	ctx := context.Background()

	user := &models.User{Email: "asha@example.com", Password: "x", Name: "Asha", Role: models.UserRoleUser}
	if err := NewUserRepository(pg.Pool).Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	resources := NewResourceRepository(pg.Pool)
	for _, id := range []string{"optics", "waves", "kinematics"} {
		res := &models.Resource{
			ID: id, Title: id, Content: "chapter notes",
			Category: []string{"Notes"}, Subject: []string{"Physics"}, Stream: []string{"Science"},
			Visibility: models.VisibilityPublic,
		}
		if err := resources.Create(ctx, res); err != nil {
			t.Fatalf("create resource %s: %v", id, err)
		}
	}

	repo := NewWatchlistRepository(pg)
	if err := repo.Add(ctx, user.ID, "optics"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := savedAt(t, pg, user.ID, "optics")

	guestIDs := []string{"optics", "waves", "no-such-resource", "kinematics"}
	added, err := repo.Merge(ctx, user.ID, guestIDs)
	if err != nil {
		t.Fatalf("first Merge: %v", err)
	}
	if added != 2 {
		t.Errorf("first merge added %d, want 2", added)
	}
	wavesAt := savedAt(t, pg, user.ID, "waves")

	added, err = repo.Merge(ctx, user.ID, guestIDs)
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}
	if added != 0 {
		t.Errorf("second merge added %d, want 0", added)
	}

	ids, err := repo.IDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("ids = %v, want three distinct entries", ids)
	}
	if got := savedAt(t, pg, user.ID, "optics"); !got.Equal(before) {
		t.Errorf("optics saved_at changed from %v to %v", before, got)
	}
	if got := savedAt(t, pg, user.ID, "waves"); !got.Equal(wavesAt) {
		t.Errorf("waves saved_at changed from %v to %v", wavesAt, got)
	}
}

func TestWatchlistRepository_MergeEmpty(t *testing.T) {
	// No ids means no transaction, so no database is needed.
	repo := NewWatchlistRepository(&db.PostgresDB{})
	added, err := repo.Merge(context.Background(), uuid.NewString(), nil)
	if err != nil || added != 0 {
		t.Fatalf("Merge(nil) = %d, %v", added, err)
	}
}
