package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "leetvault.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	}()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	if db.Path() != dbPath {
		t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dirs", "leetvault.db")

	db, err := New(DefaultConfig(dbPath))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("nested directories were not created")
	}
}

func TestNew_SeedsSyncMeta(t *testing.T) {
	db := testDB(t)

	meta, err := db.GetAllSyncMeta()
	if err != nil {
		t.Fatalf("GetAllSyncMeta() error = %v", err)
	}

	for _, key := range []string{
		models.SyncMetaLastSync,
		models.SyncMetaLastFullPull,
		models.SyncMetaTotalSynced,
		models.SyncMetaSchemaVersion,
	} {
		if _, ok := meta[key]; !ok {
			t.Errorf("expected seeded sync meta key %q", key)
		}
	}

	if meta[models.SyncMetaSchemaVersion] != "1" {
		t.Errorf("schema version = %q, want %q", meta[models.SyncMetaSchemaVersion], "1")
	}
}

func TestProcessedSlugs(t *testing.T) {
	db := testDB(t)

	slugs, err := db.ListProcessedSlugs()
	if err != nil {
		t.Fatalf("ListProcessedSlugs() error = %v", err)
	}
	if len(slugs) != 0 {
		t.Errorf("expected empty processed set, got %v", slugs)
	}

	if err := db.AddProcessedSlugs([]string{"two-sum", "three-sum", ""}); err != nil {
		t.Fatalf("AddProcessedSlugs() error = %v", err)
	}

	// Re-adding an existing slug must not fail or duplicate.
	if err := db.AddProcessedSlugs([]string{"two-sum", "coin-change"}); err != nil {
		t.Fatalf("AddProcessedSlugs() repeat error = %v", err)
	}

	slugs, err = db.ListProcessedSlugs()
	if err != nil {
		t.Fatalf("ListProcessedSlugs() error = %v", err)
	}
	if len(slugs) != 3 {
		t.Fatalf("expected 3 processed slugs, got %d: %v", len(slugs), slugs)
	}

	want := []string{"coin-change", "three-sum", "two-sum"}
	for i, slug := range want {
		if slugs[i] != slug {
			t.Errorf("slugs[%d] = %q, want %q", i, slugs[i], slug)
		}
	}

	has, err := db.HasProcessedSlug("two-sum")
	if err != nil {
		t.Fatalf("HasProcessedSlug() error = %v", err)
	}
	if !has {
		t.Error("expected two-sum to be processed")
	}

	has, err = db.HasProcessedSlug("nonexistent")
	if err != nil {
		t.Fatalf("HasProcessedSlug() error = %v", err)
	}
	if has {
		t.Error("expected nonexistent slug to be absent")
	}

	count, err := db.CountProcessedSlugs()
	if err != nil {
		t.Fatalf("CountProcessedSlugs() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountProcessedSlugs() = %d, want 3", count)
	}
}

func TestClearProcessedSlugs(t *testing.T) {
	db := testDB(t)

	if err := db.AddProcessedSlugs([]string{"two-sum", "three-sum"}); err != nil {
		t.Fatalf("AddProcessedSlugs() error = %v", err)
	}

	if err := db.ClearProcessedSlugs(); err != nil {
		t.Fatalf("ClearProcessedSlugs() error = %v", err)
	}

	count, err := db.CountProcessedSlugs()
	if err != nil {
		t.Fatalf("CountProcessedSlugs() error = %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty set after clear, got %d", count)
	}

	// Clearing an already-empty set is fine.
	if err := db.ClearProcessedSlugs(); err != nil {
		t.Fatalf("ClearProcessedSlugs() on empty set error = %v", err)
	}
}

func TestSyncMeta(t *testing.T) {
	db := testDB(t)

	// Missing keys read as empty, not as errors.
	val, err := db.GetSyncMeta("no-such-key")
	if err != nil {
		t.Fatalf("GetSyncMeta() error = %v", err)
	}
	if val != "" {
		t.Errorf("GetSyncMeta(missing) = %q, want empty", val)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := db.SetSyncMeta(models.SyncMetaLastSync, now); err != nil {
		t.Fatalf("SetSyncMeta() error = %v", err)
	}

	val, err = db.GetSyncMeta(models.SyncMetaLastSync)
	if err != nil {
		t.Fatalf("GetSyncMeta() error = %v", err)
	}
	if val != now {
		t.Errorf("GetSyncMeta() = %q, want %q", val, now)
	}

	// Overwrite via upsert.
	if err := db.SetSyncMeta(models.SyncMetaLastSync, "later"); err != nil {
		t.Fatalf("SetSyncMeta() overwrite error = %v", err)
	}
	val, _ = db.GetSyncMeta(models.SyncMetaLastSync)
	if val != "later" {
		t.Errorf("GetSyncMeta() after overwrite = %q, want %q", val, "later")
	}

	if err := db.DeleteSyncMeta(models.SyncMetaLastSync); err != nil {
		t.Fatalf("DeleteSyncMeta() error = %v", err)
	}
	val, _ = db.GetSyncMeta(models.SyncMetaLastSync)
	if val != "" {
		t.Errorf("GetSyncMeta() after delete = %q, want empty", val)
	}
}

func TestGetOrCreateTrackingID(t *testing.T) {
	db := testDB(t)

	id := db.GetOrCreateTrackingID()
	if id == "" {
		t.Fatal("expected non-empty tracking ID")
	}

	// Stable across calls.
	if again := db.GetOrCreateTrackingID(); again != id {
		t.Errorf("tracking ID changed between calls: %q vs %q", id, again)
	}
}

func TestGetStats(t *testing.T) {
	db := testDB(t)

	if err := db.AddProcessedSlugs([]string{"two-sum", "three-sum"}); err != nil {
		t.Fatalf("AddProcessedSlugs() error = %v", err)
	}

	syncTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := db.SetSyncMeta(models.SyncMetaLastSync, syncTime.Format(time.RFC3339)); err != nil {
		t.Fatalf("SetSyncMeta() error = %v", err)
	}
	if err := db.SetSyncMeta(models.SyncMetaTotalSynced, "42"); err != nil {
		t.Fatalf("SetSyncMeta() error = %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.ProcessedCount != 2 {
		t.Errorf("ProcessedCount = %d, want 2", stats.ProcessedCount)
	}
	if stats.TotalSynced != 42 {
		t.Errorf("TotalSynced = %d, want 42", stats.TotalSynced)
	}
	if !stats.LastSyncAt.Equal(syncTime) {
		t.Errorf("LastSyncAt = %v, want %v", stats.LastSyncAt, syncTime)
	}
	if !stats.LastFullPullAt.IsZero() {
		t.Errorf("LastFullPullAt = %v, want zero", stats.LastFullPullAt)
	}
	if stats.DBSizeBytes <= 0 {
		t.Error("expected positive database size")
	}
}

func TestTransaction(t *testing.T) {
	db := testDB(t)

	err := db.Transaction(func(tx *DB) error {
		return tx.AddProcessedSlugs([]string{"two-sum"})
	})
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}

	count, _ := db.CountProcessedSlugs()
	if count != 1 {
		t.Errorf("expected 1 slug after committed transaction, got %d", count)
	}

	wantErr := os.ErrClosed
	err = db.Transaction(func(tx *DB) error {
		if err := tx.AddProcessedSlugs([]string{"three-sum"}); err != nil {
			return err
		}
		return wantErr
	})
	if err == nil {
		t.Fatal("expected transaction error to propagate")
	}

	count, _ = db.CountProcessedSlugs()
	if count != 1 {
		t.Errorf("expected rollback to discard write, got %d slugs", count)
	}
}
