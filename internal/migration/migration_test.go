package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fs := fstest.MapFS{}
	for name, content := range files {
		fs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fs
}

func TestApplyFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":  "CREATE TABLE a (id INTEGER PRIMARY KEY);",
		"002_more.sql":  "CREATE TABLE b (id INTEGER PRIMARY KEY);",
		"010_later.sql": "CREATE TABLE c (id INTEGER PRIMARY KEY);",
	}))

	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied != 3 {
		t.Errorf("applied = %d, want 3", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 10 {
		t.Errorf("version = %d, want 10", version)
	}

	for _, table := range []string{"a", "b", "c"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	fs := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
	})

	if _, err := NewRunner(db, fs).Apply(nil); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	applied, err := NewRunner(db, fs).Apply(nil)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second apply ran %d migrations, want 0", applied)
	}
}

func TestApplyOnlyPending(t *testing.T) {
	db := openTestDB(t)

	if _, err := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
	})).Apply(nil); err != nil {
		t.Fatalf("initial apply failed: %v", err)
	}

	applied, err := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
		"002_next.sql": "CREATE TABLE b (id INTEGER PRIMARY KEY);",
	})).Apply(nil)
	if err != nil {
		t.Fatalf("incremental apply failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_bad.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY); THIS IS NOT SQL;",
	}))

	if _, err := runner.Apply(nil); err == nil {
		t.Fatal("expected a failing migration to error")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 0 {
		t.Errorf("version after failed migration = %d, want 0", version)
	}
}

func TestReadMigrationsRejectsBadNames(t *testing.T) {
	db := openTestDB(t)

	if _, err := NewRunner(db, migrationFS(map[string]string{
		"init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
	})).ReadMigrations(); err == nil {
		t.Error("expected error for filename without version prefix")
	}

	if _, err := NewRunner(db, migrationFS(map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
		"001_b.sql": "CREATE TABLE b (id INTEGER PRIMARY KEY);",
	})).ReadMigrations(); err == nil {
		t.Error("expected error for duplicate version")
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	oneMigration := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
	})
	twoMigrations := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
		"002_next.sql": "CREATE TABLE b (id INTEGER PRIMARY KEY);",
	})

	if _, err := NewRunner(db, oneMigration).Apply(nil); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if err := NewRunner(db, oneMigration).ValidateVersion(); err != nil {
		t.Errorf("up-to-date schema rejected: %v", err)
	}
	if err := NewRunner(db, twoMigrations).ValidateVersion(); err == nil {
		t.Error("expected error for schema behind the embedded migrations")
	}
}
