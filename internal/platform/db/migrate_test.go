package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrations_SortsAndParsesVersions(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"002_vitals.sql":   "CREATE TABLE vital_reading (id UUID PRIMARY KEY);",
		"001_core.sql":     "CREATE TABLE medication (id UUID PRIMARY KEY);",
		"010_activity.sql": "CREATE TABLE activity_log (id UUID PRIMARY KEY);",
		"notes.txt":        "not a migration",
		"README.sql":       "no numeric prefix",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	wantVersions := []int{1, 2, 10}
	wantNames := []string{"core", "vitals", "activity"}
	for i, mig := range migrations {
		if mig.Version != wantVersions[i] {
			t.Errorf("migration %d: expected version %d, got %d", i, wantVersions[i], mig.Version)
		}
		if mig.Name != wantNames[i] {
			t.Errorf("migration %d: expected name %s, got %s", i, wantNames[i], mig.Name)
		}
		if mig.SQL == "" {
			t.Errorf("migration %d: expected SQL content", i)
		}
	}
}

func TestLoadMigrations_MissingDirectory(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
