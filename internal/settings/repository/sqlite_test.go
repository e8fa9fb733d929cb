package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/pkg/database/sqlite"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: filepath.Join(t.TempDir(), "data", "settings.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteRepository(context.Background(), db)
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	return repo
}

func TestLoadEmpty(t *testing.T) {
	repo := newRepo(t)

	s, err := repo.Load(context.Background())
	if err != nil || s != nil {
		t.Fatalf("expected nil, nil; got %v, %v", s, err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := model.DefaultSettings()
	first.Branding.CompanyName = "First"
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := first
	second.Branding.CompanyName = "Second"
	second.Sync = model.SyncConfig{Enabled: true, Addr: "localhost:6379", DB: 2}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Branding.CompanyName != "Second" || got.Sync.Addr != "localhost:6379" || got.Sync.DB != 2 {
		t.Fatalf("unexpected settings %+v", got)
	}

	var rows int
	if err := repo.db.Get(&rows, `SELECT COUNT(*) FROM kv`); err != nil || rows != 1 {
		t.Fatalf("expected a single kv row, got %d (%v)", rows, err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, StorageKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.Load(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
}
