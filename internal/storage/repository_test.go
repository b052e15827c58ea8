package storage

import (
	"path/filepath"
	"testing"

	"github.com/yuuto7838/adsim/internal/game"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "adsim_test.db"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	return NewSQLiteRepository(db)
}

func TestCredential_Roundtrip(t *testing.T) {
	repo := newTestRepository(t)

	key, err := repo.LoadCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "" {
		t.Fatalf("fresh database should have no credential, got %q", key)
	}

	if err := repo.SaveCredential("first-key"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	key, err = repo.LoadCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "first-key" {
		t.Fatalf("expected first-key, got %q", key)
	}

	// Saving again replaces, never accumulates.
	if err := repo.SaveCredential("second-key"); err != nil {
		t.Fatalf("SaveCredential: %v", err)
	}
	key, err = repo.LoadCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "second-key" {
		t.Fatalf("expected second-key, got %q", key)
	}

	if err := repo.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential: %v", err)
	}
	key, err = repo.LoadCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "" {
		t.Fatalf("credential not cleared, got %q", key)
	}
}

func TestSaveCredential_RejectsEmptyKey(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.SaveCredential("   "); err == nil {
		t.Fatalf("expected an error for a blank key")
	}
}

func TestClearCredential_EmptyIsNoop(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.ClearCredential(); err != nil {
		t.Fatalf("clearing an empty table must succeed: %v", err)
	}
}

func TestArchive_AppendAndListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)

	rows, err := repo.ListArchive(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("fresh database should have no archive rows")
	}

	for i, name := range []string{"A社", "B社", "C社"} {
		err := repo.AppendArchive(&game.SessionArchive{
			ClientName:   name,
			Product:      "製品",
			MonthsPlayed: i + 1,
			TotalSpend:   float64(i+1) * 100000,
			TotalRevenue: float64(i+1) * 250000,
			FinalBudget:  1000000,
		})
		if err != nil {
			t.Fatalf("AppendArchive %s: %v", name, err)
		}
	}

	rows, err = repo.ListArchive(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ClientName != "C社" || rows[2].ClientName != "A社" {
		t.Fatalf("rows not newest-first: %+v", rows)
	}

	rows, err = repo.ListArchive(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].ClientName != "C社" {
		t.Fatalf("limit not applied: %+v", rows)
	}
}

func TestAppendArchive_NilIsNoop(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.AppendArchive(nil); err != nil {
		t.Fatalf("nil archive must be a no-op: %v", err)
	}
	rows, err := repo.ListArchive(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("nil archive created a row")
	}
}
