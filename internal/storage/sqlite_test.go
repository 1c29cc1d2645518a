package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/arena2d/internal/core"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(arena string, distance float64) core.RunSummary {
	return core.RunSummary{
		GameID:      arena,
		Fingerprint: "00000000deadbeef",
		Ticks:       60,
		Elapsed:     1,
		Distance:    distance,
		Contacts:    2,
		Rejections:  1,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openStore(t)

	var ids []string
	for _, d := range []float64{3, 1, 2} {
		id, err := store.SaveRun(run("arena", d))
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("expected a uuid run id, got %q", id)
		}
		ids = append(ids, id)
	}
	if _, err := store.SaveRun(run("corridor", 9)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("arena", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].ID != ids[2] || runs[2].ID != ids[0] {
		t.Errorf("unexpected order: %v", runs)
	}

	r := runs[0]
	if r.ArenaID != "arena" || r.Fingerprint != "00000000deadbeef" || r.Ticks != 60 ||
		r.Distance != 2 || r.Contacts != 2 || r.Rejections != 1 || r.Elapsed != 1 {
		t.Errorf("round trip mismatch: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across arenas, got %d", len(all))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveRun(run("arena", float64(i))); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("arena", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	runs, err = store.RecentRuns("arena", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openStore(t)

	best, err := store.BestRun("arena")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected no best run, got %+v", best)
	}

	store.SaveRun(run("arena", 4))
	want, _ := store.SaveRun(run("arena", 12.5))
	store.SaveRun(run("arena", 7))
	store.SaveRun(run("pillars", 100))

	best, err = store.BestRun("arena")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.ID != want || best.Distance != 12.5 {
		t.Errorf("Expected best run %s with 12.5, got %+v", want, best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openStore(t)

	store.SaveRun(run("arena", 1))
	store.SaveRun(run("arena", 2))
	store.SaveRun(run("corridor", 3))

	if err := store.ClearRuns("arena"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns("arena", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	// Other arenas should be unaffected
	runs, _ = store.RecentRuns("corridor", 10)
	if len(runs) != 1 {
		t.Errorf("Expected corridor runs to remain, got %d", len(runs))
	}
}

func TestStoreArenaStats(t *testing.T) {
	store := openStore(t)

	empty, err := store.ArenaStats("arena")
	if err != nil {
		t.Fatalf("ArenaStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.AvgDistance() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty arena: %+v", empty)
	}

	store.SaveRun(run("arena", 2))
	store.SaveRun(run("arena", 6))
	store.SaveRun(run("pillars", 50))

	stats, err := store.ArenaStats("arena")
	if err != nil {
		t.Fatalf("ArenaStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestDistance != 6 || stats.TotalDistance != 8 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgDistance() != 4 || stats.TotalTime != 2 || stats.Contacts != 4 || stats.Rejections != 2 {
		t.Errorf("unexpected aggregates: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("expected last played to be set")
	}

	all, err := store.AllArenaStats()
	if err != nil {
		t.Fatalf("AllArenaStats() failed: %v", err)
	}
	if len(all) != 2 || all["pillars"].BestDistance != 50 {
		t.Errorf("unexpected all stats: %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arena/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arena", "runs.db")); err != nil {
		t.Errorf("Database file was not created under home: %v", err)
	}
}
