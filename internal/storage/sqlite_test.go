package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
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
	store := openTestStore(t)

	matches := []Match{
		{GameID: "tron", Players: 2, Winner: 1, DurationMs: 4000},
		{GameID: "tron", Players: 4, Winner: 0, DurationMs: 9000},
		{GameID: "tron", Players: 3, Winner: 3, DurationMs: 1200},
		{GameID: "other", Players: 2, Winner: 2, DurationMs: 100},
	}
	for _, m := range matches {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch(%+v) failed: %v", m, err)
		}
	}

	recent, err := store.RecentMatches("tron", 10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 tron matches, got %d", len(recent))
	}

	// Newest first
	if recent[0].Players != 3 || recent[0].Winner != 3 {
		t.Errorf("Expected newest match first, got %+v", recent[0])
	}
	if !recent[1].Draw() {
		t.Errorf("Expected second match to be a draw, got %+v", recent[1])
	}
	if recent[2].DurationMs != 4000 {
		t.Errorf("Expected oldest duration 4000, got %d", recent[2].DurationMs)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not read back")
	}

	limited, err := store.RecentMatches("tron", 2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 matches with limit, got %d", len(limited))
	}
}

func TestStoreSaveMatchRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		m    Match
	}{
		{"no players", Match{GameID: "tron", Players: 0}},
		{"negative winner", Match{GameID: "tron", Players: 2, Winner: -1}},
		{"winner out of range", Match{GameID: "tron", Players: 2, Winner: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveMatch(tt.m); err == nil {
				t.Error("SaveMatch() error = nil")
			}
		})
	}
}

func TestStoreWinCounts(t *testing.T) {
	store := openTestStore(t)

	for _, winner := range []int{1, 2, 1, 0, 1, 4} {
		if _, err := store.SaveMatch(Match{GameID: "tron", Players: 4, Winner: winner}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}
	store.SaveMatch(Match{GameID: "other", Players: 2, Winner: 2})

	counts, err := store.WinCounts("tron")
	if err != nil {
		t.Fatalf("WinCounts() failed: %v", err)
	}

	want := map[int]int{0: 1, 1: 3, 2: 1, 4: 1}
	if len(counts) != len(want) {
		t.Errorf("WinCounts() = %v, expected %v", counts, want)
	}
	for seat, n := range want {
		if counts[seat] != n {
			t.Errorf("WinCounts()[%d] = %d, expected %d", seat, counts[seat], n)
		}
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tron")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.MatchCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveMatch(Match{GameID: "tron", Players: 2, Winner: 1, DurationMs: 1000})
	store.SaveMatch(Match{GameID: "tron", Players: 2, Winner: 0, DurationMs: 3000})

	stats, err := store.GetGameStats("tron")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.MatchCount != 2 || stats.Draws != 1 {
		t.Errorf("Expected 2 matches and 1 draw, got %+v", stats)
	}
	if stats.AvgDurationMs != 2000 || stats.LongestMs != 3000 {
		t.Errorf("Expected avg 2000 and longest 3000, got %+v", stats)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(Match{GameID: "tron", Players: 2, Winner: 1})
	store.SaveMatch(Match{GameID: "other", Players: 2, Winner: 1})

	if err := store.ClearMatches("tron"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	tron, _ := store.RecentMatches("tron", 10)
	if len(tron) != 0 {
		t.Errorf("Expected 0 tron matches after clear, got %d", len(tron))
	}
	other, _ := store.RecentMatches("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game should not be affected by clearing tron")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}
