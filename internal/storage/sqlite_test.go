package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("ada", 1, 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore(1); high != 120 {
		t.Errorf("Expected score to survive reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		player string
		level  int
		score  int
	}{
		{"ada", 1, 100},
		{"bob", 1, 50},
		{"ada", 1, 200},
		{"bob", 2, 500},
	} {
		if _, err := store.SaveScore(s.player, s.level, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(1, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ada" || scores[0].Level != 1 {
		t.Errorf("Unexpected top entry: %+v", scores[0])
	}

	all, err := store.TopScores(0, 10)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("Expected all 4 scores led by 500, got %v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("ada", 3, (i+1)*100)
	}

	scores, err := store.TopScores(3, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(1)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}

	store.SaveScore("ada", 1, 100)
	store.SaveScore("ada", 1, 300)
	store.SaveScore("ada", 2, 900)

	if high, _ = store.HighScore(1); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
	if high, _ = store.HighScore(0); high != 900 {
		t.Errorf("Expected overall high score of 900, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ada", 1, 100)
	store.SaveScore("ada", 1, 200)
	store.SaveScore("ada", 2, 300)

	if err := store.ClearScores(1); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores(1, 10); len(scores) != 0 {
		t.Errorf("Expected 0 level 1 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores(2, 10); len(scores) != 1 {
		t.Errorf("Level 2 scores should not be affected by clearing level 1")
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveLevelResult(LevelResult{
		Player:   "ada",
		Level:    2,
		Outcome:  OutcomeWon,
		Points:   340,
		Duration: 42 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("Expected a UUID run ID, got %q", runID)
	}

	got, err := store.ResultByRunID(runID)
	if err != nil {
		t.Fatalf("ResultByRunID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected result, got nil")
	}
	if got.Player != "ada" || got.Level != 2 || got.Points != 340 || got.Duration != 42*time.Second {
		t.Errorf("Unexpected result: %+v", got)
	}

	missing, err := store.ResultByRunID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for unknown run, got %v, %v", missing, err)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	r := LevelResult{RunID: uuid.NewString(), Player: "ada", Level: 1, Outcome: OutcomeLeaked}

	if _, err := store.SaveLevelResult(r); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := store.SaveLevelResult(r); err == nil {
		t.Error("Expected error when saving the same run twice")
	}
}

func TestStoreRecentResultsAndStats(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{Player: "ada", Level: 1, Outcome: OutcomeLeaked, Points: 30},
		{Player: "ada", Level: 1, Outcome: OutcomeWon, Points: 150},
		{Player: "bob", Level: 1, Outcome: OutcomeTimedOut, Points: 90},
		{Player: "bob", Level: 2, Outcome: OutcomeWon, Points: 200},
	}
	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults("", 3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].Level != 2 {
		t.Errorf("Expected 3 results newest first, got %+v", recent)
	}

	bobs, _ := store.RecentResults("bob", 10)
	if len(bobs) != 2 {
		t.Errorf("Expected 2 results for bob, got %d", len(bobs))
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	lvl1 := stats[1]
	if lvl1 == nil {
		t.Fatal("Expected stats for level 1")
	}
	if lvl1.Attempts != 3 || lvl1.Wins != 1 || lvl1.BestPoints != 150 {
		t.Errorf("Unexpected level 1 stats: %+v", lvl1)
	}
	if stats[2] == nil || stats[2].Wins != 1 {
		t.Errorf("Unexpected level 2 stats: %+v", stats[2])
	}
}

func TestGeneratePlayerName(t *testing.T) {
	name := GeneratePlayerName(nil)
	if !strings.HasPrefix(name, "Player_") || len(name) != len("Player_")+10 {
		t.Fatalf("Unexpected player name %q", name)
	}
	for _, r := range strings.TrimPrefix(name, "Player_") {
		if !strings.ContainsRune(nameAlphabet, r) {
			t.Errorf("Unexpected character %q in %q", r, name)
		}
	}

	zero := GeneratePlayerName(func(int) int { return 0 })
	if zero != "Player_AAAAAAAAAA" {
		t.Errorf("Expected deterministic name, got %q", zero)
	}
}
