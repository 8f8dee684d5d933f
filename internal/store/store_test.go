package store

import (
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/barrios-a2i/lanesight/internal/agents"
	"github.com/barrios-a2i/lanesight/internal/pipeline"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func okRun(gameID string) pipeline.RunResult {
	return pipeline.RunResult{
		Status:     pipeline.StatusOK,
		State:      vision.StateLaning,
		Confidence: 0.82,
		GameID:     gameID,
		CostUSD:    0.004,
		LatencyMS:  120,
		Advice: &agents.LiveAdvice{
			Mode:          agents.ModeLaneCoaching,
			Headline:      "Freeze near your tower",
			Next30Seconds: []string{"Farm safely"},
		},
	}
}

func TestRecordRunAndListRuns(t *testing.T) {
	s := tempDB(t)

	if err := s.RecordRun(okRun("game-abc12345")); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun(okRun("game-abc12345")); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := s.ListRuns("game-abc12345", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	r := runs[0]
	if r.Status != "ok" || r.State != "in_game_laning" {
		t.Errorf("row = %+v", r)
	}
	if r.AdviceJSON == "" {
		t.Error("advice not persisted")
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestCooldownRunsAreSkipped(t *testing.T) {
	s := tempDB(t)

	if err := s.RecordRun(pipeline.RunResult{Status: pipeline.StatusCooldown}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	runs, err := s.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("cooldown run was logged: %+v", runs)
	}
}

func TestGameAggregation(t *testing.T) {
	s := tempDB(t)
	clock := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		if err := s.RecordRun(okRun("game-one")); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
		clock = clock.Add(5 * time.Second)
	}
	if err := s.RecordRun(okRun("game-two")); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	games, err := s.ListGames(10)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	// Newest last_seen first.
	if games[0].GameID != "game-two" {
		t.Errorf("order wrong: %+v", games)
	}
	var one GameSummary
	for _, g := range games {
		if g.GameID == "game-one" {
			one = g
		}
	}
	if one.Runs != 3 {
		t.Errorf("Runs = %d, want 3", one.Runs)
	}
	if one.TotalCostUSD < 0.0119 || one.TotalCostUSD > 0.0121 {
		t.Errorf("TotalCostUSD = %f, want ~0.012", one.TotalCostUSD)
	}
	if !one.LastSeen.After(one.FirstSeen) {
		t.Errorf("last_seen %v not after first_seen %v", one.LastSeen, one.FirstSeen)
	}
}

func TestPackageRoundTrip(t *testing.T) {
	s := tempDB(t)

	res := okRun("game-pkg")
	res.State = vision.StateLoading
	res.Advice = nil
	res.Package = &pipeline.CoachPackage{
		Meta: pipeline.MetaBlock{PatchVersion: "26.17", AgentsRun: 9, Confidence: 0.8},
		User: pipeline.UserBlock{Champion: "Darius", Role: "top", LaneOpponent: "Garen"},
		Build: pipeline.BuildBlock{
			Summoners: []string{"Flash", "Ghost"},
			CoreItems: []string{"Trinity Force", "Sterak's Gage"},
			Boots:     "Plated Steelcaps",
		},
	}
	if err := s.RecordRun(res); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	pkg, err := s.LatestPackage("game-pkg")
	if err != nil {
		t.Fatalf("LatestPackage: %v", err)
	}
	if pkg.User.Champion != "Darius" || pkg.Meta.AgentsRun != 9 {
		t.Errorf("package = %+v", pkg)
	}
	if len(pkg.Build.CoreItems) != 2 {
		t.Errorf("CoreItems = %v", pkg.Build.CoreItems)
	}
}

func TestLatestPackageMissingGame(t *testing.T) {
	s := tempDB(t)
	if _, err := s.LatestPackage("nope"); err == nil {
		t.Error("expected error for unknown game")
	}
}
