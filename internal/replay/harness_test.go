package replay

import (
	"testing"

	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

func loadingCapture(id string) Capture {
	return Capture{
		CaptureID: id,
		State:     vision.StateLoading,
		Extraction: session.Extraction{
			"blue_team":     []any{"Darius", "Lee Sin", "Ahri", "Jinx", "Thresh"},
			"red_team":      []any{"Garen", "Vi", "Syndra", "Caitlyn", "Leona"},
			"user_champion": "Darius",
			"user_role":     "top",
			"lane_opponent": "Garen",
			"build_plan":    []any{"Trinity Force", "Sterak's Gage", "Plated Steelcaps"},
		},
	}
}

func deathCapture(id, gameTime, killedBy, kda string) Capture {
	return Capture{
		CaptureID: id,
		State:     vision.StateDeath,
		Extraction: session.Extraction{
			"game_time": gameTime,
			"killed_by": killedBy,
			"user_kda":  kda,
		},
	}
}

func TestReplayFullGame(t *testing.T) {
	captures := []Capture{
		loadingCapture("c1"),
		{
			CaptureID: "c2",
			State:     vision.StateScoreboard,
			Extraction: session.Extraction{
				"user_items": []any{"Doran's Blade"},
				"user_cs":    float64(42),
				"user_kda":   "1/0/0",
				"enemy_items": map[string]any{
					"Garen": []any{"Bramble Vest"},
				},
			},
		},
		deathCapture("c3", "8:10", "Garen", "1/1/0"),
		deathCapture("c4", "9:45", "Vi", "1/2/0"),
		deathCapture("c5", "11:02", "Garen", "1/3/0"),
		{
			CaptureID:  "c6",
			State:      vision.StateLaning,
			Extraction: session.Extraction{"user_level": float64(9)},
		},
	}

	results, sess := Replay(captures)
	if len(results) != len(captures) {
		t.Fatalf("got %d results, want %d", len(results), len(captures))
	}

	if results[0].Action != "session_start" {
		t.Errorf("c1 action = %s", results[0].Action)
	}
	if results[1].Action != "merge" || results[2].Action != "death" {
		t.Errorf("actions = %s, %s", results[1].Action, results[2].Action)
	}

	// Bramble Vest on the lane opponent flags armor stacking from c2 on.
	if !hasReason(results[1], "enemy_building_armor") {
		t.Errorf("c2 reasons = %v, want enemy_building_armor", results[1].AdjustmentReasons)
	}
	// Three deaths against one kill flags dying_frequently by c5.
	if !hasReason(results[4], "dying_frequently") {
		t.Errorf("c5 reasons = %v, want dying_frequently", results[4].AdjustmentReasons)
	}

	if !sess.Started() {
		t.Fatal("session should be live after replay")
	}
	if sess.UserLevel != 9 || sess.UserCS != 42 {
		t.Errorf("session = level %d, cs %d", sess.UserLevel, sess.UserCS)
	}
	if len(sess.Deaths) != 3 {
		t.Errorf("deaths = %d, want 3", len(sess.Deaths))
	}
	if sess.CapturesAnalyzed != 6 {
		t.Errorf("CapturesAnalyzed = %d, want 6", sess.CapturesAnalyzed)
	}
}

func TestReplaySecondLoadingResetsSession(t *testing.T) {
	results, sess := Replay([]Capture{
		loadingCapture("c1"),
		deathCapture("c2", "5:00", "Garen", "0/1/0"),
		loadingCapture("c3"),
	})

	if results[2].Action != "session_start" {
		t.Errorf("c3 action = %s", results[2].Action)
	}
	if len(sess.Deaths) != 0 {
		t.Errorf("deaths carried across games: %v", sess.Deaths)
	}
}

func TestReplayIgnoresNonGameCaptures(t *testing.T) {
	results, sess := Replay([]Capture{
		{CaptureID: "c1", State: vision.StateNotGame},
		{CaptureID: "c2", State: vision.StateChampSelect},
	})

	for _, r := range results {
		if r.Action != "ignored" {
			t.Errorf("%s action = %s, want ignored", r.CaptureID, r.Action)
		}
	}
	if sess.Started() || sess.CapturesAnalyzed != 0 {
		t.Error("ignored captures must not touch the session")
	}
}

func TestSummarize(t *testing.T) {
	captures := []Capture{
		loadingCapture("c1"),
		deathCapture("c2", "4:00", "Garen", "0/1/0"),
		deathCapture("c3", "6:00", "Vi", "0/2/0"),
		deathCapture("c4", "8:00", "Garen", "0/3/0"),
		{CaptureID: "c5", State: vision.StateNotGame},
	}
	results, sess := Replay(captures)
	s := Summarize(results, sess)

	if s.TotalCaptures != 5 || s.SessionStarts != 1 || s.Deaths != 3 || s.Ignored != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.SignalCounts["dying_frequently"] == 0 {
		t.Errorf("SignalCounts = %v", s.SignalCounts)
	}
	if s.FinalContext.User.Champion != "Darius" {
		t.Errorf("final context user = %+v", s.FinalContext.User)
	}
}

func hasReason(r Result, want string) bool {
	for _, reason := range r.AdjustmentReasons {
		if reason == want {
			return true
		}
	}
	return false
}
