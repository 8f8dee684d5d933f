package replay

import (
	"os"
	"path/filepath"
	"testing"
)

// #region fixture-tests

// TestFixture_RecordedGame loads the recorded_game fixture, runs Replay(),
// and compares each capture's Action against the expected action. This is
// the regression baseline for the session fold logic.
func TestFixture_RecordedGame(t *testing.T) {
	fixturePath := filepath.Join("testdata", "recorded_game.json")
	f, err := LoadFixture(fixturePath)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, sess := Replay(f.ToCaptures())

	if len(results) != len(f.ExpectedResults) {
		t.Fatalf("expected %d results, got %d", len(f.ExpectedResults), len(results))
	}

	for i, expected := range f.ExpectedResults {
		actual := results[i]
		if actual.CaptureID != expected.CaptureID {
			t.Errorf("capture %d: expected capture_id=%s, got %s", i, expected.CaptureID, actual.CaptureID)
		}
		if actual.Action != expected.Action {
			t.Errorf("capture %d (%s): expected action=%s, got action=%s",
				i, expected.CaptureID, expected.Action, actual.Action)
		}
	}

	// The scoreboard capture carries Bramble Vest on the lane opponent.
	if !hasReason(results[2], "enemy_building_armor") {
		t.Errorf("c3 reasons = %v, want enemy_building_armor", results[2].AdjustmentReasons)
	}

	if sess.UserGold != 1250 {
		t.Errorf("UserGold = %d, want 1250", sess.UserGold)
	}
	if len(sess.ItemHistory) == 0 {
		t.Error("item history should record the scoreboard snapshot")
	}
}

// TestLoadFixture_NotFound verifies error on missing file.
func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("testdata/nonexistent.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// TestLoadFixture_Malformed verifies error on invalid JSON.
func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not valid json}"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := LoadFixture(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

// #endregion fixture-tests
