package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded game.
type Fixture struct {
	Description     string                  `json:"description"`
	Captures        []FixtureCapture        `json:"captures"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureCapture mirrors replay.Capture with JSON tags.
type FixtureCapture struct {
	CaptureID  string         `json:"capture_id"`
	State      string         `json:"state"`
	Extraction map[string]any `json:"extraction"`
}

// FixtureExpectedResult captures the expected action per capture.
type FixtureExpectedResult struct {
	CaptureID string `json:"capture_id"`
	Action    string `json:"action"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToCapture converts a FixtureCapture to a domain Capture.
func (fc *FixtureCapture) ToCapture() Capture {
	return Capture{
		CaptureID:  fc.CaptureID,
		State:      vision.GameState(fc.State),
		Extraction: session.Extraction(fc.Extraction),
	}
}

// ToCaptures converts every fixture capture in order.
func (f *Fixture) ToCaptures() []Capture {
	out := make([]Capture, len(f.Captures))
	for i := range f.Captures {
		out[i] = f.Captures[i].ToCapture()
	}
	return out
}

// #endregion fixture-loader
