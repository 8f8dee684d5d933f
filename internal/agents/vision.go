package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
)

// #region vision-parser

const visionSystemPrompt = `You are an expert League of Legends champion identification system.
You are shown a loading screen with ten champion cards, five per team.
Blue team is the left column, red team is the right column.

Output valid JSON only:
{
  "blue_team": ["Champion1", "Champion2", "Champion3", "Champion4", "Champion5"],
  "red_team": ["Champion1", "Champion2", "Champion3", "Champion4", "Champion5"],
  "confidence": 0.0-1.0
}

Use EXACT official champion names. If a card is unreadable use "Unknown".`

// VisionOutput is the roster read off a loading screen.
type VisionOutput struct {
	BlueTeam   [5]string `json:"blue_team"`
	RedTeam    [5]string `json:"red_team"`
	Confidence float64   `json:"overall_confidence"`
	Meta       Meta      `json:"meta"`
}

// VisionParser reads team rosters from loading-screen captures.
type VisionParser struct {
	client analysis.Client
}

func NewVisionParser(client analysis.Client) *VisionParser {
	return &VisionParser{client: client}
}

const visionCostPerCall = 0.008

// Parse identifies the ten champions on a loading screen. There is no
// useful fallback: without rosters the pre-game plan cannot exist, so
// failure is an error.
func (v *VisionParser) Parse(ctx context.Context, imageB64 string) (VisionOutput, error) {
	start := time.Now()

	data, err := callJSON(ctx, v.client, "vision_parser", analysis.Request{
		System:    visionSystemPrompt,
		Prompt:    "Identify all ten champions on this loading screen.",
		ImageB64:  imageB64,
		MaxTokens: 512,
	})
	if err != nil {
		return VisionOutput{}, err
	}

	blue := listField(data, "blue_team", nil, 5)
	red := listField(data, "red_team", nil, 5)
	if len(blue) == 0 || len(red) == 0 {
		return VisionOutput{}, fmt.Errorf("vision parse missing a team roster")
	}

	out := VisionOutput{Confidence: floatField(data, "confidence", 0.5)}
	copy(out.BlueTeam[:], blue)
	copy(out.RedTeam[:], red)
	out.Meta = Meta{
		Confidence: out.Confidence,
		CostUSD:    visionCostPerCall,
		LatencyMS:  elapsedMS(start),
	}
	return out, nil
}

func floatField(m map[string]any, key string, def float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

// #endregion vision-parser
