package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
)

// #region macro-coach

const macroSystemPrompt = `You are an expert League of Legends macro coach.
Given team compositions and the user's role, provide objective and map play advice.

You MUST output valid JSON only. Be specific about timings and conditions.

Required JSON structure:
{
  "wards": ["Where and when to ward 1", "Where and when to ward 2", "Where and when to ward 3"],
  "roams": ["Roam rule 1", "Roam rule 2"],
  "objectives": ["Dragon/Herald plan", "Setup timing", "Reset timing"],
  "midgame": ["Midgame rule 1", "Midgame rule 2"],
  "lategame": ["Lategame rule 1", "Lategame rule 2"]
}`

// MacroOutput is the objective and map-play plan.
type MacroOutput struct {
	Wards      []string `json:"wards"`
	Roams      []string `json:"roams"`
	Objectives []string `json:"objectives"`
	Midgame    []string `json:"midgame"`
	Lategame   []string `json:"lategame"`
	Meta       Meta     `json:"meta"`
}

// MacroCoach produces ward plans, roam timers, and objective setup.
type MacroCoach struct {
	client analysis.Client
}

func NewMacroCoach(client analysis.Client) *MacroCoach {
	return &MacroCoach{client: client}
}

const macroCostPerCall = 0.002

func (m *MacroCoach) Plan(ctx context.Context, in MatchupInput) (MacroOutput, error) {
	start := time.Now()

	prompt := fmt.Sprintf(`You: %s (%s)
Your Team: %s
Enemy Team: %s

Provide macro strategy for %s in the %s role:
1. Where and when to place wards (be specific: "River bush at 2:50 before first scuttle")
2. Roam timing rules
3. Dragon/Herald/Baron setup
4. Midgame transition plan
5. Lategame strategy`,
		in.UserChampion, in.UserRole,
		strings.Join(in.AllyTeam[:], ", "), strings.Join(in.EnemyTeam[:], ", "),
		in.UserChampion, in.UserRole)

	data, err := callJSON(ctx, m.client, "macro_coach", analysis.Request{
		System:    macroSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 768,
	})
	if err != nil {
		return MacroOutput{}, err
	}

	return MacroOutput{
		Wards:      listField(data, "wards", []string{"River bush before objectives", "Pixel bush for jungle tracking", "Deep ward enemy raptors"}, 5),
		Roams:      listField(data, "roams", []string{"Roam after crashing wave", "Follow enemy roams when possible"}, 4),
		Objectives: listField(data, "objectives", []string{"Contest first dragon if bot lane has priority", "Take Herald when top has TP advantage", "Setup vision 60s before objectives"}, 5),
		Midgame:    listField(data, "midgame", []string{"Group for objectives", "Split push if ahead"}, 4),
		Lategame:   listField(data, "lategame", []string{"Play around Baron", "Don't get caught"}, 4),
		Meta:       Meta{Confidence: 0.85, CostUSD: macroCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func fallbackMacro(latencyMS float64) MacroOutput {
	return MacroOutput{
		Wards:      []string{"River bush before objectives", "Pixel bush for tracking", "Deep ward enemy jungle"},
		Roams:      []string{"Roam after crashing wave", "Follow enemy roams when possible"},
		Objectives: []string{"Contest dragon when bot has priority", "Take Herald when possible", "Setup vision 60s before spawn"},
		Midgame:    []string{"Group for objectives", "Catch side lane waves"},
		Lategame:   []string{"Play around Baron", "Stick with team"},
		Meta:       Meta{Confidence: 0.4, CostUSD: 0, LatencyMS: latencyMS},
	}
}

// #endregion macro-coach
