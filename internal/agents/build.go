package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
	"github.com/barrios-a2i/lanesight/internal/knowledge"
)

// #region build-planner

const buildSystemPrompt = `You are an expert League of Legends build optimizer.
Given a champion, role, matchup, and team compositions, provide the optimal build.

You MUST output valid JSON only. Use EXACT official item, rune, and spell names.
Do NOT invent items or runes. If unsure, use the most common/safe option.

Required JSON structure:
{
  "summoners": ["Flash", "Teleport"],
  "runes": {
    "primary_tree": "Precision",
    "primary": ["Conqueror", "Triumph", "Legend: Alacrity", "Last Stand"],
    "secondary_tree": "Resolve",
    "secondary": ["Bone Plating", "Overgrowth"],
    "shards": ["Attack Speed", "Adaptive Force", "Health Scaling"]
  },
  "skill_order": {
    "start": "Q",
    "max_order": ["Q", "E", "W"],
    "levels_1_6": ["Q", "W", "E", "Q", "Q", "R"]
  },
  "start_items": ["Doran's Blade", "Health Potion"],
  "core_items": ["Trinity Force", "Sterak's Gage", "Death's Dance"],
  "boots": "Plated Steelcaps",
  "situational_items": [
    {"if": "Enemy team is AP heavy", "buy": ["Spirit Visage", "Force of Nature"]}
  ],
  "notes": ["Rush Sheen on first back if possible"]
}`

// RuneConfig is a full rune page.
type RuneConfig struct {
	PrimaryTree   string   `json:"primary_tree"`
	Primary       []string `json:"primary"`
	SecondaryTree string   `json:"secondary_tree"`
	Secondary     []string `json:"secondary"`
	Shards        []string `json:"shards"`
}

// SkillOrder describes ability leveling.
type SkillOrder struct {
	Start     string   `json:"start"`
	MaxOrder  []string `json:"max_order"`
	Levels1_6 []string `json:"levels_1_6"`
}

// SituationalItem is a conditional purchase.
type SituationalItem struct {
	If  string   `json:"if"`
	Buy []string `json:"buy"`
}

// BuildOutput is the full pre-game itemization plan.
type BuildOutput struct {
	Summoners   []string          `json:"summoners"`
	Runes       RuneConfig        `json:"runes"`
	SkillOrder  SkillOrder        `json:"skill_order"`
	StartItems  []string          `json:"start_items"`
	CoreItems   []string          `json:"core_items"`
	Boots       string            `json:"boots"`
	Situational []SituationalItem `json:"situational_items"`
	Notes       []string          `json:"notes"`
	Meta        Meta              `json:"meta"`
}

// MatchupInput is the shared input for the pre-game coaching agents.
type MatchupInput struct {
	UserChampion string
	UserRole     knowledge.Role
	LaneOpponent string
	UserKit      knowledge.ChampionKit
	EnemyKit     knowledge.ChampionKit
	AllyTeam     [5]string
	EnemyTeam    [5]string
	AllyRoles    knowledge.Assignment
	EnemyRoles   knowledge.Assignment
	PatchVersion string
}

// BuildPlanner produces the itemization plan for the matchup.
type BuildPlanner struct {
	client analysis.Client
}

func NewBuildPlanner(client analysis.Client) *BuildPlanner {
	return &BuildPlanner{client: client}
}

const buildCostPerCall = 0.005

func (b *BuildPlanner) Plan(ctx context.Context, in MatchupInput) (BuildOutput, error) {
	start := time.Now()

	prompt := fmt.Sprintf(`Champion: %s
Role: %s
Lane Opponent: %s
Allied Team: %s
Enemy Team: %s
Patch: %s

Champion Tags: %s
Enemy Tags: %s

Provide the optimal build for this specific game. Consider:
1. Lane matchup (who wins trades, poke vs all-in)
2. Enemy team damage types (AP/AD mix)
3. Win condition (split push, teamfight, pick)
4. Power spikes and item synergies`,
		in.UserChampion, in.UserRole, in.LaneOpponent,
		strings.Join(in.AllyTeam[:], ", "), strings.Join(in.EnemyTeam[:], ", "),
		in.PatchVersion,
		strings.Join(in.UserKit.Tags, ", "), strings.Join(in.EnemyKit.Tags, ", "))

	data, err := callJSON(ctx, b.client, "build_planner", analysis.Request{
		System:    buildSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 1024,
	})
	if err != nil {
		return BuildOutput{}, err
	}

	runes := mapField(data, "runes")
	skills := mapField(data, "skill_order")

	out := BuildOutput{
		Summoners: listField(data, "summoners", []string{"Flash", "Teleport"}, 2),
		Runes: RuneConfig{
			PrimaryTree:   strField(runes, "primary_tree", "Precision"),
			Primary:       listField(runes, "primary", []string{"Conqueror", "Triumph", "Legend: Alacrity", "Last Stand"}, 4),
			SecondaryTree: strField(runes, "secondary_tree", "Resolve"),
			Secondary:     listField(runes, "secondary", []string{"Bone Plating", "Overgrowth"}, 2),
			Shards:        listField(runes, "shards", []string{"Attack Speed", "Adaptive Force", "Health Scaling"}, 3),
		},
		SkillOrder: SkillOrder{
			Start:     strField(skills, "start", "Q"),
			MaxOrder:  listField(skills, "max_order", []string{"Q", "W", "E"}, 3),
			Levels1_6: listField(skills, "levels_1_6", []string{"Q", "W", "E", "Q", "Q", "R"}, 6),
		},
		StartItems:  listField(data, "start_items", []string{"Doran's Blade", "Health Potion"}, 3),
		CoreItems:   listField(data, "core_items", []string{"Trinity Force", "Sterak's Gage", "Death's Dance"}, 4),
		Boots:       strField(data, "boots", "Plated Steelcaps"),
		Situational: situationalField(data, "situational_items"),
		Notes:       listField(data, "notes", nil, 4),
		Meta:        Meta{Confidence: 0.9, CostUSD: buildCostPerCall, LatencyMS: elapsedMS(start)},
	}
	return out, nil
}

func situationalField(m map[string]any, key string) []SituationalItem {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []SituationalItem
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, SituationalItem{
			If:  strField(entry, "if", "General"),
			Buy: listField(entry, "buy", nil, 3),
		})
		if len(out) == 4 {
			break
		}
	}
	return out
}

func fallbackBuild(latencyMS float64) BuildOutput {
	return BuildOutput{
		Summoners: []string{"Flash", "Teleport"},
		Runes: RuneConfig{
			PrimaryTree:   "Precision",
			Primary:       []string{"Conqueror", "Triumph", "Legend: Alacrity", "Last Stand"},
			SecondaryTree: "Resolve",
			Secondary:     []string{"Bone Plating", "Overgrowth"},
			Shards:        []string{"Attack Speed", "Adaptive Force", "Health Scaling"},
		},
		SkillOrder: SkillOrder{Start: "Q", MaxOrder: []string{"Q", "W", "E"}, Levels1_6: []string{"Q", "W", "E", "Q", "Q", "R"}},
		StartItems: []string{"Doran's Blade", "Health Potion"},
		CoreItems:  []string{"Trinity Force", "Sterak's Gage", "Death's Dance"},
		Boots:      "Plated Steelcaps",
		Notes:      []string{"Safe default build, generation unavailable"},
		Meta:       Meta{Confidence: 0.4, CostUSD: 0, LatencyMS: latencyMS},
	}
}

// #endregion build-planner
