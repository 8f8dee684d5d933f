package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// Mode says what kind of coaching a package carries.
type Mode string

const (
	ModePregamePlan   Mode = "pregame_plan"
	ModeLaneCoaching  Mode = "lane_coaching"
	ModeBuildAdvice   Mode = "build_advice"
	ModeDeathReview   Mode = "death_review"
	ModeTeamfightPrep Mode = "teamfight_prep"
	ModeGameReview    Mode = "game_review"
)

// #region extractor

var extractionPrompts = map[vision.GameState]string{
	vision.StateScoreboard: `You are analyzing a League of Legends TAB scoreboard screenshot.

Extract everything you can see and respond as JSON:
{
  "game_time": "MM:SS or estimate",
  "user_champion": "name",
  "user_kda": [kills, deaths, assists],
  "user_cs": number,
  "user_items": ["item1", "item2"],
  "user_gold": number_if_visible,
  "lane_opponent": "champion name",
  "enemy_items": {"Champion": ["item1", "item2"]},
  "enemy_levels": {"Champion": level},
  "who_is_fed": "champion name or none",
  "gold_state": "ahead/behind/even"
}`,

	vision.StateShop: `You are analyzing a League of Legends shop screenshot.

Extract and respond as JSON:
{
  "user_gold": number,
  "user_items": ["item1", "item2"],
  "browsing": "item or category name"
}`,

	vision.StateDeath: `You are analyzing a League of Legends death screen (gray overlay, player just died).

Extract and respond as JSON:
{
  "respawn_timer": seconds_if_visible,
  "killed_by": "champion name",
  "death_location": "lane / river / jungle / tower",
  "game_time": "MM:SS or estimate"
}`,

	vision.StatePostGame: `You are analyzing a League of Legends post-game stats screen.

Extract and respond as JSON:
{
  "result": "victory / defeat",
  "game_duration": "MM:SS",
  "user_kda": [k, d, a],
  "user_cs": number,
  "user_gold": number,
  "mvp": "champion name",
  "key_takeaway": "one sentence"
}`,
}

const inGamePrompt = `You are analyzing a League of Legends in-game screenshot (active gameplay).

Extract and respond as JSON:
{
  "user_champion": "name",
  "health_pct": 0-100,
  "user_level": number,
  "user_items": ["item1"],
  "wave_state": "pushing_to_us / pushing_to_them / frozen / crashing / no_wave",
  "enemies_missing": number_missing,
  "position_safety": "safe / risky / danger",
  "objective": "dragon / baron / herald or empty",
  "objective_team": "blue / red or empty"
}`

// Extractor reads structured data out of mid-game screenshots, one vision
// prompt per recognizable screen.
type Extractor struct {
	client analysis.Client
}

func NewExtractor(client analysis.Client) *Extractor {
	return &Extractor{client: client}
}

const extractCostPerCall = 0.004

// Extract runs the state-appropriate vision prompt. A state with no
// prompt yields an empty extraction at no cost; a failed call is an
// error so the guarding breaker counts it.
func (e *Extractor) Extract(ctx context.Context, state vision.GameState, imageB64 string) (session.Extraction, float64, error) {
	prompt, ok := extractionPrompts[state]
	if !ok {
		switch state {
		case vision.StateLaning, vision.StateTeamfight, vision.StateObjectives:
			prompt = inGamePrompt
		default:
			return session.Extraction{}, 0, nil
		}
	}

	data, err := callJSON(ctx, e.client, "extractor", analysis.Request{
		Prompt:    prompt,
		ImageB64:  imageB64,
		MaxTokens: 768,
	})
	if err != nil {
		return nil, 0, err
	}
	return session.Extraction(data), extractCostPerCall, nil
}

// #endregion extractor

// #region live-coach

// ItemRec is one purchase recommendation.
type ItemRec struct {
	Item     string `json:"item"`
	Gold     int    `json:"gold"`
	Reason   string `json:"reason"`
	Priority int    `json:"priority"`
}

// DeathReview explains a death.
type DeathReview struct {
	KilledBy       string `json:"killed_by"`
	DeathReason    string `json:"death_reason"`
	WhatToChange   string `json:"what_to_change"`
	PositioningFix string `json:"positioning_fix"`
	Tip            string `json:"tip"`
}

// LiveAdvice is the coaching output for one mid-game capture.
type LiveAdvice struct {
	Mode              Mode         `json:"mode"`
	GamePhase         string       `json:"game_phase"`
	Headline          string       `json:"headline"`
	Next30Seconds     []string     `json:"next_30_seconds"`
	BuyNow            []ItemRec    `json:"buy_now,omitempty"`
	FullBuildPath     []string     `json:"full_build_path,omitempty"`
	AdjustmentReason  string       `json:"build_adjustment_reason,omitempty"`
	DeathReview       *DeathReview `json:"death_review,omitempty"`
	TeamfightPriority string       `json:"teamfight_priority,omitempty"`
	Warnings          []string     `json:"warnings,omitempty"`
	Meta              Meta         `json:"meta"`
}

const liveBuildPrompt = `You are an expert League of Legends coach analyzing a mid-game state.

**Context from this game session:**
%s

**What was just extracted from the screenshot:**
%s

**Original pre-game build plan:**
%s

Based on the CURRENT game state, give build advice. Consider what enemies
are building, whether the player is ahead or behind, and the game phase.

Respond in this JSON format:
{
  "buy_now": [{"item": "name", "gold": cost, "reason": "why", "priority": 1}],
  "full_build_update": ["item1", "item2", "item3"],
  "build_changed": true,
  "change_reason": "why the build changed from original plan",
  "dont_buy": ["item to avoid and why"],
  "next_30_seconds": ["tip1", "tip2", "tip3"]
}`

const liveLanePrompt = `You are an expert League of Legends coach giving LIVE lane advice.

**Your champion:** %s (%s)
**Enemy laner:** %s
**Game phase:** %s
**Current game state from screenshot:** %s
**Session context:** %s

Give SPECIFIC, ACTIONABLE lane coaching: what to do right now, the trade
pattern, wave management, and gank danger.

Respond in JSON:
{
  "headline": "One sentence, what to do RIGHT NOW",
  "next_30_seconds": ["tip1", "tip2", "tip3"],
  "trade_pattern": "exact combo description",
  "avoid": "what NOT to do",
  "wave_management": "push / freeze / slow push and why",
  "gank_danger": "low / medium / high + why"
}`

const liveDeathPrompt = `You are an expert League of Legends coach reviewing a death.

**Your champion:** %s (%s)
**What we can see:** %s
**Session context (including previous deaths):** %s

Explain what likely went wrong and how to recover.

Respond in JSON:
{
  "killed_by": "champion",
  "death_reason": "one sentence",
  "what_to_change": "specific adjustment",
  "positioning_fix": "where to stand instead",
  "tip": "quick recovery tip",
  "next_30_seconds": ["tip1", "tip2"]
}`

const liveTeamfightPrompt = `You are an expert League of Legends coach preparing a player for teamfights.

**Your champion:** %s (%s)
**Session context:** %s
**Current state:** %s

Respond in JSON:
{
  "headline": "one sentence priority",
  "teamfight_priority": "who to focus",
  "positioning": "where to stand",
  "next_30_seconds": ["tip1", "tip2", "tip3"]
}`

// LiveCoach turns an extraction plus the accumulated session context into
// immediate advice.
type LiveCoach struct {
	client analysis.Client
}

func NewLiveCoach(client analysis.Client) *LiveCoach {
	return &LiveCoach{client: client}
}

const liveCostPerCall = 0.006

// Coach routes the capture to the state-appropriate advisor. Post-game
// review and unrecognized states are handled locally and never fail;
// the model-backed paths return the call error to the guarding breaker.
func (l *LiveCoach) Coach(ctx context.Context, state vision.GameState, extracted session.Extraction, sctx session.Context) (LiveAdvice, error) {
	start := time.Now()

	switch state {
	case vision.StateScoreboard, vision.StateShop:
		return l.buildAdvice(ctx, start, extracted, sctx)
	case vision.StateDeath:
		return l.deathReview(ctx, start, extracted, sctx)
	case vision.StateTeamfight, vision.StateObjectives:
		return l.teamfightPrep(ctx, start, extracted, sctx)
	case vision.StateLaning:
		return l.laneCoaching(ctx, start, extracted, sctx)
	case vision.StatePostGame:
		return gameReview(start, extracted), nil
	default:
		return LiveAdvice{
			Mode:          ModeLaneCoaching,
			GamePhase:     phaseFor(sctx.ElapsedMinutes),
			Headline:      "Keep farming and watch the map",
			Next30Seconds: []string{"Farm safely", "Check minimap", "Track enemy jungler"},
			Meta:          Meta{Confidence: 0.4, LatencyMS: elapsedMS(start)},
		}, nil
	}
}

func (l *LiveCoach) buildAdvice(ctx context.Context, start time.Time, extracted session.Extraction, sctx session.Context) (LiveAdvice, error) {
	prompt := fmt.Sprintf(liveBuildPrompt, toJSON(sctx), toJSON(extracted), toJSON(sctx.BuildPlan))

	data, err := callJSON(ctx, l.client, "live_build", analysis.Request{Prompt: prompt, MaxTokens: 768})
	if err != nil {
		return LiveAdvice{}, err
	}

	var buys []ItemRec
	if raw, ok := data["buy_now"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			gold, _ := entry["gold"].(float64)
			prio, _ := entry["priority"].(float64)
			buys = append(buys, ItemRec{
				Item:     strField(entry, "item", ""),
				Gold:     int(gold),
				Reason:   strField(entry, "reason", ""),
				Priority: int(prio),
			})
		}
	}

	headline := "Build toward your next core item"
	if len(buys) > 0 {
		headline = fmt.Sprintf("Buy now: %s (%s)", buys[0].Item, buys[0].Reason)
	}

	return LiveAdvice{
		Mode:             ModeBuildAdvice,
		GamePhase:        phaseFor(sctx.ElapsedMinutes),
		Headline:         headline,
		Next30Seconds:    listField(data, "next_30_seconds", []string{"Buy components", "Ward river before returning to lane"}, 3),
		BuyNow:           buys,
		FullBuildPath:    listField(data, "full_build_update", sctx.BuildPlan, 7),
		AdjustmentReason: strField(data, "change_reason", ""),
		Warnings:         listField(data, "dont_buy", nil, 3),
		Meta:             Meta{Confidence: 0.85, CostUSD: liveCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func (l *LiveCoach) laneCoaching(ctx context.Context, start time.Time, extracted session.Extraction, sctx session.Context) (LiveAdvice, error) {
	phase := phaseFor(sctx.ElapsedMinutes)
	prompt := fmt.Sprintf(liveLanePrompt,
		sctx.User.Champion, sctx.User.Role, sctx.User.LaneOpponent,
		phase, toJSON(extracted), toJSON(sctx))

	data, err := callJSON(ctx, l.client, "live_lane", analysis.Request{Prompt: prompt, MaxTokens: 768})
	if err != nil {
		return LiveAdvice{}, err
	}

	var warnings []string
	if avoid := strField(data, "avoid", ""); avoid != "" {
		warnings = append(warnings, avoid)
	}
	if danger := strField(data, "gank_danger", ""); strings.HasPrefix(danger, "high") {
		warnings = append(warnings, "Gank danger: "+danger)
	}

	return LiveAdvice{
		Mode:          ModeLaneCoaching,
		GamePhase:     phase,
		Headline:      strField(data, "headline", "Play the wave and watch the map"),
		Next30Seconds: listField(data, "next_30_seconds", []string{"Farm safely", "Ward river", "Track enemy jungler"}, 3),
		Warnings:      warnings,
		Meta:          Meta{Confidence: 0.85, CostUSD: liveCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func (l *LiveCoach) deathReview(ctx context.Context, start time.Time, extracted session.Extraction, sctx session.Context) (LiveAdvice, error) {
	prompt := fmt.Sprintf(liveDeathPrompt, sctx.User.Champion, sctx.User.Role, toJSON(extracted), toJSON(sctx))

	data, err := callJSON(ctx, l.client, "live_death", analysis.Request{Prompt: prompt, MaxTokens: 512})
	if err != nil {
		return LiveAdvice{}, err
	}

	review := &DeathReview{
		KilledBy:       strField(data, "killed_by", "Unknown"),
		DeathReason:    strField(data, "death_reason", ""),
		WhatToChange:   strField(data, "what_to_change", ""),
		PositioningFix: strField(data, "positioning_fix", ""),
		Tip:            strField(data, "tip", ""),
	}
	next := listField(data, "next_30_seconds", []string{"Review what killed you", "Plan your buy while dead", "Reset to a safe position"}, 3)

	headline := fmt.Sprintf("Death #%d: %s", sctx.User.Deaths, review.DeathReason)
	return LiveAdvice{
		Mode:          ModeDeathReview,
		GamePhase:     phaseFor(sctx.ElapsedMinutes),
		Headline:      headline,
		Next30Seconds: next,
		DeathReview:   review,
		Meta:          Meta{Confidence: 0.85, CostUSD: liveCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func (l *LiveCoach) teamfightPrep(ctx context.Context, start time.Time, extracted session.Extraction, sctx session.Context) (LiveAdvice, error) {
	prompt := fmt.Sprintf(liveTeamfightPrompt, sctx.User.Champion, sctx.User.Role, toJSON(sctx), toJSON(extracted))

	data, err := callJSON(ctx, l.client, "live_teamfight", analysis.Request{Prompt: prompt, MaxTokens: 512})
	if err != nil {
		return LiveAdvice{}, err
	}

	return LiveAdvice{
		Mode:              ModeTeamfightPrep,
		GamePhase:         phaseFor(sctx.ElapsedMinutes),
		Headline:          strField(data, "headline", "Group and play around objectives"),
		Next30Seconds:     listField(data, "next_30_seconds", []string{"Group with team", "Check objective timers"}, 3),
		TeamfightPriority: strField(data, "teamfight_priority", ""),
		Meta:              Meta{Confidence: 0.85, CostUSD: liveCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func gameReview(start time.Time, extracted session.Extraction) LiveAdvice {
	result, _ := extracted["result"].(string)
	takeaway, _ := extracted["key_takeaway"].(string)
	if takeaway == "" {
		takeaway = "Review your deaths and CS numbers for next game"
	}
	headline := "Game over: " + takeaway
	if result != "" {
		headline = fmt.Sprintf("Game over (%s): %s", result, takeaway)
	}
	return LiveAdvice{
		Mode:          ModeGameReview,
		GamePhase:     "late",
		Headline:      headline,
		Next30Seconds: []string{"Note one mistake to fix next game", "Queue up when ready"},
		Meta:          Meta{Confidence: 0.6, LatencyMS: elapsedMS(start)},
	}
}

func phaseFor(minutes float64) string {
	switch {
	case minutes < 14:
		return "early"
	case minutes < 25:
		return "mid"
	default:
		return "late"
	}
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// #endregion live-coach
