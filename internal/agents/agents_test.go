package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/barrios-a2i/lanesight/internal/analysis"
	"github.com/barrios-a2i/lanesight/internal/knowledge"
	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// scriptedClient returns a fixed reply, or an error when text is empty.
type scriptedClient struct {
	text  string
	calls int
}

func (c *scriptedClient) Analyze(_ context.Context, _ analysis.Request) (analysis.Result, error) {
	c.calls++
	if c.text == "" {
		return analysis.Result{}, errors.New("scripted failure")
	}
	return analysis.Result{Text: c.text}, nil
}

func testMatchup() MatchupInput {
	return MatchupInput{
		UserChampion: "Darius",
		UserRole:     knowledge.RoleTop,
		LaneOpponent: "Garen",
		UserKit:      knowledge.KitFor("Darius"),
		EnemyKit:     knowledge.KitFor("Garen"),
		AllyTeam:     [5]string{"Darius", "Lee Sin", "Ahri", "Jinx", "Thresh"},
		EnemyTeam:    [5]string{"Garen", "Vi", "Zed", "Caitlyn", "Lux"},
		PatchVersion: "26.17",
	}
}

func TestBuildPlannerParsesResponse(t *testing.T) {
	client := &scriptedClient{text: `{
		"summoners": ["Flash", "Ghost"],
		"runes": {"primary_tree": "Precision", "primary": ["Conqueror"]},
		"skill_order": {"start": "Q", "max_order": ["Q", "W", "E"]},
		"core_items": ["Stridebreaker", "Dead Man's Plate"],
		"boots": "Plated Steelcaps"
	}`}

	out, err := NewBuildPlanner(client).Plan(context.Background(), testMatchup())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if out.Summoners[1] != "Ghost" {
		t.Errorf("Summoners = %v, want Flash+Ghost", out.Summoners)
	}
	if out.CoreItems[0] != "Stridebreaker" {
		t.Errorf("CoreItems = %v", out.CoreItems)
	}
	if out.Meta.Confidence < 0.85 {
		t.Errorf("Confidence = %.2f, want high for parsed output", out.Meta.Confidence)
	}
	if out.Meta.CostUSD <= 0 {
		t.Error("parsed output should carry a cost")
	}
}

func TestCoachesReturnCallErrors(t *testing.T) {
	in := testMatchup()
	ctx := context.Background()
	fail := &scriptedClient{}

	if _, err := NewBuildPlanner(fail).Plan(ctx, in); err == nil {
		t.Error("build planner should surface the call failure")
	}
	if _, err := NewLaningCoach(fail).Coach(ctx, in); err == nil {
		t.Error("laning coach should surface the call failure")
	}
	if _, err := NewTeamfightCoach(fail).Analyze(ctx, in); err == nil {
		t.Error("teamfight coach should surface the call failure")
	}
	if _, err := NewMacroCoach(fail).Plan(ctx, in); err == nil {
		t.Error("macro coach should surface the call failure")
	}
}

func TestCoachesErrorOnEmptyReply(t *testing.T) {
	// A reply that parses to an empty object carries no coaching and
	// must count as a failure, not silently succeed.
	empty := &scriptedClient{text: "{}"}
	if _, err := NewBuildPlanner(empty).Plan(context.Background(), testMatchup()); err == nil {
		t.Error("empty reply object should be an error")
	}
}

func TestFallbacksAreComplete(t *testing.T) {
	in := testMatchup()

	build := FallbackBuild()
	if len(build.CoreItems) == 0 || build.Boots == "" {
		t.Error("fallback build is incomplete")
	}
	if build.Meta.Confidence != 0.4 || build.Meta.CostUSD != 0 {
		t.Errorf("fallback build Meta = %+v", build.Meta)
	}

	laning := FallbackLaning()
	if len(laning.Levels1_3) == 0 || laning.FirstRecall.GoalGold == "" {
		t.Error("fallback laning incomplete")
	}

	tf := FallbackTeamfight(in)
	if tf.WinCondition == "" || tf.YourJob == "" {
		t.Error("fallback teamfight incomplete")
	}

	macro := FallbackMacro()
	if len(macro.Wards) == 0 || len(macro.Objectives) == 0 {
		t.Error("fallback macro incomplete")
	}
}

func TestVisionParserRequiresRoster(t *testing.T) {
	_, err := NewVisionParser(analysis.NullClient{}).Parse(context.Background(), "img")
	if err == nil {
		t.Fatal("expected error when no roster can be read")
	}

	client := &scriptedClient{text: `{
		"blue_team": ["Jinx", "Thresh", "Ahri", "Lee Sin", "Malphite"],
		"red_team": ["Caitlyn", "Lux", "Zed", "Vi", "Shen"],
		"confidence": 0.92
	}`}
	out, err := NewVisionParser(client).Parse(context.Background(), "img")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if out.BlueTeam[0] != "Jinx" || out.RedTeam[4] != "Shen" {
		t.Errorf("rosters = %v / %v", out.BlueTeam, out.RedTeam)
	}
	if out.Confidence != 0.92 {
		t.Errorf("Confidence = %.2f, want 0.92", out.Confidence)
	}
}

func TestExtractorStateRouting(t *testing.T) {
	tests := []struct {
		state     vision.GameState
		wantCalls int
	}{
		{vision.StateScoreboard, 1},
		{vision.StateShop, 1},
		{vision.StateDeath, 1},
		{vision.StatePostGame, 1},
		{vision.StateLaning, 1},
		{vision.StateTeamfight, 1},
		{vision.StateNotGame, 0},
		{vision.StateLoading, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			client := &scriptedClient{text: `{"user_gold": 1000}`}
			ext, cost, err := NewExtractor(client).Extract(context.Background(), tt.state, "img")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if client.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", client.calls, tt.wantCalls)
			}
			if tt.wantCalls == 0 {
				if len(ext) != 0 || cost != 0 {
					t.Error("unhandled state should yield empty extraction at no cost")
				}
			}
		})
	}
}

func TestExtractorSurfacesCallFailure(t *testing.T) {
	_, _, err := NewExtractor(&scriptedClient{}).Extract(context.Background(), vision.StateShop, "img")
	if err == nil {
		t.Fatal("extractor should surface the call failure")
	}
}

func TestLiveCoachModes(t *testing.T) {
	sctx := session.Context{
		ElapsedMinutes: 16,
		User:           session.UserContext{Champion: "Darius", Role: "Top", LaneOpponent: "Garen", Deaths: 2},
		BuildPlan:      []string{"Stridebreaker", "Sterak's Gage"},
	}
	client := &scriptedClient{text: `{"headline": "Push the wave before backing"}`}
	ctx := context.Background()

	tests := []struct {
		state    vision.GameState
		wantMode Mode
	}{
		{vision.StateScoreboard, ModeBuildAdvice},
		{vision.StateShop, ModeBuildAdvice},
		{vision.StateLaning, ModeLaneCoaching},
		{vision.StateDeath, ModeDeathReview},
		{vision.StateTeamfight, ModeTeamfightPrep},
		{vision.StateObjectives, ModeTeamfightPrep},
		{vision.StatePostGame, ModeGameReview},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			advice, err := NewLiveCoach(client).Coach(ctx, tt.state, session.Extraction{}, sctx)
			if err != nil {
				t.Fatalf("Coach: %v", err)
			}
			if advice.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", advice.Mode, tt.wantMode)
			}
			if advice.Headline == "" {
				t.Error("advice must always carry a headline")
			}
			if len(advice.Next30Seconds) == 0 {
				t.Error("advice must always carry next-30-seconds tips")
			}
			if advice.GamePhase != "mid" && tt.wantMode != ModeGameReview {
				t.Errorf("GamePhase = %q, want mid at 16 minutes", advice.GamePhase)
			}
		})
	}
}

func TestLiveCoachErrorsOnCallFailure(t *testing.T) {
	sctx := session.Context{ElapsedMinutes: 16, User: session.UserContext{Champion: "Darius"}}
	fail := &scriptedClient{}
	ctx := context.Background()

	for _, state := range []vision.GameState{
		vision.StateScoreboard, vision.StateShop, vision.StateLaning,
		vision.StateDeath, vision.StateTeamfight,
	} {
		if _, err := NewLiveCoach(fail).Coach(ctx, state, session.Extraction{}, sctx); err == nil {
			t.Errorf("state %s: coach should surface the call failure", state)
		}
	}

	// Post-game review is local and must keep working without a model.
	advice, err := NewLiveCoach(fail).Coach(ctx, vision.StatePostGame, session.Extraction{"result": "victory"}, sctx)
	if err != nil {
		t.Fatalf("post-game review: %v", err)
	}
	if advice.Mode != ModeGameReview {
		t.Errorf("Mode = %q, want %q", advice.Mode, ModeGameReview)
	}
}

func TestLiveBuildAdviceParsesBuys(t *testing.T) {
	client := &scriptedClient{text: `{
		"buy_now": [{"item": "Last Whisper", "gold": 1450, "reason": "enemy stacking armor", "priority": 1}],
		"full_build_update": ["Stridebreaker", "Lord Dominik's Regards"],
		"change_reason": "enemy stacking armor",
		"next_30_seconds": ["Buy Last Whisper", "Ward river"]
	}`}
	sctx := session.Context{ElapsedMinutes: 20, User: session.UserContext{Champion: "Darius"}}

	advice, err := NewLiveCoach(client).Coach(context.Background(), vision.StateShop, session.Extraction{}, sctx)
	if err != nil {
		t.Fatalf("Coach: %v", err)
	}

	if len(advice.BuyNow) != 1 || advice.BuyNow[0].Item != "Last Whisper" {
		t.Fatalf("BuyNow = %v", advice.BuyNow)
	}
	if advice.BuyNow[0].Gold != 1450 {
		t.Errorf("Gold = %d, want 1450", advice.BuyNow[0].Gold)
	}
	if advice.AdjustmentReason != "enemy stacking armor" {
		t.Errorf("AdjustmentReason = %q", advice.AdjustmentReason)
	}
}
