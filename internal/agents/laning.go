package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
)

// #region laning-coach

const laningSystemPrompt = `You are an expert League of Legends laning coach.
Given a champion matchup, provide specific, actionable laning advice.

You MUST output valid JSON only. Be specific about ability interactions and timings.

Required JSON structure:
{
  "levels_1_3": ["Step 1", "Step 2", "Step 3"],
  "wave_plan": ["Rule 1", "Rule 2", "Rule 3"],
  "trade_windows": ["When to trade", "Combo to use", "Goal of trade"],
  "first_recall": {"goal_gold": "1100", "timing_rule": "After shoving wave 4-5", "buy": ["Sheen", "Control Ward"]},
  "level_6": ["All-in conditions", "Bait conditions", "What to avoid"],
  "avoid_list": ["Don't do X", "Don't do Y", "Don't do Z"],
  "punish_list": ["Punish when X", "Punish when Y", "Punish when Z"]
}`

// FirstRecall is the recall timing recommendation.
type FirstRecall struct {
	GoalGold   string   `json:"goal_gold"`
	TimingRule string   `json:"timing_rule"`
	Buy        []string `json:"buy"`
}

// LaningOutput is the lane plan for levels 1 through 6.
type LaningOutput struct {
	Levels1_3    []string    `json:"levels_1_3"`
	WavePlan     []string    `json:"wave_plan"`
	TradeWindows []string    `json:"trade_windows"`
	FirstRecall  FirstRecall `json:"first_recall"`
	Level6       []string    `json:"level_6"`
	AvoidList    []string    `json:"avoid_list"`
	PunishList   []string    `json:"punish_list"`
	Meta         Meta        `json:"meta"`
}

// LaningCoach produces the early-lane plan for the matchup.
type LaningCoach struct {
	client analysis.Client
}

func NewLaningCoach(client analysis.Client) *LaningCoach {
	return &LaningCoach{client: client}
}

const laningCostPerCall = 0.005

func (l *LaningCoach) Coach(ctx context.Context, in MatchupInput) (LaningOutput, error) {
	start := time.Now()

	prompt := fmt.Sprintf(`You are coaching %s (%s) vs %s.

%s tags: %s
%s tags: %s

Provide specific laning advice for levels 1-6. Be concrete about:
1. Which abilities to use for trading
2. Exact wave manipulation strategies
3. When the enemy is vulnerable (cooldowns, positioning)
4. When YOU are vulnerable
5. First recall timing and what to buy
6. Level 6 all-in potential`,
		in.UserChampion, in.UserRole, in.LaneOpponent,
		in.UserChampion, strings.Join(in.UserKit.Tags, ", "),
		in.LaneOpponent, strings.Join(in.EnemyKit.Tags, ", "))

	data, err := callJSON(ctx, l.client, "laning_coach", analysis.Request{
		System:    laningSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 1024,
	})
	if err != nil {
		return LaningOutput{}, err
	}

	recall := mapField(data, "first_recall")
	return LaningOutput{
		Levels1_3:    listField(data, "levels_1_3", []string{"Play safe and farm", "Trade when enemy uses abilities on minions", "Build wave advantage"}, 5),
		WavePlan:     listField(data, "wave_plan", []string{"Slow push waves 1-3", "Crash on cannon wave", "Freeze after recall"}, 5),
		TradeWindows: listField(data, "trade_windows", []string{"Trade when enemy uses key cooldown", "Short trades preferred"}, 5),
		FirstRecall: FirstRecall{
			GoalGold:   strField(recall, "goal_gold", "1100"),
			TimingRule: strField(recall, "timing_rule", "After crashing cannon wave"),
			Buy:        listField(recall, "buy", []string{"Component item", "Control Ward"}, 3),
		},
		Level6:     listField(data, "level_6", []string{"Check if you can all-in with full combo", "Bait enemy abilities first", "Respect enemy level 6 spike too"}, 5),
		AvoidList:  listField(data, "avoid_list", []string{"Don't overextend without vision", "Don't fight in enemy minion wave"}, 5),
		PunishList: listField(data, "punish_list", []string{"Punish when enemy misses key ability", "Punish when enemy wastes cooldown on minions"}, 5),
		Meta:       Meta{Confidence: 0.85, CostUSD: laningCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func fallbackLaning(latencyMS float64) LaningOutput {
	return LaningOutput{
		Levels1_3:    []string{"Play safe and farm", "Trade only when advantageous", "Respect enemy power spikes"},
		WavePlan:     []string{"Slow push early waves", "Crash on cannon wave", "Freeze if behind"},
		TradeWindows: []string{"Trade when enemy wastes cooldown", "Short trades in melee matchups"},
		FirstRecall:  FirstRecall{GoalGold: "1100", TimingRule: "After crashing wave", Buy: []string{"Component item", "Control Ward"}},
		Level6:       []string{"Check kill potential", "Bait enemy abilities first", "Respect enemy level 6"},
		AvoidList:    []string{"Don't overextend", "Don't fight in minion waves"},
		PunishList:   []string{"Punish missed abilities", "Punish bad positioning"},
		Meta:         Meta{Confidence: 0.4, CostUSD: 0, LatencyMS: latencyMS},
	}
}

// #endregion laning-coach
