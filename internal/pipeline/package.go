package pipeline

import (
	"fmt"
	"strings"

	"github.com/barrios-a2i/lanesight/internal/agents"
	"github.com/barrios-a2i/lanesight/internal/judge"
	"github.com/barrios-a2i/lanesight/internal/knowledge"
)

// agentsRun counts every agent in the pre-game swarm: vision, user
// context, role inference, canon knowledge, build, laning, teamfight,
// macro, judge.
const agentsRun = 9

// #region package-blocks

type MetaBlock struct {
	PatchVersion   string   `json:"patch_version"`
	Mode           string   `json:"mode"`
	Confidence     float64  `json:"confidence"`
	Notes          []string `json:"notes"`
	TotalCostUSD   float64  `json:"total_cost_usd"`
	TotalLatencyMS float64  `json:"total_latency_ms"`
	AgentsRun      int      `json:"agents_run"`
}

type TeamsBlock struct {
	Blue      [5]string            `json:"blue"`
	Red       [5]string            `json:"red"`
	BlueRoles knowledge.Assignment `json:"blue_roles"`
	RedRoles  knowledge.Assignment `json:"red_roles"`
}

type UserBlock struct {
	Champion     string `json:"champion"`
	Role         string `json:"role"`
	Team         string `json:"team"`
	LaneOpponent string `json:"lane_opponent"`
}

type BuildBlock struct {
	Summoners   []string                 `json:"summoners"`
	Runes       agents.RuneConfig        `json:"runes"`
	SkillOrder  agents.SkillOrder        `json:"skill_order"`
	StartItems  []string                 `json:"start_items"`
	CoreItems   []string                 `json:"core_items"`
	Boots       string                   `json:"boots"`
	Situational []agents.SituationalItem `json:"situational_items"`
}

type LanePlanBlock struct {
	Levels1_3    []string           `json:"levels_1_3"`
	WavePlan     []string           `json:"wave_plan"`
	TradeWindows []string           `json:"trade_windows"`
	FirstRecall  agents.FirstRecall `json:"first_recall"`
	Level6       []string           `json:"level_6"`
}

type BeatEnemyBlock struct {
	BiggestThreats []string `json:"biggest_threats"`
	HowToPunish    []string `json:"how_to_punish"`
	WhatNotToDo    []string `json:"what_not_to_do"`
}

type TeamPlanBlock struct {
	WinCondition   string   `json:"win_condition"`
	YourJob        string   `json:"your_job"`
	TargetPriority []string `json:"target_priority"`
	FightRules     []string `json:"fight_rules"`
}

type MacroBlock struct {
	Wards      []string `json:"wards"`
	Roams      []string `json:"roams"`
	Objectives []string `json:"objectives"`
	Midgame    []string `json:"midgame"`
	Lategame   []string `json:"lategame"`
}

type Next30Block struct {
	Do    []string `json:"do"`
	Avoid []string `json:"avoid"`
}

// CoachPackage is the full pre-game plan assembled from every agent.
type CoachPackage struct {
	Meta          MetaBlock      `json:"meta"`
	Teams         TeamsBlock     `json:"teams"`
	User          UserBlock      `json:"user"`
	Build         BuildBlock     `json:"build"`
	LanePlan      LanePlanBlock  `json:"lane_plan"`
	BeatEnemy     BeatEnemyBlock `json:"beat_enemy"`
	TeamPlan      TeamPlanBlock  `json:"team_plan"`
	Macro         MacroBlock     `json:"macro"`
	Next30Seconds Next30Block    `json:"next_30_seconds"`
}

// #endregion package-blocks

// #region assembly

type swarmResults struct {
	blueTeam, redTeam [5]string
	blueRoles         knowledge.Assignment
	redRoles          knowledge.Assignment
	user              UserBlock
	build             agents.BuildOutput
	laning            agents.LaningOutput
	teamfight         agents.TeamfightOutput
	macro             agents.MacroOutput
	verdict           judge.Verdict
	totalCostUSD      float64
	totalLatencyMS    float64
}

func assemblePackage(patch string, r swarmResults) CoachPackage {
	confidences := []float64{
		r.build.Meta.Confidence,
		r.laning.Meta.Confidence,
		r.teamfight.Meta.Confidence,
		r.macro.Meta.Confidence,
	}
	sum := 0.0
	for _, c := range confidences {
		sum += c
	}
	avg := sum / float64(len(confidences))

	threats := r.teamfight.ThreatList
	if len(threats) > 3 {
		threats = threats[:3]
	}
	punish := r.laning.PunishList
	if len(punish) > 3 {
		punish = punish[:3]
	}
	avoid := r.laning.AvoidList
	if len(avoid) > 3 {
		avoid = avoid[:3]
	}

	doNow := []string{"Farm safely", "Ward river", "Track enemy jungler position"}
	if len(r.laning.Levels1_3) > 0 {
		doNow[0] = r.laning.Levels1_3[0]
	}
	if len(r.macro.Wards) > 0 {
		doNow[1] = "Ward: " + r.macro.Wards[0]
	}
	avoidNow := []string{"Don't overextend", "Don't blow summoner spells unless you get a kill", "Don't fight in enemy minion wave level 1"}
	if len(r.laning.AvoidList) > 0 {
		avoidNow[0] = r.laning.AvoidList[0]
	}

	return CoachPackage{
		Meta: MetaBlock{
			PatchVersion:   patch,
			Mode:           string(agents.ModePregamePlan),
			Confidence:     avg,
			Notes:          r.verdict.Uncertainties,
			TotalCostUSD:   r.totalCostUSD,
			TotalLatencyMS: r.totalLatencyMS,
			AgentsRun:      agentsRun,
		},
		Teams: TeamsBlock{
			Blue:      r.blueTeam,
			Red:       r.redTeam,
			BlueRoles: r.blueRoles,
			RedRoles:  r.redRoles,
		},
		User: r.user,
		Build: BuildBlock{
			Summoners:   r.build.Summoners,
			Runes:       r.build.Runes,
			SkillOrder:  r.build.SkillOrder,
			StartItems:  r.build.StartItems,
			CoreItems:   r.build.CoreItems,
			Boots:       r.build.Boots,
			Situational: r.build.Situational,
		},
		LanePlan: LanePlanBlock{
			Levels1_3:    r.laning.Levels1_3,
			WavePlan:     r.laning.WavePlan,
			TradeWindows: r.laning.TradeWindows,
			FirstRecall:  r.laning.FirstRecall,
			Level6:       r.laning.Level6,
		},
		BeatEnemy: BeatEnemyBlock{
			BiggestThreats: threats,
			HowToPunish:    punish,
			WhatNotToDo:    avoid,
		},
		TeamPlan: TeamPlanBlock{
			WinCondition:   r.teamfight.WinCondition,
			YourJob:        r.teamfight.YourJob,
			TargetPriority: r.teamfight.TargetPriority,
			FightRules:     r.teamfight.FightRules,
		},
		Macro: MacroBlock{
			Wards:      r.macro.Wards,
			Roams:      r.macro.Roams,
			Objectives: r.macro.Objectives,
			Midgame:    r.macro.Midgame,
			Lategame:   r.macro.Lategame,
		},
		Next30Seconds: Next30Block{Do: doNow, Avoid: avoidNow},
	}
}

// #endregion assembly

// #region summary

// Summary renders the package for terminal display.
func (p CoachPackage) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s Game Plan vs %s ===\n", p.User.Champion, p.User.LaneOpponent)
	fmt.Fprintf(&b, "Patch %s | %s | Confidence: %.0f%%\n\n", p.Meta.PatchVersion, p.Meta.Mode, p.Meta.Confidence*100)

	fmt.Fprintf(&b, "BUILD: %s | Boots: %s\n", strings.Join(p.Build.CoreItems, " > "), p.Build.Boots)
	if len(p.Build.Runes.Primary) > 0 {
		fmt.Fprintf(&b, "RUNES: %s (%s)\n", p.Build.Runes.Primary[0], p.Build.Runes.PrimaryTree)
	}
	fmt.Fprintf(&b, "SPELLS: %s\n", strings.Join(p.Build.Summoners, " + "))
	fmt.Fprintf(&b, "SKILL: Start %s, Max %s\n\n", p.Build.SkillOrder.Start, strings.Join(p.Build.SkillOrder.MaxOrder, " > "))

	b.WriteString("LANE PLAN:\n")
	for i, step := range p.LanePlan.Levels1_3 {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "  - %s\n", step)
	}

	fmt.Fprintf(&b, "\nBEAT %s BY:\n", strings.ToUpper(p.User.LaneOpponent))
	for _, tip := range p.BeatEnemy.HowToPunish {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}

	fmt.Fprintf(&b, "\nTEAMFIGHT JOB: %s\n", p.TeamPlan.YourJob)
	fmt.Fprintf(&b, "WIN CONDITION: %s\n\n", p.TeamPlan.WinCondition)

	b.WriteString("NEXT 30 SECONDS:\n  DO:\n")
	for _, item := range p.Next30Seconds.Do {
		fmt.Fprintf(&b, "    + %s\n", item)
	}
	b.WriteString("  AVOID:\n")
	for _, item := range p.Next30Seconds.Avoid {
		fmt.Fprintf(&b, "    x %s\n", item)
	}

	fmt.Fprintf(&b, "\nGenerated in %.0fms | Cost: $%.4f\n", p.Meta.TotalLatencyMS, p.Meta.TotalCostUSD)
	return b.String()
}

// #endregion summary
