// Package pipeline orchestrates one capture through detection, session
// accumulation, and coaching. Every external call sits behind a circuit
// breaker with a deterministic fallback, so Run always returns a result.
package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/barrios-a2i/lanesight/internal/agents"
	"github.com/barrios-a2i/lanesight/internal/analysis"
	"github.com/barrios-a2i/lanesight/internal/breaker"
	"github.com/barrios-a2i/lanesight/internal/judge"
	"github.com/barrios-a2i/lanesight/internal/knowledge"
	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// #region result

// Status says how a Run terminated.
type Status string

const (
	StatusOK       Status = "ok"
	StatusCooldown Status = "cooldown"
	StatusNoGame   Status = "no_game"
)

// RunResult is the outcome of one capture.
type RunResult struct {
	Status     Status            `json:"status"`
	State      vision.GameState  `json:"state"`
	Confidence float64           `json:"confidence"`
	GameID     string            `json:"game_id,omitempty"`
	Package    *CoachPackage     `json:"package,omitempty"`
	Advice     *agents.LiveAdvice `json:"advice,omitempty"`
	CostUSD    float64           `json:"cost_usd"`
	LatencyMS  float64           `json:"latency_ms"`
}

// Recorder persists run outcomes. Persistence failures are logged and
// swallowed; storage must never affect coaching.
type Recorder interface {
	RecordRun(res RunResult) error
}

// #endregion result

// #region pipeline

// Pipeline wires the detector, session, agents, and breakers together.
type Pipeline struct {
	cfg      Config
	detector *vision.Detector
	session  *session.Session

	visionParser *agents.VisionParser
	buildPlanner *agents.BuildPlanner
	laningCoach  *agents.LaningCoach
	tfCoach      *agents.TeamfightCoach
	macroCoach   *agents.MacroCoach
	extractor    *agents.Extractor
	liveCoach    *agents.LiveCoach

	breakers map[string]*breaker.Breaker
	recorder Recorder

	lastRun time.Time
	now     func() time.Time

	// Running totals across the session.
	totalCostUSD float64
	runs         int
}

// New builds a pipeline around one analysis client. Pass
// analysis.NullClient{} to run fully offline on local fallbacks.
func New(cfg Config, client analysis.Client, recorder Recorder) *Pipeline {
	newBreaker := func(name string, timeout time.Duration) *breaker.Breaker {
		b := breaker.New(name, cfg.BreakerThreshold, timeout)
		if cfg.BreakerCooldown > 0 {
			b = b.WithCooldown(cfg.BreakerCooldown)
		}
		return b
	}

	return &Pipeline{
		cfg:          cfg,
		detector:     vision.NewDetector(cfg.Detector),
		session:      session.New(),
		visionParser: agents.NewVisionParser(client),
		buildPlanner: agents.NewBuildPlanner(client),
		laningCoach:  agents.NewLaningCoach(client),
		tfCoach:      agents.NewTeamfightCoach(client),
		macroCoach:   agents.NewMacroCoach(client),
		extractor:    agents.NewExtractor(client),
		liveCoach:    agents.NewLiveCoach(client),
		breakers: map[string]*breaker.Breaker{
			"vision":    newBreaker("vision", cfg.VisionTimeout),
			"build":     newBreaker("build", cfg.CoachingTimeout),
			"laning":    newBreaker("laning", cfg.CoachingTimeout),
			"teamfight": newBreaker("teamfight", cfg.CoachingTimeout),
			"macro":     newBreaker("macro", cfg.CoachingTimeout),
			"extract":   newBreaker("extract", cfg.ExtractTimeout),
			"coach":     newBreaker("coach", cfg.ExtractTimeout),
		},
		recorder: recorder,
		now:      time.Now,
	}
}

// Session exposes the accumulated game state, read-only by convention.
func (p *Pipeline) Session() *session.Session { return p.session }

// TotalCostUSD is the running spend across all runs.
func (p *Pipeline) TotalCostUSD() float64 { return p.totalCostUSD }

// Run processes one capture end to end. It never returns an error:
// degraded paths produce fallback coaching instead.
func (p *Pipeline) Run(ctx context.Context, frame vision.Frame, imageB64 string) RunResult {
	start := p.now()

	if !p.lastRun.IsZero() && start.Sub(p.lastRun) < p.cfg.Cooldown {
		return RunResult{Status: StatusCooldown}
	}
	p.lastRun = start
	p.runs++
	p.session.CapturesAnalyzed++

	det := p.detector.Detect(frame)
	res := RunResult{
		Status:     StatusOK,
		State:      det.State,
		Confidence: det.Confidence,
	}

	switch det.State {
	case vision.StateNotGame, vision.StateChampSelect:
		res.Status = StatusNoGame
	case vision.StateLoading:
		// A loading screen while a session is live means a new game.
		if p.session.Started() {
			log.Printf("[PIPE] loading screen during active session, starting new game")
			p.session.Reset()
			p.detector.ResetClock()
		}
		pkg, cost := p.runSwarm(ctx, imageB64)
		res.Package = pkg
		res.CostUSD = cost
	default:
		advice, cost := p.runLive(ctx, det, imageB64)
		res.Advice = advice
		res.CostUSD = cost
	}

	res.GameID = p.session.GameID
	res.LatencyMS = float64(p.now().Sub(start)) / float64(time.Millisecond)
	p.totalCostUSD += res.CostUSD

	if p.recorder != nil {
		if err := p.recorder.RecordRun(res); err != nil {
			log.Printf("[PIPE] record run: %v", err)
		}
	}
	return res
}

// #endregion pipeline

// #region swarm

// runSwarm builds the full pre-game plan from a loading screen.
func (p *Pipeline) runSwarm(ctx context.Context, imageB64 string) (*CoachPackage, float64) {
	swarmStart := p.now()
	var r swarmResults

	// Roster identification. Without it the plan falls back to whatever
	// the config names, with empty team context.
	visionOut := breaker.Execute(ctx, p.breakers["vision"], func(c context.Context) (agents.VisionOutput, error) {
		return p.visionParser.Parse(c, imageB64)
	}, agents.VisionOutput{})
	r.blueTeam = visionOut.BlueTeam
	r.redTeam = visionOut.RedTeam
	r.totalCostUSD += visionOut.Meta.CostUSD

	// User identity and role inference run locally.
	userChampion := p.cfg.UserChampion
	userRole := knowledge.Role(p.cfg.UserRole)
	if userRole == "" || userRole == knowledge.RoleUnknown {
		userRole = knowledge.PrimaryRole(userChampion)
	}
	userTeam := "red"
	for _, c := range r.blueTeam {
		if c != "" && c == userChampion {
			userTeam = "blue"
		}
	}

	bluePin, redPin := userChampion, ""
	if userTeam == "red" {
		bluePin, redPin = "", userChampion
	}
	r.blueRoles = knowledge.AssignRoles(r.blueTeam, bluePin, userRole)
	r.redRoles = knowledge.AssignRoles(r.redTeam, redPin, userRole)

	allyTeam, enemyTeam := r.blueTeam, r.redTeam
	allyRoles, enemyRoles := r.blueRoles, r.redRoles
	if userTeam == "red" {
		allyTeam, enemyTeam = r.redTeam, r.blueTeam
		allyRoles, enemyRoles = r.redRoles, r.blueRoles
	}
	laneOpponent := knowledge.LaneOpponent(userRole, enemyTeam)

	r.user = UserBlock{
		Champion:     userChampion,
		Role:         string(userRole),
		Team:         userTeam,
		LaneOpponent: laneOpponent,
	}
	log.Printf("[PIPE] user %s (%s) vs %s", userChampion, userRole, laneOpponent)

	in := agents.MatchupInput{
		UserChampion: userChampion,
		UserRole:     userRole,
		LaneOpponent: laneOpponent,
		UserKit:      knowledge.KitFor(userChampion),
		EnemyKit:     knowledge.KitFor(laneOpponent),
		AllyTeam:     allyTeam,
		EnemyTeam:    enemyTeam,
		AllyRoles:    allyRoles,
		EnemyRoles:   enemyRoles,
		PatchVersion: p.cfg.PatchVersion,
	}

	// The four coaching agents fan out in parallel, each behind its own
	// breaker. Fallbacks make every branch total.
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		r.build = breaker.Execute(ctx, p.breakers["build"], func(c context.Context) (agents.BuildOutput, error) {
			return p.buildPlanner.Plan(c, in)
		}, agents.FallbackBuild())
	}()
	go func() {
		defer wg.Done()
		r.laning = breaker.Execute(ctx, p.breakers["laning"], func(c context.Context) (agents.LaningOutput, error) {
			return p.laningCoach.Coach(c, in)
		}, agents.FallbackLaning())
	}()
	go func() {
		defer wg.Done()
		r.teamfight = breaker.Execute(ctx, p.breakers["teamfight"], func(c context.Context) (agents.TeamfightOutput, error) {
			return p.tfCoach.Analyze(c, in)
		}, agents.FallbackTeamfight(in))
	}()
	go func() {
		defer wg.Done()
		r.macro = breaker.Execute(ctx, p.breakers["macro"], func(c context.Context) (agents.MacroOutput, error) {
			return p.macroCoach.Plan(c, in)
		}, agents.FallbackMacro())
	}()
	wg.Wait()

	r.totalCostUSD += r.build.Meta.CostUSD + r.laning.Meta.CostUSD + r.teamfight.Meta.CostUSD + r.macro.Meta.CostUSD

	r.verdict = judge.Validate(&r.build, &r.laning, &r.teamfight, &r.macro)
	if !r.verdict.Approved {
		issues := make([]string, 0, len(r.verdict.Fixes))
		for _, f := range r.verdict.Fixes {
			issues = append(issues, f.Issue)
		}
		log.Printf("[PIPE] judge flagged issues: %v", issues)
	}

	r.totalLatencyMS = float64(p.now().Sub(swarmStart)) / float64(time.Millisecond)
	pkg := assemblePackage(p.cfg.PatchVersion, r)

	p.session.UpdateFromLoading(session.Extraction{
		"blue_team":     toAnySlice(r.blueTeam),
		"red_team":      toAnySlice(r.redTeam),
		"user_champion": userChampion,
		"user_role":     string(userRole),
		"lane_opponent": laneOpponent,
		"build_plan":    toAnyStrings(append(append([]string{}, pkg.Build.CoreItems...), pkg.Build.Boots)),
	})

	log.Printf("[PIPE] coach package assembled in %.0fms (cost $%.4f)", r.totalLatencyMS, r.totalCostUSD)
	return &pkg, r.totalCostUSD
}

func toAnySlice(team [5]string) []any {
	out := make([]any, len(team))
	for i, c := range team {
		out[i] = c
	}
	return out
}

func toAnyStrings(items []string) []any {
	out := make([]any, len(items))
	for i, c := range items {
		out[i] = c
	}
	return out
}

// #endregion swarm

// #region live

// runLive handles every in-game state: extract, fold into the session,
// check the build plan, coach.
func (p *Pipeline) runLive(ctx context.Context, det vision.Result, imageB64 string) (*agents.LiveAdvice, float64) {
	var cost float64

	type extractResult struct {
		ext  session.Extraction
		cost float64
	}
	extRes := breaker.Execute(ctx, p.breakers["extract"], func(c context.Context) (extractResult, error) {
		ext, co, err := p.extractor.Extract(c, det.State, imageB64)
		return extractResult{ext: ext, cost: co}, err
	}, extractResult{ext: session.Extraction{}})
	extracted := extRes.ext
	cost += extRes.cost

	switch det.State {
	case vision.StateScoreboard:
		p.session.UpdateFromScoreboard(extracted)
	case vision.StateShop:
		p.session.UpdateFromShop(extracted)
	case vision.StateDeath:
		p.session.UpdateFromDeath(extracted)
	case vision.StateLaning, vision.StateTeamfight, vision.StateObjectives:
		p.session.UpdateFromLive(extracted)
	}

	if needed, reasons := p.session.BuildAdjustmentCheck(); needed {
		for _, reason := range reasons {
			log.Printf("[PIPE] build adjustment signal: %s", reason)
		}
	}

	sctx := p.session.Context()
	advice := breaker.Execute(ctx, p.breakers["coach"], func(c context.Context) (agents.LiveAdvice, error) {
		return p.liveCoach.Coach(c, det.State, extracted, sctx)
	}, fallbackAdvice(det.State, sctx))
	cost += advice.Meta.CostUSD

	if advice.AdjustmentReason != "" && len(advice.FullBuildPath) > 0 {
		p.session.RecordAdjustment(advice.AdjustmentReason, advice.FullBuildPath)
	}

	return &advice, cost
}

// fallbackAdvice covers the case where even the coach breaker is open.
func fallbackAdvice(state vision.GameState, sctx session.Context) agents.LiveAdvice {
	mode := agents.ModeLaneCoaching
	switch state {
	case vision.StateScoreboard, vision.StateShop:
		mode = agents.ModeBuildAdvice
	case vision.StateDeath:
		mode = agents.ModeDeathReview
	case vision.StateTeamfight, vision.StateObjectives:
		mode = agents.ModeTeamfightPrep
	case vision.StatePostGame:
		mode = agents.ModeGameReview
	}
	return agents.LiveAdvice{
		Mode:          mode,
		Headline:      "Coaching unavailable, play standard",
		Next30Seconds: []string{"Farm safely", "Check minimap", "Group with team"},
		FullBuildPath: sctx.BuildPlan,
	}
}

// #endregion live
