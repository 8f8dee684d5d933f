// Package session accumulates cross-capture knowledge about one game.
// The pipeline is the single writer (the cooldown gate rejects overlapping
// runs), so no locking is needed here; a caller that relaxes that invariant
// must add its own mutual exclusion.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barrios-a2i/lanesight/internal/knowledge"
)

// #region constants

const (
	deathLogCap     = 20 // retained death events; oldest discarded past this
	objectiveLogCap = 20
	recentDeaths    = 3 // deaths exposed in the coaching context
)

// #endregion constants

// #region session-struct

// Session tracks accumulated knowledge across captures in a single game:
// rosters from the loading screen, item builds over time, deaths, and the
// evolving build plan.
type Session struct {
	GameID    string
	StartTime time.Time

	// Set once by the loading-screen extraction; rosters never resize.
	BlueTeam  [5]string
	RedTeam   [5]string
	BlueRoles knowledge.Assignment
	RedRoles  knowledge.Assignment

	UserChampion string
	UserRole     string
	UserTeam     string // "blue" or "red"
	LaneOpponent string

	UserItems   []string
	ItemHistory []ItemSnapshot
	UserGold    int
	UserCS      int
	UserLevel   int
	UserKDA     [3]int // kills, deaths, assists

	EnemyItems  map[string][]string
	EnemyLevels map[string]int

	Deaths     []DeathEvent
	Objectives []ObjectiveEvent

	OriginalPlan []string
	AdjustedPlan []string
	Adjustments  []string

	CapturesAnalyzed int

	now func() time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{
		EnemyItems:  make(map[string][]string),
		EnemyLevels: make(map[string]int),
		UserLevel:   1,
		now:         time.Now,
	}
}

// Reset discards all accumulated knowledge. Called when a terminal state
// transitions back to a loading screen, i.e. a new game has begun. The
// clock survives the reset so an injected one keeps driving timestamps.
func (s *Session) Reset() {
	now := s.now
	*s = *New()
	s.now = now
}

// Started reports whether a loading-screen extraction has initialized the
// session.
func (s *Session) Started() bool {
	return s.GameID != ""
}

// #endregion session-struct

// #region update-loading

// UpdateFromLoading initializes the session from the pre-game package:
// rosters, role assignments, the user's identity, and the original plan.
func (s *Session) UpdateFromLoading(ext Extraction) {
	s.StartTime = s.now()
	s.GameID = fmt.Sprintf("game-%s", uuid.New().String()[:8])

	if v, ok := asRoster(ext["blue_team"]); ok {
		s.BlueTeam = v
	}
	if v, ok := asRoster(ext["red_team"]); ok {
		s.RedTeam = v
	}
	if v, ok := asString(ext["user_champion"]); ok {
		s.UserChampion = v
	}
	if v, ok := asString(ext["user_role"]); ok {
		s.UserRole = v
	}
	if v, ok := asString(ext["lane_opponent"]); ok {
		s.LaneOpponent = v
	}
	if v, ok := asStrings(ext["build_plan"]); ok {
		s.OriginalPlan = v
		s.AdjustedPlan = append([]string(nil), v...)
	}

	s.UserTeam = "red"
	for _, c := range s.BlueTeam {
		if c != "" && c == s.UserChampion {
			s.UserTeam = "blue"
		}
	}
	s.BlueRoles = knowledge.AssignRoles(s.BlueTeam, s.UserChampion, knowledge.Role(s.UserRole))
	s.RedRoles = knowledge.AssignRoles(s.RedTeam, "", knowledge.RoleUnknown)
}

// #endregion update-loading

// #region update-scoreboard

// UpdateFromScoreboard merges data read off the TAB overlay. Partial merge:
// absent keys leave prior values untouched, present keys win.
func (s *Session) UpdateFromScoreboard(ext Extraction) {
	if v, ok := asStrings(ext["user_items"]); ok {
		if !sameStrings(s.UserItems, v) {
			s.UserItems = v
			s.ItemHistory = append(s.ItemHistory, ItemSnapshot{
				At:    s.now(),
				Items: append([]string(nil), v...),
			})
		}
	}
	if v, ok := asInt(ext["user_cs"]); ok {
		s.UserCS = v
	}
	if v, ok := asInt(ext["user_gold"]); ok {
		s.UserGold = v
	}
	if v, ok := asInt(ext["user_level"]); ok {
		s.UserLevel = v
	}
	if v, ok := asKDA(ext["user_kda"]); ok {
		s.UserKDA = v
	}
	if v, ok := asItemMap(ext["enemy_items"]); ok {
		for champ, items := range v {
			s.EnemyItems[champ] = items
		}
	}
	if v, ok := asIntMap(ext["enemy_levels"]); ok {
		for champ, lvl := range v {
			s.EnemyLevels[champ] = lvl
		}
	}
}

// #endregion update-scoreboard

// #region update-shop

// UpdateFromShop merges data read from the open shop window.
func (s *Session) UpdateFromShop(ext Extraction) {
	if v, ok := asInt(ext["user_gold"]); ok {
		s.UserGold = v
	}
	if v, ok := asStrings(ext["user_items"]); ok {
		s.UserItems = v
	}
}

// #endregion update-shop

// #region update-live

// UpdateFromLive merges data visible during active play.
func (s *Session) UpdateFromLive(ext Extraction) {
	if v, ok := asInt(ext["user_level"]); ok {
		s.UserLevel = v
	}
	if v, ok := asInt(ext["user_gold"]); ok {
		s.UserGold = v
	}
	if v, ok := asString(ext["objective"]); ok && v != "" {
		team, _ := asString(ext["objective_team"])
		s.Objectives = append(s.Objectives, ObjectiveEvent{
			At: s.now(), Objective: v, Team: team,
		})
		if len(s.Objectives) > objectiveLogCap {
			s.Objectives = s.Objectives[len(s.Objectives)-objectiveLogCap:]
		}
	}
}

// #endregion update-live

// #region update-death

// UpdateFromDeath appends a death event to the capped log. An event
// identical to the most recent one is dropped, so re-analyzing the same
// death screen does not double-count.
func (s *Session) UpdateFromDeath(ext Extraction) {
	gameTime, _ := asString(ext["game_time"])
	killedBy, _ := asString(ext["killed_by"])
	advice, _ := asString(ext["advice"])

	if n := len(s.Deaths); n > 0 {
		last := s.Deaths[n-1]
		if last.GameTime == gameTime && last.KilledBy == killedBy {
			return
		}
	}

	s.Deaths = append(s.Deaths, DeathEvent{
		At:       s.now(),
		GameTime: gameTime,
		KilledBy: killedBy,
		Advice:   advice,
	})
	if len(s.Deaths) > deathLogCap {
		s.Deaths = s.Deaths[len(s.Deaths)-deathLogCap:]
	}

	if v, ok := asKDA(ext["user_kda"]); ok {
		s.UserKDA = v
	}
}

// #endregion update-death

// #region context

// Context packages the current knowledge for the coaching agents. It is a
// snapshot; mutating it does not touch the session.
func (s *Session) Context() Context {
	elapsed := 0.0
	if !s.StartTime.IsZero() {
		elapsed = s.now().Sub(s.StartTime).Minutes()
	}

	recent := s.Deaths
	if len(recent) > recentDeaths {
		recent = recent[len(recent)-recentDeaths:]
	}

	items := make(map[string][]string, len(s.EnemyItems))
	for k, v := range s.EnemyItems {
		items[k] = append([]string(nil), v...)
	}
	levels := make(map[string]int, len(s.EnemyLevels))
	for k, v := range s.EnemyLevels {
		levels[k] = v
	}

	return Context{
		GameID:         s.GameID,
		ElapsedMinutes: elapsed,
		User: UserContext{
			Champion:     s.UserChampion,
			Role:         s.UserRole,
			Team:         s.UserTeam,
			LaneOpponent: s.LaneOpponent,
			Items:        append([]string(nil), s.UserItems...),
			Gold:         s.UserGold,
			CS:           s.UserCS,
			KDA:          s.UserKDA,
			Level:        s.UserLevel,
			Deaths:       len(s.Deaths),
		},
		Teams: TeamsContext{
			Blue:      s.BlueTeam,
			Red:       s.RedTeam,
			BlueRoles: s.BlueRoles,
			RedRoles:  s.RedRoles,
		},
		Enemy:        EnemyContext{Items: items, Levels: levels},
		BuildPlan:    append([]string(nil), s.AdjustedPlan...),
		RecentDeaths: append([]DeathEvent(nil), recent...),
	}
}

// #endregion context

// #region build-adjustment

// BuildAdjustmentCheck reports whether the build plan should change and
// why. Read-only: it never mutates the session. Triggers: the lane
// opponent stacking armor or magic resist the plan does not answer, or a
// death rate that calls for defensive itemization.
func (s *Session) BuildAdjustmentCheck() (bool, []string) {
	var reasons []string

	if s.LaneOpponent != "" {
		if items, ok := s.EnemyItems[s.LaneOpponent]; ok {
			if matchesCategory(items, knowledge.ArmorItems) {
				reasons = append(reasons, "enemy_building_armor")
			}
			if matchesCategory(items, knowledge.MagicResistItems) {
				reasons = append(reasons, "enemy_building_mr")
			}
		}
	}

	kills, deaths, assists := s.UserKDA[0], s.UserKDA[1], s.UserKDA[2]
	if deaths >= 3 && deaths > kills+assists {
		reasons = append(reasons, "dying_frequently")
	}

	return len(reasons) > 0, reasons
}

func matchesCategory(items, category []string) bool {
	for _, item := range items {
		lower := strings.ToLower(item)
		for _, kw := range category {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// RecordAdjustment amends the plan and remembers why.
func (s *Session) RecordAdjustment(reason string, newPlan []string) {
	s.Adjustments = append(s.Adjustments, reason)
	if len(newPlan) > 0 {
		s.AdjustedPlan = append([]string(nil), newPlan...)
	}
}

// #endregion build-adjustment
