package session

import (
	"time"

	"github.com/barrios-a2i/lanesight/internal/knowledge"
)

// #region extraction

// Extraction is a partial key/value update produced by one capture's
// analysis. Only keys present in the map touch session fields; values
// arrive JSON-shaped (numbers as float64).
type Extraction map[string]any

// #endregion extraction

// #region events

// DeathEvent records one death with the context extracted around it.
type DeathEvent struct {
	At       time.Time `json:"at"`
	GameTime string    `json:"game_time,omitempty"`
	KilledBy string    `json:"killed_by,omitempty"`
	Advice   string    `json:"advice,omitempty"`
}

// ObjectiveEvent records a dragon/baron/herald take.
type ObjectiveEvent struct {
	At        time.Time `json:"at"`
	Objective string    `json:"objective"`
	Team      string    `json:"team"`
}

// ItemSnapshot is a timestamped copy of the user's inventory.
type ItemSnapshot struct {
	At    time.Time `json:"at"`
	Items []string  `json:"items"`
}

// #endregion events

// #region context

// Context is the read-only session snapshot handed to the coaching agents.
type Context struct {
	GameID         string       `json:"game_id"`
	ElapsedMinutes float64      `json:"elapsed_minutes"`
	User           UserContext  `json:"user"`
	Teams          TeamsContext `json:"teams"`
	Enemy          EnemyContext `json:"enemy"`
	BuildPlan      []string     `json:"build_plan"`
	RecentDeaths   []DeathEvent `json:"recent_deaths"`
}

// UserContext is the current-user projection inside a Context.
type UserContext struct {
	Champion     string   `json:"champion"`
	Role         string   `json:"role"`
	Team         string   `json:"team"`
	LaneOpponent string   `json:"lane_opponent"`
	Items        []string `json:"current_items"`
	Gold         int      `json:"gold"`
	CS           int      `json:"cs"`
	KDA          [3]int   `json:"kda"`
	Level        int      `json:"level"`
	Deaths       int      `json:"deaths_this_game"`
}

// TeamsContext carries both rosters and their role assignments.
type TeamsContext struct {
	Blue      [5]string            `json:"blue"`
	Red       [5]string            `json:"red"`
	BlueRoles knowledge.Assignment `json:"blue_roles"`
	RedRoles  knowledge.Assignment `json:"red_roles"`
}

// EnemyContext tracks what is known about enemy builds.
type EnemyContext struct {
	Items  map[string][]string `json:"items"`
	Levels map[string]int      `json:"levels"`
}

// #endregion context
