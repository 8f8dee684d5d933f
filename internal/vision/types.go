package vision

import "time"

// #region game-state

// GameState identifies what the player is currently looking at.
type GameState string

const (
	StateLoading    GameState = "loading_screen"
	StateScoreboard GameState = "tab_scoreboard"
	StateShop       GameState = "shop_open"
	StateLaning     GameState = "in_game_laning"
	StateTeamfight  GameState = "in_game_teamfight"
	StateObjectives GameState = "in_game_objectives"
	StateDeath      GameState = "death_screen"
	StatePostGame   GameState = "post_game_stats"
	StateChampSelect GameState = "champion_select"
	StateNotGame    GameState = "not_game"
)

// #endregion game-state

// #region game-phase

// GamePhase buckets elapsed game time into coarse timeline phases.
type GamePhase string

const (
	PhasePreGame     GamePhase = "pre_game"
	PhaseEarlyLaning GamePhase = "early_laning" // 0-8 min
	PhaseMidLaning   GamePhase = "mid_laning"   // 8-14 min
	PhaseMidGame     GamePhase = "mid_game"     // 14-25 min
	PhaseLateGame    GamePhase = "late_game"    // 25+ min
	PhasePostGame    GamePhase = "post_game"
)

// #endregion game-phase

// #region result

// Result is the full detection output for one frame.
type Result struct {
	State      GameState
	Confidence float64
	Phase      GamePhase

	// Data pulled out of the frame by the state check (minimap presence etc.).
	Extracted map[string]any

	// Temporal context filled in against the rolling history.
	PreviousState GameState
	StateDuration time.Duration
}

// #endregion result

// #region config

// Config holds classifier weights and thresholds. All values are tunable;
// the defaults mirror the shipped calibration for 16:9 captures.
type Config struct {
	MinConfidence     float64 // below this the result demotes to StateNotGame
	LoadingConfidence float64 // separate floor for the pre-game route

	HistoryMax  int // append cap for the rolling history
	HistoryKeep int // entries retained after a trim

	ThumbWidth  int // analysis thumbnail size
	ThumbHeight int
}

// DefaultConfig returns the shipped detection calibration.
func DefaultConfig() Config {
	return Config{
		MinConfidence:     0.65,
		LoadingConfidence: 0.70,
		HistoryMax:        100,
		HistoryKeep:       50,
		ThumbWidth:        320,
		ThumbHeight:       180,
	}
}

// #endregion config
