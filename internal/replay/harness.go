// Package replay re-runs recorded capture extractions through the
// session accumulator offline. It is used to debug session state drift
// and to check how the adjustment signals fire over a full game without
// any screen capture or analysis calls.
package replay

import (
	"github.com/barrios-a2i/lanesight/internal/session"
	"github.com/barrios-a2i/lanesight/internal/vision"
)

// #region types

// Capture is one recorded extraction with the state it was taken in.
type Capture struct {
	CaptureID  string
	State      vision.GameState
	Extraction session.Extraction
}

// Result captures the outcome of replaying one capture.
type Result struct {
	CaptureID string
	State     vision.GameState
	Action    string // "session_start" | "merge" | "death" | "ignored"

	// Adjustment signals active after this capture folded in.
	AdjustmentReasons []string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCaptures int
	SessionStarts int
	Merges        int
	Deaths        int
	Ignored       int

	// How often each adjustment signal was active across the run.
	SignalCounts map[string]int

	FinalContext session.Context
}

// #endregion types

// #region replay

// Replay folds captures into a fresh session in order. A loading screen
// mid-run resets the session the same way the live pipeline does.
func Replay(captures []Capture) ([]Result, *session.Session) {
	sess := session.New()
	results := make([]Result, 0, len(captures))

	for _, c := range captures {
		r := Result{CaptureID: c.CaptureID, State: c.State}

		switch c.State {
		case vision.StateLoading:
			if sess.Started() {
				sess.Reset()
			}
			sess.UpdateFromLoading(c.Extraction)
			r.Action = "session_start"
		case vision.StateScoreboard:
			sess.UpdateFromScoreboard(c.Extraction)
			r.Action = "merge"
		case vision.StateShop:
			sess.UpdateFromShop(c.Extraction)
			r.Action = "merge"
		case vision.StateDeath:
			sess.UpdateFromDeath(c.Extraction)
			r.Action = "death"
		case vision.StateLaning, vision.StateTeamfight, vision.StateObjectives:
			sess.UpdateFromLive(c.Extraction)
			r.Action = "merge"
		default:
			r.Action = "ignored"
			results = append(results, r)
			continue
		}
		sess.CapturesAnalyzed++

		if needed, reasons := sess.BuildAdjustmentCheck(); needed {
			r.AdjustmentReasons = reasons
		}
		results = append(results, r)
	}

	return results, sess
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result, sess *session.Session) Summary {
	s := Summary{
		TotalCaptures: len(results),
		SignalCounts:  map[string]int{},
		FinalContext:  sess.Context(),
	}
	for _, r := range results {
		switch r.Action {
		case "session_start":
			s.SessionStarts++
		case "merge":
			s.Merges++
		case "death":
			s.Deaths++
		case "ignored":
			s.Ignored++
		}
		for _, reason := range r.AdjustmentReasons {
			s.SignalCounts[reason]++
		}
	}
	return s
}

// #endregion replay
