package vision

import (
	"log"
	"time"
)

// #region detector-struct

// Detector is a multi-signal heuristic classifier for game states. It keeps
// a short rolling history of detections for temporal reasoning: a loading
// screen followed by in-game starts the game clock, repeated states
// accumulate a duration instead of resetting it.
type Detector struct {
	cfg Config

	history    []historyEntry
	current    GameState
	stateSince time.Time
	gameStart  time.Time // zero until the first in-game detection

	now func() time.Time // injectable clock
}

type historyEntry struct {
	at    time.Time
	state GameState
}

// NewDetector creates a detector with the given calibration.
func NewDetector(cfg Config) *Detector {
	return &Detector{
		cfg:     cfg,
		current: StateNotGame,
		now:     time.Now,
	}
}

// #endregion detector-struct

// #region detect

// Detect analyzes one frame and returns the detected state with confidence,
// phase, and temporal context. It never fails: a degenerate frame scores
// zero on every signal and resolves to StateNotGame.
func (d *Detector) Detect(frame Frame) Result {
	now := d.now()
	thumb := frame.Thumbnail(d.cfg.ThumbWidth, d.cfg.ThumbHeight)
	small := frame.Thumbnail(160, 90)

	// Fixed candidate order doubles as the tie-break priority.
	candidates := []Result{
		d.checkLoading(small, frame),
		d.checkScoreboard(thumb),
		d.checkShop(thumb),
		d.checkDeath(small),
		d.checkPostGame(small),
		d.checkInGame(thumb, now),
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}

	best = d.applyTemporal(best, now)

	if best.Confidence < d.cfg.MinConfidence {
		best.State = StateNotGame
		best.Phase = ""
	}

	// Duration accumulates while the state repeats.
	if len(d.history) > 0 && d.history[len(d.history)-1].state == best.State {
		best.StateDuration = now.Sub(d.stateSince)
	} else {
		d.stateSince = now
	}

	d.history = append(d.history, historyEntry{at: now, state: best.State})
	if len(d.history) > d.cfg.HistoryMax {
		d.history = d.history[len(d.history)-d.cfg.HistoryKeep:]
	}

	best.PreviousState = d.current
	d.current = best.State

	log.Printf("[DETECT] state=%s conf=%.2f phase=%s dur=%.1fs",
		best.State, best.Confidence, best.Phase, best.StateDuration.Seconds())
	return best
}

// #endregion detect

// #region state-checks

// checkLoading scores the loading screen: dark background, 5+5 champion
// splash grid, no minimap, widescreen aspect.
func (d *Detector) checkLoading(small, full Frame) Result {
	darkRatio := frameDarkRatio(small)
	grid := gridOccupancy(small)

	x1, y1, x2, y2 := regionMinimap.Pixels(small.Width, small.Height)
	minimapBrightness := regionAvgBrightness(small, x1, y1, x2, y2)

	conf := 0.0
	if darkRatio >= 0.25 && darkRatio <= 0.70 {
		conf += 0.25
	}
	if grid > 0.5 {
		conf += 0.45 * grid
	}
	if minimapBrightness < 60 {
		conf += 0.15
	}
	if full.Height > 0 {
		aspect := float64(full.Width) / float64(full.Height)
		if aspect >= 1.7 && aspect <= 1.85 {
			conf += 0.10
		}
	}

	return Result{
		State:      StateLoading,
		Confidence: clamp01(conf),
		Phase:      PhasePreGame,
		Extracted:  map[string]any{"grid_score": grid},
	}
}

// checkScoreboard scores the TAB overlay: dark tint over the center, row
// banding from the player table, minimap still visible underneath.
func (d *Detector) checkScoreboard(thumb Frame) Result {
	x1, y1, x2, y2 := regionTabOverlay.Pixels(thumb.Width, thumb.Height)
	centerBrightness := regionAvgBrightness(thumb, x1, y1, x2, y2)
	centerDark := regionDarkRatio(thumb, x1, y1, x2, y2)

	band := horizontalBanding(thumb,
		int(float64(thumb.Height)*0.10), int(float64(thumb.Height)*0.80), 10)

	mx1, my1, mx2, my2 := regionMinimap.Pixels(thumb.Width, thumb.Height)
	hasMinimap := regionAvgBrightness(thumb, mx1, my1, mx2, my2) > 30

	conf := 0.0
	if centerDark > 0.4 {
		conf += 0.25
	}
	if centerBrightness > 30 && centerBrightness < 100 {
		conf += 0.15
	}
	if band > 0.4 {
		conf += 0.35
	}
	if hasMinimap {
		conf += 0.15
	}

	return Result{
		State:      StateScoreboard,
		Confidence: clamp01(conf),
		Extracted:  map[string]any{"has_minimap": hasMinimap, "band_score": band},
	}
}

// checkShop scores the shop window: a bright center-right panel with the
// warm gold/brown UI palette and yellow gold-count text.
func (d *Detector) checkShop(thumb Frame) Result {
	x1, y1, x2, y2 := regionShopWindow.Pixels(thumb.Width, thumb.Height)
	shopBrightness := regionAvgBrightness(thumb, x1, y1, x2, y2)
	warm := regionWarmRatio(thumb, x1, y1, x2, y2)

	gx1, gy1, gx2, gy2 := regionShopGold.Pixels(thumb.Width, thumb.Height)
	goldYellow := regionColorRatio(thumb, gx1, gy1, gx2, gy2, BandYellow)

	mx1, my1, mx2, my2 := regionMinimap.Pixels(thumb.Width, thumb.Height)
	hasMinimap := regionAvgBrightness(thumb, mx1, my1, mx2, my2) > 30

	conf := 0.0
	if shopBrightness > 60 {
		conf += 0.20
	}
	if warm > 0.15 {
		conf += 0.30
	}
	if goldYellow > 0.05 {
		conf += 0.25
	}
	if hasMinimap {
		conf += 0.15
	}

	return Result{
		State:      StateShop,
		Confidence: clamp01(conf),
		Extracted:  map[string]any{"warm_ratio": warm},
	}
}

// checkDeath scores the respawn screen: heavy desaturation, gray dominance,
// but enough variance that it is game content and not a blank panel.
func (d *Detector) checkDeath(small Frame) Result {
	x1, y1, x2, y2 := 0, 0, small.Width, small.Height
	sat := regionAvgSaturation(small, x1, y1, x2, y2)
	gray := frameGrayRatio(small)
	variance := frameBrightnessVariance(small)

	conf := 0.0
	switch {
	case sat < 0.15:
		conf += 0.40
	case sat < 0.25:
		conf += 0.20
	}
	if gray > 0.35 {
		conf += 0.30
	}
	if variance > 200 {
		conf += 0.15
	}

	// More likely right after active play.
	if d.current == StateLaning || d.current == StateTeamfight {
		conf += 0.10
	}

	return Result{
		State:      StateDeath,
		Confidence: clamp01(conf),
		Extracted:  map[string]any{"saturation": sat},
	}
}

// checkPostGame scores the end-of-game stats screen: bright banner header,
// victory/defeat color wash, banded stats table, no minimap.
func (d *Detector) checkPostGame(small Frame) Result {
	x1, y1, x2, y2 := regionPostHeader.Pixels(small.Width, small.Height)
	headerBrightness := regionAvgBrightness(small, x1, y1, x2, y2)

	var banner, total int
	for y := 0; y < small.Height; y += 2 {
		for x := 0; x < small.Width; x += 2 {
			r, g, b := small.RGB(x, y)
			total++
			if (b > 150 && b > r) || (r > 180 && g > 150 && b < 100) {
				banner++
			}
		}
	}
	victoryRatio := 0.0
	if total > 0 {
		victoryRatio = float64(banner) / float64(total)
	}

	band := horizontalBanding(small,
		int(float64(small.Height)*0.15), int(float64(small.Height)*0.85), 10)

	mx1, my1, mx2, my2 := regionMinimap.Pixels(small.Width, small.Height)
	minimapBrightness := regionAvgBrightness(small, mx1, my1, mx2, my2)

	conf := 0.0
	if headerBrightness > 80 {
		conf += 0.20
	}
	if victoryRatio > 0.03 {
		conf += 0.20
	}
	if band > 0.3 {
		conf += 0.30
	}
	if minimapBrightness < 50 {
		conf += 0.10
	}

	return Result{
		State:      StatePostGame,
		Confidence: clamp01(conf),
		Phase:      PhasePostGame,
	}
}

// checkInGame scores active play: minimap, HUD bar, health bar green,
// saturated terrain in the center field.
func (d *Detector) checkInGame(thumb Frame, now time.Time) Result {
	mx1, my1, mx2, my2 := regionMinimap.Pixels(thumb.Width, thumb.Height)
	minimapBrightness := regionAvgBrightness(thumb, mx1, my1, mx2, my2)
	minimapSat := regionAvgSaturation(thumb, mx1, my1, mx2, my2)
	hasMinimap := minimapBrightness > 35 && minimapSat > 0.10

	hx1, hy1, hx2, hy2 := regionPlayerHUD.Pixels(thumb.Width, thumb.Height)
	hasHUD := regionAvgBrightness(thumb, hx1, hy1, hx2, hy2) > 25

	bx1, by1, bx2, by2 := regionHealthBar.Pixels(thumb.Width, thumb.Height)
	hasHealth := regionColorRatio(thumb, bx1, by1, bx2, by2, BandGreen) > 0.05

	cx1, cy1, cx2, cy2 := regionCenterField.Pixels(thumb.Width, thumb.Height)
	centerSat := regionAvgSaturation(thumb, cx1, cy1, cx2, cy2)

	conf := 0.0
	if hasMinimap {
		conf += 0.35
	}
	if hasHUD {
		conf += 0.25
	}
	if hasHealth {
		conf += 0.20
	}
	if centerSat > 0.12 {
		conf += 0.15
	}

	return Result{
		State:      StateLaning,
		Confidence: clamp01(conf),
		Phase:      d.estimatePhase(now),
		Extracted:  map[string]any{"has_minimap": hasMinimap},
	}
}

// #endregion state-checks

// #region temporal

// applyTemporal refines a detection against the rolling history. The first
// in-game detection starts the game clock; checks themselves stay pure so
// evaluating a candidate never mutates detector state.
func (d *Detector) applyTemporal(r Result, now time.Time) Result {
	if r.State == StateLaning && r.Confidence >= d.cfg.MinConfidence && d.gameStart.IsZero() {
		d.gameStart = now
		r.Phase = PhaseEarlyLaning
	}
	return r
}

// estimatePhase buckets elapsed game time into a timeline phase.
func (d *Detector) estimatePhase(now time.Time) GamePhase {
	if d.gameStart.IsZero() {
		return PhaseEarlyLaning
	}
	elapsed := now.Sub(d.gameStart).Minutes()
	switch {
	case elapsed < 8:
		return PhaseEarlyLaning
	case elapsed < 14:
		return PhaseMidLaning
	case elapsed < 25:
		return PhaseMidGame
	default:
		return PhaseLateGame
	}
}

// GameStart returns the session clock, zero if the game has not started.
func (d *Detector) GameStart() time.Time {
	return d.gameStart
}

// ResetClock clears the session clock when a new game begins.
func (d *Detector) ResetClock() {
	d.gameStart = time.Time{}
}

// #endregion temporal
