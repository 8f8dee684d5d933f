package vision

// #region region

// Region is a fractional screen rectangle (0-1 in both axes), so region
// definitions hold at any capture resolution.
type Region struct {
	X1, Y1, X2, Y2 float64
}

// Pixels converts a fractional region to pixel bounds within a w×h frame.
func (r Region) Pixels(w, h int) (x1, y1, x2, y2 int) {
	return int(r.X1 * float64(w)), int(r.Y1 * float64(h)),
		int(r.X2 * float64(w)), int(r.Y2 * float64(h))
}

// #endregion region

// #region region-table

// Known HUD element positions, calibrated against 1920x1080 captures.
var (
	regionMinimap     = Region{0.78, 0.74, 1.0, 1.0}
	regionPlayerHUD   = Region{0.30, 0.85, 0.70, 1.0}
	regionHealthBar   = Region{0.38, 0.90, 0.62, 0.92}
	regionTabOverlay  = Region{0.10, 0.05, 0.90, 0.85}
	regionShopWindow  = Region{0.20, 0.05, 0.85, 0.90}
	regionShopGold    = Region{0.72, 0.06, 0.82, 0.10}
	regionPostHeader  = Region{0.0, 0.0, 1.0, 0.08}
	regionCenterField = Region{0.20, 0.20, 0.70, 0.70}
)

// #endregion region-table
