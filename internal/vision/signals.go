package vision

// Pixel-statistics helpers behind the state checks. Every score is
// normalized to [0,1] so hypothesis weights compose cleanly. Sampling
// strides skip pixels; the thumbs are small enough that full coverage
// buys nothing.

// #region color-band

// ColorBand names a hue band matched by regionColorRatio.
type ColorBand string

const (
	BandGreen  ColorBand = "green"
	BandYellow ColorBand = "yellow"
	BandRed    ColorBand = "red"
	BandBlue   ColorBand = "blue"
)

// #endregion color-band

// #region brightness

func regionAvgBrightness(f Frame, x1, y1, x2, y2 int) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var sum float64
	var n int
	for y := y1; y < y2; y += 2 {
		for x := x1; x < x2; x += 2 {
			r, g, b := f.RGB(x, y)
			sum += (float64(r) + float64(g) + float64(b)) / 3
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func regionDarkRatio(f Frame, x1, y1, x2, y2 int) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var dark, total int
	for y := y1; y < y2; y += 2 {
		for x := x1; x < x2; x += 2 {
			r, g, b := f.RGB(x, y)
			total++
			if r < 60 && g < 60 && b < 60 {
				dark++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(dark) / float64(total)
}

// #endregion brightness

// #region saturation

func regionAvgSaturation(f Frame, x1, y1, x2, y2 int) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var sum float64
	var n int
	for y := y1; y < y2; y += 2 {
		for x := x1; x < x2; x += 2 {
			r, g, b := f.RGB(x, y)
			sum += saturation(r, g, b)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func saturation(r, g, b uint8) float64 {
	maxC := max(r, max(g, b))
	if maxC == 0 {
		return 0
	}
	minC := min(r, min(g, b))
	return float64(maxC-minC) / float64(maxC)
}

// #endregion saturation

// #region color-ratio

// regionWarmRatio is the fraction of gold/brown/orange pixels (shop UI theme).
func regionWarmRatio(f Frame, x1, y1, x2, y2 int) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var warm, total int
	for y := y1; y < y2; y += 3 {
		for x := x1; x < x2; x += 3 {
			r, g, b := f.RGB(x, y)
			total++
			if r > 100 && g > 60 && b < g && float64(r) > float64(b)*1.3 {
				warm++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(warm) / float64(total)
}

func regionColorRatio(f Frame, x1, y1, x2, y2 int, band ColorBand) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var matched, total int
	for y := y1; y < y2; y += 3 {
		for x := x1; x < x2; x += 3 {
			r, g, b := f.RGB(x, y)
			total++
			if matchBand(band, r, g, b) {
				matched++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func matchBand(band ColorBand, r, g, b uint8) bool {
	rf, gf, bf := float64(r), float64(g), float64(b)
	switch band {
	case BandGreen:
		return g > 80 && gf > rf*1.2 && gf > bf*1.2
	case BandYellow:
		return r > 150 && g > 130 && b < 80
	case BandRed:
		return r > 120 && rf > gf*1.5 && rf > bf*1.5
	case BandBlue:
		return b > 120 && bf > rf*1.3 && bf > gf*1.1
	}
	return false
}

// #endregion color-ratio

// #region banding

// horizontalBanding scores alternating-brightness row transitions between
// yStart and yEnd against the transition count a tabular layout produces.
func horizontalBanding(f Frame, yStart, yEnd, expectedBands int) float64 {
	var rows []float64
	xFrom, xTo := int(float64(f.Width)*0.15), int(float64(f.Width)*0.85)
	for y := yStart; y < yEnd; y += 2 {
		var sum float64
		var n int
		for x := xFrom; x < xTo; x += 4 {
			r, g, b := f.RGB(x, y)
			sum += (float64(r) + float64(g) + float64(b)) / 3
			n++
		}
		if n > 0 {
			rows = append(rows, sum/float64(n))
		}
	}
	if len(rows) < 10 {
		return 0
	}

	const threshold = 15.0 // brightness delta that counts as a row edge
	transitions := 0
	for i := 1; i < len(rows); i++ {
		if abs(rows[i]-rows[i-1]) > threshold {
			transitions++
		}
	}

	expected := float64(expectedBands) * 1.5
	return clamp01(float64(transitions) / expected)
}

// #endregion banding

// #region grid-occupancy

// gridOccupancy scores the 5+5 champion splash grid of a loading screen:
// two rows of five cells, each scored by whether its brightness variance
// sits in the detailed-image band rather than flat or blown-out.
func gridOccupancy(f Frame) float64 {
	rows := [][2]float64{{0.08, 0.45}, {0.55, 0.92}}
	matched := 0
	for _, row := range rows {
		for col := 0; col < 5; col++ {
			x1 := int(float64(f.Width) * (0.01 + float64(col)*0.195))
			x2 := int(float64(f.Width) * (0.01 + float64(col)*0.195 + 0.17))
			y1 := int(float64(f.Height) * row[0])
			y2 := int(float64(f.Height) * row[1])
			if cellScore(f, x1, y1, x2, y2) > 0.4 {
				matched++
			}
		}
	}
	return clamp01(float64(matched) / 8.0)
}

func cellScore(f Frame, x1, y1, x2, y2 int) float64 {
	x1, y1, x2, y2 = clampRect(f, x1, y1, x2, y2)
	var vals []float64
	for y := y1; y < y2; y += 2 {
		for x := x1; x < x2; x += 2 {
			r, g, b := f.RGB(x, y)
			vals = append(vals, (float64(r)+float64(g)+float64(b))/3)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	avg, variance := meanVariance(vals)
	switch {
	case avg > 30 && avg < 200 && variance > 100:
		return 1.0
	case variance > 30:
		return 0.5
	default:
		return 0.1
	}
}

// #endregion grid-occupancy

// #region frame-wide

// frameDarkRatio is the fraction of near-black pixels across the whole frame.
func frameDarkRatio(f Frame) float64 {
	return regionDarkRatio(f, 0, 0, f.Width, f.Height)
}

// frameGrayRatio is the fraction of desaturated mid-tone pixels, the death
// screen's dominant signature.
func frameGrayRatio(f Frame) float64 {
	var gray, total int
	for y := 0; y < f.Height; y += 2 {
		for x := 0; x < f.Width; x += 2 {
			r, g, b := f.RGB(x, y)
			total++
			if absInt(int(r)-int(g)) < 30 && absInt(int(g)-int(b)) < 30 &&
				absInt(int(r)-int(b)) < 30 && r > 30 && r < 180 {
				gray++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(gray) / float64(total)
}

// frameBrightnessVariance distinguishes real content from a blank overlay.
func frameBrightnessVariance(f Frame) float64 {
	var vals []float64
	for y := 0; y < f.Height; y += 2 {
		for x := 0; x < f.Width; x += 2 {
			r, g, b := f.RGB(x, y)
			vals = append(vals, (float64(r)+float64(g)+float64(b))/3)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	_, variance := meanVariance(vals)
	return variance
}

// #endregion frame-wide

// #region helpers

func clampRect(f Frame, x1, y1, x2, y2 int) (int, int, int, int) {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > f.Width {
		x2 = f.Width
	}
	if y2 > f.Height {
		y2 = f.Height
	}
	return x1, y1, x2, y2
}

func meanVariance(vals []float64) (mean, variance float64) {
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return mean, variance
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// #endregion helpers
