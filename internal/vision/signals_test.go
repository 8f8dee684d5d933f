package vision

import "testing"

func TestSaturation(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    float64
	}{
		{0, 0, 0, 0},
		{100, 100, 100, 0},
		{200, 0, 0, 1},
		{200, 100, 100, 0.5},
	}
	for _, tt := range tests {
		if got := saturation(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("saturation(%d,%d,%d) = %.2f, want %.2f", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestMatchBand(t *testing.T) {
	tests := []struct {
		band    ColorBand
		r, g, b uint8
		want    bool
	}{
		{BandGreen, 40, 200, 60, true},
		{BandGreen, 200, 200, 200, false},
		{BandYellow, 200, 170, 40, true},
		{BandYellow, 200, 170, 120, false},
		{BandRed, 200, 40, 40, true},
		{BandBlue, 40, 60, 200, true},
		{BandBlue, 200, 200, 220, false},
	}
	for _, tt := range tests {
		if got := matchBand(tt.band, tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("matchBand(%s, %d,%d,%d) = %v, want %v", tt.band, tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestGridOccupancy(t *testing.T) {
	if got := gridOccupancy(loadingFrame().Thumbnail(160, 90)); got < 0.9 {
		t.Errorf("gridOccupancy(loading) = %.2f, want near 1", got)
	}
	if got := gridOccupancy(solidFrame(160, 90, 10, 10, 10)); got > 0.2 {
		t.Errorf("gridOccupancy(flat dark) = %.2f, want near 0", got)
	}
}

func TestRegionDarkRatio(t *testing.T) {
	dark := solidFrame(100, 100, 10, 10, 10)
	if got := frameDarkRatio(dark); got != 1.0 {
		t.Errorf("frameDarkRatio(dark) = %.2f, want 1", got)
	}
	bright := solidFrame(100, 100, 200, 200, 200)
	if got := frameDarkRatio(bright); got != 0 {
		t.Errorf("frameDarkRatio(bright) = %.2f, want 0", got)
	}
}

func TestHorizontalBandingNeedsRows(t *testing.T) {
	tiny := solidFrame(100, 12, 100, 100, 100)
	if got := horizontalBanding(tiny, 0, 12, 10); got != 0 {
		t.Errorf("banding on <10 rows = %.2f, want 0", got)
	}
}

func TestFrameRGBOutOfRange(t *testing.T) {
	f := solidFrame(10, 10, 50, 60, 70)
	r, g, b := f.RGB(-1, 5)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("out-of-range RGB = (%d,%d,%d), want black", r, g, b)
	}
	r, g, b = f.RGB(5, 5)
	if r != 50 || g != 60 || b != 70 {
		t.Errorf("RGB(5,5) = (%d,%d,%d), want (50,60,70)", r, g, b)
	}
}

func TestThumbnailDimensions(t *testing.T) {
	f := solidFrame(1600, 900, 100, 100, 100)
	thumb := f.Thumbnail(320, 180)
	if thumb.Width != 320 || thumb.Height != 180 {
		t.Errorf("thumbnail = %dx%d, want 320x180", thumb.Width, thumb.Height)
	}
	if empty := (Frame{}).Thumbnail(320, 180); !empty.Empty() {
		t.Error("thumbnail of empty frame should be empty")
	}
}
