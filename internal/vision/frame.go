package vision

import (
	"image"
)

// #region frame

// Frame is an immutable RGBA bitmap plus its pixel dimensions. The caller
// owns it for the duration of one classification + pipeline run.
type Frame struct {
	Pix    []uint8 // RGBA, 4 bytes per pixel, row-major
	Width  int
	Height int
}

// NewFrame copies an image into a Frame.
func NewFrame(img image.Image) Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := Frame{Pix: make([]uint8, w*h*4), Width: w, Height: h}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(bl >> 8)
			f.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return f
}

// Empty reports whether the frame has no pixels.
func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0 || len(f.Pix) < f.Width*f.Height*4
}

// RGB returns the color at (x, y). Out-of-range coordinates return black.
func (f Frame) RGB(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, 0, 0
	}
	i := (y*f.Width + x) * 4
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// #endregion frame

// #region thumbnail

// Thumbnail downsamples the frame with nearest-neighbor sampling. Signal
// math runs on a small thumb so detection cost is independent of capture
// resolution.
func (f Frame) Thumbnail(w, h int) Frame {
	if f.Empty() || w <= 0 || h <= 0 {
		return Frame{}
	}
	t := Frame{Pix: make([]uint8, w*h*4), Width: w, Height: h}
	for y := 0; y < h; y++ {
		sy := y * f.Height / h
		for x := 0; x < w; x++ {
			sx := x * f.Width / w
			si := (sy*f.Width + sx) * 4
			di := (y*w + x) * 4
			copy(t.Pix[di:di+4], f.Pix[si:si+4])
		}
	}
	return t
}

// #endregion thumbnail
