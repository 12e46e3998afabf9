package preview

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Plot writes c at (x, y) if z is at least as near as what is stored there.
// Larger z is nearer the camera.
func (fb *FrameBuffer) Plot(x, y int, z float64, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z < fb.ZBuf[i] {
		return
	}
	fb.ZBuf[i] = z
	o := i * 4
	fb.Color[o] = c.R
	fb.Color[o+1] = c.G
	fb.Color[o+2] = c.B
	fb.Color[o+3] = c.A
}

// Disc fills a circle of radius r centred on (cx, cy) at depth z.
func (fb *FrameBuffer) Disc(cx, cy, z float64, r int, c color.NRGBA) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				fb.Plot(x0+dx, y0+dy, z, c)
			}
		}
	}
}

// Line draws a segment of half-width r from a to b, interpolating depth.
func (fb *FrameBuffer) Line(ax, ay, az, bx, by, bz float64, r int, c color.NRGBA) {
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		fb.Disc(ax, ay, math.Max(az, bz), r, c)
		return
	}
	for s := 0; s <= steps; s++ {
		f := float64(s) / float64(steps)
		fb.Disc(ax+(bx-ax)*f, ay+(by-ay)*f, az+(bz-az)*f, r, c)
	}
}

// Image copies the color buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
