// Package preview draws skeleton poses as stick figures and encodes them as
// WebP for visual inspection of playback output.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/mathutil"
	"avatar-rig/internal/taxonomy"
)

// Options controls framing and colors of a rendered figure.
type Options struct {
	Size        int
	Supersample int
	// Yaw and Pitch orbit the camera around the figure, in radians.
	Yaw   float64
	Pitch float64
	// BoneColor picks the color of a joint and the segment to its parent.
	// Nil draws everything in DefaultColor.
	BoneColor func(name string) color.NRGBA
}

// DefaultColor is used for bones without a category.
var DefaultColor = color.NRGBA{200, 200, 210, 255}

var categoryColors = map[string]color.NRGBA{
	"face":  {250, 210, 80, 255},
	"torso": {90, 170, 250, 255},
	"arms":  {240, 110, 90, 255},
	"hands": {250, 150, 200, 255},
	"legs":  {110, 210, 120, 255},
}

// CategoryColors colors bones by their taxonomy category.
func CategoryColors(t *taxonomy.Taxonomy) func(string) color.NRGBA {
	return func(name string) color.NRGBA {
		if c, ok := t.CategoryOf(name); ok {
			if col, ok := categoryColors[c.Key]; ok {
				return col
			}
		}
		return DefaultColor
	}
}

// Render draws fig into a transparent square image of opts.Size pixels.
func Render(fig Figure, opts Options) *image.NRGBA {
	size := opts.Size
	if size <= 0 {
		size = 256
	}
	ss := max(opts.Supersample, 1)
	if len(fig.Points) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	renderSize := size * ss
	view := mgl64.HomogRotate3DX(opts.Pitch).Mul4(mgl64.HomogRotate3DY(opts.Yaw))
	pts := make([]mgl64.Vec3, len(fig.Points))
	for i, p := range fig.Points {
		pts[i] = mathutil.MulPoint(view, p)
	}

	lo, hi := bounds(pts)
	center := lo.Add(hi).Mul(0.5)
	span := max(hi[0]-lo[0], hi[1]-lo[1], 0.001)

	margin := renderSize / 16
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2
	project := func(p mgl64.Vec3) (float64, float64, float64) {
		return half + (p[0]-center[0])*scale, half - (p[1]-center[1])*scale, p[2]
	}

	colorOf := func(i int) color.NRGBA {
		if opts.BoneColor == nil {
			return DefaultColor
		}
		return opts.BoneColor(fig.Names[i])
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	width := max(ss, 1)
	for i, parent := range fig.Parents {
		if parent < 0 {
			continue
		}
		ax, ay, az := project(pts[parent])
		bx, by, bz := project(pts[i])
		fb.Line(ax, ay, az, bx, by, bz, width, colorOf(i))
	}
	for i := range pts {
		x, y, z := project(pts[i])
		fb.Disc(x, y, z, 2*width, colorOf(i))
	}

	img := fb.Image()
	if ss > 1 {
		img = Downsample(img, ss)
	}
	return img
}

// Encode writes img as lossless WebP.
func Encode(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// EncodeAndClose encodes img to wc and closes it. An encode error is
// reported ahead of the close error.
func EncodeAndClose(wc io.WriteCloser, img image.Image) error {
	if err := Encode(wc, img); err != nil {
		wc.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("WebP close: %w", err)
	}
	return nil
}
