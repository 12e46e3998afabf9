package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks img by an integer factor. Filtering happens in
// premultiplied alpha so line edges over the transparent background do not
// pick up dark halos.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w == 0 || h == 0 {
		return img
	}

	// NRGBA -> RGBA conversion premultiplies
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	// CatmullRom approximates Lanczos
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(small, small.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(small.Bounds())
	draw.Draw(out, out.Bounds(), small, image.Point{}, draw.Src)
	return out
}
