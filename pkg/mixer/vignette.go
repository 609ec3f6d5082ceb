package mixer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"thumbgen/pkg/params"
)

// Vignette darkens the canvas with a radial gradient centered on the canvas,
// with a radius of half the canvas width. The gradient is transparent up to
// 1-size/100 of the radius and reaches opacity/100 black at the radius.
func Vignette() Layer {
	return &vignette{}
}

type vignette struct{}

func (l *vignette) Name() string {
	return "vignette"
}

func (l *vignette) Draw(dst *image.RGBA, _ image.Image, p *params.Params) error {
	if p.VignetteOpacity <= 0 {
		return nil
	}

	mask := vignetteMask(dst.Bounds(), p.VignetteOpacity/100, p.VignetteSize/100)
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return nil
}

func vignetteMask(b image.Rectangle, opacity, size float64) *image.Alpha {
	mask := image.NewAlpha(b)

	w, h := float64(b.Dx()), float64(b.Dy())
	cx, cy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	radius := w / 2
	if radius <= 0 {
		return mask
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / radius
			a := vignetteAlpha(t, opacity, size)
			if a > 0 {
				mask.SetAlpha(x, y, color.Alpha{A: uint8(a*255 + 0.5)})
			}
		}
	}

	return mask
}

// vignetteAlpha evaluates the gradient at normalized radius t.
func vignetteAlpha(t, opacity, size float64) float64 {
	opacity = clampUnit(opacity)
	start := 1 - clampUnit(size)

	switch {
	case t >= 1:
		return opacity
	case t <= start:
		return 0
	default:
		return opacity * (t - start) / (1 - start)
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
