package mixer

import (
	"image"

	"golang.org/x/image/vector"

	"thumbgen/pkg/params"
)

// Frame strokes a rectangle inset by the frame padding. The stroke is
// centered on the rectangle edge, as a canvas strokeRect does.
func Frame() Layer {
	return &frame{}
}

type frame struct{}

func (l *frame) Name() string {
	return "frame"
}

func (l *frame) Draw(dst *image.RGBA, _ image.Image, p *params.Params) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	pad := p.FramePadding

	if p.FrameSize <= 0 || w-2*pad <= 0 || h-2*pad <= 0 {
		return nil
	}

	half := float32(p.FrameSize) / 2
	outer := rect{
		x0: float32(pad) - half,
		y0: float32(pad) - half,
		x1: float32(w-pad) + half,
		y1: float32(h-pad) + half,
	}
	inner := rect{
		x0: outer.x0 + float32(p.FrameSize),
		y0: outer.y0 + float32(p.FrameSize),
		x1: outer.x1 - float32(p.FrameSize),
		y1: outer.y1 - float32(p.FrameSize),
	}

	z := vector.NewRasterizer(w, h)
	if !outer.clip(w, h).contour(z, false) {
		return nil
	}
	inner.clip(w, h).contour(z, true)

	z.Draw(dst, b, image.NewUniform(p.FrameColor.NRGBA(1)), image.Point{})
	return nil
}

type rect struct {
	x0, y0, x1, y1 float32
}

func (r rect) clip(w, h int) rect {
	return rect{
		x0: clip32(r.x0, 0, float32(w)),
		y0: clip32(r.y0, 0, float32(h)),
		x1: clip32(r.x1, 0, float32(w)),
		y1: clip32(r.y1, 0, float32(h)),
	}
}

// contour adds r as a closed path, reversed to cut a hole when reverse is
// set. Empty rectangles add nothing.
func (r rect) contour(z *vector.Rasterizer, reverse bool) bool {
	if r.x1 <= r.x0 || r.y1 <= r.y0 {
		return false
	}

	z.MoveTo(r.x0, r.y0)
	if reverse {
		z.LineTo(r.x0, r.y1)
		z.LineTo(r.x1, r.y1)
		z.LineTo(r.x1, r.y0)
	} else {
		z.LineTo(r.x1, r.y0)
		z.LineTo(r.x1, r.y1)
		z.LineTo(r.x0, r.y1)
	}
	z.ClosePath()
	return true
}

func clip32(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
