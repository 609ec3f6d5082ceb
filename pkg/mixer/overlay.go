package mixer

import (
	"image"
	"image/draw"

	"thumbgen/pkg/params"
)

// Overlay fills the canvas with the overlay color at overlay opacity.
func Overlay() Layer {
	return &overlay{}
}

type overlay struct{}

func (l *overlay) Name() string {
	return "overlay"
}

func (l *overlay) Draw(dst *image.RGBA, _ image.Image, p *params.Params) error {
	c := p.OverlayColor.NRGBA(p.OverlayOpacity / 100)
	if c.A == 0 {
		return nil
	}

	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
	return nil
}
