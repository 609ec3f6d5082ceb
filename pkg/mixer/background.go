package mixer

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"thumbgen/pkg/params"
)

// Background stretches the source image over the whole canvas, replacing
// whatever the canvas held. The aspect ratio is not preserved.
func Background() Layer {
	return &background{filter: imaging.Linear}
}

type background struct {
	filter imaging.ResampleFilter
}

func (l *background) Name() string {
	return "background"
}

func (l *background) Draw(dst *image.RGBA, src image.Image, _ *params.Params) error {
	b := dst.Bounds()
	stretched := imaging.Resize(src, b.Dx(), b.Dy(), l.filter)
	draw.Draw(dst, b, stretched, image.Point{}, draw.Src)
	return nil
}
