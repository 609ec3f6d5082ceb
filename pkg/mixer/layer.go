package mixer

import (
	"image"

	"thumbgen/pkg/params"
)

// Layer paints one step of a composition onto dst. Layers run in stack
// order, so later layers are painted over earlier ones.
type Layer interface {
	Name() string
	Draw(dst *image.RGBA, src image.Image, p *params.Params) error
}
