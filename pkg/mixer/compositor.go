package mixer

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"thumbgen/pkg/fonts"
	"thumbgen/pkg/params"
)

var ErrNoSource = errors.New("no source image")

func New(opts ...Option) *Compositor {
	c := &Compositor{}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.fonts == nil {
		c.fonts = fonts.NewRegistry(nil, c.log)
	}
	if c.layers == nil {
		c.layers = Layers(c.fonts, c.log)
	}

	return c
}

// Layers returns the thumbnail stack: background, vignette, overlay, frame,
// title and subtitle.
func Layers(r *fonts.Registry, logger *zap.Logger) []Layer {
	return []Layer{
		Background(),
		Vignette(),
		Overlay(),
		Frame(),
		Title(r, logger),
		Subtitle(r, logger),
	}
}

type Compositor struct {
	fonts  *fonts.Registry
	log    *zap.Logger
	layers []Layer
}

// NewCanvas allocates an empty canvas of the thumbnail size.
func NewCanvas() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
}

// Compose renders src with p onto a new canvas.
func (c *Compositor) Compose(src image.Image, p *params.Params) (*image.RGBA, error) {
	dst := NewCanvas()
	if err := c.Render(dst, src, p); err != nil {
		return nil, err
	}
	return dst, nil
}

// Render paints every layer onto dst in place. Neither src nor p is modified.
// Nothing is drawn when src is nil.
func (c *Compositor) Render(dst *image.RGBA, src image.Image, p *params.Params) error {
	if src == nil {
		return ErrNoSource
	}

	for _, l := range c.layers {
		if err := l.Draw(dst, src, p); err != nil {
			return fmt.Errorf("draw %s failed: %w", l.Name(), err)
		}
	}

	c.log.With(
		zap.Int("layers", len(c.layers)),
		zap.String("title", p.Title),
	).Debug("rendered")
	return nil
}
