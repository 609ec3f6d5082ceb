package mixer

import (
	"go.uber.org/zap"

	"thumbgen/pkg/fonts"
)

type Option func(c *Compositor)

// WithLayers replaces the default layer stack.
func WithLayers(l ...Layer) Option {
	return func(c *Compositor) {
		c.layers = l
	}
}

func WithFonts(r *fonts.Registry) Option {
	return func(c *Compositor) {
		c.fonts = r
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Compositor) {
		c.log = logger
	}
}
