package session

import (
	"thumbgen/pkg/params"
	"thumbgen/pkg/surface"
)

type Option func(s *Session)

// WithSurface paints every render onto sf.
func WithSurface(sf ...surface.Surface) Option {
	return func(s *Session) {
		s.surfaces = append(s.surfaces, sf...)
	}
}

// WithParams starts the session from p instead of the defaults.
func WithParams(p params.Params) Option {
	return func(s *Session) {
		s.params = p
	}
}
