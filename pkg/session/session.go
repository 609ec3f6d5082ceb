package session

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"thumbgen/pkg/mixer"
	"thumbgen/pkg/params"
	"thumbgen/pkg/source"
	"thumbgen/pkg/surface"
)

var (
	ErrNoImage    = errors.New("no image loaded")
	ErrSuperseded = errors.New("upload superseded by a later one")
)

func New(comp *mixer.Compositor, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		comp:   comp,
		log:    logger,
		params: params.Default(),
		canvas: mixer.NewCanvas(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Session owns the parameters, the loaded image and the rendered canvas of
// one editing session. Every successful change is followed by exactly one
// full render, which is then painted onto the session surfaces.
type Session struct {
	sync.Mutex
	comp     *mixer.Compositor
	log      *zap.Logger
	surfaces []surface.Surface

	params   params.Params
	source   image.Image
	canvas   *image.RGBA
	spare    *image.RGBA
	rendered bool
	renders  int
	loads    uint64
}

// Load decodes data in the background. The returned channel receives the
// outcome once. A successful decode replaces the current image, unless a
// later Load was started meanwhile, in which case ErrSuperseded is sent.
// A failed decode or render keeps the current image.
func (s *Session) Load(data []byte) <-chan error {
	s.Lock()
	s.loads++
	seq := s.loads
	s.Unlock()

	done := make(chan error, 1)
	go func() {
		img, format, err := source.Decode(data)
		if err != nil {
			s.log.With(zap.Error(err)).Info("decode failed")
			done <- err
			return
		}

		s.Lock()
		defer s.Unlock()

		if seq != s.loads {
			s.log.With(zap.Uint64("seq", seq)).Debug("superseded upload dropped")
			done <- ErrSuperseded
			return
		}

		s.log.With(
			zap.String("format", format),
			zap.Int("w", img.Bounds().Dx()),
			zap.Int("h", img.Bounds().Dy()),
		).Info("image loaded")

		prev := s.source
		s.source = img
		if err := s.render(); err != nil {
			s.source = prev
			done <- err
			return
		}
		done <- nil
	}()

	return done
}

// Update applies fn to a copy of the parameters. The copy is kept only when
// fn and the following render succeed.
func (s *Session) Update(fn func(p *params.Params) error) error {
	s.Lock()
	defer s.Unlock()

	edited := s.params
	if err := fn(&edited); err != nil {
		return err
	}

	prev := s.params
	s.params = edited
	if err := s.render(); err != nil {
		s.params = prev
		return err
	}
	return nil
}

// Reset restores the default parameters.
func (s *Session) Reset() error {
	return s.Update(func(p *params.Params) error {
		*p = params.Default()
		return nil
	})
}

func (s *Session) Params() params.Params {
	s.Lock()
	defer s.Unlock()
	return s.params
}

func (s *Session) Loaded() bool {
	s.Lock()
	defer s.Unlock()
	return s.source != nil
}

// Renders reports how many renders completed.
func (s *Session) Renders() int {
	s.Lock()
	defer s.Unlock()
	return s.renders
}

// Snapshot returns a copy of the rendered canvas, or nil before the first
// render.
func (s *Session) Snapshot() *image.RGBA {
	s.Lock()
	defer s.Unlock()

	if !s.rendered {
		return nil
	}
	return s.snapshot()
}

// Export encodes the rendered canvas as PNG.
func (s *Session) Export() ([]byte, error) {
	s.Lock()
	defer s.Unlock()

	if !s.rendered {
		return nil, ErrNoImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.canvas); err != nil {
		return nil, fmt.Errorf("encode png failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Session) snapshot() *image.RGBA {
	out := image.NewRGBA(s.canvas.Bounds())
	draw.Draw(out, out.Bounds(), s.canvas, s.canvas.Bounds().Min, draw.Src)
	return out
}

// render must be called with the lock held. It draws into the spare canvas
// and swaps it in only once every layer succeeded.
func (s *Session) render() error {
	if s.source == nil {
		return nil
	}

	if s.spare == nil {
		s.spare = mixer.NewCanvas()
	}
	if err := s.comp.Render(s.spare, s.source, &s.params); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	s.canvas, s.spare = s.spare, s.canvas
	s.rendered = true
	s.renders++

	for _, sf := range s.surfaces {
		if err := sf.Paint(s.canvas); err != nil {
			s.log.With(zap.Error(err)).Info("paint surface failed")
		}
	}

	return nil
}
