package session

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbgen/pkg/mixer"
	"thumbgen/pkg/params"
)

type recorder struct {
	frames int
	last   color.RGBA
}

func (r *recorder) Paint(img image.Image) error {
	r.frames++
	r.last = img.(*image.RGBA).RGBAAt(0, 0)
	return nil
}

type failing struct{}

// brittle is a layer that fails while broken is set.
type brittle struct {
	broken bool
}

func (l *brittle) Name() string {
	return "brittle"
}

func (l *brittle) Draw(dst *image.RGBA, _ image.Image, _ *params.Params) error {
	if l.broken {
		dst.SetRGBA(0, 0, color.RGBA{G: 0xff, A: 0xff})
		return errors.New("face unavailable")
	}
	return nil
}

func (failing) Paint(image.Image) error {
	return errors.New("surface gone")
}

func pngOf(t *testing.T, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newSession(opts ...Option) *Session {
	return New(mixer.New(), nil, opts...)
}

func TestNoImage(t *testing.T) {
	rec := &recorder{}
	s := newSession(WithSurface(rec))

	require.NoError(t, s.Update(func(p *params.Params) error {
		p.Title = "Hello"
		return nil
	}))

	assert.False(t, s.Loaded())
	assert.Zero(t, s.Renders())
	assert.Zero(t, rec.frames)
	assert.Nil(t, s.Snapshot())

	bs, err := s.Export()
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Nil(t, bs)
	assert.Equal(t, "Hello", s.Params().Title, "edits before an upload are kept")
}

func TestLoadRenders(t *testing.T) {
	rec := &recorder{}
	s := newSession(WithSurface(rec))

	require.NoError(t, <-s.Load(pngOf(t, color.RGBA{R: 0xff, A: 0xff})))

	assert.True(t, s.Loaded())
	assert.Equal(t, 1, s.Renders())
	assert.Equal(t, 1, rec.frames)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, rec.last)

	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, image.Rect(0, 0, params.Width, params.Height), snap.Bounds())
}

func TestEveryUpdateRendersOnce(t *testing.T) {
	rec := &recorder{}
	s := newSession(WithSurface(rec))
	require.NoError(t, <-s.Load(pngOf(t, color.White)))

	edits := [][2]string{
		{"title", "A"},
		{"subtitle-font-size", "72"},
		{"title-color", "#123456"},
		{"subtitle-font", "Arial"},
		{"title-horizontal-shift", "5"},
		{"subtitle-vertical-shift", "-5"},
		{"vignette-size", "20"},
		{"overlay-opacity", "10"},
		{"frame-padding", "10"},
	}
	for _, e := range edits {
		before := s.Renders()
		require.NoError(t, s.Update(func(p *params.Params) error {
			return params.Set(p, e[0], e[1])
		}), e[0])
		assert.Equal(t, before+1, s.Renders(), e[0])
	}

	assert.Equal(t, s.Renders(), rec.frames)
}

func TestUpdateErrorKeepsState(t *testing.T) {
	s := newSession()
	require.NoError(t, <-s.Load(pngOf(t, color.White)))
	before := s.Params()

	err := s.Update(func(p *params.Params) error {
		p.Title = "half applied"
		return params.Set(p, "title-font", "Wingdings")
	})
	assert.Error(t, err)
	assert.Equal(t, before, s.Params())
	assert.Equal(t, 1, s.Renders())
}

func TestBadUploadKeepsPreviousImage(t *testing.T) {
	s := newSession()
	require.NoError(t, <-s.Load(pngOf(t, color.RGBA{G: 0xff, A: 0xff})))
	first, err := s.Export()
	require.NoError(t, err)

	assert.Error(t, <-s.Load([]byte("garbage")))

	assert.True(t, s.Loaded())
	second, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadReplacesImage(t *testing.T) {
	rec := &recorder{}
	s := newSession(WithSurface(rec))

	require.NoError(t, <-s.Load(pngOf(t, color.RGBA{R: 0xff, A: 0xff})))
	require.NoError(t, <-s.Load(pngOf(t, color.RGBA{B: 0xff, A: 0xff})))

	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, rec.last)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, s.Snapshot().RGBAAt(10, 10))
}

func TestSupersededLoadDropped(t *testing.T) {
	s := newSession()

	first := s.Load(pngOf(t, color.RGBA{R: 0xff, A: 0xff}))
	second := s.Load(pngOf(t, color.RGBA{B: 0xff, A: 0xff}))
	assert.ErrorIs(t, <-first, ErrSuperseded)
	require.NoError(t, <-second)

	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, s.Snapshot().RGBAAt(10, 10))
}

func TestExportIsSnapshot(t *testing.T) {
	s := newSession()
	require.NoError(t, <-s.Load(pngOf(t, color.White)))

	bs, err := s.Export()
	require.NoError(t, err)

	require.NoError(t, s.Update(func(p *params.Params) error {
		p.OverlayOpacity = 100
		return nil
	}))

	img, err := png.Decode(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1280, 720), img.Bounds())
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "later renders do not change an export")

	snap := s.Snapshot()
	assert.Equal(t, color.RGBA{A: 0xff}, snap.RGBAAt(2, 2))
}

func TestSnapshotIndependent(t *testing.T) {
	s := newSession()
	require.NoError(t, <-s.Load(pngOf(t, color.White)))

	snap := s.Snapshot()
	snap.SetRGBA(0, 0, color.RGBA{})
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, s.Snapshot().RGBAAt(0, 0))
}

func TestSurfaceErrorIgnored(t *testing.T) {
	s := newSession(WithSurface(failing{}))
	assert.NoError(t, <-s.Load(pngOf(t, color.White)))
	assert.Equal(t, 1, s.Renders())
}

func TestReset(t *testing.T) {
	p := params.Default()
	p.Title = "custom"
	s := newSession(WithParams(p))
	assert.Equal(t, "custom", s.Params().Title)

	require.NoError(t, s.Reset())
	assert.Equal(t, params.Default(), s.Params())
}

func TestFailedRenderKeepsLastRender(t *testing.T) {
	layer := &brittle{}
	rec := &recorder{}
	s := New(mixer.New(mixer.WithLayers(mixer.Background(), layer)), nil, WithSurface(rec))

	require.NoError(t, <-s.Load(pngOf(t, color.White)))
	before, err := s.Export()
	require.NoError(t, err)
	params0 := s.Params()

	layer.broken = true
	err = s.Update(func(p *params.Params) error {
		p.Title = "never shown"
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, params0, s.Params())

	assert.Error(t, <-s.Load(pngOf(t, color.Black)))

	after, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, s.Renders())
	assert.Equal(t, 1, rec.frames)

	layer.broken = false
	require.NoError(t, s.Update(func(p *params.Params) error { return nil }))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, s.Snapshot().RGBAAt(0, 0),
		"the previous source survives a failed load")
}
