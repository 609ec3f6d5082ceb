// Package fonts resolves the selectable font names to renderable faces.
//
// A font directory may provide the real typefaces as <Name>.ttf or
// <Name>.otf files. Names without a file use a bundled Go font of a similar
// weight, and names outside the selectable list use Go Regular, so rendered
// text depends on the directory contents.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"thumbgen/pkg/params"
)

var substitutes = map[params.Font][]byte{
	params.Impact:        gobold.TTF,
	params.Arial:         goregular.TTF,
	params.Helvetica:     goregular.TTF,
	params.TimesNewRoman: gomedium.TTF,
	params.Courier:       gomono.TTF,
	params.Verdana:       goregular.TTF,
	params.Georgia:       gomedium.TTF,
	params.Palatino:      gomedium.TTF,
	params.Garamond:      gomedium.TTF,
	params.Bookman:       gomedium.TTF,
	params.ComicSansMS:   goitalic.TTF,
	params.TrebuchetMS:   goregular.TTF,
	params.ArialBlack:    gobold.TTF,
	params.ArialNarrow:   goregular.TTF,
}

// NewRegistry returns a registry looking up font files in fs first. fs may
// be nil to use the bundled fonts only.
func NewRegistry(fs afero.Fs, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		fs:     fs,
		log:    logger.With(zap.String("via", "fonts")),
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

type Registry struct {
	sync.Mutex
	fs     afero.Fs
	log    *zap.Logger
	parsed map[string]*opentype.Font
	faces  map[faceKey]font.Face
}

type faceKey struct {
	name string
	size float64
}

// Face returns the face for name at size pixels. Faces are cached and shared,
// so they must only be used while no other goroutine draws with the registry.
func (r *Registry) Face(name string, size float64) (font.Face, error) {
	r.Lock()
	defer r.Unlock()

	key := faceKey{name: name, size: size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}

	f, err := r.load(name)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %q failed: %w", name, err)
	}

	r.faces[key] = face
	return face, nil
}

func (r *Registry) load(name string) (*opentype.Font, error) {
	if f, ok := r.parsed[name]; ok {
		return f, nil
	}

	data := r.lookup(name)
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q failed: %w", name, err)
	}

	r.parsed[name] = f
	return f, nil
}

func (r *Registry) lookup(name string) []byte {
	log := r.log.With(zap.String("font", name))

	if r.fs != nil {
		for _, file := range candidates(name) {
			bs, err := afero.ReadFile(r.fs, file)
			if err != nil {
				if !os.IsNotExist(err) {
					log.With(zap.String("file", file), zap.Error(err)).Info("read font failed")
				}
				continue
			}
			if _, err := opentype.Parse(bs); err != nil {
				log.With(zap.String("file", file), zap.Error(err)).Info("invalid font file")
				continue
			}
			log.With(zap.String("file", file)).Debug("loaded")
			return bs
		}
	}

	if bs, ok := substitutes[params.Font(name)]; ok {
		return bs
	}

	log.Debug("unavailable, using default")
	return goregular.TTF
}

func candidates(name string) []string {
	compact := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return []string{
		name + ".ttf",
		name + ".otf",
		compact + ".ttf",
		compact + ".otf",
	}
}
