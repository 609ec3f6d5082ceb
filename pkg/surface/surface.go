package surface

import (
	"bytes"
	"image"
	"image/png"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"thumbgen/pkg/vfs"
)

// Surface shows rendered canvases. img is only valid for the duration of
// the call.
type Surface interface {
	Paint(img image.Image) error
}

func Log(logger *zap.Logger) Surface {
	return &logged{logger}
}

type logged struct {
	l *zap.Logger
}

func (s *logged) Paint(img image.Image) error {
	s.l.With(
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Info("paint")
	return nil
}

// File writes every paint as a PNG named name in fs.
func File(fs afero.Fs, name string) Surface {
	return &file{fs: fs, name: name}
}

type file struct {
	fs   afero.Fs
	name string
}

func (s *file) Paint(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return vfs.WriteFile(s.fs, s.name, buf.Bytes())
}
