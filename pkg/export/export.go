package export

import (
	"fmt"

	"github.com/inhies/go-bytesize"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"thumbgen/pkg/session"
	"thumbgen/pkg/vfs"
)

const FileName = "youtube-thumbnail.png"

func New(fs afero.Fs, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{fs: fs, log: logger}
}

// Exporter saves session renders as FileName.
type Exporter struct {
	fs  afero.Fs
	log *zap.Logger
}

// Save writes the current render of s. Nothing is written when s has not
// rendered yet, and session.ErrNoImage is returned.
func (e *Exporter) Save(s *session.Session) (string, error) {
	bs, err := s.Export()
	if err != nil {
		return "", err
	}

	if err := vfs.WriteFile(e.fs, FileName, bs); err != nil {
		return "", fmt.Errorf("write %s failed: %w", FileName, err)
	}

	e.log.With(
		zap.String("file", FileName),
		zap.String("size", Size(bs)),
	).Info("exported")
	return FileName, nil
}

// Size formats the length of bs for humans.
func Size(bs []byte) string {
	return bytesize.New(float64(len(bs))).String()
}
