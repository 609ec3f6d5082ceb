package surface

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	sf := File(fs, "previews/preview.png")

	require.NoError(t, sf.Paint(image.NewRGBA(image.Rect(0, 0, 32, 18))))

	bs, err := afero.ReadFile(fs, "previews/preview.png")
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 18, cfg.Height)
}

func TestLog(t *testing.T) {
	assert.NoError(t, Log(zap.NewNop()).Paint(image.NewRGBA(image.Rect(0, 0, 4, 4))))
}
