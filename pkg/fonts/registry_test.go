package fonts

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"thumbgen/pkg/params"
)

func TestFaceCached(t *testing.T) {
	r := NewRegistry(nil, nil)

	a, err := r.Face("Impact", 60)
	require.NoError(t, err)
	b, err := r.Face("Impact", 60)
	require.NoError(t, err)
	c, err := r.Face("Impact", 40)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestFaceEverySelectableFont(t *testing.T) {
	r := NewRegistry(nil, nil)
	for _, f := range params.Fonts {
		face, err := r.Face(string(f), 32)
		require.NoError(t, err, f)
		assert.Greater(t, font.MeasureString(face, "Hello").Ceil(), 0, f)
	}
}

func TestFaceUnknownFallsBack(t *testing.T) {
	r := NewRegistry(nil, nil)

	face, err := r.Face("Wingdings", 32)
	require.NoError(t, err)
	def, err := r.Face("Arial", 32)
	require.NoError(t, err)

	assert.Equal(t, font.MeasureString(def, "fallback"), font.MeasureString(face, "fallback"))
}

func TestFaceFromDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "comicsansms.ttf", gomono.TTF, 0644))
	require.NoError(t, afero.WriteFile(fs, "Impact.ttf", []byte("not a font"), 0644))

	r := NewRegistry(fs, nil)

	comic, err := r.Face("Comic Sans MS", 20)
	require.NoError(t, err)
	// monospaced: every glyph has the same advance
	assert.Equal(t, font.MeasureString(comic, "iiii"), font.MeasureString(comic, "WWWW"))

	impact, err := r.Face("Impact", 20)
	require.NoError(t, err, "invalid files fall through to the bundled substitute")
	assert.NotEqual(t, font.MeasureString(impact, "iiii"), font.MeasureString(impact, "WWWW"))
}
