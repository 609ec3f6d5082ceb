package bot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thumbgen/pkg/mixer"
	"thumbgen/pkg/session"
)

func TestParseSet(t *testing.T) {
	key, value, err := parseSet(" title  Hello World ")
	require.NoError(t, err)
	assert.Equal(t, "title", key)
	assert.Equal(t, "Hello World", value)

	key, value, err = parseSet("title-font Comic Sans MS")
	require.NoError(t, err)
	assert.Equal(t, "title-font", key)
	assert.Equal(t, "Comic Sans MS", value)

	for _, bad := range []string{"", "title", "   "} {
		_, _, err := parseSet(bad)
		assert.Error(t, err, bad)
	}
}

func TestChatsOneSessionPerChat(t *testing.T) {
	created := 0
	var ids []string
	c := newChats(func(id string, logger *zap.Logger) *session.Session {
		created++
		ids = append(ids, id)
		return session.New(mixer.New(), logger)
	}, zap.NewNop())

	a := c.get(1)
	b := c.get(2)

	assert.Same(t, a, c.get(1))
	assert.NotSame(t, a.s, b.s)
	assert.NotEqual(t, a.id, b.id)
	assert.Equal(t, 2, created)
	assert.Equal(t, []string{a.id.String(), b.id.String()}, ids)
}

func solidPNG(t *testing.T, c color.Color) []byte {
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

func newTestChat() *chat {
	return newChats(func(_ string, logger *zap.Logger) *session.Session {
		return session.New(mixer.New(), logger)
	}, zap.NewNop()).get(1)
}

func TestChatBack(t *testing.T) {
	red, blue := color.RGBA{R: 0xff, A: 0xff}, color.RGBA{B: 0xff, A: 0xff}
	c := newTestChat()

	assert.Error(t, c.upload([]byte("garbage")))
	assert.Empty(t, c.h.items, "rejected uploads are not recorded")

	require.NoError(t, c.upload(solidPNG(t, red)))
	require.NoError(t, c.upload(solidPNG(t, blue)))
	assert.Equal(t, blue, c.s.Snapshot().RGBAAt(5, 5))

	require.NoError(t, c.back())
	assert.Equal(t, red, c.s.Snapshot().RGBAAt(5, 5))
	assert.Len(t, c.h.items, 1)

	assert.ErrorIs(t, c.back(), errNoHistory)
	assert.Equal(t, red, c.s.Snapshot().RGBAAt(5, 5))
}

func TestChatBackFailureKeepsBackground(t *testing.T) {
	blue := color.RGBA{B: 0xff, A: 0xff}
	c := newTestChat()

	c.h.push([]byte("garbage"))
	require.NoError(t, c.upload(solidPNG(t, blue)))

	assert.Error(t, c.back())
	assert.Len(t, c.h.items, 2)
	assert.Equal(t, blue, c.s.Snapshot().RGBAAt(5, 5))
}
