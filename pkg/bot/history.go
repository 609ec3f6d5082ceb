package bot

import (
	"sync"

	"github.com/pkg/errors"
)

var errNoHistory = errors.New("no earlier background")

func newHistory(max int) *history {
	return &history{max: max}
}

// history keeps the last uploaded backgrounds of a chat, oldest first. The
// last entry is the background on display.
type history struct {
	sync.Mutex
	max   int
	items [][]byte
}

func (h *history) push(bs []byte) {
	h.Lock()
	defer h.Unlock()

	h.items = append(h.items, bs)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

// back hands the background before the current one to load, and drops the
// current one only when load succeeds.
func (h *history) back(load func(bs []byte) error) error {
	h.Lock()
	defer h.Unlock()

	n := len(h.items)
	if n < 2 {
		return errNoHistory
	}
	if err := load(h.items[n-2]); err != nil {
		return err
	}
	h.items = h.items[:n-1]
	return nil
}
