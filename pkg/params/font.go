package params

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	Impact        Font = "Impact"
	Arial         Font = "Arial"
	Helvetica     Font = "Helvetica"
	TimesNewRoman Font = "Times New Roman"
	Courier       Font = "Courier"
	Verdana       Font = "Verdana"
	Georgia       Font = "Georgia"
	Palatino      Font = "Palatino"
	Garamond      Font = "Garamond"
	Bookman       Font = "Bookman"
	ComicSansMS   Font = "Comic Sans MS"
	TrebuchetMS   Font = "Trebuchet MS"
	ArialBlack    Font = "Arial Black"
	ArialNarrow   Font = "Arial Narrow"
)

// Fonts is the selectable font list, in display order.
var Fonts = []Font{
	Impact,
	Arial,
	Helvetica,
	TimesNewRoman,
	Courier,
	Verdana,
	Georgia,
	Palatino,
	Garamond,
	Bookman,
	ComicSansMS,
	TrebuchetMS,
	ArialBlack,
	ArialNarrow,
}

// ParseFont matches s against Fonts ignoring case.
func ParseFont(s string) (Font, error) {
	name := strings.TrimSpace(s)
	f, ok := lo.Find(Fonts, func(f Font) bool {
		return strings.EqualFold(string(f), name)
	})
	if !ok {
		return "", fmt.Errorf("unknown font %q", s)
	}
	return f, nil
}

type Font string

func (f Font) String() string {
	return string(f)
}

func (f *Font) Set(s string) error {
	parsed, err := ParseFont(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Font) Type() string {
	return "font"
}
