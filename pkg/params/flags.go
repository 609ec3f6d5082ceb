package params

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// Bind registers one flag per field of p, using p's current values as defaults.
func Bind(fs *flag.FlagSet, p *Params) {
	fs.StringVar(&p.Title, "title", p.Title, "title text")
	fs.StringVar(&p.Subtitle, "subtitle", p.Subtitle, "subtitle text")

	fs.IntVar(&p.TitleFontSize, "title-font-size", p.TitleFontSize, "title font size in pixels")
	fs.IntVar(&p.SubtitleFontSize, "subtitle-font-size", p.SubtitleFontSize, "subtitle font size in pixels")

	fs.Var(&p.TitleColor, "title-color", "title color (#rrggbb)")
	fs.Var(&p.SubtitleColor, "subtitle-color", "subtitle color (#rrggbb)")
	fs.Var(&p.OverlayColor, "overlay-color", "overlay color (#rrggbb)")
	fs.Var(&p.FrameColor, "frame-color", "frame color (#rrggbb)")

	fs.Var(&p.TitleFont, "title-font", "title font name")
	fs.Var(&p.SubtitleFont, "subtitle-font", "subtitle font name")

	fs.IntVar(&p.TitleHorizontalShift, "title-horizontal-shift", p.TitleHorizontalShift, "title horizontal shift in pixels")
	fs.IntVar(&p.TitleVerticalShift, "title-vertical-shift", p.TitleVerticalShift, "title vertical shift in pixels")
	fs.IntVar(&p.SubtitleHorizontalShift, "subtitle-horizontal-shift", p.SubtitleHorizontalShift, "subtitle horizontal shift in pixels")
	fs.IntVar(&p.SubtitleVerticalShift, "subtitle-vertical-shift", p.SubtitleVerticalShift, "subtitle vertical shift in pixels")

	fs.Float64Var(&p.VignetteOpacity, "vignette-opacity", p.VignetteOpacity, "vignette opacity (0-100)")
	fs.Float64Var(&p.VignetteSize, "vignette-size", p.VignetteSize, "vignette size (0-100)")
	fs.Float64Var(&p.OverlayOpacity, "overlay-opacity", p.OverlayOpacity, "overlay opacity (0-100)")

	fs.IntVar(&p.FrameSize, "frame-size", p.FrameSize, "frame stroke width in pixels (0-100)")
	fs.IntVar(&p.FramePadding, "frame-padding", p.FramePadding, "frame inset in pixels (0-100)")
}

// Keys lists the field names accepted by Set.
func Keys() []string {
	var keys []string
	newFlagSet(&Params{}).VisitAll(func(f *flag.Flag) {
		keys = append(keys, f.Name)
	})
	return keys
}

// Set applies one textual edit to the field named key, then clamps p the
// way the editing widgets do. p is left untouched on error.
func Set(p *Params, key, value string) error {
	edited := *p
	fs := newFlagSet(&edited)
	if fs.Lookup(key) == nil {
		return fmt.Errorf("unknown parameter %q", key)
	}

	if err := fs.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	edited.Clamp()
	*p = edited
	return nil
}

func newFlagSet(p *Params) *flag.FlagSet {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	fs.SortFlags = false
	Bind(fs, p)
	return fs
}
