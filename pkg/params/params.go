package params

import (
	"fmt"
)

const (
	Width  = 1280
	Height = 720
)

func Default() Params {
	return Params{
		Title:            "This is a title",
		Subtitle:         "This is a subtitle",
		TitleFontSize:    60,
		SubtitleFontSize: 40,
		TitleColor:       White,
		SubtitleColor:    White,
		OverlayColor:     Black,
		FrameColor:       White,
		TitleFont:        Impact,
		SubtitleFont:     Impact,
	}
}

// Params is the full description of one composition. A zero shift, opacity
// or frame value disables the matching adjustment.
type Params struct {
	Title    string
	Subtitle string

	TitleFontSize    int
	SubtitleFontSize int

	TitleColor    Color
	SubtitleColor Color
	OverlayColor  Color
	FrameColor    Color

	TitleFont    Font
	SubtitleFont Font

	TitleHorizontalShift    int
	TitleVerticalShift      int
	SubtitleHorizontalShift int
	SubtitleVerticalShift   int

	VignetteOpacity float64
	VignetteSize    float64
	OverlayOpacity  float64

	FrameSize    int
	FramePadding int
}

// Clamp limits the slider-backed fields to the range their widgets allow.
func (p *Params) Clamp() {
	p.VignetteOpacity = clamp(p.VignetteOpacity, 0, 100)
	p.VignetteSize = clamp(p.VignetteSize, 0, 100)
	p.OverlayOpacity = clamp(p.OverlayOpacity, 0, 100)
	p.FrameSize = int(clamp(float64(p.FrameSize), 0, 100))
	p.FramePadding = int(clamp(float64(p.FramePadding), 0, 100))
}

func (p *Params) Lines() []string {
	return []string{
		fmt.Sprintf("Title: %q (%s, %dpx, %s, shift %d/%d)",
			p.Title, p.TitleFont, p.TitleFontSize, p.TitleColor, p.TitleHorizontalShift, p.TitleVerticalShift),
		fmt.Sprintf("Subtitle: %q (%s, %dpx, %s, shift %d/%d)",
			p.Subtitle, p.SubtitleFont, p.SubtitleFontSize, p.SubtitleColor, p.SubtitleHorizontalShift, p.SubtitleVerticalShift),
		fmt.Sprintf("Vignette: opacity %g, size %g", p.VignetteOpacity, p.VignetteSize),
		fmt.Sprintf("Overlay: %s at %g", p.OverlayColor, p.OverlayOpacity),
		fmt.Sprintf("Frame: %s, size %d, padding %d", p.FrameColor, p.FrameSize, p.FramePadding),
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
