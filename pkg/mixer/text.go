package mixer

import (
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"thumbgen/pkg/fonts"
	"thumbgen/pkg/params"
)

// SubtitleOffset is the distance from the canvas middle to the subtitle anchor.
const SubtitleOffset = 80

type label struct {
	text  string
	font  params.Font
	size  int
	color params.Color
	at    image.Point
}

// Title draws the title centered on the canvas middle plus its shifts.
func Title(r *fonts.Registry, logger *zap.Logger) Layer {
	return newText("title", r, logger, func(b image.Rectangle, p *params.Params) label {
		return label{
			text:  p.Title,
			font:  p.TitleFont,
			size:  p.TitleFontSize,
			color: p.TitleColor,
			at:    middle(b).Add(image.Pt(p.TitleHorizontalShift, p.TitleVerticalShift)),
		}
	})
}

// Subtitle draws the subtitle SubtitleOffset pixels below the canvas middle,
// plus its shifts.
func Subtitle(r *fonts.Registry, logger *zap.Logger) Layer {
	return newText("subtitle", r, logger, func(b image.Rectangle, p *params.Params) label {
		return label{
			text:  p.Subtitle,
			font:  p.SubtitleFont,
			size:  p.SubtitleFontSize,
			color: p.SubtitleColor,
			at:    middle(b).Add(image.Pt(p.SubtitleHorizontalShift, SubtitleOffset+p.SubtitleVerticalShift)),
		}
	})
}

func newText(name string, r *fonts.Registry, logger *zap.Logger, pick func(b image.Rectangle, p *params.Params) label) Layer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &text{name: name, fonts: r, log: logger.With(zap.String("layer", name)), pick: pick}
}

type text struct {
	name  string
	fonts *fonts.Registry
	log   *zap.Logger
	pick  func(b image.Rectangle, p *params.Params) label
}

func (l *text) Name() string {
	return l.name
}

func (l *text) Draw(dst *image.RGBA, _ image.Image, p *params.Params) error {
	lb := l.pick(dst.Bounds(), p)
	if lb.text == "" {
		return nil
	}
	if lb.size <= 0 {
		l.log.With(zap.Int("size", lb.size)).Debug("non-positive font size, skipped")
		return nil
	}

	face, err := l.fonts.Face(string(lb.font), float64(lb.size))
	if err != nil {
		return fmt.Errorf("load font failed: %w", err)
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(lb.color.NRGBA(1)),
		Face: face,
	}
	d.Dot = centered(d, lb)
	d.DrawString(lb.text)
	return nil
}

// centered returns the baseline origin that puts the middle of the text's
// advance and the middle of its em box on lb.at.
func centered(d *font.Drawer, lb label) fixed.Point26_6 {
	width := d.MeasureString(lb.text)

	m := d.Face.Metrics()
	asc, desc := float64(m.Ascent), float64(m.Descent)
	var drop fixed.Int26_6
	if asc+desc > 0 {
		// em box ascent scaled to the font size, minus half the em
		drop = fixed.Int26_6(float64(lb.size*64) * (asc - desc) / (2 * (asc + desc)))
	}

	return fixed.Point26_6{
		X: fixed.I(lb.at.X) - width/2,
		Y: fixed.I(lb.at.Y) + drop,
	}
}

func middle(b image.Rectangle) image.Point {
	return image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
}
