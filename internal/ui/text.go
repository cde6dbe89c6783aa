package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

var (
	barEmpty = colorful.Color{R: 0.80, G: 0.15, B: 0.15}
	barFull  = colorful.Color{R: 0.20, G: 0.75, B: 0.30}
	manaLow  = colorful.Color{R: 0.35, G: 0.25, B: 0.55}
	manaFull = colorful.Color{R: 0.25, G: 0.55, B: 0.95}
)

// drawText draws s starting at (x, y), one grapheme cluster per cell group,
// and stops before maxWidth columns are exceeded. It returns the columns used.
func drawText(c Canvas, x, y, maxWidth int, s string, style tcell.Style) int {
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > maxWidth {
			break
		}
		runes := g.Runes()
		c.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

// truncate shortens s to at most width display columns, ending in "…" when
// something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	out := make([]byte, 0, len(s))
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if used+g.Width() > width-1 {
			break
		}
		out = append(out, g.Str()...)
		used += g.Width()
	}
	return string(out) + "…"
}

// gaugeColor blends from low to high by ratio in HCL space.
func gaugeColor(low, high colorful.Color, ratio float64) tcell.Color {
	ratio = min(max(ratio, 0), 1)
	r, g, b := low.BlendHcl(high, ratio).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func healthColor(cur, maxValue int) tcell.Color {
	return gaugeColor(barEmpty, barFull, fraction(cur, maxValue))
}

func manaColor(cur, maxValue int) tcell.Color {
	return gaugeColor(manaLow, manaFull, fraction(cur, maxValue))
}

func fraction(cur, maxValue int) float64 {
	if maxValue <= 0 {
		return 0
	}
	return float64(cur) / float64(maxValue)
}

// drawBar draws a width-cell gauge filled in proportion to cur/maxValue.
func drawBar(c Canvas, x, y, width, cur, maxValue int, color tcell.Color) {
	filled := 0
	if maxValue > 0 {
		filled = width * min(max(cur, 0), maxValue) / maxValue
	}
	fill := tcell.StyleDefault.Foreground(color)
	empty := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for i := 0; i < width; i++ {
		if i < filled {
			c.SetContent(x+i, y, '█', nil, fill)
		} else {
			c.SetContent(x+i, y, '░', nil, empty)
		}
	}
}
