package pdftext

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/folha-dev/folha/internal/model"
)

const (
	// baselineSlack is how far two glyphs' baselines may differ and still
	// belong to the same run.
	baselineSlack = 0.5
	// kernGap is the largest gap, as a fraction of the font size, that joins
	// two glyphs without a space.
	kernGap = 0.2
	// runGap is the largest gap, as a fraction of the font size, that keeps
	// two glyphs in the same run. Wider gaps separate table cells.
	runGap = 1.0
	// overlap is how far, as a fraction of the font size, a glyph may start
	// before the end of the previous one (kerning).
	overlap = 0.5
	// ZeroWidthAdvance is the advance, as a fraction of the font size,
	// assumed for glyphs of fonts without a Widths array. Such fonts report
	// no advance at all, so every glyph of a string lands on the same x.
	ZeroWidthAdvance = 0.5
)

// glyph is a single rune with its position.
type glyph struct {
	r    rune
	x, y float64
	w    float64
	size float64
}

// MergeGlyphs joins the per-glyph text of a page into text runs, the way a
// PDF viewer reports text items: glyphs on one baseline stay together, with
// single spaces between words, until a baseline change, a backwards move or
// a gap wider than a space ends the run.
func MergeGlyphs(texts []pdf.Text) []model.Token {
	var (
		out []model.Token
		run []glyph
	)
	flush := func() {
		for len(run) > 0 && run[len(run)-1].r == ' ' {
			run = run[:len(run)-1]
		}
		if len(run) > 0 {
			out = append(out, tokenOf(run))
		}
		run = run[:0]
	}

	for _, g := range layoutGlyphs(texts) {
		space := unicode.IsSpace(g.r)
		if len(run) > 0 {
			prev := run[len(run)-1]
			gap, ok := joins(prev, g)
			switch {
			case !ok:
				flush()
			case !space && prev.r != ' ' && gap > kernGap*max(prev.size, g.size):
				run = append(run, glyph{r: ' ', x: prev.x + prev.w, y: prev.y, w: gap, size: prev.size})
			}
		}
		if space {
			if len(run) == 0 || run[len(run)-1].r == ' ' {
				continue
			}
			g.r = ' '
		}
		run = append(run, g)
	}
	flush()
	return out
}

// layoutGlyphs splits text into single-rune glyphs spread evenly over the
// text width. Zero-width text gets an estimated advance, continuing from the
// previous glyph when the reader left both at the same origin.
func layoutGlyphs(texts []pdf.Text) []glyph {
	var (
		out  []glyph
		last pdf.Text
		end  float64
		seen bool
	)
	for _, t := range texts {
		n := utf8.RuneCountInString(t.S)
		if n == 0 {
			continue
		}
		x, w := t.X, t.W
		if w == 0 {
			w = float64(n) * ZeroWidthAdvance * t.FontSize
			if seen && last.W == 0 && last.X == t.X && last.Y == t.Y {
				x = end
			}
		}
		last, end, seen = t, x+w, true

		step := w / float64(n)
		i := 0
		for _, r := range t.S {
			out = append(out, glyph{r: r, x: x + float64(i)*step, y: t.Y, w: step, size: t.FontSize})
			i++
		}
	}
	return out
}

// joins reports whether next continues the run ending in prev, and the gap
// between them.
func joins(prev, next glyph) (float64, bool) {
	if math.Abs(next.y-prev.y) > baselineSlack {
		return 0, false
	}
	size := max(prev.size, next.size)
	gap := next.x - (prev.x + prev.w)
	return gap, gap >= -overlap*size && gap <= runGap*size
}

func tokenOf(run []glyph) model.Token {
	var sb strings.Builder
	height := 0.0
	for _, g := range run {
		sb.WriteRune(g.r)
		height = max(height, g.size)
	}
	first, last := run[0], run[len(run)-1]
	return model.Token{
		Text:   sb.String(),
		X:      first.x,
		Y:      first.y,
		Width:  last.x + last.w - first.x,
		Height: height,
	}
}
