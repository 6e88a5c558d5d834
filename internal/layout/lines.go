// Package layout groups positioned tokens into visual lines.
package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/folha-dev/folha/internal/model"
)

// DefaultLineTolerance is the vertical distance, in layout units, within
// which two tokens are considered to share a baseline.
const DefaultLineTolerance = 5.0

// AssembleLines clusters tokens into lines ordered top to bottom, each line
// ordered left to right. Every token lands in exactly one line. A token joins
// the open line when its baseline is within tolerance of the last token
// placed there, so slightly drifting baselines chain together.
func AssembleLines(tokens []model.Token, tolerance float64) []model.Line {
	if len(tokens) == 0 {
		return nil
	}

	sorted := slices.Clone(tokens)
	slices.SortStableFunc(sorted, func(a, b model.Token) int {
		if a.Y == b.Y {
			return cmp.Compare(a.X, b.X)
		}
		return cmp.Compare(b.Y, a.Y)
	})

	var lines []model.Line
	current := []model.Token{sorted[0]}
	for _, tok := range sorted[1:] {
		last := current[len(current)-1]
		if math.Abs(tok.Y-last.Y) <= tolerance {
			current = append(current, tok)
			continue
		}
		lines = append(lines, closeLine(current))
		current = []model.Token{tok}
	}
	return append(lines, closeLine(current))
}

// closeLine re-sorts by x; sub-unit y jitter inside the band can leave the
// primary order off.
func closeLine(tokens []model.Token) model.Line {
	slices.SortStableFunc(tokens, func(a, b model.Token) int {
		return cmp.Compare(a.X, b.X)
	})
	return model.Line{Tokens: tokens}
}
