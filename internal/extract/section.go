package extract

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/folha-dev/folha/internal/layout"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/textnorm"
)

var (
	headerAnchorRe = regexp.MustCompile(`resumo geral da folha|rubrica`)
	totalsAnchorRe = regexp.MustCompile(`funcionarios|total\s+geral`)
)

// DefaultFurniturePatterns matches page furniture of the Nasajon payroll
// report: page numbers, tax IDs, company and vendor names. Patterns are
// applied to folded (lowercase, unaccented) token text.
var DefaultFurniturePatterns = []string{
	"pagina",
	"cnpj",
	"empresa",
	"analitica",
	"nasajon",
	"condominio",
	"ebac",
}

// FurnitureFilter reports whether a token's text is page furniture that must
// be dropped from the table region.
type FurnitureFilter func(text string) bool

// NewFurnitureFilter compiles patterns into a FurnitureFilter. Matching is
// done on folded text, so patterns should be lowercase and unaccented.
func NewFurnitureFilter(patterns []string) (FurnitureFilter, error) {
	if len(patterns) == 0 {
		return func(string) bool { return false }, nil
	}
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("compiling furniture pattern %q: %w", p, err)
		}
	}
	re, err := regexp.Compile("(?:" + strings.Join(patterns, ")|(?:") + ")")
	if err != nil {
		return nil, fmt.Errorf("compiling furniture patterns: %w", err)
	}
	return func(text string) bool {
		return re.MatchString(textnorm.Fold(text))
	}, nil
}

// DefaultFurnitureFilter returns the filter for DefaultFurniturePatterns.
func DefaultFurnitureFilter() FurnitureFilter {
	f, err := NewFurnitureFilter(DefaultFurniturePatterns)
	if err != nil {
		panic(err)
	}
	return f
}

// FindSectionStart returns the index of the first page whose plain text
// contains marker. Whitespace runs are collapsed before comparing.
func FindSectionStart(ctx context.Context, doc Document, marker string) (int, error) {
	want := collapseSpace(marker)
	for i := 0; i < doc.NumPages(); i++ {
		if err := ctx.Err(); err != nil {
			return -1, fmt.Errorf("section search canceled at page %d: %w", i+1, err)
		}
		page, err := doc.Page(ctx, i)
		if err != nil {
			return -1, fmt.Errorf("reading page %d: %w", i+1, err)
		}
		if strings.Contains(collapseSpace(page.PlainText()), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrSectionNotFound, marker)
}

// BoundTable keeps the tokens strictly between the table title (or rubrica
// header) line and the totals anchor line, minus page furniture. A missing
// title leaves the top open; a missing totals anchor leaves the bottom open.
// An anchor matches a single token or the joined text of a line assembled
// with tolerance, so an anchor split over several tokens still bounds the
// table.
func BoundTable(tokens []model.Token, tolerance float64, furniture FurnitureFilter) []model.Token {
	lines := layout.AssembleLines(tokens, tolerance)
	startY, endY := math.Inf(1), math.Inf(-1)
	if l, ok := findAnchor(lines, headerAnchorRe); ok {
		startY, _ = yRange(l)
	}
	if l, ok := findAnchor(lines, totalsAnchorRe); ok {
		_, endY = yRange(l)
	}

	var out []model.Token
	for _, t := range tokens {
		if t.Y >= startY || t.Y <= endY {
			continue
		}
		if furniture != nil && furniture(t.Text) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// findAnchor returns the topmost line with a token, or joined text, whose
// folded form matches re.
func findAnchor(lines []model.Line, re *regexp.Regexp) (model.Line, bool) {
	for _, l := range lines {
		if re.MatchString(textnorm.Fold(l.Text())) {
			return l, true
		}
	}
	return model.Line{}, false
}

func yRange(l model.Line) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, t := range l.Tokens {
		lo, hi = min(lo, t.Y), max(hi, t.Y)
	}
	return lo, hi
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
