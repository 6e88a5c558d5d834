package extract

import (
	"math"

	"github.com/folha-dev/folha/internal/logging"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/money"
	"github.com/folha-dev/folha/internal/textnorm"
)

// TotalsOptions places the net salary search box relative to the
// "Salário Líquido" label. The box spans
// [label baseline - FarOffset, label baseline - NearOffset] vertically.
type TotalsOptions struct {
	Window      int     // pages read, counting the section page
	AnchorSlack float64 // labels may sit at most this far past the funcionarios baseline
	MarginLeft  float64
	MarginRight float64
	NearOffset  float64
	FarOffset   float64
}

// DefaultTotalsOptions returns the box used for the Nasajon layout.
func DefaultTotalsOptions() TotalsOptions {
	return TotalsOptions{
		Window:      5,
		AnchorSlack: 5,
		MarginLeft:  20,
		MarginRight: 50,
		NearOffset:  2,
		FarOffset:   40,
	}
}

// LocateNetSalary finds the net salary total on one page: the monetary token
// inside the search box next to the "Salário Líquido" label that is
// horizontally closest to the label's center. Only labels with
// y <= funcionarios.Y + AnchorSlack are considered.
func LocateNetSalary(tokens []model.Token, opts TotalsOptions) (string, bool) {
	anchor, ok := findFolded(tokens, "funcionarios")
	if !ok {
		return "", false
	}

	var searchable []model.Token
	for _, t := range tokens {
		if t.Y <= anchor.Y+opts.AnchorSlack {
			searchable = append(searchable, t)
		}
	}
	salario, okSalario := findFolded(searchable, "salario")
	liquido, okLiquido := findFolded(searchable, "liquido")
	if !okSalario || !okLiquido {
		return "", false
	}

	x0 := salario.X - opts.MarginLeft
	x1 := liquido.X + liquido.Width + opts.MarginRight
	baseline := math.Min(salario.Y, liquido.Y)
	y0 := baseline - opts.FarOffset
	y1 := baseline - opts.NearOffset
	center := (salario.X + liquido.X + liquido.Width) / 2

	best, bestDist := "", math.Inf(1)
	for _, t := range tokens {
		if t.X < x0 || t.X > x1 || t.Y < y0 || t.Y > y1 || !money.IsMonetary(t.Text) {
			continue
		}
		if d := math.Abs(t.CenterX() - center); d < bestDist {
			best, bestDist = t.Text, d
		}
	}
	return best, best != ""
}

// totalsState scans pages until a net salary is found.
type totalsState struct {
	opts  TotalsOptions
	value string
	found bool
}

func newTotalsState(opts TotalsOptions) *totalsState {
	return &totalsState{opts: opts}
}

// FoldPage looks for the net salary on one page unless already found.
func (s *totalsState) FoldPage(page int, tokens []model.Token) {
	if s.found || len(tokens) == 0 {
		return
	}
	if v, ok := LocateNetSalary(tokens, s.opts); ok {
		s.value, s.found = v, true
		logging.Logger().Debug("net salary found", "page", page+1, "value", v)
	}
}

// Done reports whether scanning can stop.
func (s *totalsState) Done() bool { return s.found }

// Value returns the net salary text, if found.
func (s *totalsState) Value() (string, bool) { return s.value, s.found }

func findFolded(tokens []model.Token, needle string) (model.Token, bool) {
	for _, t := range tokens {
		if textnorm.ContainsFold(t.Text, needle) {
			return t, true
		}
	}
	return model.Token{}, false
}
