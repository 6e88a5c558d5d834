package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/folha-dev/folha/internal/layout"
	"github.com/folha-dev/folha/internal/logging"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/money"
)

var (
	columnHeaderLineRe = regexp.MustCompile(`(?i)Rubrica\s+Descrição\s+Rendimentos\s+Descontos`)
	rowCodeRe          = regexp.MustCompile(`^([A-Z0-9]{2,10})\s*(.*)`)
)

// tableState accumulates rows across the pages of the table window.
// The open row stays open across page breaks so continuation lines at the
// top of a page still extend it; it is emitted once the next coded line
// starts or Finish is called.
type tableState struct {
	tolerance float64
	furniture FurnitureFilter

	rows  []model.Row
	seen  map[string]bool
	open  *model.Row
	diags []model.Diagnostic
}

func newTableState(tolerance float64, furniture FurnitureFilter) *tableState {
	return &tableState{
		tolerance: tolerance,
		furniture: furniture,
		seen:      make(map[string]bool),
	}
}

// FoldPage adds the rows found on one page.
func (s *tableState) FoldPage(page int, tokens []model.Token) {
	cols, err := FindColumns(layout.AssembleLines(tokens, s.tolerance))
	if err != nil {
		logging.Logger().Debug("table page skipped", "page", page+1, "reason", err)
		s.diags = append(s.diags, model.Diagnostic{
			Kind:   model.DiagHeaderNotFound,
			Page:   page,
			Detail: "no Rendimentos/Descontos header line",
		})
		return
	}

	before := len(s.rows)
	for _, line := range layout.AssembleLines(BoundTable(tokens, s.tolerance, s.furniture), s.tolerance) {
		s.foldLine(page, line, cols)
	}
	logging.Logger().Debug("table page", "page", page+1, "midpoint", cols.Midpoint, "rows", len(s.rows)-before)
}

func (s *tableState) foldLine(page int, line model.Line, cols Columns) {
	text := strings.TrimSpace(line.Text())
	if text == "" || columnHeaderLineRe.MatchString(text) {
		return
	}

	m := rowCodeRe.FindStringSubmatch(text)
	if m == nil {
		if s.open != nil {
			s.open.Description = joinWords(s.open.Description, money.StripAll(text))
		}
		return
	}

	s.close()
	code := m[1]
	row := model.Row{Code: code}

	var values []model.Token
	var words []string
	for i, t := range line.Tokens {
		switch {
		case money.IsMonetary(t.Text):
			values = append(values, t)
		case i == 0 && t.Text == code:
			// the rubrica itself
		case i == 0 && strings.HasPrefix(t.Text, code+" "):
			words = append(words, strings.TrimPrefix(t.Text, code+" "))
		default:
			words = append(words, t.Text)
		}
	}
	row.Description = joinWords(words...)

	if len(values) > 0 {
		if cols.Classify(values[0]) == ColumnIncome {
			row.Income = values[0].Text
		} else {
			row.Deduction = values[0].Text
		}
	}
	if len(values) > 1 {
		s.diags = append(s.diags, model.Diagnostic{
			Kind:   model.DiagMultipleValues,
			Page:   page,
			Detail: fmt.Sprintf("rubrica %s has %d values; kept %s", code, len(values), values[0].Text),
		})
	}
	s.open = &row
}

// close emits the open row unless an identical row was already emitted.
func (s *tableState) close() {
	if s.open == nil {
		return
	}
	key := s.open.Key()
	if !s.seen[key] {
		s.seen[key] = true
		s.rows = append(s.rows, *s.open)
	}
	s.open = nil
}

// Finish emits the open row and returns the table.
func (s *tableState) Finish() ([]model.Row, []model.Diagnostic) {
	s.close()
	return s.rows, s.diags
}

// joinWords joins parts with single spaces, dropping blank runs.
func joinWords(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
