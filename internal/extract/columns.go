package extract

import (
	"regexp"

	"github.com/folha-dev/folha/internal/model"
)

var (
	incomeHeaderRe    = regexp.MustCompile(`(?i)rendimentos`)
	deductionHeaderRe = regexp.MustCompile(`(?i)descontos`)
)

// Column is the monetary column a value belongs to.
type Column int

const (
	ColumnIncome Column = iota
	ColumnDeduction
)

func (c Column) String() string {
	if c == ColumnIncome {
		return "rendimentos"
	}
	return "descontos"
}

// Columns splits the two monetary columns at the gap between their headers.
type Columns struct {
	Midpoint float64
}

// FindColumns locates the Rendimentos/Descontos header line and returns the
// horizontal split between the two columns.
func FindColumns(lines []model.Line) (Columns, error) {
	for _, line := range lines {
		text := line.Text()
		if !incomeHeaderRe.MatchString(text) || !deductionHeaderRe.MatchString(text) {
			continue
		}
		income, okIncome := firstMatch(line.Tokens, incomeHeaderRe)
		deduction, okDeduction := firstMatch(line.Tokens, deductionHeaderRe)
		if !okIncome || !okDeduction {
			return Columns{}, ErrHeaderNotFound
		}
		return Columns{Midpoint: (income.X + income.Width + deduction.X) / 2}, nil
	}
	return Columns{}, ErrHeaderNotFound
}

// Classify assigns a monetary token to a column. The midpoint itself belongs
// to the deduction side.
func (c Columns) Classify(t model.Token) Column {
	if t.X < c.Midpoint {
		return ColumnIncome
	}
	return ColumnDeduction
}

func firstMatch(tokens []model.Token, re *regexp.Regexp) (model.Token, bool) {
	for _, t := range tokens {
		if re.MatchString(t.Text) {
			return t, true
		}
	}
	return model.Token{}, false
}
