// Package summary totals classified payroll rows per category and checks
// that the totals agree with the rows highlighted for display.
package summary

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/folha-dev/folha/internal/classify"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/money"
)

// Summary holds the signed values and sums per category.
type Summary struct {
	values map[model.Category][]decimal.Decimal
	// Contributed lists, in order, the indexes of rows assigned to a category.
	Contributed []int
}

// Aggregate classifies each row and collects its signed values: income as
// +amount, deduction as -amount, each only when greater than zero.
// Malformed monetary text counts as zero.
func Aggregate(rows []model.Row) Summary {
	s := Summary{values: make(map[model.Category][]decimal.Decimal)}
	for i, row := range rows {
		cat := classify.Classify(row.Description)
		if cat == model.CategoryUncategorized {
			continue
		}
		if income := money.Amount(row.Income); income.IsPositive() {
			s.values[cat] = append(s.values[cat], income)
		}
		if deduction := money.Amount(row.Deduction); deduction.IsPositive() {
			s.values[cat] = append(s.values[cat], deduction.Neg())
		}
		s.Contributed = append(s.Contributed, i)
	}
	return s
}

// Values returns the signed values collected for cat.
func (s Summary) Values(cat model.Category) []decimal.Decimal {
	return s.values[cat]
}

// Sum returns the total of cat.
func (s Summary) Sum(cat model.Category) decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.values[cat] {
		total = total.Add(v)
	}
	return total
}

// HasThirteenth reports whether the payroll carries a 13th salary total.
func (s Summary) HasThirteenth() bool {
	return !s.Sum(model.CategoryThirteenthSalary).IsZero()
}

// MaxValues returns the length of the longest category value list.
func (s Summary) MaxValues() int {
	n := 0
	for _, cat := range model.SummaryCategories {
		n = max(n, len(s.values[cat]))
	}
	return n
}

// VerificationConflict reports rows that are highlighted but not summed, or
// summed but not highlighted. It flags a classification bug, not bad input.
type VerificationConflict struct {
	Flagged     []int
	Contributed []int
}

func (c VerificationConflict) Error() string {
	return fmt.Sprintf("verification conflict: %d highlighted rows %v, %d summed rows %v",
		len(c.Flagged), c.Flagged, len(c.Contributed), c.Contributed)
}

// HighlightFlag is the display rule: a row is flagged when it gets a color.
func HighlightFlag(row model.Row) bool {
	return classify.HighlightFor(row.Description).IsSet()
}

// Verify compares the rows flagged for display against the rows that
// contributed to s. It returns a VerificationConflict when the sets differ.
func Verify(rows []model.Row, s Summary, flagged func(model.Row) bool) error {
	var marked []int
	for i, row := range rows {
		if flagged(row) {
			marked = append(marked, i)
		}
	}
	if slices.Equal(marked, s.Contributed) {
		return nil
	}
	return VerificationConflict{Flagged: marked, Contributed: slices.Clone(s.Contributed)}
}

// ClipboardText renders the "copy all" block: net salary, food and transport
// sums, and the 13th sum when non-zero, one per line with comma decimals and
// no grouping.
func ClipboardText(res model.ExtractionResult, s Summary) string {
	net := "0,00"
	if res.Totals.NetSalary != nil {
		net = *res.Totals.NetSalary
		if d, err := money.Parse(net); err == nil {
			net = money.FormatPlain(d)
		}
	}
	lines := []string{
		net,
		money.FormatPlain(s.Sum(model.CategoryFoodOrBasket)),
		money.FormatPlain(s.Sum(model.CategoryTransport)),
	}
	if s.HasThirteenth() {
		lines = append(lines, money.FormatPlain(s.Sum(model.CategoryThirteenthSalary)))
	}
	return strings.Join(lines, "\n")
}
