// Package classify assigns payroll rows to benefit/tax categories.
//
// The same rules drive row highlighting and category sums, so a row is
// colored if and only if it is summed.
package classify

import (
	"strings"

	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/textnorm"
)

// Classify returns the category of a row description.
func Classify(description string) model.Category {
	norm := textnorm.Fold(description)
	switch {
	case isThirteenth(norm):
		return model.CategoryThirteenthSalary
	case isFood(norm):
		return model.CategoryFoodOrBasket
	case isTransport(norm, description):
		return model.CategoryTransport
	default:
		return model.CategoryUncategorized
	}
}

// isThirteenth matches 13th salary payments and advances. Taxes, alimony and
// the repayment of an earlier advance ("desconto de adiantamento de") are
// not part of the 13th total.
func isThirteenth(norm string) bool {
	if !strings.Contains(norm, "adiantamento de 13o") && !strings.Contains(norm, "13o salario") {
		return false
	}
	if strings.Contains(norm, "inss") ||
		strings.Contains(strings.ReplaceAll(norm, ".", ""), "irrf") ||
		strings.Contains(norm, "pensao alimenticia") {
		return false
	}
	return !strings.Contains(norm, "desconto de adiantamento de")
}

func isFood(norm string) bool {
	return strings.Contains(norm, "alimentacao") || strings.Contains(norm, "cesta")
}

// isTransport skips percentage rows such as "Vale Transporte 6%"; the %
// check runs on the original text.
func isTransport(norm, original string) bool {
	return strings.Contains(norm, "transporte") && !strings.Contains(original, "%")
}

// Highlight is the display color of a row, as RGB hex without "#".
// The zero value means no highlight.
type Highlight struct {
	Category model.Category
	Color    string
}

// Row colors shared by the terminal table and the spreadsheet.
const (
	ColorThirteenth = "0070C0" // blue
	ColorBasket     = "7030A0" // purple
	ColorFood       = "C00000" // red
	ColorTransport  = "00B050" // green
)

// HighlightFor returns the highlight for a description. Food rows naming a
// "cesta" get their own shade.
func HighlightFor(description string) Highlight {
	cat := Classify(description)
	switch cat {
	case model.CategoryThirteenthSalary:
		return Highlight{Category: cat, Color: ColorThirteenth}
	case model.CategoryFoodOrBasket:
		if strings.Contains(textnorm.Fold(description), "cesta") {
			return Highlight{Category: cat, Color: ColorBasket}
		}
		return Highlight{Category: cat, Color: ColorFood}
	case model.CategoryTransport:
		return Highlight{Category: cat, Color: ColorTransport}
	default:
		return Highlight{}
	}
}

// IsSet reports whether the highlight colors the row.
func (h Highlight) IsSet() bool { return h.Color != "" }
