package model

// Category classifies a payroll row for highlighting and aggregation.
type Category string

const (
	CategoryFoodOrBasket     Category = "food-or-basket"
	CategoryTransport        Category = "transport"
	CategoryThirteenthSalary Category = "thirteenth-salary"
	CategoryUncategorized    Category = "uncategorized"
)

// SummaryCategories lists the aggregated categories in report order.
var SummaryCategories = []Category{
	CategoryFoodOrBasket,
	CategoryTransport,
	CategoryThirteenthSalary,
}

// Label returns the report column title.
func (c Category) Label() string {
	switch c {
	case CategoryFoodOrBasket:
		return "Alimentação/Cesta"
	case CategoryTransport:
		return "Transporte"
	case CategoryThirteenthSalary:
		return "13º Salário"
	default:
		return "Sem categoria"
	}
}
