package model

import "strings"

// Row is one line item of the payroll summary table.
// Income and Deduction keep the monetary text as printed; "" means no value.
type Row struct {
	Code        string // rubrica
	Description string
	Income      string // rendimentos
	Deduction   string // descontos
}

// Key identifies a row for deduplication.
func (r Row) Key() string {
	return strings.Join([]string{r.Code, r.Description, r.Income, r.Deduction}, "|")
}

// Totals holds the figures found outside the table.
type Totals struct {
	NetSalary *string // nil when not detected
}

// ExtractionResult is everything one extraction run produces.
type ExtractionResult struct {
	Rows        []Row
	Totals      Totals
	Diagnostics []Diagnostic
}

// NetSalaryText returns the detected net salary or fallback.
func (r ExtractionResult) NetSalaryText(fallback string) string {
	if r.Totals.NetSalary == nil {
		return fallback
	}
	return *r.Totals.NetSalary
}
