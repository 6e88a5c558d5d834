// Package extract rebuilds the payroll summary table ("Resumo Geral da Folha
// de Pagamento por Rubrica") and its net salary total from the positioned
// text of a document.
//
// Pages are processed one at a time, in order. The table pass and the totals
// pass are independent reducers over the same page window, each starting at
// the page that carries the section marker.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/folha-dev/folha/internal/layout"
	"github.com/folha-dev/folha/internal/logging"
	"github.com/folha-dev/folha/internal/model"
)

// DefaultSectionMarker is the title of the payroll summary section.
const DefaultSectionMarker = "Resumo Geral da Folha de Pagamento por Rubrica"

var (
	// ErrSectionNotFound means no page contains the section marker. Fatal.
	ErrSectionNotFound = errors.New("section not found")
	// ErrHeaderNotFound means a page has no Rendimentos/Descontos header line.
	// The page contributes no rows; later pages are still read.
	ErrHeaderNotFound = errors.New("column header not found")
)

// Document is a paged source of positioned text.
type Document interface {
	NumPages() int
	Page(ctx context.Context, index int) (Page, error)
}

// Page is one page of a Document.
type Page interface {
	Tokens() []model.Token
	PlainText() string
}

// Options tunes extraction. Zero values are not valid; start from DefaultOptions.
type Options struct {
	SectionMarker string
	LineTolerance float64
	TableWindow   int // pages read for the table, counting the section page
	Furniture     FurnitureFilter
	Totals        TotalsOptions
}

// DefaultOptions returns the settings used for the Nasajon payroll layout.
func DefaultOptions() Options {
	return Options{
		SectionMarker: DefaultSectionMarker,
		LineTolerance: layout.DefaultLineTolerance,
		TableWindow:   4,
		Furniture:     DefaultFurnitureFilter(),
		Totals:        DefaultTotalsOptions(),
	}
}

// Extractor runs the extraction pipeline over a Document.
type Extractor struct {
	opts Options
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	if opts.Furniture == nil {
		opts.Furniture = func(string) bool { return false }
	}
	return &Extractor{opts: opts}
}

// Extract locates the section, rebuilds its rows and finds the net salary.
// ctx is checked between pages.
func (e *Extractor) Extract(ctx context.Context, doc Document) (model.ExtractionResult, error) {
	log := logging.Logger()

	start, err := FindSectionStart(ctx, doc, e.opts.SectionMarker)
	if err != nil {
		return model.ExtractionResult{}, err
	}
	log.Debug("section found", "page", start+1)

	table := newTableState(e.opts.LineTolerance, e.opts.Furniture)
	err = e.eachPage(ctx, doc, start, e.opts.TableWindow, func(index int, tokens []model.Token) bool {
		table.FoldPage(index, tokens)
		return true
	})
	if err != nil {
		return model.ExtractionResult{}, err
	}
	rows, diags := table.Finish()

	totals := newTotalsState(e.opts.Totals)
	err = e.eachPage(ctx, doc, start, e.opts.Totals.Window, func(index int, tokens []model.Token) bool {
		totals.FoldPage(index, tokens)
		return !totals.Done()
	})
	if err != nil {
		return model.ExtractionResult{}, err
	}

	result := model.ExtractionResult{Rows: rows, Diagnostics: diags}
	if v, ok := totals.Value(); ok {
		result.Totals.NetSalary = &v
	} else {
		result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
			Kind:   model.DiagTotalsMiss,
			Page:   -1,
			Detail: "net salary not detected",
		})
	}

	log.Debug("extraction done", "rows", len(result.Rows), "net_salary", result.NetSalaryText(""), "diagnostics", len(result.Diagnostics))
	return result, nil
}

// eachPage feeds the visible tokens of pages [start, start+window) to fn until
// fn returns false.
func (e *Extractor) eachPage(ctx context.Context, doc Document, start, window int, fn func(int, []model.Token) bool) error {
	end := min(start+window, doc.NumPages())
	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("extraction canceled at page %d: %w", i+1, err)
		}
		page, err := doc.Page(ctx, i)
		if err != nil {
			return fmt.Errorf("reading page %d: %w", i+1, err)
		}
		if !fn(i, visibleTokens(page.Tokens())) {
			return nil
		}
	}
	return nil
}

func visibleTokens(tokens []model.Token) []model.Token {
	out := make([]model.Token, 0, len(tokens))
	for _, t := range tokens {
		if strings.TrimSpace(t.Text) != "" {
			out = append(out, t)
		}
	}
	return out
}
