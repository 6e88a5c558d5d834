// Package pdftext reads positioned text runs from PDF files.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/folha-dev/folha/internal/extract"
	"github.com/folha-dev/folha/internal/layout"
	"github.com/folha-dev/folha/internal/logging"
	"github.com/folha-dev/folha/internal/model"
)

// Document is an open PDF file. Parsed pages are cached, so repeated passes
// over the same page decode its content stream once. A Document is not safe
// for concurrent use.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	pages  map[int]*Page
}

var _ extract.Document = (*Document)(nil)

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Document{path: path, file: f, reader: r, pages: make(map[int]*Page)}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Page returns the text runs of the page at the zero-based index.
func (d *Document) Page(ctx context.Context, index int) (extract.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 || index >= d.NumPages() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", index+1, d.NumPages())
	}

	if p, ok := d.pages[index]; ok {
		return p, nil
	}

	texts, err := d.content(index)
	if err != nil {
		return nil, err
	}
	p := &Page{tokens: MergeGlyphs(texts)}
	d.pages[index] = p
	logging.Logger().Debug("page decoded", "file", d.path, "page", index+1, "glyphs", len(texts), "runs", len(p.tokens))
	return p, nil
}

// content decodes one page. The pdf package panics on some malformed
// streams; those come back as errors.
func (d *Document) content(index int) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding page %d: %v", index+1, r)
		}
	}()
	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d missing from %s", index+1, d.path)
	}
	return page.Content().Text, nil
}

// Page holds the text runs of one decoded page.
type Page struct {
	tokens []model.Token
}

// Tokens returns the runs in drawing order.
func (p *Page) Tokens() []model.Token {
	return p.tokens
}

// PlainText returns the page text, one visual line per text line.
func (p *Page) PlainText() string {
	lines := layout.AssembleLines(p.tokens, layout.DefaultLineTolerance)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return strings.Join(out, "\n")
}
