// Package testpdf renders positioned text into PDF files for tests.
package testpdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// FontSize is the size every run is drawn at.
const FontSize = 10

// Run is a string drawn with its baseline starting at (X, Y), in points from
// the bottom left corner of an A4 page.
type Run struct {
	X, Y float64
	S    string
}

// newDocument lays out one A4 page per element of pages in Courier, a core
// font written with WinAnsi encoding and no glyph widths.
func newDocument(pages [][]Run) *fpdf.Fpdf {
	f := fpdf.New("P", "pt", "A4", "")
	f.SetCompression(false)
	f.SetFont("Courier", "", FontSize)
	tr := f.UnicodeTranslatorFromDescriptor("")
	_, h := f.GetPageSize()
	for _, runs := range pages {
		f.AddPage()
		for _, r := range runs {
			f.Text(r.X, h-r.Y, tr(r.S))
		}
	}
	return f
}

// Build renders pages and returns the PDF bytes.
func Build(pages ...[]Run) ([]byte, error) {
	var buf bytes.Buffer
	if err := newDocument(pages).Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders pages and saves the PDF to path.
func Write(path string, pages ...[]Run) error {
	if err := newDocument(pages).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
