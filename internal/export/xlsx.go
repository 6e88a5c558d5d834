// Package export writes extraction results to spreadsheet and CSV files.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/folha-dev/folha/internal/classify"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/summary"
)

// Options controls the spreadsheet layout.
type Options struct {
	SheetName    string
	ColumnWidths []float64
}

// DefaultOptions returns the layout of the original report sheet.
func DefaultOptions() Options {
	return Options{
		SheetName:    "Resumo_Rubricas",
		ColumnWidths: []float64{15, 50, 15, 15},
	}
}

// Summary block fills, one per category column.
var categoryFills = map[model.Category]string{
	model.CategoryFoodOrBasket:     "FFDDE1",
	model.CategoryTransport:        "E2F0D5",
	model.CategoryThirteenthSalary: "DDEBF7",
}

// Column titles of the row table.
var tableHeader = []string{"Rubrica", "Descrição", "Rendimentos", "Descontos"}

const (
	netSalaryLabel = "Salário Líquido Total:"
	numFmtThousand = 4 // built-in "#,##0.00"
	firstTableRow  = 4
)

// WriteXLSX renders the result as a workbook: the net salary on top, the row
// table with category colors, and a summary block listing each category's
// signed values followed by their sum.
func WriteXLSX(w io.Writer, res model.ExtractionResult, sum summary.Summary, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	sw := &sheetWriter{f: f, sheet: sheet, styles: make(map[styleKey]int)}

	bold := styleKey{bold: true}
	sw.set(1, 1, netSalaryLabel, bold)
	sw.set(2, 1, res.NetSalaryText(""), bold)

	for i, h := range tableHeader {
		sw.set(i+1, firstTableRow-1, h, styleKey{})
	}
	for i, row := range res.Rows {
		r := firstTableRow + i
		st := styleKey{color: classify.HighlightFor(row.Description).Color}
		for c, v := range []string{row.Code, row.Description, row.Income, row.Deduction} {
			sw.set(c+1, r, v, st)
		}
	}

	start := firstTableRow + len(res.Rows) + 2
	for i, cat := range model.SummaryCategories {
		sw.set(i+2, start, cat.Label()+":", styleKey{bold: true, fill: categoryFills[cat]})
	}
	n := sum.MaxValues()
	for i, cat := range model.SummaryCategories {
		fill := categoryFills[cat]
		values := sum.Values(cat)
		for j := 0; j < n; j++ {
			var v any = ""
			if j < len(values) {
				v = values[j].InexactFloat64()
			}
			sw.set(i+2, start+1+j, v, styleKey{fill: fill, numFmt: numFmtThousand})
		}
		sw.set(i+2, start+1+n, sum.Sum(cat).InexactFloat64(), styleKey{bold: true, fill: fill, numFmt: numFmtThousand})
	}

	for i, width := range opts.ColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if sw.err != nil {
		return sw.err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, res model.ExtractionResult, sum summary.Summary, opts Options) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteXLSX(out, res, sum, opts); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

type styleKey struct {
	bold   bool
	color  string
	fill   string
	numFmt int
}

// sheetWriter sets cells and their styles, keeping the first error.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles map[styleKey]int
	err    error
}

func (w *sheetWriter) set(col, row int, value any, st styleKey) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = fmt.Errorf("cell %d,%d: %w", col, row, err)
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("setting %s: %w", cell, err)
		return
	}
	if st == (styleKey{}) {
		return
	}
	id, err := w.style(st)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(w.sheet, cell, cell, id); err != nil {
		w.err = fmt.Errorf("styling %s: %w", cell, err)
	}
}

func (w *sheetWriter) style(k styleKey) (int, error) {
	if id, ok := w.styles[k]; ok {
		return id, nil
	}
	st := &excelize.Style{NumFmt: k.numFmt}
	if k.bold || k.color != "" {
		st.Font = &excelize.Font{Bold: k.bold, Color: k.color}
	}
	if k.fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{k.fill}, Pattern: 1}
	}
	id, err := w.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	w.styles[k] = id
	return id, nil
}
