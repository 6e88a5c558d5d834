package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/folha-dev/folha/internal/classify"
	"github.com/folha-dev/folha/internal/model"
)

// CSVHeader is the header line written by WriteCSV.
const CSVHeader = "rubrica,descricao,rendimentos,descontos,categoria"

const (
	numFields    = 5
	colCode      = 0
	colDesc      = 1
	colIncome    = 2
	colDeduction = 3
	colCategory  = 4
)

// MarshalRow converts a Row to a CSV record. Monetary fields keep their
// original text.
func MarshalRow(row model.Row) []string {
	rec := make([]string, numFields)
	rec[colCode] = row.Code
	rec[colDesc] = row.Description
	rec[colIncome] = row.Income
	rec[colDeduction] = row.Deduction
	rec[colCategory] = string(classify.Classify(row.Description))
	return rec
}

// WriteCSV writes rows, with header, to w.
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
