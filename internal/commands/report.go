package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/money"
)

const netSalaryMissing = "Não detectado"

// printReport writes the row table followed by the net salary and the
// category sums.
func printReport(w io.Writer, run extraction) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rubrica\tDescrição\tRendimentos\tDescontos")
	for _, r := range run.res.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Code, r.Description, r.Income, r.Deduction)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Salário Líquido Total: %s\n", run.res.NetSalaryText(netSalaryMissing))
	for _, cat := range model.SummaryCategories {
		fmt.Fprintf(w, "%s: %s\n", cat.Label(), money.Format(run.sum.Sum(cat)))
	}
	if run.sum.HasThirteenth() {
		fmt.Fprintln(w, "Folha contém 13º salário!")
	}
}

// printDiagnostics lists the soft problems found while extracting.
func printDiagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "aviso: %s\n", d)
	}
}
