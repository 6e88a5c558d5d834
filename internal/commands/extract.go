package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/folha-dev/folha/internal/config"
	"github.com/folha-dev/folha/internal/export"
	"github.com/folha-dev/folha/internal/extract"
	"github.com/folha-dev/folha/internal/model"
	"github.com/folha-dev/folha/internal/pdftext"
	"github.com/folha-dev/folha/internal/runlog"
	"github.com/folha-dev/folha/internal/summary"
)

const exportsDir = "exports"

func newExtractCommand() *cobra.Command {
	var (
		cfgPath string
		xlsxOut string
		csvOut  string
		noXLSX  bool
		copyAll bool
		logDir  string
	)

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract the payroll summary table of one PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(cfgPath)
			if err != nil {
				return err
			}

			src := args[0]
			run, err := extractFile(cmd.Context(), src, cfg)
			if err != nil {
				return err
			}

			if copyAll {
				fmt.Println(summary.ClipboardText(run.res, run.sum))
			} else {
				printReport(os.Stdout, run)
			}
			printDiagnostics(os.Stderr, run.res.Diagnostics)
			warnConflict(run)

			if !noXLSX {
				if xlsxOut == "" {
					xlsxOut = defaultXLSXName(src)
				}
				if err := export.SaveXLSX(xlsxOut, run.res, run.sum, cfg.Exporter()); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Planilha salva em %s\n", xlsxOut)
			}
			if csvOut != "" {
				if err := saveCSV(csvOut, run); err != nil {
					return err
				}
			}
			if logDir != "" {
				entry := runlog.NewEntry(time.Now().UTC(), filepath.Base(src), run.res, run.sum, run.conflict != nil)
				if err := runlog.Append(logDir, []runlog.Entry{entry}); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to write extraction log: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.FileName, "config file; defaults apply when it does not exist")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "spreadsheet output (default: <file>.xlsx)")
	cmd.Flags().BoolVar(&noXLSX, "no-xlsx", false, "skip the spreadsheet")
	cmd.Flags().StringVar(&csvOut, "csv", "", "also write the rows as CSV")
	cmd.Flags().BoolVar(&copyAll, "copy", false, "print only the net salary and category sums, one per line")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "append a run record to <dir>/"+runlog.FileName)

	return cmd
}

// extraction is the outcome of one PDF run.
type extraction struct {
	res      model.ExtractionResult
	sum      summary.Summary
	conflict error
}

// extractFile runs the whole pipeline over the PDF at path.
func extractFile(ctx context.Context, path string, cfg *config.Config) (extraction, error) {
	opts, err := cfg.Extractor()
	if err != nil {
		return extraction{}, err
	}

	doc, err := pdftext.Open(path)
	if err != nil {
		return extraction{}, err
	}
	defer doc.Close()

	res, err := extract.New(opts).Extract(ctx, doc)
	if errors.Is(err, extract.ErrSectionNotFound) {
		return extraction{}, fmt.Errorf("não foi possível localizar a seção '%s', verifique o PDF: %w", opts.SectionMarker, err)
	}
	if err != nil {
		return extraction{}, fmt.Errorf("extracting %s: %w", path, err)
	}

	sum := summary.Aggregate(res.Rows)
	return extraction{
		res:      res,
		sum:      sum,
		conflict: summary.Verify(res.Rows, sum, summary.HighlightFlag),
	}, nil
}

func warnConflict(run extraction) {
	if run.conflict != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", run.conflict)
	}
}

func saveCSV(path string, run extraction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteCSV(f, run.res.Rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// defaultXLSXName replaces a trailing .pdf with .xlsx.
func defaultXLSXName(src string) string {
	ext := filepath.Ext(src)
	if strings.EqualFold(ext, ".pdf") {
		src = strings.TrimSuffix(src, ext)
	}
	return src + ".xlsx"
}
