package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/folha-dev/folha/internal/config"
	"github.com/folha-dev/folha/internal/export"
	"github.com/folha-dev/folha/internal/inbox"
	"github.com/folha-dev/folha/internal/runlog"
)

func newBatchCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Extract every PDF in import/ into exports/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runBatch(cmd, absDir, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "leave processed PDFs in import/")

	return cmd
}

func runBatch(cmd *cobra.Command, dir string, keep bool) error {
	cfg, err := config.LoadOrDefault(filepath.Join(dir, config.FileName))
	if err != nil {
		return err
	}

	files, err := inbox.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Nenhum PDF em import/")
		return nil
	}

	if err := os.MkdirAll(filepath.Join(dir, exportsDir), 0o755); err != nil {
		return fmt.Errorf("creating exports dir: %w", err)
	}

	var failed []string
	for _, f := range files {
		if err := batchFile(cmd, dir, f, cfg, keep); err != nil {
			fmt.Fprintf(os.Stderr, "erro: %s: %v\n", f.Name, err)
			failed = append(failed, f.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return nil
}

func batchFile(cmd *cobra.Command, dir string, f inbox.File, cfg *config.Config, keep bool) error {
	run, err := extractFile(cmd.Context(), f.Path, cfg)
	if err != nil {
		return err
	}
	printDiagnostics(os.Stderr, run.res.Diagnostics)
	warnConflict(run)

	out := filepath.Join(dir, exportsDir, defaultXLSXName(f.Name))
	if err := export.SaveXLSX(out, run.res, run.sum, cfg.Exporter()); err != nil {
		return err
	}

	entry := runlog.NewEntry(time.Now().UTC(), f.Name, run.res, run.sum, run.conflict != nil)
	if err := runlog.Append(dir, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write extraction log: %v\n", err)
	}

	if !keep {
		if err := inbox.MarkProcessed(dir, f.Name); err != nil {
			return err
		}
	}

	fmt.Printf("%s: %d rubricas, líquido %s\n", f.Name, len(run.res.Rows), run.res.NetSalaryText(netSalaryMissing))
	return nil
}
