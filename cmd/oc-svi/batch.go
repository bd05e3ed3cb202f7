package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/duckdb"
	"github.com/KarchinLab/open-cravat-extras/internal/input"
	"github.com/KarchinLab/open-cravat-extras/internal/output"
	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		assembly   string
		format     string
		outputFile string
		duckdbPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "batch <input-file>",
		Short: "Resolve a file of variant inputs, one per line",
		Long: `Resolve every line of a plain or gzipped text file (use '-' for stdin).
Blank lines and lines starting with '#' are skipped.`,
		Example: `  oc-svi batch variants.txt
  oc-svi batch -f yaml -o resolved.yaml variants.txt.gz
  oc-svi batch --duckdb resolved.duckdb variants.txt
  cat variants.txt | oc-svi batch -a hg19 -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			asm, err := a.assembly(assembly)
			if err != nil {
				return usageError{err}
			}

			inputPath := args[0]
			src, err := input.NewReader(inputPath)
			if err != nil {
				return err
			}
			defer src.Close()

			var out io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			var w resolve.Writer
			switch format {
			case "tab":
				w = output.NewTabWriter(out)
			case "yaml":
				w = output.NewYAMLWriter(out)
			default:
				return usageError{fmt.Errorf("unknown output format %q", format)}
			}

			var store *duckdb.Store
			if duckdbPath != "" {
				store, err = duckdb.Open(duckdbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				w = output.NewMultiWriter(w, duckdb.NewWriter(store, 0))
			}

			r := resolve.NewResolver(a.cfg.Report.BaseURL)
			r.SetLogger(a.logger)

			summary, err := r.ResolveAll(src, asm, w, workers)
			if err != nil {
				return err
			}

			if store != nil && inputPath != "-" {
				fp, err := duckdb.StatFile(inputPath)
				if err != nil {
					return err
				}
				if err := store.RecordExport(fp, summary); err != nil {
					return err
				}
			}

			fields := []zap.Field{zap.Int("total", summary.Total)}
			for _, c := range []variant.Category{variant.DbSnp, variant.ClinGenAllele, variant.Hgvs, variant.Coordinates, variant.Unrecognized} {
				fields = append(fields, zap.Int(c.String(), summary.Counts[c]))
			}
			a.logger.Info("batch complete", fields...)
			return nil
		},
	}

	cmd.Flags().StringVarP(&assembly, "assembly", "a", "", "Genome assembly for coordinates: hg38 or hg19 (default from config)")
	cmd.Flags().StringVarP(&format, "output-format", "f", "tab", "Output format: tab, yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "Also export resolutions to this DuckDB file")
	cmd.Flags().IntVarP(&workers, "jobs", "j", 0, "Worker count (default: number of CPUs)")

	return cmd
}
