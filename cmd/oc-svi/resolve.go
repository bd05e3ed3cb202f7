package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		assembly string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <input>...",
		Short: "Print the variant report URL for each input",
		Long: `Classify each argument and print its category and report URL.
Quote coordinate inputs so they arrive as a single argument.
Exits with status 1 if any input could not be classified.`,
		Example: `  oc-svi resolve rs334
  oc-svi resolve NM_000518.5:c.20A>T CA123643
  oc-svi resolve -a hg19 "chr7 117559590 a t"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			asm, err := a.assembly(assembly)
			if err != nil {
				return usageError{err}
			}

			r := resolve.NewResolver(a.cfg.Report.BaseURL)
			r.SetLogger(a.logger)

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			unrecognized := 0

			for _, in := range args {
				res, err := r.Resolve(in, asm)
				if err != nil {
					return err
				}
				if !res.Recognized() {
					unrecognized++
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not determine input type: %q\n", in)
				}
				if asJSON {
					if err := enc.Encode(res); err != nil {
						return fmt.Errorf("encode resolution: %w", err)
					}
					continue
				}
				if res.Recognized() {
					fmt.Fprintf(out, "%s\t%s\n", res.Category, res.URL)
				}
			}

			if unrecognized > 0 {
				return fmt.Errorf("%d of %d inputs: %w", unrecognized, len(args), errUnrecognized)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&assembly, "assembly", "a", "", "Genome assembly for coordinates: hg38 or hg19 (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per input")

	return cmd
}

// assembly validates a flag value, falling back to the configured default.
func (a *app) assembly(flag string) (variant.Assembly, error) {
	if flag == "" {
		return a.cfg.DefaultAssembly(), nil
	}
	return variant.ParseAssembly(flag)
}
