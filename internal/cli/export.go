package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"suicidestats/internal/engine"
)

func newExportCmd(_ *app) *cobra.Command {
	var (
		countries []string
		from, to  int
		output    string
	)
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Write the rows matching a country/year filter to CSV",
		Long: `Filters a dataset by country (repeat --country, none means all) and an
inclusive year range, then writes the matching rows with the original header.
Use "-o -" to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}
			spec := engine.FullRange(ds)
			spec.Countries = countries
			if cmd.Flags().Changed("from") {
				spec.MinYear = from
			}
			if cmd.Flags().Changed("to") {
				spec.MaxYear = to
			}
			if spec.MinYear > spec.MaxYear {
				return fmt.Errorf("year range %d-%d is inverted", spec.MinYear, spec.MaxYear)
			}

			filtered := engine.Filter(ds, spec)
			if filtered.Empty() {
				color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "⚠", engine.EmptyNotice)
			}

			if output == "-" {
				return engine.WriteCSV(cmd.OutOrStdout(), filtered)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := engine.WriteCSV(f, filtered); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s rows to %s\n", humanize.Comma(int64(filtered.Len())), output)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&countries, "country", nil, "country to keep (repeatable)")
	cmd.Flags().IntVar(&from, "from", 0, "first year (inclusive, default: earliest in data)")
	cmd.Flags().IntVar(&to, "to", 0, "last year (inclusive, default: latest in data)")
	cmd.Flags().StringVarP(&output, "output", "o", engine.ExportFileName, "output file")
	return cmd
}
