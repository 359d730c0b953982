// Package cli implements the suicidestats command line.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"suicidestats/internal/config"
	"suicidestats/internal/engine"
)

type app struct {
	cfgFile string
	cfg     *config.Global
}

// config loads configuration once per invocation.
func (a *app) config() (*config.Global, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	c, err := config.Load(a.cfgFile)
	if err != nil {
		return nil, err
	}
	a.cfg = c
	return c, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "suicidestats",
		Short:         "Explore suicide statistics datasets",
		Long:          `suicidestats aggregates a suicide statistics CSV (country, year, sex, age, suicides_no, gdp_per_capita ($)) into dashboard views, filters it and exports the filtered subset. "serve" exposes the same views over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.suicidestats/config.yaml)")

	root.AddCommand(newReportCmd(a), newExportCmd(a), newServeCmd(a), newConfigCmd(a))
	return root
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func loadDataset(path string) (*engine.Dataset, error) {
	ds, err := engine.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
