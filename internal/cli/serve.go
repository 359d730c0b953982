package cli

import (
	"github.com/spf13/cobra"

	"suicidestats/internal/api"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr   string
		sample string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("sample") {
				cfg.SampleFile = sample
			}
			return api.Serve(cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides config)")
	cmd.Flags().StringVar(&sample, "sample", "", "CSV to preload for POST /api/sessions/sample (overrides config)")
	return cmd
}
