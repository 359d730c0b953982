package cli

import (
	"github.com/spf13/cobra"

	"suicidestats/internal/engine"
	"suicidestats/internal/report"
	"suicidestats/internal/session"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		format string
		topN   int
		theme  string
	)
	cmd := &cobra.Command{
		Use:   "report <file.csv>",
		Short: "Print the dashboard aggregates for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				topN = cfg.TopN
			}
			if !cmd.Flags().Changed("theme") {
				theme = cfg.DefaultTheme
			}
			th, err := session.ParseTheme(theme)
			if err != nil {
				return err
			}

			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}
			data, err := engine.BuildDashboard(ds, engine.DashboardOptions{
				Theme:    string(th),
				Template: th.Template(),
				TopN:     topN,
			})
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), data, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatTable, "output format: table, json or yaml")
	cmd.Flags().IntVar(&topN, "top", engine.DefaultTopN, "number of countries in the top list")
	cmd.Flags().StringVar(&theme, "theme", "light", "chart theme recorded in json/yaml output: light or dark")
	return cmd
}
