package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"suicidestats/internal/config"
	"suicidestats/internal/session"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or set configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
			fmt.Fprintf(out, "max_upload_mb: %d\n", cfg.MaxUploadMB)
			fmt.Fprintf(out, "session_cache_size: %d\n", cfg.SessionCacheSize)
			fmt.Fprintf(out, "dataset_cache_size: %d\n", cfg.DatasetCacheSize)
			fmt.Fprintf(out, "top_n: %d\n", cfg.TopN)
			fmt.Fprintf(out, "default_theme: %s\n", cfg.DefaultTheme)
			if cfg.SampleFile != "" {
				fmt.Fprintf(out, "sample_file: %s\n", cfg.SampleFile)
			}
			fmt.Fprintf(out, "cors_origins: %s\n", strings.Join(cfg.CORSOrigins, ","))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and save to disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if err := setKey(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg, a.cfgFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}

func setKey(cfg *config.Global, key, val string) error {
	var err error
	switch key {
	case "addr":
		cfg.Addr = val
	case "max_upload_mb":
		cfg.MaxUploadMB, err = positiveInt(key, val)
	case "session_cache_size":
		cfg.SessionCacheSize, err = positiveInt(key, val)
	case "dataset_cache_size":
		cfg.DatasetCacheSize, err = positiveInt(key, val)
	case "top_n":
		cfg.TopN, err = positiveInt(key, val)
	case "default_theme":
		var th session.Theme
		if th, err = session.ParseTheme(val); err == nil {
			cfg.DefaultTheme = string(th)
		}
	case "sample_file":
		cfg.SampleFile = val
	case "cors_origins":
		cfg.CORSOrigins = strings.Split(val, ",")
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}
