package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lastmile-sim/courierenv/app"
	"github.com/lastmile-sim/courierenv/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "courierenv",
	Short:        "Point-in-time state reconstruction for last-mile delivery logs",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService(ctx context.Context) (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg)
}
