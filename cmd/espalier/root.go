package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier serves stateful Discord menus without server-side sessions",
	Long: `Espalier packs menu state into component custom ids, so any instance can
answer any click. This CLI runs the demo catalog over a webhook or the gateway,
and previews or inspects the menus locally.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "dotenv files to load (default .env if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of menu events")
	rootCmd.PersistentFlags().Bool("reseed", false, "Replace stored entries with the configured seed")
}

// loadApp reads the configuration named by the persistent flags and builds
// the application.
func loadApp(ctx context.Context, cmd *cobra.Command) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	debug, _ := cmd.Flags().GetBool("debug")
	reseed, _ := cmd.Flags().GetBool("reseed")

	cfg, err := config.Load(path, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cli.NewApp(ctx, cfg, cli.AppOptions{Debug: debug, Reseed: reseed})
}
