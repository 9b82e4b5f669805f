package main

import (
	"context"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the menus over the Discord gateway",
	Long:  `Connects to the Discord gateway with the configured bot token and answers component and modal interactions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		app, err := loadApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		channel, _ := cmd.Flags().GetString("channel")
		tui.PrintBanner(cmd.OutOrStdout(), espalier.Version)
		return cli.RunBot(ctx, app, channel, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.Flags().String("channel", "", "Channel id to post a fresh catalog to on start")
}
