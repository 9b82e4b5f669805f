package main

import (
	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a menu in the terminal",
	Long:  `Renders the catalog (or the feedback modal) as it would be sent, without contacting Discord.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var opts cli.PreviewOptions
		opts.Key, _ = cmd.Flags().GetString("key")
		opts.Page, _ = cmd.Flags().GetInt("page")
		opts.Modal, _ = cmd.Flags().GetBool("modal")
		opts.Raw, _ = cmd.Flags().GetBool("raw")
		return cli.Preview(ctx, app, cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("key", "k", "", "Entry list to show (default: first seeded list)")
	previewCmd.Flags().IntP("page", "p", 0, "Page to show; values past the end show the last page")
	previewCmd.Flags().Bool("modal", false, "Preview the feedback modal instead")
	previewCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
