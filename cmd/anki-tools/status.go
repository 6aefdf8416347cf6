package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ericyoondotcom/anki-tools/internal/anki"
	"github.com/ericyoondotcom/anki-tools/internal/cli"
)

var statusWait time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that Anki and the AnkiConnect add-on are reachable",
	Long: `Check that a running Anki instance with the AnkiConnect add-on is
reachable at the configured URL.

With --wait, polls until AnkiConnect responds or the wait elapses,
which is useful right after launching Anki.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := anki.NewClient(anki.ClientConfig{
			URL:     cfg.Anki.URL,
			Timeout: time.Duration(cfg.Anki.TimeoutSeconds) * time.Second,
		})

		if statusWait > 0 {
			if err := client.WaitReady(ctx, statusWait); err != nil {
				return err
			}
		}

		version, err := client.Version(ctx)
		if err != nil {
			return err
		}

		return cli.Output(map[string]any{
			"url":     cfg.Anki.URL,
			"version": version,
		})
	},
}

func init() {
	statusCmd.Flags().DurationVar(&statusWait, "wait", 0, "poll until AnkiConnect responds (e.g. 30s)")

	rootCmd.AddCommand(statusCmd)
}
