package main

import (
	"github.com/spf13/cobra"

	"github.com/ericyoondotcom/anki-tools/internal/cli"
	"github.com/ericyoondotcom/anki-tools/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "anki-tools",
	Short: "Generate Japanese vocabulary fields in Anki with an LLM",
	Long: `anki-tools fills in generated fields on Japanese vocabulary notes
in a running Anki instance (via the AnkiConnect add-on):

  - kanji:  the natural kanji spelling for a kana reading and English meaning
  - romaji: Hepburn-style romanization of a kana reading

Select notes in the Anki browser, then run the matching subcommand.
Notes whose source fields are empty or whose target field is already
filled are skipped, so reruns are safe.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.anki-tools/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "anki-tools home directory (default: ~/.anki-tools)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
