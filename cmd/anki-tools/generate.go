package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericyoondotcom/anki-tools/internal/anki"
	"github.com/ericyoondotcom/anki-tools/internal/cli"
	"github.com/ericyoondotcom/anki-tools/internal/config"
	"github.com/ericyoondotcom/anki-tools/internal/home"
	"github.com/ericyoondotcom/anki-tools/internal/pipeline"
	"github.com/ericyoondotcom/anki-tools/internal/providers"
)

var kanjiCmd = &cobra.Command{
	Use:   "kanji",
	Short: "Generate kanji from kana",
	Long: `Generate the kanji spelling for the notes currently selected in the
Anki browser. A note is processed when its kana and English fields are
filled and its kanji field is empty; everything else is skipped.

Words that are normally written in kana only (loanwords, onomatopoeia)
are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, pipeline.KanjiTask)
	},
}

var romajiCmd = &cobra.Command{
	Use:   "romaji",
	Short: "Generate romaji from kana",
	Long: `Generate Hepburn-style romanization for the notes currently selected
in the Anki browser. A note is processed when its kana field is filled
and its romaji field is empty; everything else is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, pipeline.RomajiTask)
	},
}

// runGenerate wires config, the AnkiConnect client, and the OpenAI
// client into a pipeline run for one task.
func runGenerate(cmd *cobra.Command, taskFor func(config.FieldsCfg) pipeline.Task) error {
	ctx := cmd.Context()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// A missing credential fails the invocation before any note is read.
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return fmt.Errorf("%w: set openai.api_key in your config or export OPENAI_API_KEY", err)
	}

	collection := anki.NewClient(anki.ClientConfig{
		URL:     cfg.Anki.URL,
		Timeout: time.Duration(cfg.Anki.TimeoutSeconds) * time.Second,
	})
	llm := providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:  apiKey,
		Model:   cfg.OpenAI.Model,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
	})

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Collection:  collection,
		LLM:         llm,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		Logger:      logger,
	})

	report, err := runner.Run(ctx, taskFor(cfg.Fields))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, report.Summary())
	return cli.Output(report)
}

// loadConfig builds the config manager, honoring --config and --home.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" && homeDir != "" {
		h, err := home.New(homeDir)
		if err != nil {
			return nil, err
		}
		if h.ConfigExists() {
			path = h.ConfigPath()
		}
	}

	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	return mgr.Get(), nil
}

func init() {
	rootCmd.AddCommand(kanjiCmd)
	rootCmd.AddCommand(romajiCmd)
}
