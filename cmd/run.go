// Package cmd provides CLI commands for the chatlens tool.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/config"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
	"github.com/otherjamesbrown/chatlens/pkg/transcript"
)

// Shared command flags.
var (
	flagLanguage string
	flagAuthors  []string
	flagOutput   string
	flagDebug    bool
)

// Deps holds the dependencies commands need to run the pipeline.
// Tests inject a fixed Config; production commands load from disk.
type Deps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultDeps returns the default dependencies for production use.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.LoadConfig,
	}
}

// resolveConfig loads configuration and applies command-line overrides.
func resolveConfig(deps *Deps) (*config.CLIConfig, error) {
	cfg := deps.Config
	if cfg == nil {
		var err error
		cfg, err = deps.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
	}

	if flagLanguage != "" {
		cfg.Language = flagLanguage
	}
	if flagOutput != "" {
		cfg.OutputFormat = config.OutputFormat(flagOutput)
	}
	if flagDebug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the CLI logger from the resolved config.
func newLogger(cfg *config.CLIConfig) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg.Debug {
		logCfg.Level = logging.LevelDebug
	}
	return logging.NewLogger(logCfg)
}

// loadResult parses the transcript at path and runs it through the
// preprocessing pipeline. The author allow-list defaults to every
// author found in the export; --authors narrows it.
func loadResult(ctx context.Context, deps *Deps, path string) (*pipeline.Result, *config.CLIConfig, error) {
	cfg, err := resolveConfig(deps)
	if err != nil {
		return nil, nil, err
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	parsed, err := transcript.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing transcript: %w", err)
	}

	authors := flagAuthors
	if len(authors) == 0 {
		authors = parsed.Authors
	}

	logger := newLogger(cfg)
	p, err := pipeline.New(cfg.Language,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(pipeline.NewMetrics(prometheus.NewRegistry())),
		pipeline.WithStarterGap(cfg.Analysis.StarterGap),
	)
	if err != nil {
		return nil, nil, err
	}

	result, err := p.Run(ctx, parsed.Records, authors)
	if err != nil {
		return nil, nil, err
	}
	return result, cfg, nil
}

// addRunFlags registers the flags shared by every analysis command.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagLanguage, "lang", "l", "", "Export language: English, Turkish, German")
	cmd.Flags().StringSliceVarP(&flagAuthors, "authors", "a", nil, "Restrict analysis to these authors")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}
