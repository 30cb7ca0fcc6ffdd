package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/artifact"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/config"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/export"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/gemini"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/logging"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/preview"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/services"
)

// app holds the wired pipeline shared by serve and generate
type app struct {
	config *entities.Config
	logger *logging.Logger
	store  *artifact.FileStore
	model  *gemini.Client
	decks  *services.DeckService
}

// loadAndMergeConfig loads configuration with precedence:
// CLI flags > --config file > ./lessondeck.toml > environment > defaults
func loadAndMergeConfig(cmd *cobra.Command) (*entities.Config, error) {
	loader := config.NewTOMLLoader()
	merger := config.NewConfigMerger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configs := []*entities.Config{config.GetDefaultConfig()}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	localConfig, err := loader.LoadLocal(ctx, wd)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}
	configs = append(configs, localConfig)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fileConfig, err := loader.LoadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		configs = append(configs, fileConfig)
	}

	finalConfig := merger.ApplyFlags(merger.Merge(configs...), collectFlags(cmd))

	if err := finalConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return finalConfig, nil
}

// collectFlags returns the explicitly set flags the merger understands
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	fs := cmd.Flags()

	for _, name := range []string{"port", "model-timeout"} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			v, _ := fs.GetInt(name)
			flags[name] = v
		}
	}
	for _, name := range []string{"host", "model", "output-dir", "log-level", "log-file"} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			v, _ := fs.GetString(name)
			flags[name] = v
		}
	}
	for _, name := range []string{"keep-artifacts", "verbose"} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			v, _ := fs.GetBool(name)
			flags[name] = v
		}
	}

	return flags
}

// requireAPIKey returns the model credential or an error naming the variable
func requireAPIKey() (string, error) {
	key := os.Getenv(entities.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("%s not found in environment variables", entities.APIKeyEnv)
	}
	return key, nil
}

// newApp wires the model client, renderers, artifact store and services
func newApp(ctx context.Context, cfg *entities.Config, logger *logging.Logger) (*app, error) {
	apiKey, err := requireAPIKey()
	if err != nil {
		return nil, err
	}

	model, err := gemini.NewClient(ctx, cfg.Model, apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}
	logger.Info("Using model %s", model.Model())

	store, err := artifact.NewFileStore(cfg.Output.Directory)
	if err != nil {
		return nil, err
	}

	htmlRenderer, err := preview.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	imageRenderer, err := export.NewImageRenderer(export.DefaultPixelsPerInch)
	if err != nil {
		return nil, err
	}

	content := services.NewContentService(model, logger.Named("content"), cfg.Model.GetTimeout())
	decks := services.NewDeckService(content, store, logger.Named("deck"), cfg.Output.KeepArtifacts)
	decks.RegisterRenderer(entities.FormatPowerPoint, pptx.NewRenderer("lessondeck", logger.Named("pptx")))
	decks.RegisterRenderer(entities.FormatMarkdown, preview.NewMarkdownRenderer())
	decks.RegisterRenderer(entities.FormatHTML, htmlRenderer)
	decks.RegisterRenderer(entities.FormatPDF, export.NewPDFRenderer("lessondeck"))
	decks.RegisterRenderer(entities.FormatPNG, imageRenderer)

	return &app{
		config: cfg,
		logger: logger,
		store:  store,
		model:  model,
		decks:  decks,
	}, nil
}

// Close releases the model client
func (a *app) Close() error {
	return a.model.Close()
}
