package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/launcher"
	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/logging"
	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

var (
	outputPath string
	formatName string
	openResult bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate one deck and write it to a file",
	Long: `Generate a five-slide lesson deck for a topic without starting the server.

Example:
  lessondeck generate "Photosynthesis"
  lessondeck generate "The Water Cycle" -o water.pptx --open
  lessondeck generate "Fractions" --format markdown
  lessondeck generate "Fractions" --format png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: derived from the topic)")
	generateCmd.Flags().BoolVar(&openResult, "open", false, "Open the written file with the default application")
	generateCmd.Flags().StringVarP(&formatName, "format", "f", string(entities.FormatPowerPoint), "Output format: pptx, markdown, html, pdf or png")
	addGenerationFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")

	format, ok := entities.ParseDeckFormat(formatName)
	if !ok {
		return fmt.Errorf("unsupported format: %s", formatName)
	}

	finalConfig, err := loadAndMergeConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(finalConfig.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger := logging.FromConfig("lessondeck", finalConfig.Logging)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := newApp(ctx, finalConfig, logger)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	artifact, err := application.decks.Generate(ctx, entities.DeckRequest{Topic: topic, Format: string(format)})
	if err != nil {
		return err
	}
	defer application.decks.Discard(artifact)

	dest := outputPath
	if dest == "" {
		dest = defaultOutputName(topic, filepath.Ext(artifact.FileName))
	}

	if err := copyFile(artifact.Path, dest); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", dest, artifact.Size)

	if openResult {
		openArtifact(launcher.NewOpener(), dest, logger)
	}
	return nil
}

// openArtifact hands path to the desktop opener. Failures are logged, not returned.
func openArtifact(opener ports.FileOpener, path string, logger *logging.Logger) {
	name, err := opener.Detect()
	if err != nil {
		logger.Warn("Cannot open %s: %v", path, err)
		return
	}

	logger.Debug("Opening %s with %s", path, name)
	if err := opener.Open(path); err != nil {
		logger.Warn("Failed to open %s: %v", path, err)
	}
}

// defaultOutputName turns a topic into a file name such as "The-Water-Cycle.pptx"
func defaultOutputName(topic, ext string) string {
	titled := cases.Title(language.English).String(strings.ToLower(topic))

	var b strings.Builder
	lastDash := false
	for _, r := range titled {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}

	name := strings.TrimRight(b.String(), "-")
	if name == "" {
		name = "presentation"
	}
	return name + ext
}

// copyFile copies src to dst, replacing dst
func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - path returned by the artifact store
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) // #nosec G304 - user-chosen output path
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
