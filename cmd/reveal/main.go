// Command reveal finds answer regions in decoded documents and renders
// clickable overlays that hide them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tsawler/reveal"
	"github.com/tsawler/reveal/config"
	"github.com/tsawler/reveal/detect"
	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "reveal",
	Short:         "Find and mask answers in answer-key documents",
	Long:          `Reveal locates the text following answer markers such as "Answer:" and renders masks that uncover it on click`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (.yaml or .toml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-page detection details")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output stream
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (use auto, on or off)", colorFlag)
	}
}

// newLogger returns a text logger on stderr; --verbose enables debug output
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// addDetectionFlags registers the flags shared by detect and render
func addDetectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("pattern", "p", nil, "answer marker (repeatable, overrides config)")
	cmd.Flags().IntSlice("pages", nil, "pages to process, 1-indexed (default all)")
	cmd.Flags().Float64("scale", 0, "viewport pixel scale (overrides config)")
	cmd.Flags().Int("concurrency", 0, "pages processed at once (overrides config)")
	cmd.Flags().String("input-format", "auto", "input format (auto|json|msgpack)")
}

// loadConfig reads the config file and environment, then applies any
// detection flags the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		if cfg.Patterns, err = flags.GetStringSlice("pattern"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("scale") {
		if cfg.Scale, err = flags.GetFloat64("scale"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newExtractor builds an Extractor for path from the resolved configuration
func newExtractor(cmd *cobra.Command, path string, cfg *config.Config) (*reveal.Extractor, error) {
	pages, err := cmd.Flags().GetIntSlice("pages")
	if err != nil {
		return nil, fmt.Errorf("failed to get pages flag: %w", err)
	}
	inputFormat, err := cmd.Flags().GetString("input-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get input-format flag: %w", err)
	}

	ext := reveal.Open(path).
		Patterns(detect.NormalizePatterns(cfg.Patterns)...).
		Scale(cfg.Scale).
		Concurrency(cfg.Concurrency).
		WithConfig(cfg.Detect).
		WithLabels(cfg.LabelConfig()).
		Format(format.Parse(inputFormat))
	if len(pages) > 0 {
		ext = ext.Pages(pages...)
	}
	return ext, nil
}

// createOutput writes a file through write, reporting close errors so a
// failed flush is not mistaken for success
func createOutput(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// logWarnings reports decode warnings through the logger
func logWarnings(logger *slog.Logger, warnings []reveal.Warning) {
	for _, w := range warnings {
		logger.Warn("skipped text item", "page", w.Page, "item", w.Item, "reason", w.Message)
	}
}
