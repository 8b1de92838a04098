package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/reveal"
	"github.com/tsawler/reveal/overlay"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] file",
	Short: "Render an HTML overlay or PNG preview of the answer regions",
	Long: `Render writes a standalone HTML page whose masks hide each answer until
clicked, a PNG preview of fragments and masks, or both`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	addDetectionFlags(renderCmd)
	renderCmd.Flags().String("html", "", "write an HTML overlay to this file")
	renderCmd.Flags().String("png", "", "write a PNG preview to this file")
	renderCmd.Flags().String("title", "", "HTML page title (default: document title)")
	renderCmd.Flags().Bool("text-layer", false, "include the page text under the HTML masks")
	renderCmd.Flags().Float64("pad", overlay.DefaultOuterPad, "pixels added around each mask (0 uses the default)")
	renderCmd.Flags().Int("max-width", 0, "scale the PNG preview down to this width")
}

// renderTarget is one output file and the renderer that fills it
type renderTarget struct {
	path     string
	renderer overlay.Renderer
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger(cmd)

	targets, err := renderTargets(cmd, path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ext, err := newExtractor(cmd, path, cfg)
	if err != nil {
		return err
	}

	for i, t := range targets {
		if err := writeTarget(ext, t, i == 0, logger); err != nil {
			return err
		}
		logger.Info("wrote overlay", "file", t.path)
	}
	return nil
}

// renderTargets builds one target per requested output file
func renderTargets(cmd *cobra.Command, source string) ([]renderTarget, error) {
	flags := cmd.Flags()
	htmlPath, _ := flags.GetString("html")
	pngPath, _ := flags.GetString("png")
	title, _ := flags.GetString("title")
	textLayer, _ := flags.GetBool("text-layer")
	pad, _ := flags.GetFloat64("pad")
	maxWidth, _ := flags.GetInt("max-width")

	if htmlPath == "" && pngPath == "" {
		return nil, fmt.Errorf("nothing to render: set --html and/or --png")
	}
	if pad < 0 || maxWidth < 0 {
		return nil, fmt.Errorf("--pad and --max-width must be non-negative")
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	var targets []renderTarget
	if htmlPath != "" {
		targets = append(targets, renderTarget{
			path: htmlPath,
			renderer: overlay.NewHTMLRenderer(overlay.HTMLOptions{
				Title:     title,
				OuterPad:  pad,
				TextLayer: textLayer,
			}),
		})
	}
	if pngPath != "" {
		targets = append(targets, renderTarget{
			path: pngPath,
			renderer: overlay.NewPNGRenderer(overlay.PNGOptions{
				OuterPad: pad,
				MaxWidth: maxWidth,
			}),
		})
	}
	return targets, nil
}

// writeTarget renders into t.path. Decode warnings are the same for every
// target, so only the first reports them.
func writeTarget(ext *reveal.Extractor, t renderTarget, reportWarnings bool, logger *slog.Logger) error {
	return createOutput(t.path, func(w io.Writer) error {
		warnings, err := ext.Render(w, t.renderer)
		if reportWarnings {
			logWarnings(logger, warnings)
		}
		return err
	})
}
