package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsawler/reveal"
	"github.com/tsawler/reveal/model"
)

// snippetWidth is the display width of the text column in pretty output
const snippetWidth = 48

var detectCmd = &cobra.Command{
	Use:   "detect [flags] file",
	Short: "List answer regions found in a text content file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	addDetectionFlags(detectCmd)
	detectCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	detectCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")
}

// regionRecord is one region in json and msgpack output
type regionRecord struct {
	Page     int     `json:"page" msgpack:"page"`
	Fragment int     `json:"fragment" msgpack:"fragment"`
	Pattern  string  `json:"pattern" msgpack:"pattern"`
	Text     string  `json:"text" msgpack:"text"`
	Left     float64 `json:"left" msgpack:"left"`
	Top      float64 `json:"top" msgpack:"top"`
	Right    float64 `json:"right" msgpack:"right"`
	Bottom   float64 `json:"bottom" msgpack:"bottom"`
}

// detectPayload is the json and msgpack output document
type detectPayload struct {
	Source   string         `json:"source" msgpack:"source"`
	Patterns []string       `json:"patterns" msgpack:"patterns"`
	Regions  []regionRecord `json:"regions" msgpack:"regions"`
	Warnings []string       `json:"warnings,omitempty" msgpack:"warnings,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger(cmd)

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outputFormat {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", outputFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ext, err := newExtractor(cmd, path, cfg)
	if err != nil {
		return err
	}

	results, warnings, err := ext.PageResults(cmd.Context())
	logWarnings(logger, warnings)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	doc, _, err := ext.Document()
	if err != nil {
		return err
	}

	var regions []model.AnswerRegion
	for _, r := range results {
		logger.Debug("page analyzed", "page", r.Page, "matches", r.Matches, "regions", len(r.Regions), "dropped", r.Dropped)
		regions = append(regions, r.Regions...)
	}
	logger.Debug("detection finished", "source", path, "regions", len(regions))

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	payload := buildPayload(path, cfg.Patterns, doc, regions, warnings)
	if outPath != "" {
		return createOutput(outPath, func(w io.Writer) error {
			return writePayload(w, outputFormat, payload, false)
		})
	}

	colored := false
	if outputFormat == "pretty" {
		if colored, err = useColor(cmd, os.Stdout); err != nil {
			return err
		}
	}
	return writePayload(cmd.OutOrStdout(), outputFormat, payload, colored)
}

// writePayload encodes payload in the requested output format
func writePayload(out io.Writer, outputFormat string, payload detectPayload, colored bool) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(payload)
	default:
		renderPretty(out, payload, colored)
		return nil
	}
}

// buildPayload pairs each region with the text of its matched fragment
func buildPayload(source string, patterns []string, doc *model.Document, regions []model.AnswerRegion, warnings []reveal.Warning) detectPayload {
	payload := detectPayload{
		Source:   source,
		Patterns: patterns,
		Regions:  make([]regionRecord, 0, len(regions)),
	}
	for _, r := range regions {
		var text string
		if page := doc.GetPage(r.Page); page != nil && r.FragmentIndex < len(page.Fragments) {
			text = strings.TrimSpace(page.Fragments[r.FragmentIndex].Text)
		}
		payload.Regions = append(payload.Regions, regionRecord{
			Page:     r.Page,
			Fragment: r.FragmentIndex,
			Pattern:  r.Pattern,
			Text:     text,
			Left:     r.BBox.Left,
			Top:      r.BBox.Top,
			Right:    r.BBox.Right,
			Bottom:   r.BBox.Bottom,
		})
	}
	for _, w := range warnings {
		payload.Warnings = append(payload.Warnings, w.String())
	}
	return payload
}

// renderPretty writes an aligned table of regions
func renderPretty(out io.Writer, payload detectPayload, colored bool) {
	header := color.New(color.Bold)
	page := color.New(color.FgCyan)
	box := color.New(color.FgYellow)
	summary := color.New(color.FgGreen, color.Bold)
	for _, c := range []*color.Color{header, page, box, summary} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	header.Fprintf(out, "%-5s %-4s %-*s %s\n", "PAGE", "FRAG", snippetWidth, "TEXT", "REGION")
	for _, r := range payload.Regions {
		snippet := runewidth.FillRight(runewidth.Truncate(r.Text, snippetWidth, "..."), snippetWidth)
		fmt.Fprintf(out, "%s %-4d %s %s\n",
			page.Sprintf("%-5d", r.Page),
			r.Fragment,
			snippet,
			box.Sprintf("[%.1f, %.1f, %.1f, %.1f]", r.Left, r.Top, r.Right, r.Bottom),
		)
	}
	summary.Fprintf(out, "%d region(s) in %s\n", len(payload.Regions), payload.Source)
}
