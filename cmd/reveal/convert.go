package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/reveal/format"
	"github.com/tsawler/reveal/textcontent"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] input output",
	Short: "Convert a text content file between JSON and MessagePack",
	Long: `Convert re-encodes a text content batch. The output format is taken from
--to, or from the output file extension`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "auto", "output format (auto|json|msgpack)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	logger := newLogger(cmd)

	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	target := format.Parse(to)
	if target == format.Unknown {
		target = format.Detect(out)
	}
	if target != format.JSON && target != format.Msgpack {
		return fmt.Errorf("%w: cannot write %s", textcontent.ErrUnsupportedFormat, out)
	}

	// Scale 1 keeps view boxes in user units when the batch is rebuilt.
	doc, warnings, err := textcontent.Load(in, textcontent.Options{Scale: 1})
	logWarnings(logger, warnings)
	if err != nil {
		return err
	}

	err = createOutput(out, func(w io.Writer) error {
		if err := textcontent.Encode(w, textcontent.FromDocument(doc), target); err != nil {
			return fmt.Errorf("failed to encode %s: %w", target, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("converted text content", "input", in, "output", out, "format", target.String(), "pages", doc.PageCount())
	return nil
}
