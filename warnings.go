package reveal

import (
	"strings"

	"github.com/tsawler/reveal/textcontent"
)

// Warning is a non-fatal issue found while decoding, such as a text item
// with a malformed transform. Detection still runs on the remaining items.
type Warning = textcontent.Warning

// FormatWarnings joins warnings into a single line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
