// Package format provides input format detection for text content batches.
package format

import (
	"io"
	"path/filepath"
	"strings"
)

// Format represents an input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a text content batch encoded as JSON.
	JSON
	// Msgpack indicates a text content batch encoded as MessagePack.
	Msgpack
	// PDF indicates a raw PDF file, which must be converted to text content
	// by a document decoder first.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case Msgpack:
		return "MessagePack"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case Msgpack:
		return ".msgpack"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// Parse converts a user-supplied format name ("json", "msgpack", "auto").
// Unrecognized names and "auto" return Unknown.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON
	case "msgpack", "messagepack", "mp":
		return Msgpack
	case "pdf":
		return PDF
	default:
		return Unknown
	}
}

// Detect determines format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".msgpack", ".mpk", ".mp":
		return Msgpack
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromMagic inspects the leading bytes of the content.
// Returns Unknown if the format cannot be determined.
func DetectFromMagic(data []byte) Format {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	if start >= len(data) {
		return Unknown
	}

	// PDF magic: %PDF
	if len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	switch b := data[start]; {
	case b == '{' || b == '[':
		return JSON
	case start == 0 && (b&0xf0 == 0x80 || b == 0xde || b == 0xdf):
		// fixmap, map16, map32
		return Msgpack
	case start == 0 && (b&0xf0 == 0x90 || b == 0xdc || b == 0xdd):
		// fixarray, array16, array32
		return Msgpack
	}
	return Unknown
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// DetectFromReader peeks at the content to determine format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 64)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
