package plotdata

import (
	"path/filepath"
	"strings"
)

// Format identifies the serialization format of a metric file.
type Format int

const (
	// FormatUnknown means the format could not be determined.
	FormatUnknown Format = iota
	// FormatCSV is comma-delimited text.
	FormatCSV
	// FormatTSV is tab-delimited text.
	FormatTSV
	// FormatJSON is a JSON document.
	FormatJSON
	// FormatYAML is a YAML document.
	FormatYAML
)

// String returns the conventional lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format of a metric file from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}
