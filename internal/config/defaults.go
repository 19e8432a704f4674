package config

// Default configuration values.
const (
	DefaultTemplatesDir = ".plotline/templates"
	DefaultOutput       = "auto" // Auto-detect: TTY=html file, non-TTY=json
	DefaultReportPath   = "plots.html"
)

// configFileNames are the recognized config file names, in priority order.
var configFileNames = []string{"plotline.yaml", "plotline.yml"}
