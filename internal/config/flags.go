package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	ReadOnly       *bool
	ShowWhitespace *bool
}

// DefineFlags sets up the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = flag.Int("tabwidth", 0, "Display width of a tab stop - Overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file")
	f.ReadOnly = flag.Bool("readonly", false, "Open the file read-only")
	f.ShowWhitespace = flag.Bool("whitespace", false, "Visualize whitespace characters")
}

// ParseFlags parses the defined command-line flags.
// It returns the remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "tabwidth":
			if f.TabWidth != nil && *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if f.ScrollOff != nil && *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "whitespace":
			if f.ShowWhitespace != nil {
				cfg.Editor.ShowWhitespace = *f.ShowWhitespace
			}
		}
	})
}
