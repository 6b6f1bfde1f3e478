package config

import (
	"time"

	"github.com/raoulx24/tsfind/internal/filetype"
)

// Config is the content of tsfind.yaml. Flags override individual fields.
type Config struct {
	Scan      ScanConfig       `yaml:"scan"`
	Output    OutputConfig     `yaml:"output"`
	FileTypes filetype.Catalog `yaml:"fileTypes"`
	Watch     WatchConfig      `yaml:"watch"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// ScanConfig pre-fills answers. Empty fields are asked for interactively.
type ScanConfig struct {
	Dir   string `yaml:"dir"`
	Type  string `yaml:"type"`  // option key or tag
	Start string `yaml:"start"` // RFC-3339
	End   string `yaml:"end"`   // RFC-3339
}

// OutputConfig controls how matches are printed and where they are copied.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json"
	Sort   string `yaml:"sort"`   // "none", "asc", "desc"
	CopyTo string `yaml:"copyTo"`
}

// WatchConfig controls when the watch command rescans.
type WatchConfig struct {
	Mode           string        `yaml:"mode"`           // "auto", "cron", "fsnotify"
	Schedule       string        `yaml:"schedule"`       // cron spec, e.g. "@every 1m"
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

// LoggingConfig selects the level and handler of the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text"
}
