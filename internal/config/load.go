package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/raoulx24/tsfind/internal/filetype"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "tsfind.yaml"

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Sort:   "none",
		},
		FileTypes: filetype.Default(),
		Watch: WatchConfig{
			Mode:           "auto",
			Schedule:       "@every 1m",
			DebounceWindow: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. When optional is set a missing file
// yields the defaults.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	// read raw YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// expand $(ENV_VAR) placeholders
	expanded := expandEnvVars(string(data))

	// the catalog is replaced as a whole, never merged with the built-in one
	builtin := cfg.FileTypes
	cfg.FileTypes = filetype.Catalog{}

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	switch {
	case len(cfg.FileTypes.Options) == 0:
		cfg.FileTypes.Options = builtin.Options
		if cfg.FileTypes.DefaultKey == "" {
			cfg.FileTypes.DefaultKey = builtin.DefaultKey
		}
	case cfg.FileTypes.DefaultKey == "":
		cfg.FileTypes.DefaultKey = cfg.FileTypes.Options[0].Key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if e := c.FileTypes.Validate(); e != nil {
		err = multierror.Append(err, fmt.Errorf("fileTypes: %w", e))
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		err = multierror.Append(err, fmt.Errorf("output.format: unknown value %q", c.Output.Format))
	}

	switch c.Output.Sort {
	case "none", "asc", "desc":
	default:
		err = multierror.Append(err, fmt.Errorf("output.sort: unknown value %q", c.Output.Sort))
	}

	switch c.Watch.Mode {
	case "auto", "cron", "fsnotify":
	default:
		err = multierror.Append(err, fmt.Errorf("watch.mode: unknown value %q", c.Watch.Mode))
	}

	if _, e := cron.ParseStandard(c.Watch.Schedule); e != nil {
		err = multierror.Append(err, fmt.Errorf("watch.schedule: %w", e))
	}

	if c.Watch.DebounceWindow < 0 {
		err = multierror.Append(err, errors.New("watch.debounceWindow: must not be negative"))
	}

	return err
}
