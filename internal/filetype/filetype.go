// Package filetype holds the enumerated type tag choices offered to the user.
package filetype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	// RewardShare is the default tag.
	RewardShare = "iot_reward_share"
	// Another is the second built-in tag.
	Another = "another_file_type"
)

// Option is one selectable type tag.
type Option struct {
	Key   string `yaml:"key"`
	Tag   string `yaml:"tag"`
	Label string `yaml:"label"`
}

// Catalog is an ordered set of options plus the key used for unrecognised input.
type Catalog struct {
	Options    []Option `yaml:"options"`
	DefaultKey string   `yaml:"default"`
}

// Default returns the built-in catalog: "1" and "2", falling back to "1".
func Default() Catalog {
	return Catalog{
		Options: []Option{
			{Key: "1", Tag: RewardShare},
			{Key: "2", Tag: Another},
		},
		DefaultKey: "1",
	}
}

// Validate reports every problem in the catalog at once.
func (c Catalog) Validate() error {
	var err error
	if len(c.Options) == 0 {
		return errors.New("file type catalog has no options")
	}

	seen := make(map[string]bool, len(c.Options))
	for i, o := range c.Options {
		if strings.TrimSpace(o.Key) == "" {
			err = multierror.Append(err, fmt.Errorf("option %d: empty key", i))
		}
		if o.Tag == "" {
			err = multierror.Append(err, fmt.Errorf("option %q: empty tag", o.Key))
		}
		if seen[o.Key] {
			err = multierror.Append(err, fmt.Errorf("option %q: duplicate key", o.Key))
		}
		seen[o.Key] = true
	}
	if !seen[c.DefaultKey] {
		err = multierror.Append(err, fmt.Errorf("default key %q names no option", c.DefaultKey))
	}
	return err
}

// DefaultOption returns the fallback option.
func (c Catalog) DefaultOption() Option {
	for _, o := range c.Options {
		if o.Key == c.DefaultKey {
			return o
		}
	}
	if len(c.Options) > 0 {
		return c.Options[0]
	}
	return Option{Key: "1", Tag: RewardShare}
}

// Resolve maps user input to a tag. Both a key ("1") and a tag name are
// accepted. Anything else resolves to the default option with defaulted set.
func (c Catalog) Resolve(input string) (tag string, defaulted bool) {
	in := strings.TrimSpace(input)
	for _, o := range c.Options {
		if in == o.Key || (in != "" && in == o.Tag) {
			return o.Tag, false
		}
	}
	return c.DefaultOption().Tag, true
}

// DisplayName is the text shown in menus.
func (o Option) DisplayName() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Tag
}
