// Package pagination pages project, estimate, and blueprint listings.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Default page sizes used when the config leaves them unset.
const (
	DefaultPageSize    = 20
	DefaultMaxPageSize = 100
)

// Config bounds the page sizes a listing request may ask for.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

type sizeField struct {
	name  string
	value *int
	def   int
	env   func(*ConfigEnv) string
}

func (c *Config) fields() []sizeField {
	return []sizeField{
		{"default_page_size", &c.DefaultPageSize, DefaultPageSize, func(e *ConfigEnv) string { return e.DefaultPageSize }},
		{"max_page_size", &c.MaxPageSize, DefaultMaxPageSize, func(e *ConfigEnv) string { return e.MaxPageSize }},
	}
}

// Finalize fills unset sizes, applies env overrides, and checks that the
// default page fits under the maximum. A malformed env value is an error.
func (c *Config) Finalize(env *ConfigEnv) error {
	for _, f := range c.fields() {
		if *f.value <= 0 {
			*f.value = f.def
		}
		if env == nil {
			continue
		}
		key := f.env(env)
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid %s %q", f.name, key, raw)
		}
		*f.value = n
	}

	for _, f := range c.fields() {
		if *f.value < 1 {
			return fmt.Errorf("%s must be positive", f.name)
		}
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size %d exceeds max_page_size %d", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

// Merge takes every positive size from overlay.
func (c *Config) Merge(overlay *Config) {
	theirs := overlay.fields()
	for i, f := range c.fields() {
		if v := *theirs[i].value; v > 0 {
			*f.value = v
		}
	}
}
