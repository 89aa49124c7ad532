package openapi

import (
	"os"
	"strings"
)

// Document defaults for the takeoff API.
const (
	DefaultTitle       = "Takeoff API"
	DefaultDescription = "Resolves estimated material measurements into procurement quantities " +
		"(boxes, gallons, sheets, bags) for construction projects."
)

// Config carries the document title and description rendered in the
// info block and on the API reference page.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

type textField struct {
	value *string
	def   string
	env   func(*ConfigEnv) string
}

func (c *Config) fields() []textField {
	return []textField{
		{&c.Title, DefaultTitle, func(e *ConfigEnv) string { return e.Title }},
		{&c.Description, DefaultDescription, func(e *ConfigEnv) string { return e.Description }},
	}
}

// Finalize fills blank fields with the takeoff defaults, then applies env
// overrides. Whitespace-only values count as blank.
func (c *Config) Finalize(env *ConfigEnv) error {
	for _, f := range c.fields() {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			*f.value = f.def
		}
		if env == nil || f.env(env) == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(f.env(env))); v != "" {
			*f.value = v
		}
	}
	return nil
}

// Merge takes every non-blank field from overlay.
func (c *Config) Merge(overlay *Config) {
	theirs := overlay.fields()
	for i, f := range c.fields() {
		if v := strings.TrimSpace(*theirs[i].value); v != "" {
			*f.value = v
		}
	}
}
