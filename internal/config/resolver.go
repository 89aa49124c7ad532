package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

const (
	EnvResolverCutoff       = "TAKEOFF_RESOLVER_CUTOFF"
	EnvResolverDefaultWaste = "TAKEOFF_RESOLVER_DEFAULT_WASTE_PERCENT"
	EnvResolverConcurrency  = "TAKEOFF_RESOLVER_CONCURRENCY"
)

// ResolverConfig holds quantity resolution settings.
type ResolverConfig struct {
	// Cutoff is the rollout date (YYYY-MM-DD or RFC 3339). Projects created
	// earlier keep the legacy quantity logic.
	Cutoff string `toml:"cutoff"`
	// DefaultWastePercent applies when a request or estimate omits one.
	DefaultWastePercent *float64 `toml:"default_waste_percent"`
	// Concurrency bounds how many estimates resolve at once for a project.
	Concurrency int `toml:"concurrency"`
}

// CutoffTime returns the parsed cutoff. Finalize guarantees it parses.
func (c *ResolverConfig) CutoffTime() time.Time {
	t, _ := resolver.ParseDate(c.Cutoff)
	return t
}

// WastePercent returns DefaultWastePercent, falling back to the resolver default.
func (c *ResolverConfig) WastePercent() float64 {
	if c.DefaultWastePercent == nil {
		return resolver.DefaultWastePercent
	}
	return *c.DefaultWastePercent
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ResolverConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ResolverConfig) Merge(overlay *ResolverConfig) {
	if overlay.Cutoff != "" {
		c.Cutoff = overlay.Cutoff
	}
	if overlay.DefaultWastePercent != nil {
		w := *overlay.DefaultWastePercent
		c.DefaultWastePercent = &w
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
}

func (c *ResolverConfig) loadDefaults() {
	if c.Cutoff == "" {
		c.Cutoff = resolver.DefaultCutoff.Format(time.DateOnly)
	}
	if c.DefaultWastePercent == nil {
		w := resolver.DefaultWastePercent
		c.DefaultWastePercent = &w
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
}

func (c *ResolverConfig) loadEnv() {
	if v := os.Getenv(EnvResolverCutoff); v != "" {
		c.Cutoff = v
	}
	if v := os.Getenv(EnvResolverDefaultWaste); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultWastePercent = &w
		}
	}
	if v := os.Getenv(EnvResolverConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
}

func (c *ResolverConfig) validate() error {
	if _, err := resolver.ParseDate(c.Cutoff); err != nil {
		return fmt.Errorf("invalid cutoff: %w", err)
	}
	if w := *c.DefaultWastePercent; w < 0 || w > 100 {
		return fmt.Errorf("default_waste_percent must be between 0 and 100, got %v", w)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	return nil
}
