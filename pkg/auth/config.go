package auth

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds bearer-token verification settings. Verification is off
// unless Enabled is set.
type Config struct {
	Enabled           bool   `toml:"enabled"`
	Issuer            string `toml:"issuer"`
	JWKSURL           string `toml:"jwks_url"`
	ClientID          string `toml:"client_id"`
	SkipClientIDCheck bool   `toml:"skip_client_id_check"`
}

// Env maps auth config fields to environment variable names.
type Env struct {
	Enabled  string
	Issuer   string
	JWKSURL  string
	ClientID string
}

// Finalize applies environment variable overrides and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies so an
// overlay can switch verification off.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	c.SkipClientIDCheck = overlay.SkipClientIDCheck

	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.JWKSURL != "" {
		c.JWKSURL = overlay.JWKSURL
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.JWKSURL != "" {
		if v := os.Getenv(env.JWKSURL); v != "" {
			c.JWKSURL = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when auth is enabled")
	}
	if c.JWKSURL == "" {
		return fmt.Errorf("jwks_url required when auth is enabled")
	}
	if c.ClientID == "" && !c.SkipClientIDCheck {
		return fmt.Errorf("client_id required unless skip_client_id_check is set")
	}
	return nil
}
