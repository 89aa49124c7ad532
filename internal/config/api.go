package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/takeoff/pkg/auth"
	"github.com/JaimeStill/takeoff/pkg/formatting"
	"github.com/JaimeStill/takeoff/pkg/middleware"
	"github.com/JaimeStill/takeoff/pkg/openapi"
	"github.com/JaimeStill/takeoff/pkg/pagination"
)

const (
	EnvAPIBasePath      = "TAKEOFF_API_BASE_PATH"
	EnvAPIMaxUploadSize = "TAKEOFF_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TAKEOFF_CORS_ENABLED",
	Origins:          "TAKEOFF_CORS_ORIGINS",
	AllowedMethods:   "TAKEOFF_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TAKEOFF_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "TAKEOFF_CORS_EXPOSED_HEADERS",
	AllowCredentials: "TAKEOFF_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TAKEOFF_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "TAKEOFF_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TAKEOFF_PAGINATION_MAX_PAGE_SIZE",
}

var authEnv = &auth.Env{
	Enabled:  "TAKEOFF_AUTH_ENABLED",
	Issuer:   "TAKEOFF_AUTH_ISSUER",
	JWKSURL:  "TAKEOFF_AUTH_JWKS_URL",
	ClientID: "TAKEOFF_AUTH_CLIENT_ID",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "TAKEOFF_OPENAPI_TITLE",
	Description: "TAKEOFF_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, auth, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	Auth          auth.Config           `toml:"auth"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Finalize guarantees it parses.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Auth.Merge(&overlay.Auth)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}
