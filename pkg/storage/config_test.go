package storage_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/takeoff/pkg/storage"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{ConnectionString: "test-connection"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "blueprints" {
		t.Errorf("container_name: got %s, want blueprints", cfg.ContainerName)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("max_list_size: got %d, want 50", cfg.MaxListSize)
	}
	if cfg.UsesCredential() {
		t.Error("connection string config should not use a token credential")
	}
}

func TestFinalizeClampsMaxListSize(t *testing.T) {
	cfg := storage.Config{ConnectionString: "conn", MaxListSize: 10000}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("max_list_size: got %d, want %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CONTAINER", "uploads")
	t.Setenv("TEST_SERVICE_URL", "https://takeoff.blob.core.windows.net/")
	t.Setenv("TEST_MAX_LIST", "200")

	env := &storage.Env{
		ContainerName:    "TEST_CONTAINER",
		ConnectionString: "TEST_CONN_UNSET",
		ServiceURL:       "TEST_SERVICE_URL",
		MaxListSize:      "TEST_MAX_LIST",
	}

	cfg := storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "uploads" {
		t.Errorf("container_name: got %s, want uploads", cfg.ContainerName)
	}
	if cfg.ServiceURL != "https://takeoff.blob.core.windows.net/" {
		t.Errorf("service_url: got %s", cfg.ServiceURL)
	}
	if cfg.MaxListSize != 200 {
		t.Errorf("max_list_size: got %d, want 200", cfg.MaxListSize)
	}
	if !cfg.UsesCredential() {
		t.Error("service url without connection string should use a token credential")
	}
}

func TestFinalizeValidation(t *testing.T) {
	cfg := storage.Config{ContainerName: "blueprints"}

	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "connection_string or service_url required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{ContainerName: "blueprints", ConnectionString: "base-conn"}
	overlay := storage.Config{ConnectionString: "overlay-conn", ServiceURL: "https://example"}

	base.Merge(&overlay)

	if base.ContainerName != "blueprints" {
		t.Errorf("container_name should remain blueprints, got %s", base.ContainerName)
	}
	if base.ConnectionString != "overlay-conn" {
		t.Errorf("connection_string: got %s, want overlay-conn", base.ConnectionString)
	}
	if base.ServiceURL != "https://example" {
		t.Errorf("service_url: got %s", base.ServiceURL)
	}
}
