package resolver_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

func TestGateVersion(t *testing.T) {
	cutoff := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	gate := resolver.NewGate(cutoff)

	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"well before", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), resolver.VersionLegacy},
		{"just before", cutoff.Add(-time.Nanosecond), resolver.VersionLegacy},
		{"at cutoff", cutoff, resolver.VersionResolver},
		{"after", cutoff.AddDate(0, 1, 0), resolver.VersionResolver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Version(tt.createdAt); got != tt.want {
				t.Errorf("Version(%s) = %d, want %d", tt.createdAt, got, tt.want)
			}
		})
	}
}

func TestGateShouldResolve(t *testing.T) {
	gate := resolver.NewGate(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
	legacy := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		explicit  *int
		want      bool
	}{
		{"legacy by date", legacy, nil, false},
		{"current by date", current, nil, true},
		{"explicit resolver wins over date", legacy, ptr(resolver.VersionResolver), true},
		{"explicit legacy wins over date", current, ptr(resolver.VersionLegacy), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.ShouldResolve(tt.createdAt, tt.explicit); got != tt.want {
				t.Errorf("ShouldResolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewGateDefaultCutoff(t *testing.T) {
	if got := resolver.NewGate(time.Time{}).Cutoff(); !got.Equal(resolver.DefaultCutoff) {
		t.Errorf("Cutoff() = %s, want %s", got, resolver.DefaultCutoff)
	}

	var zero resolver.Gate
	if got := zero.Cutoff(); !got.Equal(resolver.DefaultCutoff) {
		t.Errorf("zero Gate Cutoff() = %s, want %s", got, resolver.DefaultCutoff)
	}
}

func TestGateDescribe(t *testing.T) {
	gate := resolver.NewGate(time.Time{})
	info := gate.Describe(resolver.DefaultCutoff.AddDate(0, 0, -1), ptr(resolver.VersionResolver))

	if info.Version != resolver.VersionResolver || !info.UsesResolver {
		t.Errorf("Describe = %+v, want explicit resolver version", info)
	}
	if !info.Cutoff.Equal(resolver.DefaultCutoff) {
		t.Errorf("cutoff = %s", info.Cutoff)
	}
}

func TestParseDate(t *testing.T) {
	if got, err := resolver.ParseDate("2026-01-02"); err != nil || !got.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate date-only = %s, %v", got, err)
	}
	if _, err := resolver.ParseDate("2026-01-02T15:04:05Z"); err != nil {
		t.Errorf("ParseDate RFC 3339: %v", err)
	}
	for _, s := range []string{"", "yesterday"} {
		if _, err := resolver.ParseDate(s); !errors.Is(err, resolver.ErrInvalidInput) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidInput", s, err)
		}
	}
}
