package configstore

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSanitized(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("without token bundle", func(t *testing.T) {
		cfg := &DeviceConfig{
			KeyID:       "dev-1",
			Environment: "dev",
			CreatedAt:   now,
			UpdatedAt:   now,
			Authorization: &AuthorizationRecord{
				State: "state-1",
				Code:  "code-1",
			},
		}

		got := cfg.Sanitized()
		if got.B2BToken != "" || got.B2BTokenExpiresAt != nil {
			t.Errorf("expected no token fields, got %+v", got)
		}
	})

	t.Run("flattens token bundle", func(t *testing.T) {
		cfg := &DeviceConfig{
			KeyID: "dev-1",
			LastTokens: &TokenBundle{
				B2BAssertion:          "assertion-1",
				B2BAssertionExpiresAt: now,
				B2BToken:              "token-1",
				B2BTokenExpiresAt:     now.Add(time.Hour),
			},
		}

		got := cfg.Sanitized()
		if got.B2BAssertion != "assertion-1" || got.B2BToken != "token-1" {
			t.Errorf("expected flattened bundle fields, got %+v", got)
		}
		if got.B2BAssertionExpiresAt == nil || !got.B2BAssertionExpiresAt.Equal(now) {
			t.Errorf("expected assertion expiry %v, got %v", now, got.B2BAssertionExpiresAt)
		}
		if got.B2BTokenExpiresAt == nil || !got.B2BTokenExpiresAt.Equal(now.Add(time.Hour)) {
			t.Errorf("expected token expiry %v, got %v", now.Add(time.Hour), got.B2BTokenExpiresAt)
		}
	})

	t.Run("never serializes authorization detail", func(t *testing.T) {
		cfg := &DeviceConfig{
			KeyID: "dev-1",
			Authorization: &AuthorizationRecord{
				State: "secret-state",
				Code:  "secret-code",
			},
		}

		data, err := json.Marshal(cfg.Sanitized())
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "secret-code") || strings.Contains(string(data), "secret-state") {
			t.Errorf("sanitized output leaked authorization detail: %s", data)
		}
	})
}

func TestClone(t *testing.T) {
	if got := (*DeviceConfig)(nil).Clone(); got != nil {
		t.Errorf("expected nil clone of nil config, got %+v", got)
	}

	cfg := &DeviceConfig{
		KeyID:         "dev-1",
		Authorization: &AuthorizationRecord{Code: "code-1"},
		LastTokens:    &TokenBundle{B2BToken: "token-1"},
	}

	clone := cfg.Clone()
	clone.Authorization.Code = "mutated"
	clone.LastTokens.B2BToken = "mutated"

	if cfg.Authorization.Code != "code-1" || cfg.LastTokens.B2BToken != "token-1" {
		t.Error("expected clone mutation to leave the original untouched")
	}
}
