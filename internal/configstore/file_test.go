package configstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func testConfig(keyID string) *DeviceConfig {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &DeviceConfig{
		KeyID:          keyID,
		Environment:    "dev",
		OrganisationID: "org-1",
		OTAC:           "otac-1",
		ClientID:       "client-1",
		Audience:       "audience-1",
		CreatedAt:      now,
		UpdatedAt:      now,
		Authorization: &AuthorizationRecord{
			State:     "state-1",
			Code:      "code-1",
			IssuedAt:  now,
			ExpiresAt: now.Add(5 * time.Minute),
		},
		LastTokens: &TokenBundle{
			B2BAssertion:          "assertion-1",
			B2BAssertionExpiresAt: now.Add(5 * time.Minute),
			B2BToken:              "token-1",
			B2BTokenExpiresAt:     now.Add(time.Hour),
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	ctx := context.Background()

	want := testConfig("dev-1")
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	missing, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing key, got %+v", missing)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ctx := context.Background()

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	want := testConfig("dev-1")
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	got, err := reopened.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch after reopen (-want +got):\n%s", diff)
	}
}

func TestFileStoreCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "keys", "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	if err := store.Put(context.Background(), testConfig("dev-1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected snapshot file to exist: %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	ctx := context.Background()

	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, testConfig("dev-1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "dev-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}

	if err := store.Delete(ctx, "dev-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestFileStoreList(t *testing.T) {
	store, err := NewFileStore("")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	ctx := context.Background()

	for _, keyID := range []string{"dev-1", "dev-2", "dev-3"} {
		if err := store.Put(ctx, testConfig(keyID)); err != nil {
			t.Fatalf("put %s: %v", keyID, err)
		}
	}

	configs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(configs) != 3 {
		t.Fatalf("expected 3 configs, got %d", len(configs))
	}

	seen := make(map[string]bool)
	for _, cfg := range configs {
		seen[cfg.KeyID] = true
	}
	for _, keyID := range []string{"dev-1", "dev-2", "dev-3"} {
		if !seen[keyID] {
			t.Errorf("expected %s in listing", keyID)
		}
	}
}

func TestFileStoreReturnsCopies(t *testing.T) {
	store, err := NewFileStore("")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, testConfig("dev-1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	first, err := store.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Authorization = nil
	first.OrganisationID = "mutated"

	second, err := store.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.Authorization == nil || second.OrganisationID != "org-1" {
		t.Error("expected store-owned record to be isolated from caller mutation")
	}
}

func TestFileStoreCheckHealth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if err := store.CheckHealth(context.Background()); err != nil {
		t.Errorf("expected healthy store, got %v", err)
	}
}
