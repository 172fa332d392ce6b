package authflow

import (
	"context"
	"errors"
	"time"

	"github.com/wrale/onboarding-sim/internal/configstore"
)

// ErrStoreUnhealthy indicates the store is not available
var ErrStoreUnhealthy = errors.New("store unhealthy")

// mockStore implements configstore.Store for testing
type mockStore struct {
	configs map[string]*configstore.DeviceConfig
	puts    int
	healthy bool
}

func newMockStore() *mockStore {
	return &mockStore{
		configs: make(map[string]*configstore.DeviceConfig),
		healthy: true,
	}
}

func (m *mockStore) Put(ctx context.Context, cfg *configstore.DeviceConfig) error {
	if !m.healthy {
		return ErrStoreUnhealthy
	}
	m.puts++
	m.configs[cfg.KeyID] = cfg.Clone()
	return nil
}

func (m *mockStore) Get(ctx context.Context, keyID string) (*configstore.DeviceConfig, error) {
	if !m.healthy {
		return nil, ErrStoreUnhealthy
	}
	return m.configs[keyID].Clone(), nil
}

func (m *mockStore) Delete(ctx context.Context, keyID string) error {
	if !m.healthy {
		return ErrStoreUnhealthy
	}
	if _, exists := m.configs[keyID]; !exists {
		return configstore.ErrNotFound
	}
	delete(m.configs, keyID)
	return nil
}

func (m *mockStore) List(ctx context.Context) ([]*configstore.DeviceConfig, error) {
	if !m.healthy {
		return nil, ErrStoreUnhealthy
	}
	out := make([]*configstore.DeviceConfig, 0, len(m.configs))
	for _, cfg := range m.configs {
		out = append(out, cfg.Clone())
	}
	return out, nil
}

func (m *mockStore) CheckHealth(ctx context.Context) error {
	if !m.healthy {
		return ErrStoreUnhealthy
	}
	return nil
}

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func validConfig(keyID string) *configstore.DeviceConfig {
	return &configstore.DeviceConfig{
		KeyID:          keyID,
		Environment:    "dev",
		OrganisationID: "org-1",
		OTAC:           "otac-1",
		ClientID:       "client-1",
		Audience:       "audience-1",
	}
}
