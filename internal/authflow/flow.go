// Package authflow implements the device onboarding authorization and
// token-exchange flow: configuration registration, single-use authorization
// codes bound to a correlation state, and the user/B2B/final token
// issuance operations.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wrale/onboarding-sim/internal/configstore"
	"github.com/wrale/onboarding-sim/internal/environment"
)

// Default validity windows for generated credentials.
const (
	DefaultAuthorizationTTL = 5 * time.Minute
	DefaultUserTokenTTL     = 15 * time.Minute
	DefaultAssertionTTL     = 5 * time.Minute
	DefaultB2BTokenTTL      = 60 * time.Minute
	DefaultFinalTokenTTL    = 60 * time.Minute
)

// Flow manages the onboarding flow over a configuration store. All mutation
// goes through the store's read-modify-write contract; the flow itself holds
// no record state.
type Flow struct {
	store          configstore.Store
	fallbackOrigin string

	authorizationTTL time.Duration
	userTokenTTL     time.Duration
	assertionTTL     time.Duration
	b2bTokenTTL      time.Duration
	finalTokenTTL    time.Duration

	now func() time.Time
}

// NewFlow creates a new flow manager with provided options. fallbackOrigin
// is the redirect base used when the caller's origin cannot be determined.
func NewFlow(store configstore.Store, fallbackOrigin string, opts ...Option) *Flow {
	f := &Flow{
		store:            store,
		fallbackOrigin:   fallbackOrigin,
		authorizationTTL: DefaultAuthorizationTTL,
		userTokenTTL:     DefaultUserTokenTTL,
		assertionTTL:     DefaultAssertionTTL,
		b2bTokenTTL:      DefaultB2BTokenTTL,
		finalTokenTTL:    DefaultFinalTokenTTL,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RegisterConfig validates and stores a device configuration. Registering an
// existing key ID updates the record in place: CreatedAt and any pending
// authorization survive, UpdatedAt advances, and any previously issued token
// bundle is discarded.
func (f *Flow) RegisterConfig(ctx context.Context, cfg *configstore.DeviceConfig) (*configstore.SanitizedConfig, error) {
	if cfg.KeyID == "" || cfg.Environment == "" || cfg.OrganisationID == "" ||
		cfg.OTAC == "" || cfg.ClientID == "" || cfg.Audience == "" {
		return nil, validationError("Missing required fields.")
	}
	if !environment.Valid(cfg.Environment) {
		return nil, validationError("Unknown environment.")
	}

	existing, err := f.store.Get(ctx, cfg.KeyID)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	now := f.now()
	stored := &configstore.DeviceConfig{
		KeyID:          cfg.KeyID,
		Environment:    cfg.Environment,
		OrganisationID: cfg.OrganisationID,
		OTAC:           cfg.OTAC,
		ClientID:       cfg.ClientID,
		Audience:       cfg.Audience,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if existing != nil {
		stored.CreatedAt = existing.CreatedAt
		stored.Authorization = existing.Authorization
	}

	if err := f.store.Put(ctx, stored); err != nil {
		return nil, fmt.Errorf("persisting configuration: %w", err)
	}
	return stored.Sanitized(), nil
}

// ListConfigs returns every registered configuration, sanitized for display.
func (f *Flow) ListConfigs(ctx context.Context) ([]*configstore.SanitizedConfig, error) {
	configs, err := f.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing configurations: %w", err)
	}

	out := make([]*configstore.SanitizedConfig, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg.Sanitized())
	}
	return out, nil
}

// DeleteConfig removes a registered configuration together with any pending
// authorization and stored token bundle.
func (f *Flow) DeleteConfig(ctx context.Context, keyID string) error {
	if strings.TrimSpace(keyID) == "" {
		return validationError("keyId is required.")
	}
	if err := f.store.Delete(ctx, keyID); err != nil {
		if errors.Is(err, configstore.ErrNotFound) {
			return ErrConfigNotFound
		}
		return fmt.Errorf("deleting configuration: %w", err)
	}
	return nil
}

// CheckHealth verifies the flow's storage backend is healthy.
func (f *Flow) CheckHealth(ctx context.Context) error {
	return f.store.CheckHealth(ctx)
}
