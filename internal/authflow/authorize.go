package authflow

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/wrale/onboarding-sim/internal/configstore"
)

// Authorize issues a fresh single-use authorization for the device and
// returns the redirect target carrying its code and state. Only the most
// recently issued authorization is valid: any earlier un-exchanged record is
// overwritten and its code becomes permanently unusable.
func (f *Flow) Authorize(ctx context.Context, keyID, requestedState, returnOrigin string) (*AuthorizationRedirect, error) {
	if strings.TrimSpace(keyID) == "" {
		return nil, validationError("keyId is required.")
	}

	cfg, err := f.store.Get(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}

	state := strings.TrimSpace(requestedState)
	if state == "" {
		state = newState()
	}

	now := f.now()
	cfg.Authorization = &configstore.AuthorizationRecord{
		State:     state,
		Code:      newCode(),
		IssuedAt:  now,
		ExpiresAt: now.Add(f.authorizationTTL),
	}

	if err := f.store.Put(ctx, cfg); err != nil {
		return nil, fmt.Errorf("persisting authorization: %w", err)
	}

	redirectURL, err := f.buildRedirectURL(returnOrigin, cfg.Authorization.Code, state)
	if err != nil {
		return nil, err
	}

	return &AuthorizationRedirect{
		Code:        cfg.Authorization.Code,
		State:       state,
		ExpiresAt:   cfg.Authorization.ExpiresAt,
		RedirectURL: redirectURL,
	}, nil
}

// buildRedirectURL builds the redirect-back target carrying code and state
// as query parameters. An empty origin falls back to the configured default.
func (f *Flow) buildRedirectURL(origin, code, state string) (string, error) {
	base := origin
	if base == "" {
		base = f.fallbackOrigin
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing redirect base: %w", err)
	}
	u.Path = path.Join(u.Path, "redirect-back-endpoint")

	q := u.Query()
	q.Set("code", code)
	q.Set("state", state)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
