package authflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrale/onboarding-sim/internal/configstore"
)

// ExchangeUserToken validates and consumes the device's pending
// authorization and issues a user token. The authorization checks (record
// present, code match, state match when supplied, not expired) collapse into
// ErrInvalidAuthorization without revealing which one failed. A successful
// exchange removes the authorization, so a code is exchangeable at most once.
func (f *Flow) ExchangeUserToken(ctx context.Context, req UserTokenRequest) (*UserToken, error) {
	if req.KeyID == "" || req.Code == "" {
		return nil, validationError("keyId and code are required.")
	}
	if req.AttendedClientID == "" || req.AttendedClientSecret == "" {
		return nil, validationError("Attended client credentials are required.")
	}
	if req.RequestState == "" || req.Nonce == "" {
		return nil, validationError("State and nonce are required.")
	}

	cfg, err := f.store.Get(ctx, req.KeyID)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}

	auth := cfg.Authorization
	if auth == nil ||
		auth.Code != req.Code ||
		(req.State != "" && auth.State != req.State) ||
		f.now().After(auth.ExpiresAt) {
		return nil, ErrInvalidAuthorization
	}

	// Single use: consume the authorization before issuing the token.
	cfg.Authorization = nil
	if err := f.store.Put(ctx, cfg); err != nil {
		return nil, fmt.Errorf("consuming authorization: %w", err)
	}

	return &UserToken{
		Token:          newUserToken(req.KeyID),
		TokenExpiresAt: f.now().Add(f.userTokenTTL),
		ReceivedCode:   req.Code,
		RequestState:   req.RequestState,
		Nonce:          req.Nonce,
	}, nil
}

// IssueB2B issues a fresh B2B assertion and access token pair for the
// device. Issuance is independent of the authorization slot and may happen
// any number of times; each bundle overwrites the previously stored one.
func (f *Flow) IssueB2B(ctx context.Context, keyID string) (*B2BTokens, error) {
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

	now := f.now()
	tokens := &B2BTokens{
		Assertion:          newAssertion(keyID),
		AssertionExpiresAt: now.Add(f.assertionTTL),
		Token:              newB2BToken(keyID),
		TokenExpiresAt:     now.Add(f.b2bTokenTTL),
		IssuedAt:           now,
		Environment:        cfg.Environment,
	}

	cfg.LastTokens = &configstore.TokenBundle{
		B2BAssertion:          tokens.Assertion,
		B2BAssertionExpiresAt: tokens.AssertionExpiresAt,
		B2BToken:              tokens.Token,
		B2BTokenExpiresAt:     tokens.TokenExpiresAt,
	}
	if err := f.store.Put(ctx, cfg); err != nil {
		return nil, fmt.Errorf("persisting token bundle: %w", err)
	}

	return tokens, nil
}

// FinalExchange combines a user token and a B2B token into a final token.
// The presented values are not cross-checked against what was issued: the
// simulator signs nothing, so it has nothing to verify against.
func (f *Flow) FinalExchange(ctx context.Context, keyID, userToken, b2bToken string) (*FinalToken, error) {
	if keyID == "" || userToken == "" || b2bToken == "" {
		return nil, validationError("keyId, userToken, and b2bToken are required.")
	}

	cfg, err := f.store.Get(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}

	return &FinalToken{
		FinalToken: newFinalToken(keyID),
		ExpiresAt:  f.now().Add(f.finalTokenTTL),
	}, nil
}
