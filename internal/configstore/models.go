package configstore

import "time"

// DeviceConfig is one registered device configuration, keyed by its key ID.
type DeviceConfig struct {
	KeyID          string    `json:"keyId"`
	Environment    string    `json:"environment"`
	OrganisationID string    `json:"organisationId"`
	OTAC           string    `json:"otac"`
	ClientID       string    `json:"clientId"`
	Audience       string    `json:"audience"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Authorization is the single outstanding login-redirect result. A device
	// holds at most one: issuing a new authorization overwrites it, and a
	// successful exchange removes it.
	Authorization *AuthorizationRecord `json:"lastAuthorization,omitempty"`

	// LastTokens is the most recently issued B2B bundle, overwritten on each
	// issuance.
	LastTokens *TokenBundle `json:"lastTokens,omitempty"`
}

// AuthorizationRecord is a single-use authorization code bound to a
// correlation state, produced by a simulated login redirect.
type AuthorizationRecord struct {
	State     string    `json:"state"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenBundle holds a B2B client-assertion and access-token pair.
type TokenBundle struct {
	B2BAssertion          string    `json:"b2bAssertion"`
	B2BAssertionExpiresAt time.Time `json:"b2bAssertionExpiresAt"`
	B2BToken              string    `json:"b2bToken"`
	B2BTokenExpiresAt     time.Time `json:"b2bTokenExpiresAt"`
}

// SanitizedConfig is the externally visible projection of a DeviceConfig.
// The pending authorization is never exposed; the last token bundle, when
// present, is flattened into top-level fields for display.
type SanitizedConfig struct {
	KeyID          string    `json:"keyId"`
	Environment    string    `json:"environment"`
	OrganisationID string    `json:"organisationId"`
	OTAC           string    `json:"otac"`
	ClientID       string    `json:"clientId"`
	Audience       string    `json:"audience"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	B2BAssertion          string     `json:"b2bAssertion,omitempty"`
	B2BAssertionExpiresAt *time.Time `json:"b2bAssertionExpiresAt,omitempty"`
	B2BToken              string     `json:"b2bToken,omitempty"`
	B2BTokenExpiresAt     *time.Time `json:"b2bTokenExpiresAt,omitempty"`
}

// Sanitized returns the display projection of c.
func (c *DeviceConfig) Sanitized() *SanitizedConfig {
	s := &SanitizedConfig{
		KeyID:          c.KeyID,
		Environment:    c.Environment,
		OrganisationID: c.OrganisationID,
		OTAC:           c.OTAC,
		ClientID:       c.ClientID,
		Audience:       c.Audience,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.LastTokens != nil {
		s.B2BAssertion = c.LastTokens.B2BAssertion
		assertionExp := c.LastTokens.B2BAssertionExpiresAt
		s.B2BAssertionExpiresAt = &assertionExp
		s.B2BToken = c.LastTokens.B2BToken
		tokenExp := c.LastTokens.B2BTokenExpiresAt
		s.B2BTokenExpiresAt = &tokenExp
	}
	return s
}

// Clone returns a deep copy of c so callers never alias store-owned records.
func (c *DeviceConfig) Clone() *DeviceConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Authorization != nil {
		auth := *c.Authorization
		out.Authorization = &auth
	}
	if c.LastTokens != nil {
		tokens := *c.LastTokens
		out.LastTokens = &tokens
	}
	return &out
}
