package authflow

import "time"

// Option configures the flow.
type Option func(*Flow)

// WithAuthorizationTTL sets how long an issued authorization code stays
// exchangeable.
func WithAuthorizationTTL(d time.Duration) Option {
	return func(f *Flow) {
		f.authorizationTTL = d
	}
}

// WithUserTokenTTL sets the validity window of issued user tokens.
func WithUserTokenTTL(d time.Duration) Option {
	return func(f *Flow) {
		f.userTokenTTL = d
	}
}

// WithAssertionTTL sets the validity window of issued B2B assertions.
func WithAssertionTTL(d time.Duration) Option {
	return func(f *Flow) {
		f.assertionTTL = d
	}
}

// WithB2BTokenTTL sets the validity window of issued B2B access tokens.
func WithB2BTokenTTL(d time.Duration) Option {
	return func(f *Flow) {
		f.b2bTokenTTL = d
	}
}

// WithFinalTokenTTL sets the validity window of final combined tokens.
func WithFinalTokenTTL(d time.Duration) Option {
	return func(f *Flow) {
		f.finalTokenTTL = d
	}
}

// WithNow overrides the flow's clock. Tests use this to step past expiry
// windows without sleeping.
func WithNow(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}
