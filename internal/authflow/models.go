package authflow

import "time"

// AuthorizationRedirect is the result of issuing an authorization: the
// generated code/state pair and the redirect target that carries them back
// to the caller.
type AuthorizationRedirect struct {
	Code        string
	State       string
	ExpiresAt   time.Time
	RedirectURL string
}

// UserTokenRequest carries the inputs for exchanging an authorization code
// for a user token. State is the optional value returned by the redirect;
// RequestState and Nonce are the caller's own correlation values, echoed
// back unmodified.
type UserTokenRequest struct {
	KeyID                string `json:"keyId"`
	Code                 string `json:"code"`
	State                string `json:"state"`
	RequestState         string `json:"requestState"`
	Nonce                string `json:"nonce"`
	AttendedClientID     string `json:"attendedClientId"`
	AttendedClientSecret string `json:"attendedClientSecret"`
}

// UserToken is the result of a successful authorization code exchange.
type UserToken struct {
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	ReceivedCode   string    `json:"receivedCode"`
	RequestState   string    `json:"requestState"`
	Nonce          string    `json:"nonce"`
}

// B2BTokens is a freshly issued machine-to-machine assertion and access
// token pair.
type B2BTokens struct {
	Assertion          string    `json:"assertion"`
	AssertionExpiresAt time.Time `json:"assertionExpiresAt"`
	Token              string    `json:"token"`
	TokenExpiresAt     time.Time `json:"tokenExpiresAt"`
	IssuedAt           time.Time `json:"issuedAt"`
	Environment        string    `json:"environment"`
}

// FinalToken is the combined credential produced by the final exchange.
type FinalToken struct {
	FinalToken string    `json:"finalToken"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
