// Package environment defines the closed set of environments a device
// configuration may target.
package environment

// Environment identifies one of the fixed deployment environments.
type Environment struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Issuer string `json:"issuer"`
}

// All returns every recognized environment in display order.
func All() []Environment {
	return []Environment{
		{ID: "dev", Label: "Development", Issuer: "https://dev-issuer.example.com"},
		{ID: "test", Label: "Staging", Issuer: "https://staging-issuer.example.com"},
		{ID: "vendor", Label: "Production", Issuer: "https://prod-issuer.example.com"},
	}
}

// Valid reports whether id names a recognized environment. Unknown values
// are rejected at registration time; the set never changes at runtime.
func Valid(id string) bool {
	for _, env := range All() {
		if env.ID == id {
			return true
		}
	}
	return false
}
