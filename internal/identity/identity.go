package identity

import "context"

// Principal is the verified caller identity extracted from a bearer token.
type Principal struct {
	ExternalID string   `json:"external_id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
}

func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Account is the profile pushed to the identity provider. The password is
// write-only; it is never read back or stored locally.
type Account struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Verifier is the subset of the provider needed per request.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Principal, error)
}

// Provider wraps the external identity service: credential checks, token
// verification and the administrative account lifecycle.
type Provider interface {
	Verifier

	Authenticate(ctx context.Context, username, password string) (string, error)
	CreateAccount(ctx context.Context, acc Account) (string, error)
	UpdateAccount(ctx context.Context, externalID string, acc Account) error
	DeleteAccount(ctx context.Context, externalID string) error
	SetPassword(ctx context.Context, externalID, password string) error
}
